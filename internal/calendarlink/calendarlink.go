// Package calendarlink builds "add to calendar" URLs for single events.
package calendarlink

import (
	"fmt"
	"net/url"
	"time"

	"github.com/wayfarer-app/wayfarer-backend/internal/timezone"
	"github.com/wayfarer-app/wayfarer-backend/internal/tripevent"
)

const (
	googleCalendarBase = "https://calendar.google.com/calendar/render"

	// Floating wall-clock form, interpreted via the ctz parameter.
	floatingStamp = "20060102T150405"
	// Absolute form, used when no zone is known.
	utcStamp = "20060102T150405Z"

	defaultDuration = time.Hour
)

// BuildExportURL renders a Google Calendar event-template URL for an
// event. Zoned events export their wall clocks plus a ctz parameter so
// the calendar pins them to the right zone; zone-less events export
// absolute UTC stamps. Containers have no dates to export.
func BuildExportURL(e *tripevent.Event) (string, error) {
	if !e.Scheduled() {
		return "", fmt.Errorf("event %d has no dates to export", e.ID)
	}

	zoneStart, _ := e.Zones()

	start := e.StartDatetime
	end := start.Add(defaultDuration)
	if e.EndDatetime != nil {
		end = *e.EndDatetime
	}

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", e.Title)

	if zoneStart != "" {
		// Both stamps are wall clocks in the start zone. A cross-zone
		// event (flight) still renders on the departure clock; Google
		// accepts a single ctz per template.
		params.Set("dates", fmt.Sprintf("%s/%s",
			stampInZone(start, zoneStart),
			stampInZone(end, zoneStart)))
		params.Set("ctz", zoneStart)
	} else {
		params.Set("dates", fmt.Sprintf("%s/%s",
			start.UTC().Format(utcStamp),
			end.UTC().Format(utcStamp)))
	}

	if e.Location != "" {
		params.Set("location", e.Location)
	}
	if e.Notes != "" {
		params.Set("details", e.Notes)
	}

	return googleCalendarBase + "?" + params.Encode(), nil
}

func stampInZone(t time.Time, zone string) string {
	w := timezone.FromUTC(t, zone)
	local := time.Date(w.Year, time.Month(w.Month), w.Day, w.Hour, w.Minute, 0, 0, time.UTC)
	return local.Format(floatingStamp)
}

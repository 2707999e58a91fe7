// Package itinerary turns a trip's flat event list into the day-ordered
// grid the itinerary view renders: one row per calendar day, hotel stays
// spanning their full date range, and dateless shopping/bars containers
// attached to the stay they belong to.
package itinerary

import (
	"sort"
	"strings"
	"time"

	"github.com/wayfarer-app/wayfarer-backend/internal/timezone"
	"github.com/wayfarer-app/wayfarer-backend/internal/tripevent"
)

// Layout is the complete itinerary view model. Rows are 1-based over the
// sorted set of day buckets; span row ranges are end-exclusive.
type Layout struct {
	Days     []Day       `json:"days"`
	Spans    []Span      `json:"spans"`
	Overflow []Container `json:"overflow,omitempty"`
}

// Day is one calendar-day bucket. A day with no flat events still renders
// when a span covers it.
type Day struct {
	Date   string                    `json:"date"` // yyyy-mm-dd
	Row    int                       `json:"row"`
	Events []tripevent.EventResponse `json:"events"`
}

// Span is a hotel stay covering more than one calendar day.
type Span struct {
	Event      tripevent.EventResponse `json:"event"`
	StartDate  string                  `json:"start_date"`
	EndDate    string                  `json:"end_date"`
	RowStart   int                     `json:"row_start"`
	RowEnd     int                     `json:"row_end"` // exclusive
	Containers []Container             `json:"containers,omitempty"`
}

// Container is a dateless shopping/bars event, attached to a span when a
// city signal matches and overflowed otherwise.
type Container struct {
	Event tripevent.EventResponse `json:"event"`
	City  string                  `json:"city,omitempty"` // the signal that matched (or failed to)
}

// BuildLayout computes the itinerary layout. Pure: no I/O, deterministic
// for a given event list, safe for concurrent calls.
func BuildLayout(events []tripevent.Event) Layout {
	var flat, spanEvents, containers []*tripevent.Event
	for i := range events {
		e := &events[i]
		switch {
		case !e.Scheduled():
			containers = append(containers, e)
		case isSpan(e):
			spanEvents = append(spanEvents, e)
		default:
			flat = append(flat, e)
		}
	}

	// 1. Bucket flat events by their local calendar date.
	buckets := make(map[string][]*tripevent.Event)
	for _, e := range flat {
		key := bucketKey(e)
		buckets[key] = append(buckets[key], e)
	}
	for _, list := range buckets {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].StartDatetime.Before(list[j].StartDatetime)
		})
	}

	// 2. Span date ranges, in the stay's own zone.
	type spanRange struct {
		event      *tripevent.Event
		start, end string
	}
	ranges := make([]spanRange, 0, len(spanEvents))
	for _, e := range spanEvents {
		zone, _ := e.Zones()
		start := timezone.DateOnly(e.StartDatetime, zone)
		end := timezone.DateOnly(*e.EndDatetime, zone)
		if end < start {
			// Inverted range written around the API; degrade to one day
			end = start
		}
		ranges = append(ranges, spanRange{event: e, start: start, end: end})
	}

	// 3. Row index assignment over the union of day keys. Lexicographic
	// order of yyyy-mm-dd keys is chronological.
	keySet := make(map[string]bool, len(buckets))
	for key := range buckets {
		keySet[key] = true
	}
	for _, r := range ranges {
		for _, d := range datesBetween(r.start, r.end) {
			keySet[d] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make(map[string]int, len(keys))
	for i, key := range keys {
		rows[key] = i + 1
	}

	layout := Layout{}
	for _, key := range keys {
		day := Day{Date: key, Row: rows[key], Events: []tripevent.EventResponse{}}
		for _, e := range buckets[key] {
			day.Events = append(day.Events, tripevent.ToResponse(e))
		}
		layout.Days = append(layout.Days, day)
	}

	for _, r := range ranges {
		layout.Spans = append(layout.Spans, Span{
			Event:     tripevent.ToResponse(r.event),
			StartDate: r.start,
			EndDate:   r.end,
			RowStart:  rows[r.start],
			RowEnd:    rows[r.end] + 1,
		})
	}

	// 4. Attach containers to the stay whose location mentions their city.
	for _, c := range containers {
		signal := citySignal(c)
		view := Container{Event: tripevent.ToResponse(c), City: signal}

		attached := false
		if signal != "" {
			needle := strings.ToLower(signal)
			for i := range layout.Spans {
				if strings.Contains(strings.ToLower(layout.Spans[i].Event.Location), needle) {
					layout.Spans[i].Containers = append(layout.Spans[i].Containers, view)
					attached = true
					break
				}
			}
		}
		if !attached {
			layout.Overflow = append(layout.Overflow, view)
		}
	}

	return layout
}

// isSpan reports whether an event occupies a multi-day block: hotels
// whose start and end fall on different UTC calendar dates.
func isSpan(e *tripevent.Event) bool {
	if e.EventType != tripevent.TypeHotel || e.EndDatetime == nil {
		return false
	}
	return timezone.DateOnly(e.StartDatetime, "UTC") != timezone.DateOnly(*e.EndDatetime, "UTC")
}

// bucketKey is the calendar date of the event in its own zone, falling
// back to UTC when no zone is known.
func bucketKey(e *tripevent.Event) string {
	zoneStart, _ := e.Zones()
	return timezone.DateOnly(e.StartDatetime, zoneStart)
}

// datesBetween expands an inclusive yyyy-mm-dd range into its days.
func datesBetween(start, end string) []string {
	startT, err := time.Parse("2006-01-02", start)
	if err != nil {
		return []string{start}
	}
	endT, err := time.Parse("2006-01-02", end)
	if err != nil {
		return []string{start}
	}

	var dates []string
	for d := startT; !d.After(endT); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

// Titles the client uses for freshly created containers; they carry no
// city information.
var placeholderTitles = map[string]bool{
	"":         true,
	"shopping": true,
	"bars":     true,
	"untitled": true,
}

// citySignal picks the best available city hint for a container, in
// priority order: its own title, a city parsed from its location, then
// the first child address that yields one.
func citySignal(e *tripevent.Event) string {
	if title := strings.TrimSpace(e.Title); !placeholderTitles[strings.ToLower(title)] {
		return title
	}
	if city := ExtractCity(e.Location); city != "" {
		return city
	}
	for _, child := range e.Children() {
		if city := ExtractCity(child.Address); city != "" {
			return city
		}
	}
	return ""
}

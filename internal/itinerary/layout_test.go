package itinerary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/wayfarer-app/wayfarer-backend/internal/timezone"
	"github.com/wayfarer-app/wayfarer-backend/internal/tripevent"
)

func instant(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func scheduledEvent(id uint, eventType, title, start, end, zoneStart, zoneEnd string) tripevent.Event {
	e := tripevent.Event{
		ID:            id,
		TripID:        1,
		Title:         title,
		EventType:     eventType,
		StartDatetime: instant(start),
	}
	if end != "" {
		endT := instant(end)
		e.EndDatetime = &endT
	}
	if zoneStart != "" {
		spec := timezone.EncodeZones(zoneStart, zoneEnd)
		e.Timezone = &spec
	}
	return e
}

func containerEvent(id uint, eventType, title, location string, places []tripevent.Place) tripevent.Event {
	e := tripevent.Event{
		ID:            id,
		TripID:        1,
		Title:         title,
		EventType:     eventType,
		Location:      location,
		StartDatetime: instant("2025-06-01T00:00:00Z"), // sentinel, no meaning
	}
	if len(places) > 0 {
		raw, _ := json.Marshal(places)
		if eventType == tripevent.TypeShopping {
			e.Stores = datatypes.JSON(raw)
		} else {
			e.Venues = datatypes.JSON(raw)
		}
	}
	return e
}

func TestBucketingByLocalDate(t *testing.T) {
	// 03:00Z is still the previous evening in New York; 05:00Z is not.
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeActivity, "Late dinner", "2025-03-10T03:00:00Z", "", "America/New_York", ""),
		scheduledEvent(2, tripevent.TypeActivity, "Breakfast", "2025-03-10T05:00:00Z", "", "America/New_York", ""),
	}

	layout := BuildLayout(events)
	require.Len(t, layout.Days, 2)
	assert.Equal(t, "2025-03-09", layout.Days[0].Date)
	assert.Equal(t, "Late dinner", layout.Days[0].Events[0].Title)
	assert.Equal(t, "2025-03-10", layout.Days[1].Date)
	assert.Equal(t, "Breakfast", layout.Days[1].Events[0].Title)
}

func TestBucketMonotonicity(t *testing.T) {
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeActivity, "c", "2025-06-03T09:00:00Z", "", "", ""),
		scheduledEvent(2, tripevent.TypeActivity, "a", "2025-06-01T09:00:00Z", "", "", ""),
		scheduledEvent(3, tripevent.TypeActivity, "b", "2025-06-01T18:00:00Z", "", "", ""),
	}

	layout := BuildLayout(events)
	var prev string
	for _, day := range layout.Days {
		assert.Greater(t, day.Date, prev)
		prev = day.Date
		var prevStart time.Time
		for _, e := range day.Events {
			start := instant(e.StartUTC)
			assert.False(t, start.Before(prevStart))
			prevStart = start
		}
	}
}

func TestBucketMonotonicityAcrossLocalMidnight(t *testing.T) {
	// Same zone, one hour apart in UTC, but on opposite sides of local
	// midnight: buckets must split on the local date and stay ordered.
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeActivity, "Nightcap", "2025-06-01T21:30:00Z", "", "Europe/Rome", ""),
		scheduledEvent(2, tripevent.TypeActivity, "Late arrival", "2025-06-01T22:30:00Z", "", "Europe/Rome", ""),
		scheduledEvent(3, tripevent.TypeRestaurant, "Breakfast", "2025-06-02T06:30:00Z", "", "Europe/Rome", ""),
	}

	layout := BuildLayout(events)
	require.Len(t, layout.Days, 2)

	assert.Equal(t, "2025-06-01", layout.Days[0].Date)
	require.Len(t, layout.Days[0].Events, 1)
	assert.Equal(t, "Nightcap", layout.Days[0].Events[0].Title)

	assert.Equal(t, "2025-06-02", layout.Days[1].Date)
	require.Len(t, layout.Days[1].Events, 2)
	assert.Equal(t, "Late arrival", layout.Days[1].Events[0].Title)
	assert.Equal(t, "Breakfast", layout.Days[1].Events[1].Title)

	// Concatenating the days in order yields non-decreasing instants.
	var prev time.Time
	for _, day := range layout.Days {
		for _, e := range day.Events {
			start := instant(e.StartUTC)
			assert.False(t, start.Before(prev))
			prev = start
		}
	}
}

func TestWithinDayOrderAndStableTies(t *testing.T) {
	// Two events at the identical instant keep their arrival order.
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeActivity, "first", "2025-06-01T09:00:00Z", "", "", ""),
		scheduledEvent(2, tripevent.TypeActivity, "second", "2025-06-01T09:00:00Z", "", "", ""),
		scheduledEvent(3, tripevent.TypeRestaurant, "earlier", "2025-06-01T07:00:00Z", "", "", ""),
	}

	layout := BuildLayout(events)
	require.Len(t, layout.Days, 1)
	titles := []string{}
	for _, e := range layout.Days[0].Events {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"earlier", "first", "second"}, titles)
}

func TestHotelSpanCoverage(t *testing.T) {
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeHotel, "Hotel Brunelleschi", "2025-06-01T13:00:00Z", "2025-06-04T09:00:00Z", "Europe/Rome", ""),
		scheduledEvent(2, tripevent.TypeActivity, "Uffizi", "2025-06-02T08:30:00Z", "", "Europe/Rome", ""),
	}

	layout := BuildLayout(events)

	// The stay covers 06-01 through 06-04 inclusive; every covered day
	// renders even without flat events of its own.
	require.Len(t, layout.Days, 4)
	dates := []string{}
	for _, d := range layout.Days {
		dates = append(dates, d.Date)
	}
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-04"}, dates)

	require.Len(t, layout.Spans, 1)
	span := layout.Spans[0]
	assert.Equal(t, "2025-06-01", span.StartDate)
	assert.Equal(t, "2025-06-04", span.EndDate)
	assert.Equal(t, 1, span.RowStart)
	assert.Equal(t, 5, span.RowEnd) // end-exclusive: rowOf(06-04) + 1

	// The hotel is not duplicated into the flat day lists.
	for _, d := range layout.Days {
		for _, e := range d.Events {
			assert.NotEqual(t, tripevent.TypeHotel, e.EventType)
		}
	}
}

func TestSingleNightHotelStaysFlat(t *testing.T) {
	// Same UTC calendar date on both ends: not a span.
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeHotel, "Day room", "2025-06-01T09:00:00Z", "2025-06-01T17:00:00Z", "", ""),
	}

	layout := BuildLayout(events)
	assert.Empty(t, layout.Spans)
	require.Len(t, layout.Days, 1)
	assert.Equal(t, "Day room", layout.Days[0].Events[0].Title)
}

func TestInvertedHotelRangeDegradesToOneDay(t *testing.T) {
	events := []tripevent.Event{
		// End before start in local dates via a raw write; rendered as a
		// single-day span rather than a negative range.
		{
			ID:            1,
			TripID:        1,
			Title:         "Backwards",
			EventType:     tripevent.TypeHotel,
			StartDatetime: instant("2025-06-04T01:00:00Z"),
			EndDatetime:   func() *time.Time { t := instant("2025-06-01T01:00:00Z"); return &t }(),
		},
	}

	layout := BuildLayout(events)
	require.Len(t, layout.Spans, 1)
	assert.Equal(t, layout.Spans[0].StartDate, layout.Spans[0].EndDate)
	assert.Equal(t, layout.Spans[0].RowStart+1, layout.Spans[0].RowEnd)
}

func TestContainerAttachesByTitle(t *testing.T) {
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeHotel, "Hotel Brunelleschi", "2025-06-01T13:00:00Z", "2025-06-04T09:00:00Z", "Europe/Rome", ""),
		containerEvent(2, tripevent.TypeShopping, "Florence", "", nil),
	}
	events[0].Location = "Piazza Santa Elisabetta 3, Florence, Italy"

	layout := BuildLayout(events)
	require.Len(t, layout.Spans, 1)
	require.Len(t, layout.Spans[0].Containers, 1)
	assert.Equal(t, "Florence", layout.Spans[0].Containers[0].Event.Title)
	assert.Empty(t, layout.Overflow)
}

func TestContainerAttachesByChildAddress(t *testing.T) {
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeHotel, "Firenze stay", "2025-06-01T13:00:00Z", "2025-06-03T09:00:00Z", "Europe/Rome", ""),
		containerEvent(2, tripevent.TypeBars, "Bars", "", []tripevent.Place{
			{Name: "Mad Souls", Address: "Borgo San Frediano 36, 50124 Firenze FI, Italy"},
		}),
	}
	events[0].Location = "Via dei Servi 2, Firenze, Italy"

	layout := BuildLayout(events)
	require.Len(t, layout.Spans, 1)
	require.Len(t, layout.Spans[0].Containers, 1)
	assert.Equal(t, "Firenze", layout.Spans[0].Containers[0].City)
}

func TestUnmatchedContainerOverflows(t *testing.T) {
	events := []tripevent.Event{
		scheduledEvent(1, tripevent.TypeHotel, "Rome stay", "2025-06-01T13:00:00Z", "2025-06-03T09:00:00Z", "Europe/Rome", ""),
		containerEvent(2, tripevent.TypeShopping, "Okinawa", "", nil),
	}
	events[0].Location = "Via del Corso 1, Rome, Italy"

	layout := BuildLayout(events)
	assert.Empty(t, layout.Spans[0].Containers)
	require.Len(t, layout.Overflow, 1)
	assert.Equal(t, "Okinawa", layout.Overflow[0].Event.Title)
}

func TestContainersNeverBucketedByDate(t *testing.T) {
	// A container's sentinel timestamp must not produce a day bucket.
	events := []tripevent.Event{
		containerEvent(1, tripevent.TypeShopping, "Florence", "", nil),
	}

	layout := BuildLayout(events)
	assert.Empty(t, layout.Days)
	require.Len(t, layout.Overflow, 1)
}

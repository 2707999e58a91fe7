package calendarlink

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/wayfarer-backend/internal/timezone"
	"github.com/wayfarer-app/wayfarer-backend/internal/tripevent"
)

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)
	return u.Query()
}

func TestBuildExportURLZoned(t *testing.T) {
	start := time.Date(2025, 6, 1, 16, 30, 0, 0, time.UTC) // 18:30 in Rome
	end := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	spec := timezone.EncodeZones("Europe/Rome", "")
	e := &tripevent.Event{
		ID:            7,
		Title:         "Dinner at Trattoria",
		EventType:     tripevent.TypeRestaurant,
		StartDatetime: start,
		EndDatetime:   &end,
		Timezone:      &spec,
		Location:      "Via dei Neri 4, Florence, Italy",
	}

	raw, err := BuildExportURL(e)
	require.NoError(t, err)
	q := mustQuery(t, raw)

	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Dinner at Trattoria", q.Get("text"))
	assert.Equal(t, "Europe/Rome", q.Get("ctz"))
	assert.Equal(t, "20250601T183000/20250601T200000", q.Get("dates"))
	assert.Equal(t, "Via dei Neri 4, Florence, Italy", q.Get("location"))
}

func TestBuildExportURLNoZoneUsesUTC(t *testing.T) {
	e := &tripevent.Event{
		ID:            8,
		Title:         "Standup",
		EventType:     tripevent.TypeActivity,
		StartDatetime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	raw, err := BuildExportURL(e)
	require.NoError(t, err)
	q := mustQuery(t, raw)

	assert.Empty(t, q.Get("ctz"))
	// No end: default one-hour block.
	assert.Equal(t, "20250601T090000Z/20250601T100000Z", q.Get("dates"))
}

func TestBuildExportURLDefaultDurationZoned(t *testing.T) {
	spec := timezone.EncodeZones("America/New_York", "")
	e := &tripevent.Event{
		ID:            9,
		Title:         "Museum",
		EventType:     tripevent.TypeActivity,
		StartDatetime: time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC), // 10:00 EDT
		Timezone:      &spec,
	}

	raw, err := BuildExportURL(e)
	require.NoError(t, err)
	q := mustQuery(t, raw)
	assert.Equal(t, "20250601T100000/20250601T110000", q.Get("dates"))
}

func TestBuildExportURLRejectsContainers(t *testing.T) {
	e := &tripevent.Event{
		ID:            10,
		Title:         "Florence",
		EventType:     tripevent.TypeShopping,
		StartDatetime: time.Now(),
	}

	_, err := BuildExportURL(e)
	assert.Error(t, err)
}

func TestBuildExportURLNotes(t *testing.T) {
	e := &tripevent.Event{
		ID:            11,
		Title:         "Check-in",
		EventType:     tripevent.TypeHotel,
		StartDatetime: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
		Notes:         "Booking ref ABC123",
	}

	raw, err := BuildExportURL(e)
	require.NoError(t, err)
	q := mustQuery(t, raw)
	assert.Equal(t, "Booking ref ABC123", q.Get("details"))
}

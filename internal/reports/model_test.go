package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/wayfarer-backend/internal/itinerary"
	"github.com/wayfarer-app/wayfarer-backend/internal/tripevent"
)

func TestBuildRowsOrder(t *testing.T) {
	layout := &itinerary.Layout{
		Days: []itinerary.Day{
			{
				Date: "2025-06-01",
				Row:  1,
				Events: []tripevent.EventResponse{
					{Title: "Flight", EventType: tripevent.TypeTravel, StartDisplay: "9:00 AM CEST", ZoneStart: "Europe/Rome"},
					{Title: "Dinner", EventType: tripevent.TypeRestaurant, StartDisplay: "8:00 PM CEST", ZoneStart: "Europe/Rome"},
				},
			},
			{
				Date: "2025-06-02",
				Row:  2,
				Events: []tripevent.EventResponse{
					{Title: "Uffizi", EventType: tripevent.TypeActivity},
				},
			},
		},
		Spans: []itinerary.Span{
			{
				Event:     tripevent.EventResponse{Title: "Hotel", EventType: tripevent.TypeHotel, ZoneStart: "Europe/Rome"},
				StartDate: "2025-06-01",
				EndDate:   "2025-06-02",
				Containers: []itinerary.Container{
					{Event: tripevent.EventResponse{Title: "Florence", EventType: tripevent.TypeShopping}},
				},
			},
		},
		Overflow: []itinerary.Container{
			{Event: tripevent.EventResponse{Title: "Okinawa", EventType: tripevent.TypeBars}},
		},
	}

	rows := BuildRows(layout)
	require.Len(t, rows, 6)

	titles := []string{}
	for _, r := range rows {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"Flight", "Dinner", "Uffizi", "Hotel", "Florence", "Okinawa"}, titles)

	// Day events carry their date and local time.
	assert.Equal(t, "2025-06-01", rows[0].Day)
	assert.Equal(t, "9:00 AM CEST", rows[0].Time)

	// Stays carry a range and no time of day.
	assert.Equal(t, "2025-06-01 to 2025-06-02", rows[3].Day)
	assert.Empty(t, rows[3].Time)

	// Containers are dateless.
	assert.Empty(t, rows[4].Day)
	assert.Empty(t, rows[5].Day)
}

func TestExporterRejectsUnknownFormat(t *testing.T) {
	_, _, _, err := NewItineraryExporter().Export("docx", nil)
	assert.Error(t, err)
}

func TestExporterCSV(t *testing.T) {
	rows := []ItineraryRow{
		{Day: "2025-06-01", Time: "9:00 AM CEST", EventType: "restaurant", Title: "Dinner", Location: "Florence", Zone: "Europe/Rome"},
	}
	data, filename, mimeType, err := NewItineraryExporter().Export(FormatCSV, rows)
	require.NoError(t, err)
	assert.Contains(t, filename, ".csv")
	assert.Equal(t, "text/csv", mimeType)
	assert.Contains(t, string(data), "Dinner")
	assert.Contains(t, string(data), "Europe/Rome")
}

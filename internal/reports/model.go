package reports

import (
	"github.com/wayfarer-app/wayfarer-backend/internal/itinerary"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ItineraryRow is one line of the flattened export: day-bucketed events
// first, then hotel stays, then unplaced containers.
type ItineraryRow struct {
	Day       string // yyyy-mm-dd, empty for dateless containers
	Time      string // local wall clock display, empty for stays/containers
	EventType string
	Title     string
	Location  string
	Zone      string
	Notes     string
}

// BuildRows flattens a layout into export rows in render order.
func BuildRows(layout *itinerary.Layout) []ItineraryRow {
	var rows []ItineraryRow

	for _, day := range layout.Days {
		for _, e := range day.Events {
			rows = append(rows, ItineraryRow{
				Day:       day.Date,
				Time:      e.StartDisplay,
				EventType: e.EventType,
				Title:     e.Title,
				Location:  e.Location,
				Zone:      e.ZoneStart,
				Notes:     e.Notes,
			})
		}
	}

	for _, span := range layout.Spans {
		rows = append(rows, ItineraryRow{
			Day:       span.StartDate + " to " + span.EndDate,
			EventType: span.Event.EventType,
			Title:     span.Event.Title,
			Location:  span.Event.Location,
			Zone:      span.Event.ZoneStart,
			Notes:     span.Event.Notes,
		})
		for _, c := range span.Containers {
			rows = append(rows, containerRow(c))
		}
	}

	for _, c := range layout.Overflow {
		rows = append(rows, containerRow(c))
	}

	return rows
}

func containerRow(c itinerary.Container) ItineraryRow {
	return ItineraryRow{
		EventType: c.Event.EventType,
		Title:     c.Event.Title,
		Location:  c.Event.Location,
		Notes:     c.Event.Notes,
	}
}

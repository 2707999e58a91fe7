package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ItineraryExporter renders flattened itinerary rows into a downloadable
// document. Returns (bytes, filename, mime type).
type ItineraryExporter interface {
	Export(format string, rows []ItineraryRow) ([]byte, string, string, error)
}

type itineraryExporter struct{}

func NewItineraryExporter() ItineraryExporter {
	return &itineraryExporter{}
}

var itineraryHeaders = []string{"Day", "Time", "Type", "Title", "Location", "Timezone", "Notes"}

func (r ItineraryRow) values() []string {
	return []string{r.Day, r.Time, r.EventType, r.Title, r.Location, r.Zone, r.Notes}
}

func (e *itineraryExporter) Export(format string, rows []ItineraryRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.exportCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("itinerary_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("itinerary_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("itinerary_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func (e *itineraryExporter) exportCSV(rows []ItineraryRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(itineraryHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := writer.Write(row.values()); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *itineraryExporter) exportExcel(rows []ItineraryRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Itinerary"
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range itineraryHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, row := range rows {
		for j, v := range row.values() {
			cell := fmt.Sprintf("%c%d", 'A'+j, i+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *itineraryExporter) exportPDF(rows []ItineraryRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Trip Itinerary")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{35, 25, 22, 50, 60, 35, 50}
	for i, h := range itineraryHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		for i, v := range row.values() {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

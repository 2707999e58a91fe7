package reports

import (
	"context"
	"fmt"

	"github.com/wayfarer-app/wayfarer-backend/internal/auditlog"
	"github.com/wayfarer-app/wayfarer-backend/internal/itinerary"
)

// Service coordinates layout assembly and export rendering.
type Service interface {
	ExportItinerary(ctx context.Context, tripID, userID uint, format, ip string) ([]byte, string, string, error)
}

type service struct {
	itineraries *itinerary.Service
	exporter    ItineraryExporter
	auditSvc    auditlog.Service
}

func NewService(itineraries *itinerary.Service, exporter ItineraryExporter, auditSvc auditlog.Service) Service {
	return &service{
		itineraries: itineraries,
		exporter:    exporter,
		auditSvc:    auditSvc,
	}
}

func (s *service) ExportItinerary(ctx context.Context, tripID, userID uint, format, ip string) ([]byte, string, string, error) {
	layout, err := s.itineraries.BuildForUser(tripID, userID)
	if err != nil {
		s.auditSvc.LogAction(ctx, &userID, &tripID, "ITINERARY_EXPORT_FAILED",
			map[string]interface{}{"format": format, "error": err.Error()}, ip, "failure")
		return nil, "", "", err
	}

	data, filename, mimeType, err := s.exporter.Export(format, BuildRows(layout))
	if err != nil {
		s.auditSvc.LogAction(ctx, &userID, &tripID, "ITINERARY_EXPORT_FAILED",
			map[string]interface{}{"format": format, "error": err.Error()}, ip, "failure")
		return nil, "", "", fmt.Errorf("export failed: %w", err)
	}

	s.auditSvc.LogAction(ctx, &userID, &tripID, "ITINERARY_EXPORTED",
		map[string]interface{}{"format": format, "filename": filename}, ip, "success")
	return data, filename, mimeType, nil
}

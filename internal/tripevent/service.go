package tripevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/wayfarer-app/wayfarer-backend/internal/auditlog"
	"github.com/wayfarer-app/wayfarer-backend/internal/timezone"
	"github.com/wayfarer-app/wayfarer-backend/middleware"
)

// ZoneLookup resolves an IANA zone for a coordinate pair. Implemented by
// the geozone client; any failure means "zone unknown" upstream.
type ZoneLookup interface {
	Lookup(ctx context.Context, lat, lng float64) (string, error)
}

// TripAccess validates the caller's relationship with a trip. Implemented
// by the trip service.
type TripAccess interface {
	EnsureCanEdit(tripID, userID uint) error
	EnsureCanView(tripID, userID uint) error
}

// Service wraps business logic for itinerary events
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	Trips    TripAccess
	Zones    ZoneLookup // optional
}

func NewService(r *Repository, auditSvc auditlog.Service, trips TripAccess, zones ZoneLookup) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
		Trips:    trips,
		Zones:    zones,
	}
}

var validTypes = map[string]bool{
	TypeTravel: true, TypeHotel: true, TypeRestaurant: true,
	TypeActivity: true, TypeShopping: true, TypeBars: true,
}

var validSubTypes = map[string]bool{
	SubTypeFlight: true, SubTypeTrain: true, SubTypeFerry: true, SubTypeDrive: true,
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, accessContext middleware.AccessContext, tripID uint, ip string) (*EventResponse, error) {
	tripIDPtr := &tripID

	if err := s.Trips.EnsureCanEdit(tripID, accessContext.UserID); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, tripIDPtr, "EVENT_CREATED",
			map[string]interface{}{"title": req.Title, "error": "access denied"}, ip, "failure")
		return nil, err
	}

	event, err := s.buildEvent(req.Title, req.EventType, req.SubType, req.Location, req.Notes,
		req.StartLocal, req.EndLocal, req.ZoneStart, req.ZoneEnd, req.Lat, req.Lng, req.Stores, req.Venues)
	if err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, tripIDPtr, "EVENT_CREATED",
			map[string]interface{}{"title": req.Title, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	event.TripID = tripID
	event.CreatedBy = accessContext.UserID

	if err := s.Repo.CreateEvent(event); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, tripIDPtr, "EVENT_CREATED",
			map[string]interface{}{"title": req.Title, "error": err.Error()}, ip, "failure")
		return nil, errors.New("failed to create event")
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, tripIDPtr, "EVENT_CREATED",
		map[string]interface{}{"title": event.Title, "event_type": event.EventType, "event_id": event.ID}, ip, "success")

	resp := ToResponse(event)
	return &resp, nil
}

// ===========================
// 🛠 Update Event
func (s *Service) UpdateEvent(req *UpdateEventRequest, accessContext middleware.AccessContext, tripID uint, ip string) (*EventResponse, error) {
	tripIDPtr := &tripID

	if err := s.Trips.EnsureCanEdit(tripID, accessContext.UserID); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetEventByID(req.ID, tripID)
	if err != nil {
		return nil, errors.New("event not found")
	}

	rebuilt, err := s.buildEvent(req.Title, req.EventType, req.SubType, req.Location, req.Notes,
		req.StartLocal, req.EndLocal, req.ZoneStart, req.ZoneEnd, req.Lat, req.Lng, req.Stores, req.Venues)
	if err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, tripIDPtr, "EVENT_UPDATED",
			map[string]interface{}{"event_id": req.ID, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	existing.Title = rebuilt.Title
	existing.EventType = rebuilt.EventType
	existing.SubType = rebuilt.SubType
	existing.Location = rebuilt.Location
	existing.Notes = rebuilt.Notes
	existing.StartDatetime = rebuilt.StartDatetime
	existing.EndDatetime = rebuilt.EndDatetime
	existing.Timezone = rebuilt.Timezone
	existing.Stores = rebuilt.Stores
	existing.Venues = rebuilt.Venues

	if err := s.Repo.UpdateEvent(existing); err != nil {
		return nil, errors.New("failed to update event")
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, tripIDPtr, "EVENT_UPDATED",
		map[string]interface{}{"event_id": existing.ID, "title": existing.Title}, ip, "success")

	resp := ToResponse(existing)
	return &resp, nil
}

// ===========================
// ❌ Delete Event
func (s *Service) DeleteEvent(eventID uint, accessContext middleware.AccessContext, tripID uint, ip string) error {
	if err := s.Trips.EnsureCanEdit(tripID, accessContext.UserID); err != nil {
		return err
	}

	if _, err := s.Repo.GetEventByID(eventID, tripID); err != nil {
		return errors.New("event not found")
	}

	if err := s.Repo.DeleteEvent(eventID, tripID); err != nil {
		return errors.New("failed to delete event")
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &tripID, "EVENT_DELETED",
		map[string]interface{}{"event_id": eventID}, ip, "success")
	return nil
}

// ===========================
// 🔍 Reads
func (s *Service) GetEvent(eventID, tripID, userID uint) (*EventResponse, error) {
	if err := s.Trips.EnsureCanView(tripID, userID); err != nil {
		return nil, err
	}
	e, err := s.Repo.GetEventByID(eventID, tripID)
	if err != nil {
		return nil, errors.New("event not found")
	}
	resp := ToResponse(e)
	return &resp, nil
}

func (s *Service) ListEvents(tripID, userID uint, limit, offset int, search string) ([]EventResponse, error) {
	if err := s.Trips.EnsureCanView(tripID, userID); err != nil {
		return nil, err
	}
	events, err := s.Repo.ListEventsByTripPaged(tripID, limit, offset, search)
	if err != nil {
		return nil, err
	}
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, ToResponse(&events[i]))
	}
	return responses, nil
}

// ===========================
// 🏗 Build a persisted Event from request fields
func (s *Service) buildEvent(title, eventType, subType, location, notes,
	startLocal, endLocal, zoneStart, zoneEnd string,
	lat, lng *float64, stores, venues []Place) (*Event, error) {

	if !validTypes[eventType] {
		return nil, fmt.Errorf("invalid event_type %q", eventType)
	}
	if eventType == TypeTravel {
		if !validSubTypes[subType] {
			return nil, fmt.Errorf("invalid sub_type %q for travel event", subType)
		}
	} else {
		subType = ""
		// A split departure/arrival zone only makes sense in transit
		zoneEnd = ""
	}

	event := &Event{
		Title:     title,
		EventType: eventType,
		SubType:   subType,
		Location:  location,
		Notes:     notes,
	}

	// Dateless containers: the stored instants are creation sentinels and
	// carry no scheduling meaning.
	if eventType == TypeShopping || eventType == TypeBars {
		now := time.Now().UTC().Truncate(time.Minute)
		event.StartDatetime = now
		end := now
		event.EndDatetime = &end

		var err error
		if event.Stores, err = marshalPlaces(stores); err != nil {
			return nil, err
		}
		if event.Venues, err = marshalPlaces(venues); err != nil {
			return nil, err
		}
		return event, nil
	}

	if startLocal == "" {
		return nil, errors.New("start_local is required")
	}

	// No zone from the client: try the coordinate lookup, absorb any
	// failure as "zone unknown" and fall back to UTC semantics.
	if zoneStart == "" && lat != nil && lng != nil && s.Zones != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if zone, err := s.Zones.Lookup(ctx, *lat, *lng); err == nil {
			zoneStart = zone
		}
		cancel()
	}
	// A lone arrival zone governs both ends. Without this, end_local
	// would be parsed in a zone that never gets persisted and hydrate
	// back as UTC.
	if zoneStart == "" {
		zoneStart = zoneEnd
	}
	if zoneEnd == "" {
		zoneEnd = zoneStart
	}

	startWall, err := timezone.ParseWallClock(startLocal)
	if err != nil {
		return nil, err
	}
	event.StartDatetime = timezone.ToUTC(startWall, zoneStart)

	if endLocal != "" {
		endWall, err := timezone.ParseWallClock(endLocal)
		if err != nil {
			return nil, err
		}
		end := timezone.ToUTC(endWall, zoneEnd)
		if end.Before(event.StartDatetime) {
			return nil, errors.New("event cannot end before it starts")
		}
		event.EndDatetime = &end
	}

	if zoneStart != "" {
		spec := timezone.EncodeZones(zoneStart, zoneEnd)
		event.Timezone = &spec
	}

	return event, nil
}

func marshalPlaces(places []Place) (datatypes.JSON, error) {
	if len(places) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(places)
	if err != nil {
		return nil, errors.New("invalid places payload")
	}
	return datatypes.JSON(raw), nil
}

package itinerary

import (
	"errors"

	"github.com/wayfarer-app/wayfarer-backend/internal/tripevent"
)

// TripAccess validates view access; ShareResolver maps a guest share
// token to its trip. Both are implemented by the trip service.
type TripAccess interface {
	EnsureCanView(tripID, userID uint) error
}

type ShareResolver interface {
	ResolveShareTripID(token string) (uint, error)
}

// Service assembles itinerary layouts from stored events. The layout
// itself is pure; this layer only adds data access and authorization.
type Service struct {
	Events *tripevent.Repository
	Trips  TripAccess
	Shares ShareResolver
}

func NewService(events *tripevent.Repository, trips TripAccess, shares ShareResolver) *Service {
	return &Service{Events: events, Trips: trips, Shares: shares}
}

// BuildForUser returns the layout for an authenticated owner.
func (s *Service) BuildForUser(tripID, userID uint) (*Layout, error) {
	if err := s.Trips.EnsureCanView(tripID, userID); err != nil {
		return nil, err
	}
	return s.build(tripID)
}

// BuildForShareToken returns the layout for a guest share link.
func (s *Service) BuildForShareToken(token string) (*Layout, error) {
	tripID, err := s.Shares.ResolveShareTripID(token)
	if err != nil {
		return nil, err
	}
	return s.build(tripID)
}

func (s *Service) build(tripID uint) (*Layout, error) {
	events, err := s.Events.ListEventsByTrip(tripID)
	if err != nil {
		return nil, errors.New("failed to load trip events")
	}
	layout := BuildLayout(events)
	return &layout, nil
}

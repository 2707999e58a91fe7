package trip

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer-backend/internal/auditlog"
	"github.com/wayfarer-app/wayfarer-backend/internal/notification"
	"github.com/wayfarer-app/wayfarer-backend/middleware"
)

// Service wraps business logic for trips and sharing
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	NotifSvc notification.Service
}

func NewService(r *Repository, auditSvc auditlog.Service, notifSvc notification.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
		NotifSvc: notifSvc,
	}
}

// ===========================
// 🔐 Access checks (used here and by the event/itinerary modules)
func (s *Service) EnsureCanEdit(tripID, userID uint) error {
	t, err := s.Repo.GetTripByID(tripID)
	if err != nil {
		return errors.New("trip not found")
	}
	if t.OwnerID != userID {
		return errors.New("write access denied")
	}
	return nil
}

func (s *Service) EnsureCanView(tripID, userID uint) error {
	t, err := s.Repo.GetTripByID(tripID)
	if err != nil {
		return errors.New("trip not found")
	}
	if t.OwnerID != userID {
		return errors.New("access denied")
	}
	return nil
}

// ===========================
// 🎯 Create Trip
func (s *Service) CreateTrip(req *CreateTripRequest, accessContext middleware.AccessContext, ip string) (*Trip, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	t := &Trip{
		OwnerID:     accessContext.UserID,
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Notes:       req.Notes,
	}

	if err := s.Repo.CreateTrip(t); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "TRIP_CREATED",
			map[string]interface{}{"title": req.Title, "error": err.Error()}, ip, "failure")
		return nil, errors.New("failed to create trip")
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &t.ID, "TRIP_CREATED",
		map[string]interface{}{"title": t.Title}, ip, "success")
	return t, nil
}

// ===========================
// 🔍 Reads
func (s *Service) GetTrip(tripID, userID uint) (*Trip, error) {
	if err := s.EnsureCanView(tripID, userID); err != nil {
		return nil, err
	}
	return s.Repo.GetTripByID(tripID)
}

func (s *Service) ListTrips(userID uint, limit, offset int, search string) ([]Trip, error) {
	return s.Repo.ListTripsByOwner(userID, limit, offset, search)
}

// ===========================
// 🛠 Update Trip
func (s *Service) UpdateTrip(req *UpdateTripRequest, accessContext middleware.AccessContext, ip string) (*Trip, error) {
	if err := s.EnsureCanEdit(req.ID, accessContext.UserID); err != nil {
		return nil, err
	}

	t, err := s.Repo.GetTripByID(req.ID)
	if err != nil {
		return nil, errors.New("trip not found")
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	t.Title = req.Title
	t.Destination = req.Destination
	t.StartDate = start
	t.EndDate = end
	t.Notes = req.Notes

	if err := s.Repo.UpdateTrip(t); err != nil {
		return nil, errors.New("failed to update trip")
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &t.ID, "TRIP_UPDATED",
		map[string]interface{}{"title": t.Title}, ip, "success")
	return t, nil
}

// ===========================
// ❌ Delete Trip (cascades to events and tokens)
func (s *Service) DeleteTrip(tripID uint, accessContext middleware.AccessContext, ip string) error {
	if err := s.EnsureCanEdit(tripID, accessContext.UserID); err != nil {
		return err
	}

	if err := s.Repo.DeleteTripCascade(tripID); err != nil {
		return errors.New("failed to delete trip")
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &tripID, "TRIP_DELETED",
		nil, ip, "success")
	return nil
}

// ===========================
// 🔗 Sharing
func (s *Service) ShareTrip(tripID uint, req *ShareTripRequest, accessContext middleware.AccessContext, ip string) (*ShareToken, error) {
	if err := s.EnsureCanEdit(tripID, accessContext.UserID); err != nil {
		return nil, err
	}

	t, err := s.Repo.GetTripByID(tripID)
	if err != nil {
		return nil, errors.New("trip not found")
	}

	token := &ShareToken{
		TripID:    tripID,
		Token:     uuid.NewString(),
		CreatedBy: accessContext.UserID,
	}
	if err := s.Repo.CreateShareToken(token); err != nil {
		return nil, errors.New("failed to create share token")
	}

	if req.Email != "" {
		s.NotifSvc.NotifyTripShared(context.Background(), accessContext.UserID, req.Email, t.Title, token.Token)
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &tripID, "TRIP_SHARED",
		map[string]interface{}{"email": req.Email}, ip, "success")
	return token, nil
}

func (s *Service) RevokeShare(tripID, tokenID uint, accessContext middleware.AccessContext, ip string) error {
	if err := s.EnsureCanEdit(tripID, accessContext.UserID); err != nil {
		return err
	}
	if err := s.Repo.RevokeShareToken(tokenID, tripID); err != nil {
		return errors.New("failed to revoke share token")
	}
	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &tripID, "TRIP_SHARE_REVOKED",
		map[string]interface{}{"token_id": tokenID}, ip, "success")
	return nil
}

func (s *Service) ListShares(tripID, userID uint) ([]ShareToken, error) {
	if err := s.EnsureCanEdit(tripID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListShareTokens(tripID)
}

// ResolveShareToken maps a guest token to its trip, or fails
func (s *Service) ResolveShareToken(token string) (*Trip, error) {
	st, err := s.Repo.FindActiveToken(token)
	if err != nil {
		return nil, errors.New("invalid or revoked share link")
	}
	return s.Repo.GetTripByID(st.TripID)
}

// ResolveShareTripID is the id-only variant used by the itinerary module
func (s *Service) ResolveShareTripID(token string) (uint, error) {
	t, err := s.ResolveShareToken(token)
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

// ===========================
// Helpers
func parseDateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return nil, nil, errors.New("invalid start_date format. Use YYYY-MM-DD")
		}
		start = &t
	}
	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return nil, nil, errors.New("invalid end_date format. Use YYYY-MM-DD")
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, errors.New("trip cannot end before it starts")
	}
	return start, end, nil
}

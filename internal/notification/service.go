package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/wayfarer-app/wayfarer-backend/utils"
	"gorm.io/datatypes"
)

// Service handles share fan-out and the in-app notification feed. The
// share path is fire-and-forget: publishing puts the message on Kafka
// and the consumer does the slow work (SMTP), so the HTTP request that
// triggered it never waits on a mail server.
type Service interface {
	NotifyTripShared(ctx context.Context, ownerID uint, email, tripTitle, shareToken string)
	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id, userID uint) error
	StartConsumer(ctx context.Context)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) NotifyTripShared(ctx context.Context, ownerID uint, email, tripTitle, shareToken string) {
	msg := tripSharedMessage{
		OwnerID:    ownerID,
		Email:      email,
		TripTitle:  tripTitle,
		ShareToken: shareToken,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("❌ Failed to encode share notification: %v", err)
		return
	}
	utils.PublishNotification(fmt.Sprintf("trip_shared:%d", ownerID), payload)
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListInAppByUser(ctx, userID, limit)
}

func (s *service) MarkInAppAsRead(ctx context.Context, id, userID uint) error {
	return s.repo.MarkInAppAsRead(ctx, id, userID)
}

// StartConsumer drains the notifications topic until ctx is done. Run it
// in its own goroutine from main. A nil reader (Kafka not configured)
// makes this a no-op.
func (s *service) StartConsumer(ctx context.Context) {
	reader := utils.NewNotificationReader()
	if reader == nil {
		log.Println("ℹ️ Notification consumer disabled")
		return
	}
	defer reader.Close()

	log.Println("✅ Notification consumer started")
	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("⚠️ Notification read failed: %v", err)
			continue
		}

		var msg tripSharedMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			log.Printf("❌ Bad notification payload: %v", err)
			continue
		}
		s.handleTripShared(ctx, msg)
	}
}

func (s *service) handleTripShared(ctx context.Context, msg tripSharedMessage) {
	recipients, _ := json.Marshal([]string{msg.Email})
	entry := &NotificationLog{
		UserID:     msg.OwnerID,
		Channel:    "email",
		Subject:    fmt.Sprintf("You've been invited to %s", msg.TripTitle),
		Body:       fmt.Sprintf("Trip %q was shared with you.", msg.TripTitle),
		Recipients: datatypes.JSON(recipients),
		Status:     "pending",
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		log.Printf("❌ Failed to record notification: %v", err)
	}

	status := "sent"
	var sendErr *string
	if err := utils.SendTripInvite(msg.Email, msg.TripTitle, msg.ShareToken); err != nil {
		log.Printf("❌ Share invite email failed: %v", err)
		status = "failed"
		e := err.Error()
		sendErr = &e
	}
	if entry.ID != 0 {
		if err := s.repo.UpdateLogStatus(ctx, entry.ID, status, sendErr); err != nil {
			log.Printf("⚠️ Failed to update notification status: %v", err)
		}
	}

	inApp := &InAppNotification{
		UserID:   msg.OwnerID,
		Title:    "Trip shared",
		Message:  fmt.Sprintf("%q was shared with %s", msg.TripTitle, msg.Email),
		Category: "trip_shared",
	}
	if err := s.repo.CreateInApp(ctx, inApp); err != nil {
		log.Printf("⚠️ Failed to create in-app notification: %v", err)
	}
}

package notification

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationLog records each outbound message, whatever the channel.
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"` // sender
	TripID     *uint          `gorm:"index" json:"trip_id,omitempty"`
	Channel    string         `gorm:"size:20;not null" json:"channel"` // email, in_app
	Subject    string         `gorm:"size:255" json:"subject,omitempty"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"`
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// InAppNotification is a per-user bell notification.
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TripID    *uint     `gorm:"index" json:"trip_id,omitempty"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"` // trip_shared, system
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// tripSharedMessage is the Kafka payload for a share fan-out.
type tripSharedMessage struct {
	OwnerID    uint   `json:"owner_id"`
	Email      string `json:"email"`
	TripTitle  string `json:"trip_title"`
	ShareToken string `json:"share_token"`
}

package trip

import (
	"time"
)

// ============================
// 🔷 GORM Trip Model
type Trip struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Destination string     `gorm:"type:varchar(255)" json:"destination"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// ShareToken grants read-only access to a trip's itinerary without an
// account. Tokens are opaque uuids; revocation is a soft delete.
type ShareToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TripID    uint       `gorm:"not null;index" json:"trip_id"`
	Token     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	CreatedBy uint       `gorm:"not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// ============================
// 🟡 Requests
type CreateTripRequest struct {
	Title       string `json:"title" binding:"required"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date,omitempty"` // "2006-01-02"
	EndDate     string `json:"end_date,omitempty"`
	Notes       string `json:"notes"`
}

type UpdateTripRequest struct {
	ID          uint   `json:"-"`
	Title       string `json:"title" binding:"required"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Notes       string `json:"notes"`
}

type ShareTripRequest struct {
	Email string `json:"email" binding:"omitempty,email"` // optional invite email
}

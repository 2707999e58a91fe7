package tripevent

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/wayfarer-app/wayfarer-backend/internal/timezone"
)

// Event types
const (
	TypeTravel     = "travel"
	TypeHotel      = "hotel"
	TypeRestaurant = "restaurant"
	TypeActivity   = "activity"
	TypeShopping   = "shopping"
	TypeBars       = "bars"
)

// Travel sub-types
const (
	SubTypeFlight = "flight"
	SubTypeTrain  = "train"
	SubTypeFerry  = "ferry"
	SubTypeDrive  = "drive"
)

// LocationArrow joins origin and destination in a travel event's location
// ("JFK → LAX").
const LocationArrow = " → "

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TripID        uint       `gorm:"not null;index" json:"trip_id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	EventType     string     `gorm:"type:varchar(30);not null;index" json:"event_type"`
	SubType       string     `gorm:"type:varchar(30)" json:"sub_type,omitempty"`
	StartDatetime time.Time  `gorm:"not null;index" json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	Timezone      *string    `gorm:"type:varchar(140)" json:"timezone,omitempty"` // IANA id, or two joined by "|||"
	Location      string     `gorm:"type:text" json:"location"`
	Notes         string     `gorm:"type:text" json:"notes"`
	Stores        datatypes.JSON `gorm:"type:jsonb" json:"stores,omitempty"` // shopping children
	Venues        datatypes.JSON `gorm:"type:jsonb" json:"venues,omitempty"` // bars children
	CreatedBy     uint       `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string { return "trip_events" }

// Place is a store or venue attached to a shopping/bars container.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Scheduled reports whether the event's instants carry real scheduling
// meaning. Shopping and bars events are dateless aggregation containers;
// their stored timestamps are creation-time sentinels, and nothing may
// treat them as dates.
func (e *Event) Scheduled() bool {
	return e.EventType != TypeShopping && e.EventType != TypeBars
}

// Zones decodes the stored zone spec into (departure, arrival). Both are
// empty when no zone is known; non-travel events always get an equal pair.
func (e *Event) Zones() (start, end string) {
	if e.Timezone == nil {
		return "", ""
	}
	return timezone.DecodeZones(*e.Timezone)
}

// Children returns the container's places: stores for shopping, venues
// for bars, nil for everything else. Malformed JSON degrades to nil.
func (e *Event) Children() []Place {
	var raw datatypes.JSON
	switch e.EventType {
	case TypeShopping:
		raw = e.Stores
	case TypeBars:
		raw = e.Venues
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var places []Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil
	}
	return places
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title     string  `json:"title" binding:"required"`
	EventType string  `json:"event_type" binding:"required"`
	SubType   string  `json:"sub_type,omitempty"`
	Location  string  `json:"location"`
	Notes     string  `json:"notes"`
	StartLocal string `json:"start_local,omitempty"` // 🛠 "2006-01-02 15:04" wall clock in ZoneStart
	EndLocal   string `json:"end_local,omitempty"`   // 🛠 wall clock in ZoneEnd (or ZoneStart)
	ZoneStart  string `json:"zone_start,omitempty"`
	ZoneEnd    string `json:"zone_end,omitempty"` // travel events only
	Lat        *float64 `json:"lat,omitempty"` // used to look up a zone when zone_start is absent
	Lng        *float64 `json:"lng,omitempty"`
	Stores     []Place  `json:"stores,omitempty"`
	Venues     []Place  `json:"venues,omitempty"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	ID         uint     `json:"-"`
	Title      string   `json:"title" binding:"required"`
	EventType  string   `json:"event_type" binding:"required"`
	SubType    string   `json:"sub_type,omitempty"`
	Location   string   `json:"location"`
	Notes      string   `json:"notes"`
	StartLocal string   `json:"start_local,omitempty"`
	EndLocal   string   `json:"end_local,omitempty"`
	ZoneStart  string   `json:"zone_start,omitempty"`
	ZoneEnd    string   `json:"zone_end,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	Stores     []Place  `json:"stores,omitempty"`
	Venues     []Place  `json:"venues,omitempty"`
}

// ============================
// 🟢 Event Response — instants rehydrated into wall clocks for editing
type EventResponse struct {
	ID           uint    `json:"id"`
	TripID       uint    `json:"trip_id"`
	Title        string  `json:"title"`
	EventType    string  `json:"event_type"`
	SubType      string  `json:"sub_type,omitempty"`
	StartUTC     string  `json:"start_utc"`
	EndUTC       string  `json:"end_utc,omitempty"`
	StartLocal   string  `json:"start_local,omitempty"`
	EndLocal     string  `json:"end_local,omitempty"`
	StartDisplay string  `json:"start_display,omitempty"` // "h:mm AM/PM ZZZ"
	EndDisplay   string  `json:"end_display,omitempty"`
	ZoneStart    string  `json:"zone_start,omitempty"`
	ZoneEnd      string  `json:"zone_end,omitempty"`
	Location     string  `json:"location"`
	Notes        string  `json:"notes"`
	Scheduled    bool    `json:"scheduled"`
	Children     []Place `json:"children,omitempty"`
}

// ToResponse converts a stored event into its API shape.
func ToResponse(e *Event) EventResponse {
	zoneStart, zoneEnd := e.Zones()

	resp := EventResponse{
		ID:        e.ID,
		TripID:    e.TripID,
		Title:     e.Title,
		EventType: e.EventType,
		SubType:   e.SubType,
		Location:  e.Location,
		Notes:     e.Notes,
		ZoneStart: zoneStart,
		ZoneEnd:   zoneEnd,
		Scheduled: e.Scheduled(),
		Children:  e.Children(),
	}

	if !e.Scheduled() {
		return resp
	}

	resp.StartUTC = e.StartDatetime.UTC().Format(time.RFC3339)
	resp.StartLocal = timezone.FromUTC(e.StartDatetime, zoneStart).String()
	resp.StartDisplay = timezone.FormatDisplay(e.StartDatetime, zoneStart)

	if e.EndDatetime != nil {
		resp.EndUTC = e.EndDatetime.UTC().Format(time.RFC3339)
		resp.EndLocal = timezone.FromUTC(*e.EndDatetime, zoneEnd).String()
		resp.EndDisplay = timezone.FormatDisplay(*e.EndDatetime, zoneEnd)
	}
	return resp
}

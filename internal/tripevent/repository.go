package tripevent

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with trip validation
func (r *Repository) GetEventByID(id uint, tripID uint) (*Event, error) {
	var e Event
	err := r.DB.Where("id = ? AND trip_id = ?", id, tripID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 List Events for a trip, itinerary order
func (r *Repository) ListEventsByTrip(tripID uint) ([]Event, error) {
	var events []Event
	err := r.DB.
		Where("trip_id = ?", tripID).
		Order("start_datetime ASC, id ASC").
		Find(&events).Error
	return events, err
}

// ===========================
// 📄 List Events With Pagination & Search
func (r *Repository) ListEventsByTripPaged(tripID uint, limit, offset int, search string) ([]Event, error) {
	var events []Event

	query := r.DB.Where("trip_id = ?", tripID)

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("title ILIKE ? OR location ILIKE ?", ilike, ilike)
	}

	err := query.
		Order("start_datetime ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error

	return events, err
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Event
func (r *Repository) DeleteEvent(id uint, tripID uint) error {
	return r.DB.
		Where("id = ? AND trip_id = ?", id, tripID).
		Delete(&Event{}).Error
}

// ===========================
// 🔢 Count Events by Trip
func (r *Repository) CountEventsByTrip(tripID uint) (int, error) {
	var count int64
	err := r.DB.Model(&Event{}).
		Where("trip_id = ?", tripID).
		Count(&count).Error
	return int(count), err
}

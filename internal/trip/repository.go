package trip

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Trip
func (r *Repository) CreateTrip(t *Trip) error {
	return r.DB.Create(t).Error
}

// ===========================
// 🔍 Get Trip By ID
func (r *Repository) GetTripByID(id uint) (*Trip, error) {
	var t Trip
	err := r.DB.First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ===========================
// 📄 List Trips for an owner with pagination & search
func (r *Repository) ListTripsByOwner(ownerID uint, limit, offset int, search string) ([]Trip, error) {
	var trips []Trip

	query := r.DB.Where("owner_id = ?", ownerID)

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("title ILIKE ? OR destination ILIKE ?", ilike, ilike)
	}

	err := query.
		Order("start_date ASC NULLS LAST, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&trips).Error

	return trips, err
}

// ===========================
// 🛠 Update Trip
func (r *Repository) UpdateTrip(t *Trip) error {
	return r.DB.Save(t).Error
}

// ===========================
// ❌ Delete Trip and everything hanging off it
func (r *Repository) DeleteTripCascade(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		// Events (and their jsonb children) go with the trip
		if err := tx.Exec("DELETE FROM trip_events WHERE trip_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", id).Delete(&ShareToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Trip{}, id).Error
	})
}

// ===========================
// 🔑 Share tokens
func (r *Repository) CreateShareToken(t *ShareToken) error {
	return r.DB.Create(t).Error
}

func (r *Repository) ListShareTokens(tripID uint) ([]ShareToken, error) {
	var tokens []ShareToken
	err := r.DB.Where("trip_id = ? AND revoked_at IS NULL", tripID).Find(&tokens).Error
	return tokens, err
}

func (r *Repository) RevokeShareToken(tokenID, tripID uint) error {
	now := time.Now()
	return r.DB.Model(&ShareToken{}).
		Where("id = ? AND trip_id = ? AND revoked_at IS NULL", tokenID, tripID).
		Update("revoked_at", now).Error
}

// FindActiveToken resolves a share token string to its trip
func (r *Repository) FindActiveToken(token string) (*ShareToken, error) {
	var t ShareToken
	err := r.DB.Where("token = ? AND revoked_at IS NULL", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pairup-app/pairup/internal/db"
)

// ContactRepository provides read access to private contact rows.
// Contact values never leave this layer except through the disclosure
// gate in the connections service.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(database *gorm.DB) *ContactRepository {
	return &ContactRepository{db: database}
}

// Get returns the contact row for a user, or (nil, nil) when the user
// has no row. Absence is not an opt-out; callers treat a missing row as
// "sharing enabled" for the viewer-side kill switch.
func (r *ContactRepository) Get(ctx context.Context, userID uint64) (*db.Contact, error) {
	var contact db.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetMany returns contact rows for the given user ids, keyed by user id.
// Users without a row are absent from the map.
func (r *ContactRepository) GetMany(ctx context.Context, userIDs []uint64) (map[uint64]db.Contact, error) {
	result := make(map[uint64]db.Contact, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var contacts []db.Contact
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		result[c.UserID] = c
	}
	return result, nil
}

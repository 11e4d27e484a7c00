package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pairup-app/pairup/internal/db"
	"github.com/pairup-app/pairup/internal/pair"
)

// MatchRepository provides data access for match rows, always keyed by
// the canonical (low, high) pair. Reconciliation, disclosure, moderation
// and admin paths all share this one implementation; none of them compute
// pair ordering themselves.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// Create upserts the match row for the pair (a, b) and reports whether a
// new row was inserted.
//
// The OnConflict DoNothing clause plus RowsAffected is the atomic
// "insert, tell me if it inserted" primitive: under concurrent mutual
// likes exactly one caller observes created == true, and a replay against
// an existing match observes created == false. Never read-then-write here.
func (r *MatchRepository) Create(ctx context.Context, a, b uint64) (created bool, err error) {
	low, high := pair.Canonical(a, b)
	match := db.Match{LowID: low, HighID: high}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&match)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether a match row exists for the pair (a, b).
// Disclosure re-checks this on every request; the result is never cached.
func (r *MatchRepository) Exists(ctx context.Context, a, b uint64) (bool, error) {
	low, high := pair.Canonical(a, b)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("low_id = ? AND high_id = ?", low, high).
		Count(&count).Error
	return count > 0, err
}

// Delete removes the match row for the pair (a, b) if present and reports
// whether a row was deleted. Deleting a nonexistent match is a no-op.
// Swipe rows are left untouched; the pair stays excluded from each
// other's candidate feed.
func (r *MatchRepository) Delete(ctx context.Context, a, b uint64) (deleted bool, err error) {
	low, high := pair.Canonical(a, b)
	res := r.db.WithContext(ctx).
		Where("low_id = ? AND high_id = ?", low, high).
		Delete(&db.Match{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListForUser returns all matches the given user is part of, newest first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("low_id = ? OR high_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pairup-app/pairup/internal/db"
)

// ProfileRepository provides data access for profiles, including the
// candidate feed query.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// Candidates returns profiles eligible to be shown to the viewer.
//
// Eligibility:
//   - not the viewer themselves
//   - visible = true (which implies complete, enforced on write)
//   - photo present and non-empty
//   - no prior swipe viewer -> candidate, in either direction of decision
//     (like or pass). The exclusion is an anti-join against the swipe
//     ledger, recomputed per request — never a materialized set.
//
// Ordered by most recently updated first, capped at limit. An empty
// result is a valid "no more candidates" state; errors are returned as
// errors so the caller can tell the two apart.
func (r *ProfileRepository) Candidates(
	ctx context.Context,
	viewerID uint64,
	limit int,
) ([]db.Profile, error) {
	var profiles []db.Profile
	err := r.db.WithContext(ctx).
		Table("profiles p").
		Where("p.user_id <> ?", viewerID).
		Where("p.visible = ?", true).
		Where("p.photo_url <> ''").
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s
				WHERE s.actor_id = ?
				  AND s.target_id = p.user_id
			)`, viewerID).
		Order("p.updated_at DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Get returns the profile for a user, or gorm.ErrRecordNotFound.
func (r *ProfileRepository) Get(ctx context.Context, userID uint64) (*db.Profile, error) {
	var profile db.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetMany returns profiles for the given user ids, keyed by user id.
// Missing profiles are simply absent from the map.
func (r *ProfileRepository) GetMany(ctx context.Context, userIDs []uint64) (map[uint64]db.Profile, error) {
	result := make(map[uint64]db.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var profiles []db.Profile
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.UserID] = p
	}
	return result, nil
}

// Save upserts a profile, recomputing the complete flag from required
// fields and forcing visible off whenever completeness is lost. Visible
// can only be true when the profile is complete.
func (r *ProfileRepository) Save(ctx context.Context, profile *db.Profile) error {
	profile.Complete = isComplete(profile)
	if !profile.Complete {
		profile.Visible = false
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"display_name", "expertise", "skills", "photo_url",
				"complete", "visible", "updated_at",
			}),
		}).
		Create(profile).Error
}

// isComplete is the single definition of profile completeness.
func isComplete(p *db.Profile) bool {
	return strings.TrimSpace(p.DisplayName) != "" &&
		strings.TrimSpace(p.Expertise) != "" &&
		strings.TrimSpace(p.PhotoURL) != ""
}

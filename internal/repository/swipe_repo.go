package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pairup-app/pairup/internal/db"
	"github.com/pairup-app/pairup/internal/utils/pagination"
)

// SwipeRepository provides data access for the swipe ledger.
// It encapsulates all queries over like/pass decisions between users.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// Record inserts or overwrites the decision actor -> target.
//
// Behavior:
//   - If the (actor_id, target_id) pair exists, the row is updated with the
//     new "liked" value (last-write-wins).
//   - If it doesn't exist, a new row is inserted.
//   - Composite PK ensures the overwrite guarantee.
//
// Repeated identical calls are idempotent. This method has no effect on
// match state; reconciliation runs separately after a committed like.
func (r *SwipeRepository) Record(
	ctx context.Context,
	actorID, targetID uint64,
	liked bool,
) error {
	swipe := db.Swipe{
		ActorID:  actorID,
		TargetID: targetID,
		Liked:    liked,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
		}).
		Create(&swipe).Error
}

// HasLiked reports whether actor has a live `like` decision toward target.
// Used for the reciprocity check in reconciliation.
func (r *SwipeRepository) HasLiked(
	ctx context.Context,
	actorID, targetID uint64,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.actor_id = ? AND s.target_id = ? AND s.liked = true", actorID, targetID).
		Count(&count).Error
	return count > 0, err
}

// Admirers returns users who liked the given viewer.
//
// Behavior:
//   - Only swipes where target_id = viewer and liked = true are returned.
//   - Excludes users the viewer explicitly passed (liked = false).
//   - With onlyNew, excludes mutual likes (viewer already liked them back).
//   - Ordered by updated_at DESC, actor_id DESC.
//   - Supports cursor-based pagination via pageToken.
func (r *SwipeRepository) Admirers(
	ctx context.Context,
	viewerID uint64,
	onlyNew bool,
	pageToken *string,
	limit int,
) ([]db.Swipe, *string, error) {
	var swipes []db.Swipe

	cursor, err := pagination.Decode(getString(pageToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.target_id = ? AND s.liked = true", viewerID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s2
				WHERE s2.actor_id = ?
				  AND s2.target_id = s.actor_id
				  AND s2.liked = false
			)`, viewerID).
		Order("s.updated_at DESC, s.actor_id DESC").
		Limit(limit + 1)

	if onlyNew {
		subQuery := r.db.
			Table("swipes").
			Select("1").
			Where("actor_id = s.target_id AND target_id = s.actor_id AND liked = true")
		query = query.Where("NOT EXISTS (?)", subQuery)
	}

	// apply cursor
	if cursor.ActorID > 0 && cursor.UpdatedUnix > 0 {
		ts := time.UnixMilli(cursor.UpdatedUnix)
		query = query.Where(
			"(s.updated_at < ? OR (s.updated_at = ? AND s.actor_id < ?))",
			ts, ts, cursor.ActorID,
		)
	}

	if err := query.Find(&swipes).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(swipes) > limit {
		last := swipes[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			ActorID:     last.ActorID,
			UpdatedUnix: last.UpdatedAt.UnixMilli(),
		})
		nextToken = &token
		swipes = swipes[:limit]
	}

	return swipes, nextToken, nil
}

// CountAdmirers returns how many users liked the given viewer,
// excluding users the viewer explicitly passed. Used in conjunction
// with the Redis counter (DB is fallback).
func (r *SwipeRepository) CountAdmirers(
	ctx context.Context,
	viewerID uint64,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.target_id = ? AND s.liked = true", viewerID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s2
				WHERE s2.actor_id = ?
				  AND s2.target_id = s.actor_id
				  AND s2.liked = false
			)`, viewerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

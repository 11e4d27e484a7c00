package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pairup-app/pairup/internal/db"
	"github.com/pairup-app/pairup/internal/repository"
)

func seedProfile(t *testing.T, dbase *gorm.DB, userID uint64, visible bool, photo string, updatedAt time.Time) {
	t.Helper()
	p := db.Profile{
		UserID:      userID,
		DisplayName: "User",
		Expertise:   "backend",
		PhotoURL:    photo,
		Complete:    photo != "",
		Visible:     visible,
	}
	require.NoError(t, dbase.Create(&p).Error)
	// UpdatedAt is set by gorm on create; force the ordering we need
	require.NoError(t, dbase.Model(&db.Profile{}).
		Where("user_id = ?", userID).
		Update("updated_at", updatedAt).Error)
}

func TestCandidatesFiltering(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	profiles := repository.NewProfileRepository(dbase)
	swipes := repository.NewSwipeRepository(dbase)

	now := time.Now().UTC()
	seedProfile(t, dbase, 1, true, "p1.jpg", now.Add(-4*time.Hour)) // the viewer
	seedProfile(t, dbase, 2, true, "p2.jpg", now.Add(-3*time.Hour))
	seedProfile(t, dbase, 3, true, "p3.jpg", now.Add(-2*time.Hour)) // viewer passed
	seedProfile(t, dbase, 4, true, "p4.jpg", now.Add(-1*time.Hour)) // viewer liked
	seedProfile(t, dbase, 5, false, "p5.jpg", now)                  // hidden
	seedProfile(t, dbase, 6, true, "", now)                         // no photo

	require.NoError(t, swipes.Record(ctx, 1, 3, false))
	require.NoError(t, swipes.Record(ctx, 1, 4, true))

	got, err := profiles.Candidates(ctx, 1, 25)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].UserID)
}

func TestCandidatesOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	profiles := repository.NewProfileRepository(dbase)

	now := time.Now().UTC()
	for i := uint64(2); i <= 6; i++ {
		seedProfile(t, dbase, i, true, "p.jpg", now.Add(time.Duration(i)*time.Minute))
	}

	got, err := profiles.Candidates(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// most recently updated first
	assert.Equal(t, uint64(6), got[0].UserID)
	assert.Equal(t, uint64(5), got[1].UserID)
	assert.Equal(t, uint64(4), got[2].UserID)
}

func TestCandidatesNewViewerExcludesOnlySelf(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	profiles := repository.NewProfileRepository(dbase)

	now := time.Now().UTC()
	seedProfile(t, dbase, 1, true, "p1.jpg", now)
	seedProfile(t, dbase, 2, true, "p2.jpg", now)

	// viewer 1 has no swipes at all
	got, err := profiles.Candidates(ctx, 1, 25)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].UserID)
}

func TestSaveRecomputesCompleteness(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	profiles := repository.NewProfileRepository(dbase)

	p := &db.Profile{
		UserID:      1,
		DisplayName: "Alice",
		Expertise:   "data",
		PhotoURL:    "alice.jpg",
		Visible:     true,
	}
	require.NoError(t, profiles.Save(ctx, p))
	assert.True(t, p.Complete)
	assert.True(t, p.Visible)

	// removing the photo loses completeness and forces visible off
	p.PhotoURL = ""
	require.NoError(t, profiles.Save(ctx, p))
	assert.False(t, p.Complete)
	assert.False(t, p.Visible)

	stored, err := profiles.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, stored.Visible)
	assert.False(t, stored.Complete)
}

func TestSaveNeverVisibleWhileIncomplete(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	profiles := repository.NewProfileRepository(dbase)

	// owner asks for visibility but the profile is missing fields
	p := &db.Profile{UserID: 2, DisplayName: "Bob", Visible: true}
	require.NoError(t, profiles.Save(ctx, p))

	stored, err := profiles.Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, stored.Complete)
	assert.False(t, stored.Visible)
}

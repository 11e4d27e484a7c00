package connections_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pairup-app/pairup/internal/app"
	"github.com/pairup-app/pairup/internal/cache"
	"github.com/pairup-app/pairup/internal/config"
	"github.com/pairup-app/pairup/internal/db"
	"github.com/pairup-app/pairup/internal/repository"
	"github.com/pairup-app/pairup/internal/service/connections"
)

func setupAppCtx(t *testing.T) *app.AppContext {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return app.New(cfg, dbase, redisCache, logger)
}

func seedContact(t *testing.T, appCtx *app.AppContext, userID uint64, phone string, share bool) {
	t.Helper()
	require.NoError(t, appCtx.DB.Create(&db.Contact{UserID: userID, Phone: phone, Share: share}).Error)
}

func seedMatch(t *testing.T, appCtx *app.AppContext, a, b uint64) {
	t.Helper()
	_, err := repository.NewMatchRepository(appCtx.DB).Create(context.Background(), a, b)
	require.NoError(t, err)
}

// TestResolveContactsEligibility walks the disclosure conditions one by
// one: match + counterpart share + non-empty value all required.
func TestResolveContactsEligibility(t *testing.T) {
	appCtx := setupAppCtx(t)
	svc := connections.NewService(appCtx)
	ctx := context.Background()

	seedContact(t, appCtx, 1, "+441000000001", true)  // viewer
	seedContact(t, appCtx, 2, "+441000000002", true)  // matched, sharing
	seedContact(t, appCtx, 3, "+441000000003", false) // matched, opted out
	seedContact(t, appCtx, 4, "", true)               // matched, empty value
	seedContact(t, appCtx, 5, "+441000000005", true)  // sharing, but no match

	seedMatch(t, appCtx, 1, 2)
	seedMatch(t, appCtx, 1, 3)
	seedMatch(t, appCtx, 1, 4)

	resp, err := svc.ResolveContacts(ctx, &connections.ResolveContactsRequest{
		ViewerID:       1,
		CounterpartIDs: []uint64{2, 3, 4, 5},
	})
	require.NoError(t, err)

	// only counterpart 2 passes every condition
	require.Len(t, resp.Contacts, 1)
	assert.Equal(t, "+441000000002", resp.Contacts["2"])
}

// TestResolveContactsViewerOptOut: an explicit Share=false on the viewer
// is a global kill switch, regardless of the counterparts' eligibility.
func TestResolveContactsViewerOptOut(t *testing.T) {
	appCtx := setupAppCtx(t)
	svc := connections.NewService(appCtx)

	seedContact(t, appCtx, 1, "+441000000001", false)
	seedContact(t, appCtx, 2, "+441000000002", true)
	seedMatch(t, appCtx, 1, 2)

	resp, err := svc.ResolveContacts(context.Background(), &connections.ResolveContactsRequest{
		ViewerID:       1,
		CounterpartIDs: []uint64{2},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Contacts)
}

// TestResolveContactsNoViewerRow: absence of a viewer contact row is not
// an opt-out.
func TestResolveContactsNoViewerRow(t *testing.T) {
	appCtx := setupAppCtx(t)
	svc := connections.NewService(appCtx)

	seedContact(t, appCtx, 2, "+441000000002", true)
	seedMatch(t, appCtx, 1, 2)

	resp, err := svc.ResolveContacts(context.Background(), &connections.ResolveContactsRequest{
		ViewerID:       1,
		CounterpartIDs: []uint64{2},
	})
	require.NoError(t, err)
	require.Len(t, resp.Contacts, 1)
	assert.Equal(t, "+441000000002", resp.Contacts["2"])
}

// TestResolveContactsRechecksMatch: disclosure is gated per request; a
// destroyed match stops disclosing immediately.
func TestResolveContactsRechecksMatch(t *testing.T) {
	appCtx := setupAppCtx(t)
	svc := connections.NewService(appCtx)
	ctx := context.Background()

	seedContact(t, appCtx, 2, "+441000000002", true)
	seedMatch(t, appCtx, 1, 2)

	resp, err := svc.ResolveContacts(ctx, &connections.ResolveContactsRequest{
		ViewerID: 1, CounterpartIDs: []uint64{2},
	})
	require.NoError(t, err)
	require.Len(t, resp.Contacts, 1)

	require.NoError(t, svc.Unmatch(ctx, &connections.UnmatchRequest{ViewerID: 1, CounterpartID: 2}))

	resp, err = svc.ResolveContacts(ctx, &connections.ResolveContactsRequest{
		ViewerID: 1, CounterpartIDs: []uint64{2},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Contacts)
}

func TestUnmatchIsIdempotent(t *testing.T) {
	appCtx := setupAppCtx(t)
	svc := connections.NewService(appCtx)
	ctx := context.Background()

	seedMatch(t, appCtx, 1, 2)

	require.NoError(t, svc.Unmatch(ctx, &connections.UnmatchRequest{ViewerID: 2, CounterpartID: 1}))
	// second delete of the same pair is a no-op success
	require.NoError(t, svc.Unmatch(ctx, &connections.UnmatchRequest{ViewerID: 1, CounterpartID: 2}))

	var count int64
	appCtx.DB.Model(&db.Match{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestListMatches(t *testing.T) {
	appCtx := setupAppCtx(t)
	svc := connections.NewService(appCtx)

	require.NoError(t, appCtx.DB.Create(&db.Profile{
		UserID: 2, DisplayName: "Bea", Expertise: "data", PhotoURL: "b.jpg", Complete: true, Visible: true,
	}).Error)

	seedMatch(t, appCtx, 1, 2)
	seedMatch(t, appCtx, 3, 1)

	resp, err := svc.ListMatches(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Matches, 2)

	byID := map[uint64]connections.MatchEntry{}
	for _, m := range resp.Matches {
		byID[m.CounterpartID] = m
	}
	assert.Contains(t, byID, uint64(2))
	assert.Contains(t, byID, uint64(3))
	assert.Equal(t, "Bea", byID[2].DisplayName)
	assert.Equal(t, "", byID[3].DisplayName) // no profile row
}

package admin

import (
	"context"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
	"github.com/pairup-app/pairup/internal/repository"
)

// Service implements administrative match overrides. Authorization is
// handled upstream; these handlers assume a privileged caller.
type Service struct {
	appCtx    *app.AppContext
	swipeRepo *repository.SwipeRepository
	matchRepo *repository.MatchRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		swipeRepo: repository.NewSwipeRepository(appCtx.DB),
		matchRepo: repository.NewMatchRepository(appCtx.DB),
	}
}

type MatchPairRequest struct {
	UserA uint64 `json:"user_a"`
	UserB uint64 `json:"user_b"`
}

// ForceMatch matches two users without a reciprocity check.
//
// The ledger is kept consistent with the forced state: a like swipe is
// upserted in both directions before the match row. The match write is
// the same idempotent canonical-pair upsert used by reconciliation, so a
// later organic like from either side cannot duplicate the row.
func (s *Service) ForceMatch(ctx context.Context, req *MatchPairRequest) error {
	s.appCtx.Logger.Debug("ForceMatch called", "user_a", req.UserA, "user_b", req.UserB)

	if req.UserA == 0 || req.UserB == 0 {
		return svcErr.InvalidArgument("user_a and user_b are required")
	}
	if req.UserA == req.UserB {
		return svcErr.InvalidArgument("cannot match a user with themselves")
	}

	if err := s.swipeRepo.Record(ctx, req.UserA, req.UserB, true); err != nil {
		return svcErr.Map(err)
	}
	if err := s.swipeRepo.Record(ctx, req.UserB, req.UserA, true); err != nil {
		return svcErr.Map(err)
	}

	created, err := s.matchRepo.Create(ctx, req.UserA, req.UserB)
	if err != nil {
		return svcErr.Map(err)
	}
	if created {
		s.appCtx.Logger.Info("match forced", "user_a", req.UserA, "user_b", req.UserB)
	}
	return nil
}

// ForceUnmatch removes the match between two users. Idempotent; a missing
// match is a no-op success. Swipes are not cleared.
func (s *Service) ForceUnmatch(ctx context.Context, req *MatchPairRequest) error {
	s.appCtx.Logger.Debug("ForceUnmatch called", "user_a", req.UserA, "user_b", req.UserB)

	if req.UserA == 0 || req.UserB == 0 {
		return svcErr.InvalidArgument("user_a and user_b are required")
	}
	if req.UserA == req.UserB {
		return svcErr.InvalidArgument("user_a and user_b must differ")
	}

	deleted, err := s.matchRepo.Delete(ctx, req.UserA, req.UserB)
	if err != nil {
		return svcErr.Map(err)
	}
	if deleted {
		s.appCtx.Logger.Info("match force-removed", "user_a", req.UserA, "user_b", req.UserB)
	}
	return nil
}

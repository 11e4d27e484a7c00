package discovery

import (
	"context"
	"strconv"
	"time"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
	"github.com/pairup-app/pairup/internal/repository"
)

// Decision directions accepted on the wire.
const (
	DirectionLike = "like"
	DirectionPass = "pass"
)

// Service implements the discovery API: recording decisions (with match
// reconciliation), the candidate feed, and admirer lists/counts.
// It contains the business logic on top of repository and cache layers.
type Service struct {
	appCtx      *app.AppContext
	swipeRepo   *repository.SwipeRepository
	matchRepo   *repository.MatchRepository
	profileRepo *repository.ProfileRepository
}

// NewService creates a discovery service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		swipeRepo:   repository.NewSwipeRepository(appCtx.DB),
		matchRepo:   repository.NewMatchRepository(appCtx.DB),
		profileRepo: repository.NewProfileRepository(appCtx.DB),
	}
}

type RecordDecisionRequest struct {
	ActorID   uint64 `json:"actor_id"`
	TargetID  uint64 `json:"target_id"`
	Direction string `json:"direction"`
}

type RecordDecisionResponse struct {
	Matched bool `json:"matched"`
}

// RecordDecision upserts a swipe and, for likes, runs match reconciliation.
//
// Behavior:
//   - Validates ids (non-zero, distinct) and direction.
//   - Upserts via SwipeRepository.Record; a failed write aborts before
//     reconciliation is attempted.
//   - Updates the Redis admirer count (+1/-1) best-effort with TTL refresh.
//   - On a like, checks reciprocity and upserts the canonical match row.
//
// Matched is true only when a new match row was created by this call;
// replays against an existing match return false.
func (s *Service) RecordDecision(ctx context.Context, req *RecordDecisionRequest) (*RecordDecisionResponse, error) {
	s.appCtx.Logger.Debug(
		"RecordDecision called",
		"actor", req.ActorID,
		"target", req.TargetID,
		"direction", req.Direction,
	)

	if req.ActorID == 0 || req.TargetID == 0 {
		return nil, svcErr.InvalidArgument("actor_id and target_id are required")
	}
	if req.ActorID == req.TargetID {
		return nil, svcErr.InvalidArgument("cannot decide on yourself")
	}
	if req.Direction != DirectionLike && req.Direction != DirectionPass {
		return nil, svcErr.InvalidArgument("direction must be \"like\" or \"pass\"")
	}
	liked := req.Direction == DirectionLike

	// write/overwrite the swipe; nothing below runs unless this commits
	if err := s.swipeRepo.Record(ctx, req.ActorID, req.TargetID, liked); err != nil {
		s.appCtx.Logger.Error("swipe write failed", "err", err)
		return nil, svcErr.Map(err)
	}

	// update admirer counter cache
	key := s.appCtx.RedisCache.KeyForAdmirerCount(req.TargetID)
	if liked {
		_, _ = s.appCtx.RedisCache.Incr(ctx, key)
	} else {
		_, _ = s.appCtx.RedisCache.Decr(ctx, key)
	}
	_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err()

	if !liked {
		return &RecordDecisionResponse{Matched: false}, nil
	}

	// reconciliation: reciprocal like → canonical match upsert
	mutual, err := s.swipeRepo.HasLiked(ctx, req.TargetID, req.ActorID)
	if err != nil {
		s.appCtx.Logger.Error("reciprocity check failed", "err", err)
		return nil, svcErr.Map(err)
	}
	if !mutual {
		return &RecordDecisionResponse{Matched: false}, nil
	}

	created, err := s.matchRepo.Create(ctx, req.ActorID, req.TargetID)
	if err != nil {
		s.appCtx.Logger.Error("match upsert failed", "err", err)
		return nil, svcErr.Map(err)
	}
	if created {
		s.appCtx.Logger.Info("new match", "actor", req.ActorID, "target", req.TargetID)
	}

	return &RecordDecisionResponse{Matched: created}, nil
}

type CandidateProfile struct {
	UserID      uint64 `json:"user_id"`
	DisplayName string `json:"display_name"`
	Expertise   string `json:"expertise"`
	Skills      string `json:"skills"`
	PhotoURL    string `json:"photo_url"`
	UpdatedUnix int64  `json:"updated_unix"`
}

type CandidatesResponse struct {
	Candidates []CandidateProfile `json:"candidates"`
}

// Candidates returns a page of the viewer's discovery feed.
//
// The exclusion set (self plus every swiped target, either direction) is
// derived from the swipe ledger per request via an anti-join; there is no
// cached state. An empty list means "no more candidates" — query failure
// is returned as an error, never an empty feed.
func (s *Service) Candidates(ctx context.Context, viewerID uint64, limit int) (*CandidatesResponse, error) {
	s.appCtx.Logger.Debug("Candidates called", "viewer", viewerID, "limit", limit)

	if viewerID == 0 {
		return nil, svcErr.InvalidArgument("viewer_id is required")
	}
	if limit <= 0 || limit > s.appCtx.Config.Feed.CandidateLimit {
		limit = s.appCtx.Config.Feed.CandidateLimit
	}

	profiles, err := s.profileRepo.Candidates(ctx, viewerID, limit)
	if err != nil {
		s.appCtx.Logger.Error("candidate query failed", "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &CandidatesResponse{Candidates: make([]CandidateProfile, 0, len(profiles))}
	for _, p := range profiles {
		resp.Candidates = append(resp.Candidates, CandidateProfile{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Expertise:   p.Expertise,
			Skills:      p.Skills,
			PhotoURL:    p.PhotoURL,
			UpdatedUnix: p.UpdatedAt.UnixMilli(),
		})
	}
	return resp, nil
}

type AdmirersResponse struct {
	Admirers      []Admirer `json:"admirers"`
	NextPageToken *string   `json:"next_page_token,omitempty"`
}

type Admirer struct {
	ActorID       string `json:"actor_id"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

// Admirers returns users who liked the viewer, excluding users the viewer
// passed. With onlyNew, mutual likes are hidden as well. Supports cursor
// pagination.
func (s *Service) Admirers(ctx context.Context, viewerID uint64, onlyNew bool, pageToken *string) (*AdmirersResponse, error) {
	s.appCtx.Logger.Debug("Admirers called", "viewer", viewerID, "only_new", onlyNew)

	if viewerID == 0 {
		return nil, svcErr.InvalidArgument("viewer_id is required")
	}

	swipes, nextToken, err := s.swipeRepo.Admirers(ctx, viewerID, onlyNew, pageToken, s.appCtx.Config.Feed.AdmirerLimit)
	if err != nil {
		s.appCtx.Logger.Error("admirers query failed", "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &AdmirersResponse{Admirers: make([]Admirer, 0, len(swipes))}
	for _, sw := range swipes {
		resp.Admirers = append(resp.Admirers, Admirer{
			ActorID:       strconv.FormatUint(sw.ActorID, 10),
			UnixTimestamp: uint64(sw.UpdatedAt.UnixMilli()),
		})
	}
	resp.NextPageToken = nextToken
	return resp, nil
}

type AdmirerCountResponse struct {
	Count uint64 `json:"count"`
}

// AdmirerCount returns how many users liked the viewer.
// Cache-first strategy:
//  1. Attempts to read from Redis (admirers:count:userID).
//  2. On cache miss or parse error, falls back to the DB count.
//  3. On DB fetch, updates Redis with a 1h TTL.
func (s *Service) AdmirerCount(ctx context.Context, viewerID uint64) (*AdmirerCountResponse, error) {
	s.appCtx.Logger.Debug("AdmirerCount called", "viewer", viewerID)

	if viewerID == 0 {
		return nil, svcErr.InvalidArgument("viewer_id is required")
	}

	key := s.appCtx.RedisCache.KeyForAdmirerCount(viewerID)

	// try cache first
	if cached, _ := s.appCtx.RedisCache.Get(ctx, key); cached != "" {
		if n, err := strconv.ParseUint(cached, 10, 64); err == nil {
			// refresh TTL since this user is active
			_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err()
			return &AdmirerCountResponse{Count: n}, nil
		}
	}

	// fallback: DB
	count, err := s.swipeRepo.CountAdmirers(ctx, viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	_ = s.appCtx.RedisCache.Set(ctx, key, strconv.FormatInt(count, 10), time.Hour)

	return &AdmirerCountResponse{Count: uint64(count)}, nil
}

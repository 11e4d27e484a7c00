package connections

import (
	"context"
	"strconv"

	"github.com/pairup-app/pairup/internal/app"
	svcErr "github.com/pairup-app/pairup/internal/errors"
	"github.com/pairup-app/pairup/internal/repository"
)

// Service implements the connections API: listing matches, the contact
// disclosure gate, and explicit unmatch.
type Service struct {
	appCtx      *app.AppContext
	matchRepo   *repository.MatchRepository
	contactRepo *repository.ContactRepository
	profileRepo *repository.ProfileRepository
}

// NewService creates a connections service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		matchRepo:   repository.NewMatchRepository(appCtx.DB),
		contactRepo: repository.NewContactRepository(appCtx.DB),
		profileRepo: repository.NewProfileRepository(appCtx.DB),
	}
}

type ResolveContactsRequest struct {
	ViewerID       uint64   `json:"viewer_id"`
	CounterpartIDs []uint64 `json:"counterpart_ids"`
}

type ResolveContactsResponse struct {
	Contacts map[string]string `json:"contacts"`
}

// ResolveContacts reveals contact values for eligible counterparts.
//
// Disclosure per counterpart requires, in order:
//  1. the viewer has not opted out of sharing (an explicit Share=false row
//     is a global kill switch; no row at all means sharing is enabled);
//  2. an active match exists for the canonical pair, re-verified on every
//     call since matches can be destroyed between requests;
//  3. the counterpart's own Share flag is true and their value non-empty.
//
// Absence from the result map is the uniform "not disclosed" signal; the
// response never says which condition failed.
func (s *Service) ResolveContacts(ctx context.Context, req *ResolveContactsRequest) (*ResolveContactsResponse, error) {
	s.appCtx.Logger.Debug("ResolveContacts called", "viewer", req.ViewerID, "counterparts", len(req.CounterpartIDs))

	if req.ViewerID == 0 {
		return nil, svcErr.InvalidArgument("viewer_id is required")
	}

	resp := &ResolveContactsResponse{Contacts: map[string]string{}}

	// viewer-side kill switch
	own, err := s.contactRepo.Get(ctx, req.ViewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if own != nil && !own.Share {
		return resp, nil
	}

	for _, counterpartID := range req.CounterpartIDs {
		if counterpartID == req.ViewerID {
			continue
		}

		matched, err := s.matchRepo.Exists(ctx, req.ViewerID, counterpartID)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		if !matched {
			continue
		}

		contact, err := s.contactRepo.Get(ctx, counterpartID)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		if contact == nil || !contact.Share || contact.Phone == "" {
			continue
		}

		resp.Contacts[strconv.FormatUint(counterpartID, 10)] = contact.Phone
	}

	return resp, nil
}

type MatchEntry struct {
	CounterpartID uint64 `json:"counterpart_id"`
	DisplayName   string `json:"display_name,omitempty"`
	MatchedUnix   int64  `json:"matched_unix"`
}

type ListMatchesResponse struct {
	Matches []MatchEntry `json:"matches"`
}

// ListMatches returns the viewer's active matches, newest first, with the
// counterpart's display name when a profile exists.
func (s *Service) ListMatches(ctx context.Context, viewerID uint64) (*ListMatchesResponse, error) {
	if viewerID == 0 {
		return nil, svcErr.InvalidArgument("viewer_id is required")
	}

	matches, err := s.matchRepo.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	counterpartIDs := make([]uint64, 0, len(matches))
	for _, m := range matches {
		if m.LowID == viewerID {
			counterpartIDs = append(counterpartIDs, m.HighID)
		} else {
			counterpartIDs = append(counterpartIDs, m.LowID)
		}
	}

	profiles, err := s.profileRepo.GetMany(ctx, counterpartIDs)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &ListMatchesResponse{Matches: make([]MatchEntry, 0, len(matches))}
	for i, m := range matches {
		entry := MatchEntry{
			CounterpartID: counterpartIDs[i],
			MatchedUnix:   m.CreatedAt.UnixMilli(),
		}
		if p, ok := profiles[entry.CounterpartID]; ok {
			entry.DisplayName = p.DisplayName
		}
		resp.Matches = append(resp.Matches, entry)
	}
	return resp, nil
}

type UnmatchRequest struct {
	ViewerID      uint64 `json:"viewer_id"`
	CounterpartID uint64 `json:"counterpart_id"`
}

// Unmatch removes the match between viewer and counterpart. Deleting a
// nonexistent match is a no-op success. Swipe rows are not cleared, so
// the pair never re-enters each other's discovery feed.
func (s *Service) Unmatch(ctx context.Context, req *UnmatchRequest) error {
	s.appCtx.Logger.Debug("Unmatch called", "viewer", req.ViewerID, "counterpart", req.CounterpartID)

	if req.ViewerID == 0 || req.CounterpartID == 0 {
		return svcErr.InvalidArgument("viewer_id and counterpart_id are required")
	}
	if req.ViewerID == req.CounterpartID {
		return svcErr.InvalidArgument("cannot unmatch yourself")
	}

	if _, err := s.matchRepo.Delete(ctx, req.ViewerID, req.CounterpartID); err != nil {
		s.appCtx.Logger.Error("unmatch failed", "err", err)
		return svcErr.Map(err)
	}
	return nil
}

package profile

import (
	"context"

	"github.com/pairup-app/pairup/internal/app"
	"github.com/pairup-app/pairup/internal/db"
	svcErr "github.com/pairup-app/pairup/internal/errors"
	"github.com/pairup-app/pairup/internal/repository"
)

// Service implements the profile save collaborator. Only owners write
// their own profile; the repository recomputes completeness on every
// save and keeps the visible-implies-complete invariant.
type Service struct {
	appCtx      *app.AppContext
	profileRepo *repository.ProfileRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		profileRepo: repository.NewProfileRepository(appCtx.DB),
	}
}

type SaveProfileRequest struct {
	DisplayName string `json:"display_name"`
	Expertise   string `json:"expertise"`
	Skills      string `json:"skills"`
	PhotoURL    string `json:"photo_url"`
	Visible     bool   `json:"visible"`
}

type ProfileResponse struct {
	UserID      uint64 `json:"user_id"`
	DisplayName string `json:"display_name"`
	Expertise   string `json:"expertise"`
	Skills      string `json:"skills"`
	PhotoURL    string `json:"photo_url"`
	Complete    bool   `json:"complete"`
	Visible     bool   `json:"visible"`
}

// Save upserts the profile for userID and returns the stored state,
// including the recomputed complete flag and the possibly-forced-off
// visible flag.
func (s *Service) Save(ctx context.Context, userID uint64, req *SaveProfileRequest) (*ProfileResponse, error) {
	s.appCtx.Logger.Debug("profile Save called", "user", userID)

	if userID == 0 {
		return nil, svcErr.InvalidArgument("user id is required")
	}

	p := &db.Profile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Expertise:   req.Expertise,
		Skills:      req.Skills,
		PhotoURL:    req.PhotoURL,
		Visible:     req.Visible,
	}
	if err := s.profileRepo.Save(ctx, p); err != nil {
		s.appCtx.Logger.Error("profile save failed", "err", err)
		return nil, svcErr.Map(err)
	}

	return &ProfileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Expertise:   p.Expertise,
		Skills:      p.Skills,
		PhotoURL:    p.PhotoURL,
		Complete:    p.Complete,
		Visible:     p.Visible,
	}, nil
}

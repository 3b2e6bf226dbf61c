package creators

import (
	"context"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

type Service struct {
	repo  Repository
	users auth.Repository
}

func NewService(repo Repository, users auth.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// UpsertProfile creates or updates the caller's creator profile. A plain user
// saving a profile for the first time is promoted to the creator role.
func (s *Service) UpsertProfile(ctx context.Context, user *auth.User, req *UpsertProfileRequest) (*CreatorProfile, error) {
	profile := &CreatorProfile{
		UserID:      user.ID,
		StageName:   req.StageName,
		Bio:         req.Bio,
		Genre:       req.Genre,
		Location:    req.Location,
		Website:     req.Website,
		RateCents:   req.RateCents,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		profile.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	if user.Role == auth.RoleUser {
		if err := s.users.Update(ctx, user.ID, map[string]interface{}{"role": auth.RoleCreator}); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByUserID(ctx, user.ID)
}

func (s *Service) GetOwnProfile(ctx context.Context, userID uint) (*CreatorProfile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) GetProfile(ctx context.Context, id uint) (*CreatorProfile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Browse(ctx context.Context, filter BrowseFilter, page, limit int) ([]CreatorProfile, int64, error) {
	return s.repo.Browse(ctx, filter, limit, (page-1)*limit)
}

func (s *Service) UpdateCoverImage(ctx context.Context, userID uint, path string) (*CreatorProfile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.CoverImage = path
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, userID)
}

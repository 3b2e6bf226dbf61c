package ratings

import (
	"context"
	"fmt"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

type Service struct {
	repo     Repository
	users    auth.Repository
	notifier *notifications.Service
	now      func() time.Time
}

func NewService(repo Repository, users auth.Repository, notifier *notifications.Service) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

// Rate records or replaces the caller's rating of a creator.
func (s *Service) Rate(ctx context.Context, rater *auth.User, creatorID uint, req *RateRequest) (*Rating, error) {
	if rater.RestrictionBlocksCapability(auth.CapabilityRate, s.now()) {
		return nil, fmt.Errorf("rating is blocked by an account restriction: %w", errors.ErrForbidden)
	}
	if creatorID == rater.ID {
		return nil, errors.NewValidation("cannot rate yourself")
	}

	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, errors.NewValidation("creator not found")
	}
	if creator.Role != auth.RoleCreator && creator.Role != auth.RoleAdmin {
		return nil, errors.NewValidation("user is not a creator")
	}

	existing, err := s.repo.GetByCreatorAndRater(ctx, creatorID, rater.ID)
	if err != nil {
		return nil, err
	}

	rating := &Rating{
		CreatorID: creatorID,
		RaterID:   rater.ID,
		Score:     req.Score,
		Comment:   req.Comment,
	}
	if err := s.repo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	// Only the first rating from a user pings the creator.
	if existing == nil {
		if err := s.notifier.Notify(ctx, creatorID, notifications.TypeRating,
			"New rating received",
			fmt.Sprintf("%s rated you %d out of 5.", rater.FullName(), req.Score), false); err != nil {
			logger.Error("notify creator %d of rating: %v", creatorID, err)
		}
	}

	return s.repo.GetByCreatorAndRater(ctx, creatorID, rater.ID)
}

func (s *Service) ListForCreator(ctx context.Context, creatorID uint, page, limit int) ([]Rating, int64, error) {
	return s.repo.ListByCreator(ctx, creatorID, limit, (page-1)*limit)
}

func (s *Service) SummaryForCreator(ctx context.Context, creatorID uint) (*Summary, error) {
	return s.repo.SummaryForCreator(ctx, creatorID)
}

// Remove deletes the caller's rating of a creator.
func (s *Service) Remove(ctx context.Context, raterID, creatorID uint) error {
	return s.repo.Delete(ctx, creatorID, raterID)
}

package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

// PostModerator takes down a user's content when their account is suspended.
// Implemented by the posts service; set after construction because posts
// depend on moderation for strike recording.
type PostModerator interface {
	RemoveAllByUser(ctx context.Context, userID uint) (int64, error)
}

// Service runs the copyright-strike lifecycle: strikes accumulate on
// detections, the account enters review at the threshold, and an admin
// resolves the review with a clear, warning or suspension.
type Service struct {
	repo     Repository
	users    auth.Repository
	notifier *notifications.Service
	posts    PostModerator
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

// SetPostModerator wires the content takedown used by suspensions.
func (s *Service) SetPostModerator(p PostModerator) {
	s.posts = p
}

// RecordStrike registers one copyright strike against the user. When the new
// total reaches the threshold it places the account under review, notifies
// the user by email and alerts every admin. The threshold transition fires at
// most once; strikes past the threshold only bump the counter.
func (s *Service) RecordStrike(ctx context.Context, userID uint, workTitle, matchDetail string) (*StrikeResult, error) {
	strikes, err := s.repo.IncrementStrikes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("increment strikes for user %d: %w", userID, err)
	}

	result := &StrikeResult{Strikes: strikes}

	title := "Copyright strike recorded"
	body := fmt.Sprintf("Your upload %q matched protected content (%s). You now have %d strike(s).",
		workTitle, matchDetail, strikes)
	if err := s.notifier.Notify(ctx, userID, notifications.TypeCopyrightStrike, title, body, true); err != nil {
		logger.Error("notify user %d of strike: %v", userID, err)
	}

	if strikes < StrikeThreshold {
		return result, nil
	}

	flipped, err := s.repo.MarkUnderReview(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("mark user %d under review: %w", userID, err)
	}
	if !flipped {
		result.AlreadyInReview = true
		return result, nil
	}

	result.PlacedInReview = true

	reviewBody := fmt.Sprintf("Your account reached %d copyright strikes and is now under review. "+
		"Posting is limited until an administrator resolves the review.", strikes)
	if err := s.notifier.Notify(ctx, userID, notifications.TypeUnderReview,
		"Account under review", reviewBody, true); err != nil {
		logger.Error("notify user %d of review: %v", userID, err)
	}

	adminBody := fmt.Sprintf("User %d reached %d copyright strikes and requires review.", userID, strikes)
	if err := s.notifier.NotifyAdmins(ctx, notifications.TypeUnderReview,
		"Account flagged for review", adminBody); err != nil {
		logger.Error("notify admins of user %d review: %v", userID, err)
	}

	return result, nil
}

// Review resolves a flagged account with the admin's decision.
func (s *Service) Review(ctx context.Context, userID uint, req *ReviewRequest) (*auth.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var title, body string
	switch req.Action {
	case ActionClear:
		if err := s.repo.ClearModeration(ctx, userID, true); err != nil {
			return nil, err
		}
		title = "Review resolved"
		body = "Your account review was resolved in your favor. Strikes have been reset."

	case ActionWarn:
		if req.DurationDays < 1 {
			return nil, errors.NewValidation("durationDays is required for the warn action")
		}
		expires := s.now().AddDate(0, 0, req.DurationDays)
		if err := s.repo.ApplyRestriction(ctx, userID, auth.RestrictionWarning, &expires); err != nil {
			return nil, err
		}
		title = "Account warning issued"
		body = fmt.Sprintf("You received a warning. Posting is blocked until %s.",
			expires.Format("January 2, 2006"))

	case ActionSuspend:
		if req.DurationDays < 1 {
			return nil, errors.NewValidation("durationDays is required for the suspend action")
		}
		expires := s.now().AddDate(0, 0, req.DurationDays)
		if err := s.repo.ApplyRestriction(ctx, userID, auth.RestrictionSuspended, &expires); err != nil {
			return nil, err
		}
		if s.posts != nil {
			removed, err := s.posts.RemoveAllByUser(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("take down posts for suspended user %d: %w", userID, err)
			}
			logger.Info("suspension of user %d took down %d post(s)", userID, removed)
		}
		title = "Account suspended"
		body = fmt.Sprintf("Your account is suspended until %s and your posts have been taken down.",
			expires.Format("January 2, 2006"))

	case ActionRestrict:
		if req.DurationDays < 1 {
			return nil, errors.NewValidation("durationDays is required for the restrict action")
		}
		expires := s.now().AddDate(0, 0, req.DurationDays)
		if err := s.repo.ApplyRestriction(ctx, userID, auth.RestrictionRestricted, &expires); err != nil {
			return nil, err
		}
		title = "Account restricted"
		body = fmt.Sprintf("Posting and messaging are blocked until %s.", expires.Format("January 2, 2006"))

	case ActionUnsuspend:
		if user.RestrictionType == nil {
			return nil, errors.NewValidation("user has no active restriction")
		}
		if err := s.repo.ClearModeration(ctx, userID, false); err != nil {
			return nil, err
		}
		title = "Restriction lifted"
		body = "The restriction on your account has been lifted."

	default:
		return nil, errors.NewValidation("unknown review action")
	}

	if req.Reason != "" {
		body += " Reason: " + req.Reason
	}

	if err := s.notifier.Notify(ctx, userID, notifications.TypeModeration, title, body, true); err != nil {
		logger.Error("notify user %d of review decision: %v", userID, err)
	}

	return s.users.GetByID(ctx, userID)
}

// ListUnderReview returns accounts awaiting an admin decision.
func (s *Service) ListUnderReview(ctx context.Context, page, limit int) ([]auth.User, int64, error) {
	return s.repo.ListUnderReview(ctx, limit, (page-1)*limit)
}

package posts

import (
	"context"
	"fmt"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/moderation"
	"github.com/tunespace/tunespace-api/internal/pkg/audiomatch"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/internal/pkg/storage"
	"github.com/tunespace/tunespace-api/internal/pkg/text"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

type Service struct {
	repo     Repository
	users    auth.Repository
	store    *storage.Store
	detector audiomatch.Detector
	mod      *moderation.Service
	now      func() time.Time
}

func NewService(repo Repository, users auth.Repository, store *storage.Store, detector audiomatch.Detector, mod *moderation.Service) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		store:    store,
		detector: detector,
		mod:      mod,
		now:      time.Now,
	}
}

// Create stores a new post and runs copyright detection on the uploaded
// audio. The post is created even when detection flags a match; the match
// flags the post and records a strike instead of rejecting the upload.
func (s *Service) Create(ctx context.Context, user *auth.User, post *Post) (*Post, error) {
	if err := s.checkCanPost(ctx, user); err != nil {
		return nil, err
	}

	post.UserID = user.ID
	post.Status = StatusActive

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.runCopyrightCheck(ctx, post)

	return s.repo.GetByID(ctx, post.ID)
}

// checkCanPost enforces the posting restrictions: accounts under review and
// accounts whose active restriction blocks posting cannot upload. Expired
// restrictions are cleared on the way through.
func (s *Service) checkCanPost(ctx context.Context, user *auth.User) error {
	now := s.now()
	if user.RestrictionExpired(now) {
		user.ClearRestrictionFields()
		if err := s.users.ClearRestriction(ctx, user.ID); err != nil {
			logger.Error("clear expired restriction for user %d: %v", user.ID, err)
		}
	}

	if user.UnderReview {
		return fmt.Errorf("account is under review, posting is disabled: %w", errors.ErrForbidden)
	}
	if user.RestrictionBlocksCapability(auth.CapabilityPost, now) {
		if user.RestrictionExpiresAt != nil {
			return fmt.Errorf("posting is blocked by a %s restriction until %s: %w",
				*user.RestrictionType, user.RestrictionExpiresAt.Format("January 2, 2006"), errors.ErrForbidden)
		}
		return fmt.Errorf("posting is blocked by a %s restriction: %w", *user.RestrictionType, errors.ErrForbidden)
	}
	return nil
}

// runCopyrightCheck sends the audio through detection and applies the
// outcome. Detection failures leave the post unchecked so the periodic
// recheck picks it up later.
func (s *Service) runCopyrightCheck(ctx context.Context, post *Post) {
	result, err := s.detector.Detect(ctx, s.store.Path(post.AudioFile))
	if err != nil {
		logger.Warn("copyright detection for post %d failed, will recheck: %v", post.ID, err)
		return
	}

	updates := map[string]interface{}{"copyright_checked": true}
	if result.Matched {
		info := fmt.Sprintf("matched %q by %s (album %s, score %.2f)",
			result.Title, result.Artist, result.Album, result.Score)
		updates["copyright_info"] = text.TruncateBytes(info, maxCopyrightInfoBytes)
		updates["status"] = StatusFlagged
	}

	if err := s.repo.Update(ctx, post.ID, updates); err != nil {
		logger.Error("store detection outcome for post %d: %v", post.ID, err)
		return
	}
	post.CopyrightChecked = true

	if result.Matched {
		post.Status = StatusFlagged
		if _, err := s.mod.RecordStrike(ctx, post.UserID, post.Title,
			fmt.Sprintf("%s by %s", result.Title, result.Artist)); err != nil {
			logger.Error("record strike for post %d: %v", post.ID, err)
		}
	}
}

// RecheckUnchecked runs detection for posts the upload-time check missed,
// in batches. Called by the periodic job.
func (s *Service) RecheckUnchecked(ctx context.Context, batchSize int) (int, error) {
	posts, err := s.repo.ListUnchecked(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	for i := range posts {
		s.runCopyrightCheck(ctx, &posts[i])
	}
	return len(posts), nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter, page, limit int) ([]Post, int64, error) {
	return s.repo.List(ctx, filter, limit, (page-1)*limit)
}

// Update applies the non-nil fields; only the owner may update.
func (s *Service) Update(ctx context.Context, userID, postID uint, req *UpdatePostRequest) (*Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, errors.ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if len(updates) == 0 {
		return post, nil
	}

	if err := s.repo.Update(ctx, postID, updates); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, postID)
}

// Delete removes a post and its files. Owners and admins may delete.
func (s *Service) Delete(ctx context.Context, user *auth.User, postID uint) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != user.ID && user.Role != auth.RoleAdmin {
		return errors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	if err := s.store.Remove(post.AudioFile); err != nil {
		logger.Error("remove audio file for post %d: %v", postID, err)
	}
	if err := s.store.Remove(post.CoverImage); err != nil {
		logger.Error("remove cover image for post %d: %v", postID, err)
	}
	return nil
}

// RemoveAllByUser takes down all of the user's posts. Suspensions call this;
// lifting a suspension does not restore them.
func (s *Service) RemoveAllByUser(ctx context.Context, userID uint) (int64, error) {
	return s.repo.RemoveByUser(ctx, userID)
}

// UpdateStatus is the admin takedown and restore path.
func (s *Service) UpdateStatus(ctx context.Context, postID uint, status string) (*Post, error) {
	if err := s.repo.Update(ctx, postID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, postID)
}

// RecordPlay bumps the play counter.
func (s *Service) RecordPlay(ctx context.Context, postID uint) error {
	return s.repo.IncrementPlayCount(ctx, postID)
}

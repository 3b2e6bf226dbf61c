package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/features/posts"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/internal/pkg/storage"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

type Service struct {
	repo     Repository
	users    auth.Repository
	posts    *posts.Service
	notifier *notifications.Service
	store    *storage.Store
	now      func() time.Time
}

func NewService(repo Repository, users auth.Repository, postsService *posts.Service, notifier *notifications.Service, store *storage.Store) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		posts:    postsService,
		notifier: notifier,
		store:    store,
		now:      time.Now,
	}
}

// Submit files a report and alerts the admins.
func (s *Service) Submit(ctx context.Context, reporterID uint, report *Report) (*Report, error) {
	if report.ReportedUserID == reporterID {
		return nil, errors.NewValidation("cannot report yourself")
	}
	if _, err := s.users.GetByID(ctx, report.ReportedUserID); err != nil {
		return nil, errors.NewValidation("reported user not found")
	}
	if report.PostID != 0 {
		if _, err := s.posts.GetByID(ctx, report.PostID); err != nil {
			return nil, errors.NewValidation("reported post not found")
		}
	}

	report.ReporterID = reporterID
	report.Status = StatusPending

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("User %d reported user %d: %s", reporterID, report.ReportedUserID, report.Reason)
	if err := s.notifier.NotifyAdmins(ctx, notifications.TypeReport, "New report filed", body); err != nil {
		logger.Error("notify admins of report %d: %v", report.ID, err)
	}

	return s.repo.GetByID(ctx, report.ID)
}

// Resolve applies an admin decision to a report. Resolving notifies the
// reporter; RemovePost additionally takes down the reported post.
func (s *Service) Resolve(ctx context.Context, id uint, req *UpdateReportRequest) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":        req.Status,
		"admin_comment": req.AdminComment,
	}
	if req.Status != StatusPending {
		now := s.now()
		updates["resolved_at"] = now
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	if req.RemovePost && report.PostID != 0 {
		if _, err := s.posts.UpdateStatus(ctx, report.PostID, posts.StatusRemoved); err != nil {
			logger.Error("remove post %d for report %d: %v", report.PostID, id, err)
		}
	}

	if req.Status != StatusPending {
		outcome := "resolved"
		if req.Status == StatusDismissed {
			outcome = "dismissed"
		}
		body := fmt.Sprintf("Your report about user %d was %s.", report.ReportedUserID, outcome)
		if req.AdminComment != "" {
			body += " Comment: " + req.AdminComment
		}
		if err := s.notifier.Notify(ctx, report.ReporterID, notifications.TypeReport,
			"Report "+outcome, body, false); err != nil {
			logger.Error("notify reporter %d: %v", report.ReporterID, err)
		}
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uint) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string, page, limit int) ([]Report, int64, error) {
	return s.repo.List(ctx, status, limit, (page-1)*limit)
}

// Delete removes a report and its evidence image.
func (s *Service) Delete(ctx context.Context, id uint) error {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Remove(report.EvidenceImage); err != nil {
		logger.Error("remove evidence image for report %d: %v", id, err)
	}
	return nil
}

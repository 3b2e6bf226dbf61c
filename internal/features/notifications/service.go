package notifications

import (
	"context"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/internal/pkg/mailer"
	"github.com/tunespace/tunespace-api/internal/pkg/push"
)

// Service persists notifications and fans them out to email and push.
// Persisting the row is the only mandatory step; delivery failures are
// logged and never returned to the triggering operation.
type Service struct {
	repo  Repository
	users auth.Repository
	mail  mailer.Sender
	push  push.Sender
}

func NewService(repo Repository, users auth.Repository, mail mailer.Sender, pushSender push.Sender) *Service {
	return &Service{repo: repo, users: users, mail: mail, push: pushSender}
}

// Notify stores a notification for the user and delivers it best-effort.
// withEmail also sends the body to the user's email address.
func (s *Service) Notify(ctx context.Context, userID uint, typ, title, body string, withEmail bool) error {
	n := &Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	go s.deliver(userID, title, body, withEmail)
	return nil
}

// NotifyAdmins stores the same notification for every admin account.
func (s *Service) NotifyAdmins(ctx context.Context, typ, title, body string) error {
	admins, err := s.users.GetAdmins(ctx)
	if err != nil {
		return err
	}

	for _, admin := range admins {
		n := &Notification{
			UserID: admin.ID,
			Type:   typ,
			Title:  title,
			Body:   body,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			logger.Error("store admin notification for user %d: %v", admin.ID, err)
			continue
		}
		go s.deliver(admin.ID, title, body, false)
	}
	return nil
}

func (s *Service) deliver(userID uint, title, body string, withEmail bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Error("load user %d for notification delivery: %v", userID, err)
		return
	}

	if user.DeviceToken != "" {
		if err := s.push.Send(ctx, user.DeviceToken, title, body); err != nil {
			logger.Error("push notification to user %d: %v", userID, err)
		}
	}

	if withEmail {
		if err := s.mail.SendModerationNotice(ctx, user.Email, title, body); err != nil {
			logger.Error("email notification to %s: %v", user.Email, err)
		}
	}
}

func (s *Service) List(ctx context.Context, userID uint, page, limit int) ([]Notification, int64, error) {
	return s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
}

func (s *Service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID uint) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}

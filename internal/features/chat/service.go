package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/internal/pkg/text"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

// notificationPreviewBytes caps the message excerpt shown in an offline
// recipient's notification.
const notificationPreviewBytes = 120

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

// Send persists a message after checking the sender may message at all. The
// recipient gets a notification when they are not connected to the relay;
// online delivery is the hub's job.
func (s *Service) Send(ctx context.Context, sender *auth.User, req *SendMessageRequest, recipientOnline bool) (*Message, error) {
	now := s.now()
	if sender.RestrictionExpired(now) {
		sender.ClearRestrictionFields()
		if err := s.users.ClearRestriction(ctx, sender.ID); err != nil {
			logger.Error("clear expired restriction for user %d: %v", sender.ID, err)
		}
	}
	if sender.RestrictionBlocksCapability(auth.CapabilityMessage, now) {
		return nil, fmt.Errorf("messaging is blocked by an account restriction: %w", errors.ErrForbidden)
	}

	if req.RecipientID == sender.ID {
		return nil, errors.NewValidation("cannot message yourself")
	}
	if _, err := s.users.GetByID(ctx, req.RecipientID); err != nil {
		return nil, errors.NewValidation("recipient not found")
	}

	msg := &Message{
		SenderID:    sender.ID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	msg.Sender = *sender

	if !recipientOnline {
		body := req.Content
		if len(body) > notificationPreviewBytes {
			body = text.TruncateBytes(body, notificationPreviewBytes) + "..."
		}
		if err := s.notifier.Notify(ctx, req.RecipientID, notifications.TypeMessage,
			fmt.Sprintf("New message from %s", sender.FullName()), body, false); err != nil {
			logger.Error("notify recipient %d of message: %v", req.RecipientID, err)
		}
	}

	return msg, nil
}

// Thread returns the messages between the caller and a partner, newest first,
// and marks the incoming side read.
func (s *Service) Thread(ctx context.Context, userID, partnerID uint, page, limit int) ([]Message, int64, error) {
	messages, total, err := s.repo.Thread(ctx, userID, partnerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	if err := s.repo.MarkThreadRead(ctx, userID, partnerID); err != nil {
		logger.Error("mark thread read for user %d: %v", userID, err)
	}
	return messages, total, nil
}

// Conversations builds the inbox: one entry per partner with the last
// message and the unread count.
func (s *Service) Conversations(ctx context.Context, userID uint) ([]Conversation, error) {
	partnerIDs, err := s.repo.PartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]Conversation, 0, len(partnerIDs))
	for _, pid := range partnerIDs {
		partner, err := s.users.GetByID(ctx, pid)
		if err != nil {
			logger.Warn("load partner %d for conversations: %v", pid, err)
			continue
		}
		last, err := s.repo.LastMessage(ctx, userID, pid)
		if err != nil {
			return nil, err
		}
		unread, err := s.repo.CountUnreadFrom(ctx, userID, pid)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, Conversation{
			Partner:     partner.ToPublicUser(),
			LastMessage: last,
			UnreadCount: unread,
		})
	}
	return conversations, nil
}

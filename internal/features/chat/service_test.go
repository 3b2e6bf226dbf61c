package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/pkg/mailer"
	"github.com/tunespace/tunespace-api/internal/pkg/push"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

type fakeUserRepo struct {
	users   map[uint]*auth.User
	cleared []uint
}

func newFakeUserRepo(users ...*auth.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*auth.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*auth.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id uint, updates map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepo) ClearRestriction(_ context.Context, id uint) error {
	if u, ok := r.users[id]; ok {
		u.RestrictionType = nil
		u.RestrictionExpiresAt = nil
	}
	r.cleared = append(r.cleared, id)
	return nil
}

func (r *fakeUserRepo) GetAdmins(_ context.Context) ([]auth.User, error) { return nil, nil }

type fakeMessageRepo struct {
	messages []*Message
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *Message) error {
	msg.ID = uint(len(r.messages) + 1)
	msg.CreatedAt = time.Now()
	copied := *msg
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) Thread(_ context.Context, userID, partnerID uint, limit, offset int) ([]Message, int64, error) {
	var out []Message
	for _, m := range r.messages {
		if (m.SenderID == userID && m.RecipientID == partnerID) ||
			(m.SenderID == partnerID && m.RecipientID == userID) {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeMessageRepo) PartnerIDs(_ context.Context, userID uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	// Walk newest first so the inbox ordering matches the real query.
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		var partner uint
		switch userID {
		case m.SenderID:
			partner = m.RecipientID
		case m.RecipientID:
			partner = m.SenderID
		default:
			continue
		}
		if !seen[partner] {
			seen[partner] = true
			ids = append(ids, partner)
		}
	}
	return ids, nil
}

func (r *fakeMessageRepo) LastMessage(_ context.Context, userID, partnerID uint) (*Message, error) {
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		if (m.SenderID == userID && m.RecipientID == partnerID) ||
			(m.SenderID == partnerID && m.RecipientID == userID) {
			copied := *m
			return &copied, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (r *fakeMessageRepo) CountUnreadFrom(_ context.Context, userID, partnerID uint) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.SenderID == partnerID && m.RecipientID == userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) MarkThreadRead(_ context.Context, userID, partnerID uint) error {
	for _, m := range r.messages {
		if m.SenderID == partnerID && m.RecipientID == userID {
			m.IsRead = true
		}
	}
	return nil
}

type fakeNotifRepo struct {
	mu      sync.Mutex
	created []notifications.Notification
}

func (r *fakeNotifRepo) Create(_ context.Context, n *notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotifRepo) ListByUser(_ context.Context, userID uint, limit, offset int) ([]notifications.Notification, int64, error) {
	return nil, 0, nil
}

func (r *fakeNotifRepo) CountUnread(_ context.Context, userID uint) (int64, error) { return 0, nil }

func (r *fakeNotifRepo) MarkRead(_ context.Context, id, userID uint) error { return nil }

func (r *fakeNotifRepo) MarkAllRead(_ context.Context, userID uint) error { return nil }

func newChatService(users *fakeUserRepo, repo *fakeMessageRepo, notifRepo *fakeNotifRepo) *Service {
	notifier := notifications.NewService(notifRepo, users, mailer.NoopSender{}, push.NoopSender{})
	return NewService(repo, users, notifier)
}

func TestSendPersistsMessage(t *testing.T) {
	users := newFakeUserRepo(
		&auth.User{ID: 1, FirstName: "Ada"},
		&auth.User{ID: 2},
	)
	repo := &fakeMessageRepo{}
	svc := newChatService(users, repo, &fakeNotifRepo{})

	sender, _ := users.GetByID(context.Background(), 1)
	msg, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 2, Content: "hello"}, true)
	require.NoError(t, err)

	assert.Equal(t, uint(1), msg.SenderID)
	assert.Equal(t, uint(2), msg.RecipientID)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "Ada", msg.Sender.FirstName)
	assert.Len(t, repo.messages, 1)
}

func TestSendNotifiesOfflineRecipientOnly(t *testing.T) {
	users := newFakeUserRepo(&auth.User{ID: 1}, &auth.User{ID: 2})
	notifRepo := &fakeNotifRepo{}
	svc := newChatService(users, &fakeMessageRepo{}, notifRepo)

	sender, _ := users.GetByID(context.Background(), 1)

	_, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 2, Content: "online"}, true)
	require.NoError(t, err)
	assert.Empty(t, notifRepo.created, "online recipients get relay delivery, not a notification")

	_, err = svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 2, Content: "offline"}, false)
	require.NoError(t, err)
	require.Len(t, notifRepo.created, 1)
	assert.Equal(t, notifications.TypeMessage, notifRepo.created[0].Type)
	assert.Equal(t, "offline", notifRepo.created[0].Body)
}

func TestSendTruncatesLongNotificationBody(t *testing.T) {
	users := newFakeUserRepo(&auth.User{ID: 1}, &auth.User{ID: 2})
	notifRepo := &fakeNotifRepo{}
	svc := newChatService(users, &fakeMessageRepo{}, notifRepo)

	sender, _ := users.GetByID(context.Background(), 1)
	long := strings.Repeat("x", 300)
	_, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 2, Content: long}, false)
	require.NoError(t, err)

	require.Len(t, notifRepo.created, 1)
	assert.Equal(t, strings.Repeat("x", 120)+"...", notifRepo.created[0].Body)
}

func TestSendPreviewNeverSplitsRunes(t *testing.T) {
	users := newFakeUserRepo(&auth.User{ID: 1}, &auth.User{ID: 2})
	notifRepo := &fakeNotifRepo{}
	svc := newChatService(users, &fakeMessageRepo{}, notifRepo)

	sender, _ := users.GetByID(context.Background(), 1)
	// One ASCII byte followed by two-byte runes puts the 120-byte cut in
	// the middle of a rune.
	long := "a" + strings.Repeat("é", 200)
	_, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 2, Content: long}, false)
	require.NoError(t, err)

	require.Len(t, notifRepo.created, 1)
	body := notifRepo.created[0].Body
	assert.True(t, utf8.ValidString(body))
	assert.Equal(t, "a"+strings.Repeat("é", 59)+"...", body)
}

func TestSendRejectsSelfMessage(t *testing.T) {
	users := newFakeUserRepo(&auth.User{ID: 1})
	svc := newChatService(users, &fakeMessageRepo{}, &fakeNotifRepo{})

	sender, _ := users.GetByID(context.Background(), 1)
	_, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 1, Content: "hi"}, true)
	require.Error(t, err)
	assert.ErrorContains(t, err, "yourself")
}

func TestSendRejectsUnknownRecipient(t *testing.T) {
	users := newFakeUserRepo(&auth.User{ID: 1})
	svc := newChatService(users, &fakeMessageRepo{}, &fakeNotifRepo{})

	sender, _ := users.GetByID(context.Background(), 1)
	_, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 99, Content: "hi"}, true)
	require.Error(t, err)
	assert.ErrorContains(t, err, "recipient not found")
}

func TestSendBlockedByRestriction(t *testing.T) {
	restriction := auth.RestrictionRestricted
	users := newFakeUserRepo(
		&auth.User{ID: 1, RestrictionType: &restriction},
		&auth.User{ID: 2},
	)
	repo := &fakeMessageRepo{}
	svc := newChatService(users, repo, &fakeNotifRepo{})

	sender, _ := users.GetByID(context.Background(), 1)
	_, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 2, Content: "hi"}, true)
	assert.ErrorIs(t, err, errors.ErrForbidden)
	assert.Empty(t, repo.messages)
}

func TestSendClearsExpiredRestriction(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	restriction := auth.RestrictionSuspended
	users := newFakeUserRepo(
		&auth.User{ID: 1, RestrictionType: &restriction, RestrictionExpiresAt: &expired},
		&auth.User{ID: 2},
	)
	svc := newChatService(users, &fakeMessageRepo{}, &fakeNotifRepo{})

	sender, _ := users.GetByID(context.Background(), 1)
	_, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 2, Content: "hi"}, true)
	require.NoError(t, err)
	assert.Contains(t, users.cleared, uint(1))
}

func TestThreadMarksIncomingRead(t *testing.T) {
	users := newFakeUserRepo(&auth.User{ID: 1}, &auth.User{ID: 2})
	repo := &fakeMessageRepo{}
	svc := newChatService(users, repo, &fakeNotifRepo{})

	sender, _ := users.GetByID(context.Background(), 2)
	_, err := svc.Send(context.Background(), sender, &SendMessageRequest{RecipientID: 1, Content: "hey"}, true)
	require.NoError(t, err)

	messages, total, err := svc.Thread(context.Background(), 1, 2, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)

	unread, err := repo.CountUnreadFrom(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestConversationsBuildsInbox(t *testing.T) {
	users := newFakeUserRepo(
		&auth.User{ID: 1},
		&auth.User{ID: 2, FirstName: "Ada"},
		&auth.User{ID: 3, FirstName: "Ben"},
	)
	repo := &fakeMessageRepo{}
	svc := newChatService(users, repo, &fakeNotifRepo{})

	ada, _ := users.GetByID(context.Background(), 2)
	ben, _ := users.GetByID(context.Background(), 3)

	_, err := svc.Send(context.Background(), ada, &SendMessageRequest{RecipientID: 1, Content: "first"}, true)
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), ada, &SendMessageRequest{RecipientID: 1, Content: "second"}, true)
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), ben, &SendMessageRequest{RecipientID: 1, Content: "later"}, true)
	require.NoError(t, err)

	conversations, err := svc.Conversations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Most recent conversation first.
	assert.Equal(t, "Ben", conversations[0].Partner["firstName"])
	assert.Equal(t, "later", conversations[0].LastMessage.Content)
	assert.Equal(t, int64(1), conversations[0].UnreadCount)

	assert.Equal(t, "Ada", conversations[1].Partner["firstName"])
	assert.Equal(t, "second", conversations[1].LastMessage.Content)
	assert.Equal(t, int64(2), conversations[1].UnreadCount)
}

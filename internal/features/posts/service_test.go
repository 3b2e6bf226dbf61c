package posts

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
	"github.com/tunespace/tunespace-api/internal/features/moderation"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/pkg/audiomatch"
	"github.com/tunespace/tunespace-api/internal/pkg/mailer"
	"github.com/tunespace/tunespace-api/internal/pkg/push"
	"github.com/tunespace/tunespace-api/internal/pkg/storage"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

type fakePostRepo struct {
	posts  map[uint]*Post
	nextID uint
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uint]*Post), nextID: 1}
}

func (r *fakePostRepo) Create(_ context.Context, post *Post) error {
	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uint) (*Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) List(_ context.Context, filter ListFilter, limit, offset int) ([]Post, int64, error) {
	var out []Post
	for _, p := range r.posts {
		if !filter.IncludeAll && p.Status != StatusActive {
			continue
		}
		if filter.UserID != 0 && p.UserID != filter.UserID {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePostRepo) Update(_ context.Context, id uint, updates map[string]interface{}) error {
	post, ok := r.posts[id]
	if !ok {
		return errors.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "title":
			post.Title = v.(string)
		case "description":
			post.Description = v.(string)
		case "genre":
			post.Genre = v.(string)
		case "status":
			post.Status = v.(string)
		case "copyright_checked":
			post.CopyrightChecked = v.(bool)
		case "copyright_info":
			post.CopyrightInfo = v.(string)
		}
	}
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.posts[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) RemoveByUser(_ context.Context, userID uint) (int64, error) {
	var removed int64
	for _, p := range r.posts {
		if p.UserID == userID && p.Status != StatusRemoved {
			p.Status = StatusRemoved
			removed++
		}
	}
	return removed, nil
}

func (r *fakePostRepo) ListUnchecked(_ context.Context, limit int) ([]Post, error) {
	var out []Post
	for _, p := range r.posts {
		if !p.CopyrightChecked && p.Status != StatusRemoved {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) IncrementPlayCount(_ context.Context, id uint) error {
	if p, ok := r.posts[id]; ok {
		p.PlayCount++
	}
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]*auth.User
}

func newFakeUserRepo(users ...*auth.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*auth.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error { return nil }

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	return nil, errors.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Update(context.Context, uint, map[string]interface{}) error { return nil }

func (r *fakeUserRepo) ClearRestriction(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.RestrictionType = nil
		u.RestrictionExpiresAt = nil
	}
	return nil
}

func (r *fakeUserRepo) GetAdmins(context.Context) ([]auth.User, error) { return nil, nil }

type fakeModRepo struct {
	strikes map[uint]int
}

func (r *fakeModRepo) IncrementStrikes(_ context.Context, userID uint) (int, error) {
	r.strikes[userID]++
	return r.strikes[userID], nil
}
func (r *fakeModRepo) MarkUnderReview(context.Context, uint) (bool, error) { return true, nil }
func (r *fakeModRepo) ApplyRestriction(context.Context, uint, string, *time.Time) error {
	return nil
}
func (r *fakeModRepo) ClearModeration(context.Context, uint, bool) error { return nil }
func (r *fakeModRepo) ListUnderReview(context.Context, int, int) ([]auth.User, int64, error) {
	return nil, 0, nil
}

type fakeNotifRepo struct{ mu sync.Mutex }

func (r *fakeNotifRepo) Create(context.Context, *notifications.Notification) error { return nil }
func (r *fakeNotifRepo) ListByUser(context.Context, uint, int, int) ([]notifications.Notification, int64, error) {
	return nil, 0, nil
}
func (r *fakeNotifRepo) CountUnread(context.Context, uint) (int64, error) { return 0, nil }
func (r *fakeNotifRepo) MarkRead(context.Context, uint, uint) error       { return nil }
func (r *fakeNotifRepo) MarkAllRead(context.Context, uint) error          { return nil }

type fakeDetector struct {
	result *audiomatch.Result
	err    error
}

func (d *fakeDetector) Detect(context.Context, string) (*audiomatch.Result, error) {
	return d.result, d.err
}

func newTestService(t *testing.T, users *fakeUserRepo, detector audiomatch.Detector) (*Service, *fakePostRepo, *fakeModRepo) {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	modRepo := &fakeModRepo{strikes: make(map[uint]int)}
	notifier := notifications.NewService(&fakeNotifRepo{}, users, mailer.NoopSender{}, push.NoopSender{})
	mod := moderation.NewService(modRepo, users, notifier)

	postRepo := newFakePostRepo()
	return NewService(postRepo, users, store, detector, mod), postRepo, modRepo
}

func TestCreateCleanUpload(t *testing.T) {
	user := &auth.User{ID: 3, Email: "creator@example.com"}
	users := newFakeUserRepo(user)
	svc, _, modRepo := newTestService(t, users, &fakeDetector{result: &audiomatch.Result{Matched: false}})

	post, err := svc.Create(context.Background(), user, &Post{Title: "Original Song", AudioFile: "audio/x.mp3"})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, post.Status)
	assert.True(t, post.CopyrightChecked)
	assert.Empty(t, post.CopyrightInfo)
	assert.Equal(t, 0, modRepo.strikes[3])
}

func TestCreateMatchedUploadFlagsAndStrikes(t *testing.T) {
	user := &auth.User{ID: 3, Email: "creator@example.com"}
	users := newFakeUserRepo(user)
	detector := &fakeDetector{result: &audiomatch.Result{
		Matched: true, Title: "Hit Song", Artist: "Famous Artist", Album: "Greatest Hits", Score: 0.97,
	}}
	svc, _, modRepo := newTestService(t, users, detector)

	post, err := svc.Create(context.Background(), user, &Post{Title: "Totally Mine", AudioFile: "audio/x.mp3"})
	require.NoError(t, err)

	assert.Equal(t, StatusFlagged, post.Status)
	assert.True(t, post.CopyrightChecked)
	assert.Contains(t, post.CopyrightInfo, "Hit Song")
	assert.Equal(t, 1, modRepo.strikes[3])
}

func TestCreateDetectionFailureLeavesPostUnchecked(t *testing.T) {
	user := &auth.User{ID: 3, Email: "creator@example.com"}
	users := newFakeUserRepo(user)
	svc, _, modRepo := newTestService(t, users, &fakeDetector{err: context.DeadlineExceeded})

	post, err := svc.Create(context.Background(), user, &Post{Title: "My Song", AudioFile: "audio/x.mp3"})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, post.Status)
	assert.False(t, post.CopyrightChecked)
	assert.Equal(t, 0, modRepo.strikes[3])
}

func TestCreateBlockedWhileUnderReview(t *testing.T) {
	user := &auth.User{ID: 3, Email: "creator@example.com", UnderReview: true}
	users := newFakeUserRepo(user)
	svc, _, _ := newTestService(t, users, &fakeDetector{result: &audiomatch.Result{}})

	_, err := svc.Create(context.Background(), user, &Post{Title: "My Song", AudioFile: "audio/x.mp3"})
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestCreateBlockedByWarning(t *testing.T) {
	typ := auth.RestrictionWarning
	future := time.Now().Add(24 * time.Hour)
	user := &auth.User{ID: 3, Email: "creator@example.com", RestrictionType: &typ, RestrictionExpiresAt: &future}
	users := newFakeUserRepo(user)
	svc, _, _ := newTestService(t, users, &fakeDetector{result: &audiomatch.Result{}})

	_, err := svc.Create(context.Background(), user, &Post{Title: "My Song", AudioFile: "audio/x.mp3"})
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestCreateClearsExpiredRestriction(t *testing.T) {
	typ := auth.RestrictionSuspended
	past := time.Now().Add(-time.Hour)
	user := &auth.User{ID: 3, Email: "creator@example.com", RestrictionType: &typ, RestrictionExpiresAt: &past}
	users := newFakeUserRepo(user)
	svc, _, _ := newTestService(t, users, &fakeDetector{result: &audiomatch.Result{}})

	post, err := svc.Create(context.Background(), user, &Post{Title: "My Song", AudioFile: "audio/x.mp3"})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, post.Status)
	assert.Nil(t, user.RestrictionType)
}

func TestRecheckUncheckedProcessesBatch(t *testing.T) {
	user := &auth.User{ID: 3, Email: "creator@example.com"}
	users := newFakeUserRepo(user)
	svc, postRepo, _ := newTestService(t, users, &fakeDetector{result: &audiomatch.Result{Matched: false}})

	postRepo.Create(context.Background(), &Post{UserID: 3, Title: "A", AudioFile: "audio/a.mp3", Status: StatusActive})
	postRepo.Create(context.Background(), &Post{UserID: 3, Title: "B", AudioFile: "audio/b.mp3", Status: StatusActive})

	checked, err := svc.RecheckUnchecked(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, checked)

	for _, id := range []uint{1, 2} {
		post, err := postRepo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, post.CopyrightChecked)
	}
}

func TestUpdateOnlyOwner(t *testing.T) {
	user := &auth.User{ID: 3, Email: "creator@example.com"}
	users := newFakeUserRepo(user)
	svc, postRepo, _ := newTestService(t, users, &fakeDetector{result: &audiomatch.Result{}})

	postRepo.Create(context.Background(), &Post{UserID: 3, Title: "Mine", AudioFile: "audio/a.mp3", Status: StatusActive})

	_, err := svc.Update(context.Background(), 99, 1, &UpdatePostRequest{})
	assert.ErrorIs(t, err, errors.ErrForbidden)

	title := "Renamed"
	updated, err := svc.Update(context.Background(), 3, 1, &UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteOwnerAndAdmin(t *testing.T) {
	owner := &auth.User{ID: 3, Email: "creator@example.com"}
	admin := &auth.User{ID: 1, Email: "admin@example.com", Role: auth.RoleAdmin}
	stranger := &auth.User{ID: 9, Email: "other@example.com"}
	users := newFakeUserRepo(owner, admin, stranger)
	svc, postRepo, _ := newTestService(t, users, &fakeDetector{result: &audiomatch.Result{}})

	postRepo.Create(context.Background(), &Post{UserID: 3, Title: "A", AudioFile: "audio/a.mp3", Status: StatusActive})
	postRepo.Create(context.Background(), &Post{UserID: 3, Title: "B", AudioFile: "audio/b.mp3", Status: StatusActive})

	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, 1), errors.ErrForbidden)
	assert.NoError(t, svc.Delete(context.Background(), owner, 1))
	assert.NoError(t, svc.Delete(context.Background(), admin, 2))
}

func TestCreateMatchedUploadCapsStoredDetail(t *testing.T) {
	user := &auth.User{ID: 3, Email: "creator@example.com"}
	users := newFakeUserRepo(user)
	detector := &fakeDetector{result: &audiomatch.Result{
		Matched: true, Title: strings.Repeat("é", 3000), Artist: "Famous Artist", Score: 0.97,
	}}
	svc, _, _ := newTestService(t, users, detector)

	post, err := svc.Create(context.Background(), user, &Post{Title: "Totally Mine", AudioFile: "audio/x.mp3"})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(post.CopyrightInfo), maxCopyrightInfoBytes)
	assert.True(t, utf8.ValidString(post.CopyrightInfo))
}

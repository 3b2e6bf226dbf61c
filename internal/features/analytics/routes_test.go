package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/pkg/token"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	users map[uint]*auth.User
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

func (r *fakeUserRepo) Update(context.Context, uint, map[string]interface{}) error { return nil }
func (r *fakeUserRepo) ClearRestriction(context.Context, uint) error               { return nil }
func (r *fakeUserRepo) GetAdmins(context.Context) ([]auth.User, error)             { return nil, nil }

func newTrackRouter(t *testing.T, repo *fakeAnalyticsRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &fakeUserRepo{users: map[uint]*auth.User{
		42: {ID: 42, Email: "listener@example.com"},
	}}
	mw := auth.NewMiddleware(users, testSecret)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1"), NewHandler(NewService(repo)), mw)
	return engine
}

func trackPlay(t *testing.T, engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/track/play",
		strings.NewReader(`{"creatorId":9,"postId":3}`))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestTrackAttributesBearerToken(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	engine := newTrackRouter(t, repo)

	signed, err := token.Generate(42, "listener@example.com", auth.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)

	rec := trackPlay(t, engine, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, repo.engagements, 1)
	assert.Equal(t, uint(42), repo.engagements[0].UserID)
	assert.Equal(t, uint(9), repo.engagements[0].CreatorID)
}

func TestTrackWithoutTokenStaysAnonymous(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	engine := newTrackRouter(t, repo)

	rec := trackPlay(t, engine, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, repo.engagements, 1)
	assert.Equal(t, uint(0), repo.engagements[0].UserID)
}

func TestTrackWithBadTokenStillRecordsAnonymously(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	engine := newTrackRouter(t, repo)

	rec := trackPlay(t, engine, "Bearer not-a-token")
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, repo.engagements, 1)
	assert.Equal(t, uint(0), repo.engagements[0].UserID)
}

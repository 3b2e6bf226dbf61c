package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tunespace/tunespace-api/internal/pkg/mailer"
	"github.com/tunespace/tunespace-api/internal/pkg/token"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

type memoryUserRepo struct {
	nextID  uint
	users   map[uint]*User
	updates map[uint]map[string]interface{}
	cleared []uint
}

func newMemoryUserRepo(users ...*User) *memoryUserRepo {
	r := &memoryUserRepo{
		users:   make(map[uint]*User),
		updates: make(map[uint]map[string]interface{}),
	}
	for _, u := range users {
		if u.ID == 0 {
			r.nextID++
			u.ID = r.nextID
		} else if u.ID > r.nextID {
			r.nextID = u.ID
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *memoryUserRepo) Create(_ context.Context, user *User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return errors.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (r *memoryUserRepo) GetByID(_ context.Context, id uint) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepo) Update(_ context.Context, id uint, updates map[string]interface{}) error {
	if _, ok := r.users[id]; !ok {
		return errors.ErrNotFound
	}
	if r.updates[id] == nil {
		r.updates[id] = map[string]interface{}{}
	}
	for k, v := range updates {
		r.updates[id][k] = v
	}
	return nil
}

func (r *memoryUserRepo) ClearRestriction(_ context.Context, id uint) error {
	if u, ok := r.users[id]; ok {
		u.RestrictionType = nil
		u.RestrictionExpiresAt = nil
	}
	r.cleared = append(r.cleared, id)
	return nil
}

func (r *memoryUserRepo) GetAdmins(_ context.Context) ([]User, error) {
	var admins []User
	for _, u := range r.users {
		if u.Role == RoleAdmin {
			admins = append(admins, *u)
		}
	}
	return admins, nil
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func newAuthService(repo Repository) *Service {
	return NewService(repo, mailer.NoopSender{}, "test-secret", time.Hour)
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), &RegisterRequest{
		Email:     "new@example.com",
		Password:  "sekret123",
		FirstName: "Ada",
		LastName:  "Reyes",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, RoleUser, user.Role)
	assert.False(t, user.IsVerified)
	assert.Len(t, user.VerifyCode, 6)
	assert.NotEqual(t, "sekret123", user.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("sekret123")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newMemoryUserRepo(&User{Email: "taken@example.com"})
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "taken@example.com",
		Password: "sekret123",
	})
	assert.ErrorIs(t, err, errors.ErrDuplicate)
}

func TestLoginReturnsSignedToken(t *testing.T) {
	repo := newMemoryUserRepo(&User{
		Email:    "ada@example.com",
		Password: hashPassword(t, "sekret123"),
		Role:     RoleCreator,
	})
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "sekret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := token.Validate(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, RoleCreator, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newMemoryUserRepo(&User{
		Email:    "ada@example.com",
		Password: hashPassword(t, "sekret123"),
	})
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "sekret123"})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestLoginBlockedWhileSuspended(t *testing.T) {
	expires := time.Now().Add(48 * time.Hour)
	restriction := RestrictionSuspended
	repo := newMemoryUserRepo(&User{
		Email:                "ada@example.com",
		Password:             hashPassword(t, "sekret123"),
		RestrictionType:      &restriction,
		RestrictionExpiresAt: &expires,
	})
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "sekret123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrForbidden)
	assert.Contains(t, err.Error(), "suspended until")
}

func TestLoginClearsExpiredSuspension(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	restriction := RestrictionSuspended
	user := &User{
		Email:                "ada@example.com",
		Password:             hashPassword(t, "sekret123"),
		RestrictionType:      &restriction,
		RestrictionExpiresAt: &expired,
	}
	repo := newMemoryUserRepo(user)
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "sekret123"})
	require.NoError(t, err)
	assert.Nil(t, resp.User.RestrictionType)
	assert.Contains(t, repo.cleared, user.ID)
}

func TestLoginAllowedUnderWarning(t *testing.T) {
	restriction := RestrictionWarning
	repo := newMemoryUserRepo(&User{
		Email:           "ada@example.com",
		Password:        hashPassword(t, "sekret123"),
		RestrictionType: &restriction,
	})
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "sekret123"})
	assert.NoError(t, err, "a warning does not block login")
}

func TestVerifyEmail(t *testing.T) {
	repo := newMemoryUserRepo(&User{
		Email:      "ada@example.com",
		VerifyCode: "123456",
	})
	svc := newAuthService(repo)

	_, err := svc.VerifyEmail(context.Background(), &VerifyRequest{Email: "ada@example.com", Code: "000000"})
	require.Error(t, err)

	user, err := svc.VerifyEmail(context.Background(), &VerifyRequest{Email: "ada@example.com", Code: "123456"})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.VerifyCode)
}

func TestVerifyEmailIdempotentWhenVerified(t *testing.T) {
	repo := newMemoryUserRepo(&User{
		Email:      "ada@example.com",
		IsVerified: true,
	})
	svc := newAuthService(repo)

	user, err := svc.VerifyEmail(context.Background(), &VerifyRequest{Email: "ada@example.com", Code: "anything"})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	repo := newMemoryUserRepo(&User{Email: "ada@example.com", FirstName: "Ada"})
	svc := newAuthService(repo)

	last := "Reyes"
	device := "fcm-token"
	_, err := svc.UpdateProfile(context.Background(), 1, &UpdateProfileRequest{
		LastName:    &last,
		DeviceToken: &device,
	})
	require.NoError(t, err)

	updates := repo.updates[1]
	assert.Equal(t, "Reyes", updates["last_name"])
	assert.Equal(t, "fcm-token", updates["device_token"])
	assert.NotContains(t, updates, "first_name")
}

func TestUpdateProfileNoFieldsIsNoop(t *testing.T) {
	repo := newMemoryUserRepo(&User{Email: "ada@example.com"})
	svc := newAuthService(repo)

	user, err := svc.UpdateProfile(context.Background(), 1, &UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Empty(t, repo.updates[1])
}

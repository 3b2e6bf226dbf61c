package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/internal/pkg/mailer"
	"github.com/tunespace/tunespace-api/internal/pkg/token"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

// Service handles registration, login and profile management.
type Service struct {
	repo      Repository
	mail      mailer.Sender
	jwtSecret string
	jwtExpiry time.Duration
	now       func() time.Time
}

func NewService(repo Repository, mail mailer.Sender, jwtSecret string, jwtExpiry time.Duration) *Service {
	return &Service{
		repo:      repo,
		mail:      mail,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		now:       time.Now,
	}
}

// Register creates an unverified user and emails a verification code.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.ErrDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := generateVerifyCode()
	if err != nil {
		return nil, fmt.Errorf("generate verify code: %w", err)
	}

	user := &User{
		Email:       req.Email,
		Password:    string(hashed),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
		Role:        RoleUser,
		VerifyCode:  code,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Email delivery must not block or fail registration.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mail.SendVerificationCode(ctx, user.Email, code); err != nil {
			logger.Error("send verification code to %s: %v", user.Email, err)
		}
	}()

	return user, nil
}

// Login authenticates a user and returns a signed access token. A user whose
// active restriction blocks login is rejected; an expired restriction is
// cleared on the spot before the check.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.ErrUnauthorized
	}

	now := s.now()
	if user.RestrictionExpired(now) {
		user.ClearRestrictionFields()
		if err := s.repo.ClearRestriction(ctx, user.ID); err != nil {
			logger.Error("clear expired restriction for user %d: %v", user.ID, err)
		}
	}

	if user.RestrictionBlocksCapability(CapabilityLogin, now) {
		if user.RestrictionExpiresAt != nil {
			return nil, fmt.Errorf("account suspended until %s: %w",
				user.RestrictionExpiresAt.Format(time.RFC3339), errors.ErrForbidden)
		}
		return nil, fmt.Errorf("account suspended: %w", errors.ErrForbidden)
	}

	accessToken, err := token.Generate(user.ID, user.Email, user.Role, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}

// VerifyEmail marks the account verified when the submitted code matches.
func (s *Service) VerifyEmail(ctx context.Context, req *VerifyRequest) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return user, nil
	}
	if user.VerifyCode == "" || user.VerifyCode != req.Code {
		return nil, errors.NewValidation("invalid verification code")
	}

	if err := s.repo.Update(ctx, user.ID, map[string]interface{}{
		"is_verified": true,
		"verify_code": "",
	}); err != nil {
		return nil, err
	}
	user.IsVerified = true
	user.VerifyCode = ""
	return user, nil
}

// GetProfile returns a user by id, lazily clearing an expired restriction.
func (s *Service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RestrictionExpired(s.now()) {
		user.ClearRestrictionFields()
		if err := s.repo.ClearRestriction(ctx, user.ID); err != nil {
			logger.Error("clear expired restriction for user %d: %v", user.ID, err)
		}
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of the request.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.DeviceToken != nil {
		updates["device_token"] = *req.DeviceToken
	}
	if len(updates) == 0 {
		return s.repo.GetByID(ctx, userID)
	}

	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfilePicture stores the new picture path on the user.
func (s *Service) UpdateProfilePicture(ctx context.Context, userID uint, path string) (*User, error) {
	if err := s.repo.Update(ctx, userID, map[string]interface{}{"profile_picture": path}); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

func generateVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

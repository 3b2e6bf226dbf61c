package moderation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/pkg/errors"
)

// Repository performs the moderation mutations on user rows. The strike
// increment and the review flag are written with guarded SQL so concurrent
// detections never lose a strike or double-trigger the review transition.
type Repository interface {
	IncrementStrikes(ctx context.Context, userID uint) (int, error)
	MarkUnderReview(ctx context.Context, userID uint) (bool, error)
	ApplyRestriction(ctx context.Context, userID uint, restrictionType string, expiresAt *time.Time) error
	ClearModeration(ctx context.Context, userID uint, resetStrikes bool) error
	ListUnderReview(ctx context.Context, limit, offset int) ([]auth.User, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// IncrementStrikes bumps the counter atomically in the database and returns
// the new value. Two concurrent detections both land: the increment is a
// single UPDATE, not a read-modify-write.
func (r *repository) IncrementStrikes(ctx context.Context, userID uint) (int, error) {
	var strikes int
	res := r.db.WithContext(ctx).Raw(
		`UPDATE users SET copyright_strikes = copyright_strikes + 1, updated_at = NOW()
		 WHERE id = ? RETURNING copyright_strikes`, userID,
	).Scan(&strikes)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, errors.ErrNotFound
	}
	return strikes, nil
}

// MarkUnderReview flips the review flag and reports whether this call was the
// one that flipped it. The WHERE guard makes the transition happen exactly
// once even when several strikes cross the threshold together.
func (r *repository) MarkUnderReview(ctx context.Context, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&auth.User{}).
		Where("id = ? AND under_review = ?", userID, false).
		Update("under_review", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ApplyRestriction(ctx context.Context, userID uint, restrictionType string, expiresAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&auth.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"restriction_type":       restrictionType,
			"restriction_expires_at": expiresAt,
			"under_review":           false,
		}).Error
}

// ClearModeration removes the restriction and review flag; resetStrikes also
// zeroes the counter (a full pardon rather than a lifted restriction).
func (r *repository) ClearModeration(ctx context.Context, userID uint, resetStrikes bool) error {
	updates := map[string]interface{}{
		"restriction_type":       nil,
		"restriction_expires_at": nil,
		"under_review":           false,
	}
	if resetStrikes {
		updates["copyright_strikes"] = 0
	}
	return r.db.WithContext(ctx).Model(&auth.User{}).Where("id = ?", userID).
		Updates(updates).Error
}

func (r *repository) ListUnderReview(ctx context.Context, limit, offset int) ([]auth.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&auth.User{}).Where("under_review = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []auth.User
	err := q.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

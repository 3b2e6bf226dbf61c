package payments

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"github.com/tunespace/tunespace-api/pkg/errors"
)

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	GetByReference(ctx context.Context, reference string) (*Payment, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]Payment, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]Payment, int64, error)
	ListPending(ctx context.Context, limit int) ([]Payment, error)
	MarkPaid(ctx context.Context, id uint, paidAt time.Time) error
	DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error)
	UnclaimedFees(ctx context.Context) (int64, error)
	ClaimFees(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).Preload("User").Preload("Creator").First(&payment, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) GetByReference(ctx context.Context, reference string) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).Preload("User").Preload("Creator").
		Where("reference = ?", reference).First(&payment).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]Payment, int64, error) {
	q := r.db.WithContext(ctx).Model(&Payment{}).
		Where("user_id = ? OR creator_id = ?", userID, userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []Payment
	err := q.Preload("User").Preload("Creator").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *repository) ListAll(ctx context.Context, limit, offset int) ([]Payment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []Payment
	err := r.db.WithContext(ctx).Preload("User").Preload("Creator").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *repository) ListPending(ctx context.Context, limit int) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).Where("status = ?", StatusPending).
		Order("created_at ASC").Limit(limit).Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// MarkPaid only transitions pending rows, so a poll and a status check
// racing each other cannot record the payment twice.
func (r *repository) MarkPaid(ctx context.Context, id uint, paidAt time.Time) error {
	return r.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{"status": StatusPaid, "paid_at": paidAt}).Error
}

func (r *repository) DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", StatusPending, cutoff).
		Delete(&Payment{})
	return res.RowsAffected, res.Error
}

func (r *repository) UnclaimedFees(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Payment{}).
		Where("status = ? AND is_fee_claimed = ?", StatusPaid, false).
		Select("COALESCE(SUM(admin_fee_cents), 0)").Scan(&total).Error
	return total, err
}

// ClaimFees marks all unclaimed fees on paid payments as claimed and returns
// the total claimed amount. Runs in a transaction so a payment cannot slip in
// between the sum and the update.
func (r *repository) ClaimFees(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Payment{}).
			Where("status = ? AND is_fee_claimed = ?", StatusPaid, false).
			Select("COALESCE(SUM(admin_fee_cents), 0)").Scan(&total).Error
		if err != nil {
			return err
		}
		return tx.Model(&Payment{}).
			Where("status = ? AND is_fee_claimed = ?", StatusPaid, false).
			Update("is_fee_claimed", true).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

package admin

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/payments"
	"github.com/tunespace/tunespace-api/internal/features/posts"
	"github.com/tunespace/tunespace-api/internal/features/reports"
)

// Repository aggregates cross-feature counts for the dashboard and owns the
// daily platform rollups.
type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
	UpsertRollup(ctx context.Context, rollup *AppAnalytics) error
	RollupRange(ctx context.Context, from, to time.Time) ([]AppAnalytics, error)
	DailyCounts(ctx context.Context, dayStart, dayEnd time.Time) (*AppAnalytics, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Overview(ctx context.Context) (*Overview, error) {
	db := r.db.WithContext(ctx)
	var o Overview

	if err := db.Model(&auth.User{}).Count(&o.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&auth.User{}).Where("role = ?", auth.RoleCreator).Count(&o.TotalCreators).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&auth.User{}).Where("under_review = ?", true).Count(&o.UnderReview).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&posts.Post{}).Count(&o.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&posts.Post{}).Where("status = ?", posts.StatusFlagged).Count(&o.FlaggedPosts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&reports.Report{}).Where("status = ?", reports.StatusPending).Count(&o.PendingReports).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&payments.Payment{}).Where("status = ?", payments.StatusPaid).Count(&o.TotalPayments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&payments.Payment{}).Where("status = ?", payments.StatusPaid).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&o.RevenueCents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&payments.Payment{}).
		Where("status = ? AND is_fee_claimed = ?", payments.StatusPaid, false).
		Select("COALESCE(SUM(admin_fee_cents), 0)").Scan(&o.UnclaimedFees).Error; err != nil {
		return nil, err
	}

	return &o, nil
}

// UpsertRollup writes the day's rollup, replacing an existing row so the job
// can be re-run for the same day safely.
func (r *repository) UpsertRollup(ctx context.Context, rollup *AppAnalytics) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"new_users", "new_posts", "plays", "profile_views",
			"payments_count", "revenue_cents", "fee_cents",
		}),
	}).Create(rollup).Error
}

func (r *repository) RollupRange(ctx context.Context, from, to time.Time) ([]AppAnalytics, error) {
	var rows []AppAnalytics
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyCounts computes the raw numbers for one day from the source tables.
func (r *repository) DailyCounts(ctx context.Context, dayStart, dayEnd time.Time) (*AppAnalytics, error) {
	db := r.db.WithContext(ctx)
	rollup := &AppAnalytics{Date: dayStart}

	if err := db.Model(&auth.User{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&rollup.NewUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&posts.Post{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&rollup.NewPosts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&payments.Payment{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", payments.StatusPaid, dayStart, dayEnd).
		Count(&rollup.PaymentsCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&payments.Payment{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", payments.StatusPaid, dayStart, dayEnd).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&rollup.RevenueCents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&payments.Payment{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", payments.StatusPaid, dayStart, dayEnd).
		Select("COALESCE(SUM(admin_fee_cents), 0)").Scan(&rollup.FeeCents).Error; err != nil {
		return nil, err
	}

	return rollup, nil
}

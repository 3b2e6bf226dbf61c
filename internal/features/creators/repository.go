package creators

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/tunespace/tunespace-api/pkg/errors"
)

type Repository interface {
	Upsert(ctx context.Context, profile *CreatorProfile) error
	GetByUserID(ctx context.Context, userID uint) (*CreatorProfile, error)
	GetByID(ctx context.Context, id uint) (*CreatorProfile, error)
	Browse(ctx context.Context, filter BrowseFilter, limit, offset int) ([]CreatorProfile, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, profile *CreatorProfile) error {
	var existing CreatorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(profile).Error
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(profile).Error
	default:
		return err
	}
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) (*CreatorProfile, error) {
	var profile CreatorProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*CreatorProfile, error) {
	var profile CreatorProfile
	err := r.db.WithContext(ctx).Preload("User").First(&profile, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) Browse(ctx context.Context, filter BrowseFilter, limit, offset int) ([]CreatorProfile, int64, error) {
	q := r.db.WithContext(ctx).Model(&CreatorProfile{})
	if filter.Genre != "" {
		q = q.Where("genre ILIKE ?", filter.Genre)
	}
	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("stage_name ILIKE ? OR bio ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []CreatorProfile
	err := q.Preload("User").Order("created_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

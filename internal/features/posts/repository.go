package posts

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/tunespace/tunespace-api/pkg/errors"
)

type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id uint) (*Post, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Post, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	RemoveByUser(ctx context.Context, userID uint) (int64, error)
	ListUnchecked(ctx context.Context, limit int) ([]Post, error)
	IncrementPlayCount(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, post *Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Post, error) {
	var post Post
	err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&Post{})
	if !filter.IncludeAll {
		q = q.Where("status = ?", StatusActive)
	}
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Genre != "" {
		q = q.Where("genre ILIKE ?", filter.Genre)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []Post
	err := q.Preload("User").Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *repository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// RemoveByUser takes down every visible post belonging to the user.
func (r *repository) RemoveByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Post{}).
		Where("user_id = ? AND status != ?", userID, StatusRemoved).
		Update("status", StatusRemoved)
	return res.RowsAffected, res.Error
}

// ListUnchecked returns posts that have not been through copyright detection
// yet, oldest first. The recheck job works through these in batches.
func (r *repository) ListUnchecked(ctx context.Context, limit int) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("copyright_checked = ? AND status != ?", false, StatusRemoved).
		Order("created_at ASC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repository) IncrementPlayCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).
		UpdateColumn("play_count", gorm.Expr("play_count + 1")).Error
}

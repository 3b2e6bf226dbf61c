package ratings

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(ctx context.Context, rating *Rating) error
	GetByCreatorAndRater(ctx context.Context, creatorID, raterID uint) (*Rating, error)
	ListByCreator(ctx context.Context, creatorID uint, limit, offset int) ([]Rating, int64, error)
	SummaryForCreator(ctx context.Context, creatorID uint) (*Summary, error)
	Delete(ctx context.Context, creatorID, raterID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts or replaces the rater's rating for the creator. The unique
// index on (creator_id, rater_id) makes the one-rating-per-pair rule hold
// under concurrent submissions.
func (r *repository) Upsert(ctx context.Context, rating *Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "creator_id"}, {Name: "rater_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "updated_at"}),
	}).Create(rating).Error
}

func (r *repository) GetByCreatorAndRater(ctx context.Context, creatorID, raterID uint) (*Rating, error) {
	var rating Rating
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND rater_id = ?", creatorID, raterID).First(&rating).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *repository) ListByCreator(ctx context.Context, creatorID uint, limit, offset int) ([]Rating, int64, error) {
	q := r.db.WithContext(ctx).Model(&Rating{}).Where("creator_id = ?", creatorID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []Rating
	err := q.Preload("Rater").Order("created_at DESC").Limit(limit).Offset(offset).Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *repository) SummaryForCreator(ctx context.Context, creatorID uint) (*Summary, error) {
	var summary Summary
	err := r.db.WithContext(ctx).Model(&Rating{}).
		Where("creator_id = ?", creatorID).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *repository) Delete(ctx context.Context, creatorID, raterID uint) error {
	return r.db.WithContext(ctx).
		Where("creator_id = ? AND rater_id = ?", creatorID, raterID).Delete(&Rating{}).Error
}

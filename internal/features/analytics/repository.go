package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateEngagement(ctx context.Context, e *Engagement) error
	IncrementRollup(ctx context.Context, creatorID uint, date time.Time, typ string) error
	RollupsForCreator(ctx context.Context, creatorID uint, from, to time.Time) ([]AnalyticsData, error)
	CountEngagements(ctx context.Context, typ string, from, to time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateEngagement(ctx context.Context, e *Engagement) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// IncrementRollup bumps the daily counter for (creator, date, type),
// inserting the row on first sight. The conflict clause makes concurrent
// events from the same day accumulate instead of erroring.
func (r *repository) IncrementRollup(ctx context.Context, creatorID uint, date time.Time, typ string) error {
	row := &AnalyticsData{
		CreatorID: creatorID,
		Date:      date,
		Type:      typ,
		Count:     1,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "creator_id"}, {Name: "date"}, {Name: "type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("analytics_data.count + 1"),
		}),
	}).Create(row).Error
}

func (r *repository) RollupsForCreator(ctx context.Context, creatorID uint, from, to time.Time) ([]AnalyticsData, error) {
	var rows []AnalyticsData
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND date >= ? AND date <= ?", creatorID, from, to).
		Order("date ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CountEngagements(ctx context.Context, typ string, from, to time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&Engagement{}).
		Where("created_at >= ? AND created_at < ?", from, to)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

package chat

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, msg *Message) error
	Thread(ctx context.Context, userID, partnerID uint, limit, offset int) ([]Message, int64, error)
	PartnerIDs(ctx context.Context, userID uint) ([]uint, error)
	LastMessage(ctx context.Context, userID, partnerID uint) (*Message, error)
	CountUnreadFrom(ctx context.Context, userID, partnerID uint) (int64, error)
	MarkThreadRead(ctx context.Context, userID, partnerID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repository) Thread(ctx context.Context, userID, partnerID uint, limit, offset int) ([]Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&Message{}).Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userID, partnerID, partnerID, userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []Message
	err := q.Preload("Sender").Preload("Recipient").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// PartnerIDs returns the distinct users the given user has exchanged
// messages with, most recent conversation first.
func (r *repository) PartnerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Raw(
		`SELECT partner FROM (
			SELECT CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS partner,
			       MAX(created_at) AS last_at
			FROM messages
			WHERE sender_id = ? OR recipient_id = ?
			GROUP BY partner
		) t ORDER BY last_at DESC`,
		userID, userID, userID,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) LastMessage(ctx context.Context, userID, partnerID uint) (*Message, error) {
	var msg Message
	err := r.db.WithContext(ctx).Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userID, partnerID, partnerID, userID).
		Order("created_at DESC").First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *repository) CountUnreadFrom(ctx context.Context, userID, partnerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", partnerID, userID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkThreadRead(ctx context.Context, userID, partnerID uint) error {
	return r.db.WithContext(ctx).Model(&Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", partnerID, userID, false).
		Update("is_read", true).Error
}

package notifications

import "time"

// Notification types used across the features.
const (
	TypeCopyrightStrike = "copyright_strike"
	TypeUnderReview     = "under_review"
	TypeModeration      = "moderation"
	TypePayment         = "payment"
	TypeMessage         = "message"
	TypeRating          = "rating"
	TypeReport          = "report"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Type      string    `gorm:"size:40;not null" json:"type"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"size:1000" json:"body"`
	IsRead    bool      `gorm:"default:false;not null" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

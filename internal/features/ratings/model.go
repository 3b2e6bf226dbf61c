package ratings

import (
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// Rating is one user's score for a creator. A rater has at most one rating
// per creator; submitting again overwrites the previous score.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatorID uint      `gorm:"uniqueIndex:idx_creator_rater;not null" json:"creatorId"`
	RaterID   uint      `gorm:"uniqueIndex:idx_creator_rater;not null" json:"raterId"`
	Rater     auth.User `gorm:"foreignKey:RaterID" json:"rater"`
	Score     int       `gorm:"not null" json:"score"`
	Comment   string    `gorm:"size:1000" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RateRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=1000"`
}

// Summary is the aggregate shown on a creator profile.
type Summary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

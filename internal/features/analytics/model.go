package analytics

import "time"

// Engagement event types.
const (
	TypeProfileView = "profile_view"
	TypePostPlay    = "post_play"
	TypeShare       = "share"
	TypeSearch      = "search"
)

// Engagement is one raw interaction event. UserID is zero for anonymous
// visitors; SessionID ties events from the same client together.
type Engagement struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"userId,omitempty"`
	CreatorID  uint      `gorm:"index" json:"creatorId,omitempty"`
	PostID     uint      `gorm:"index" json:"postId,omitempty"`
	Type       string    `gorm:"size:30;index;not null" json:"type"`
	DeviceInfo string    `gorm:"size:255" json:"deviceInfo,omitempty"`
	Location   string    `gorm:"size:100" json:"location,omitempty"`
	SessionID  string    `gorm:"size:100;index" json:"sessionId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AnalyticsData is the per-creator daily rollup, one row per
// (creator, date, type), incremented as events arrive.
type AnalyticsData struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatorID uint      `gorm:"uniqueIndex:idx_creator_date_type;not null" json:"creatorId"`
	Date      time.Time `gorm:"uniqueIndex:idx_creator_date_type;type:date;not null" json:"date"`
	Type      string    `gorm:"uniqueIndex:idx_creator_date_type;size:30;not null" json:"type"`
	Count     int64     `gorm:"default:0;not null" json:"count"`
}

func (AnalyticsData) TableName() string { return "analytics_data" }

type TrackRequest struct {
	CreatorID  uint   `json:"creatorId"`
	PostID     uint   `json:"postId"`
	DeviceInfo string `json:"deviceInfo" binding:"omitempty,max=255"`
	Location   string `json:"location" binding:"omitempty,max=100"`
	SessionID  string `json:"sessionId" binding:"omitempty,max=100"`
}

// CreatorSummary aggregates a creator's rollups over a date range.
type CreatorSummary struct {
	CreatorID uint             `json:"creatorId"`
	From      time.Time        `json:"from"`
	To        time.Time        `json:"to"`
	Totals    map[string]int64 `json:"totals"`
	Daily     []AnalyticsData  `json:"daily"`
}

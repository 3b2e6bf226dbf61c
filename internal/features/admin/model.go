package admin

import "time"

// AppAnalytics is the platform-wide daily rollup generated by the analytics
// job, one row per day.
type AppAnalytics struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          time.Time `gorm:"uniqueIndex;type:date;not null" json:"date"`
	NewUsers      int64     `gorm:"default:0;not null" json:"newUsers"`
	NewPosts      int64     `gorm:"default:0;not null" json:"newPosts"`
	Plays         int64     `gorm:"default:0;not null" json:"plays"`
	ProfileViews  int64     `gorm:"default:0;not null" json:"profileViews"`
	PaymentsCount int64     `gorm:"default:0;not null" json:"paymentsCount"`
	RevenueCents  int64     `gorm:"default:0;not null" json:"revenueCents"`
	FeeCents      int64     `gorm:"default:0;not null" json:"feeCents"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (AppAnalytics) TableName() string { return "app_analytics" }

// Overview is the admin dashboard snapshot.
type Overview struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalCreators  int64 `json:"totalCreators"`
	TotalPosts     int64 `json:"totalPosts"`
	FlaggedPosts   int64 `json:"flaggedPosts"`
	UnderReview    int64 `json:"underReview"`
	PendingReports int64 `json:"pendingReports"`
	TotalPayments  int64 `json:"totalPayments"`
	RevenueCents   int64 `json:"revenueCents"`
	UnclaimedFees  int64 `json:"unclaimedFeesCents"`
}

type UpdateFeeRequest struct {
	Percent int `json:"percent" binding:"min=0,max=50"`
}

package reports

import (
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// Report statuses.
const (
	StatusPending   = "pending"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

// Report is a user-submitted complaint about another user or a post, with
// optional image evidence.
type Report struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ReporterID     uint       `gorm:"index;not null" json:"reporterId"`
	Reporter       auth.User  `gorm:"foreignKey:ReporterID" json:"reporter"`
	ReportedUserID uint       `gorm:"index;not null" json:"reportedUserId"`
	ReportedUser   auth.User  `gorm:"foreignKey:ReportedUserID" json:"reportedUser"`
	PostID         uint       `gorm:"index" json:"postId,omitempty"`
	Reason         string     `gorm:"size:100;not null" json:"reason"`
	Description    string     `gorm:"size:2000" json:"description"`
	EvidenceImage  string     `json:"evidenceImage,omitempty"`
	Status         string     `gorm:"size:20;default:'pending';not null" json:"status"`
	AdminComment   string     `gorm:"size:1000" json:"adminComment,omitempty"`
	ResolvedAt     *time.Time `json:"resolvedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type UpdateReportRequest struct {
	Status       string `json:"status" binding:"required,oneof=pending resolved dismissed"`
	AdminComment string `json:"adminComment" binding:"omitempty,max=1000"`
	// RemovePost also takes down the reported post when resolving.
	RemovePost bool `json:"removePost"`
}

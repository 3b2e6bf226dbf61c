package posts

import (
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// Post statuses. Flagged posts stay visible to their owner and admins but
// drop out of the public feed; removed posts are admin takedowns.
const (
	StatusActive  = "active"
	StatusFlagged = "flagged"
	StatusRemoved = "removed"
)

// maxCopyrightInfoBytes caps the stored match detail. Detection services can
// return long metadata blobs; anything past the cap is truncated, never
// rejected.
const maxCopyrightInfoBytes = 2048

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	User        auth.User `gorm:"foreignKey:UserID" json:"user"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	Genre       string    `gorm:"size:100" json:"genre"`
	AudioFile   string    `gorm:"not null" json:"audioFile"`
	CoverImage  string    `json:"coverImage"`
	Status      string    `gorm:"size:20;default:'active';not null" json:"status"`

	CopyrightChecked bool   `gorm:"default:false;not null" json:"copyrightChecked"`
	CopyrightInfo    string `gorm:"size:2048" json:"copyrightInfo,omitempty"`

	PlayCount int       `gorm:"default:0;not null" json:"playCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpdatePostRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Genre       *string `json:"genre" binding:"omitempty,max=100"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active flagged removed"`
}

// ListFilter narrows the public feed.
type ListFilter struct {
	UserID uint
	Genre  string
	Search string
	// IncludeAll lifts the active-only restriction for owners and admins.
	IncludeAll bool
}

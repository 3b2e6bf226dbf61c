package creators

import (
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// CreatorProfile extends a user account with the public storefront shown in
// the marketplace. One profile per user.
type CreatorProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"userId"`
	User        auth.User `gorm:"foreignKey:UserID" json:"user"`
	StageName   string    `gorm:"size:100;not null" json:"stageName"`
	Bio         string    `gorm:"size:2000" json:"bio"`
	Genre       string    `gorm:"size:100" json:"genre"`
	Location    string    `gorm:"size:100" json:"location"`
	Website     string    `gorm:"size:255" json:"website"`
	RateCents   int       `gorm:"default:0" json:"rateCents"`
	CoverImage  string    `json:"coverImage"`
	IsAvailable bool      `gorm:"default:true" json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UpsertProfileRequest struct {
	StageName   string `json:"stageName" binding:"required,max=100"`
	Bio         string `json:"bio" binding:"omitempty,max=2000"`
	Genre       string `json:"genre" binding:"omitempty,max=100"`
	Location    string `json:"location" binding:"omitempty,max=100"`
	Website     string `json:"website" binding:"omitempty,max=255"`
	RateCents   int    `json:"rateCents" binding:"omitempty,min=0"`
	IsAvailable *bool  `json:"isAvailable"`
}

// BrowseFilter narrows the public creator listing.
type BrowseFilter struct {
	Genre    string
	Location string
	Search   string
}

package auth

import (
	"time"
)

// Role values
const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// Restriction types applied by admin moderation decisions.
const (
	RestrictionWarning    = "warning"
	RestrictionSuspended  = "suspended"
	RestrictionRestricted = "restricted"
)

// User represents a registered user in the system.
//
// The moderation fields implement the copyright-strike lifecycle:
// strikes accumulate on detected matches, UnderReview flips at the strike
// threshold, and RestrictionType/RestrictionExpiresAt hold the admin's
// decision. RestrictionExpiresAt is only meaningful while RestrictionType is
// non-nil; expired restrictions are cleared lazily on access, never by a
// background sweep.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"not null" json:"-"`
	FirstName      string     `gorm:"size:100" json:"firstName"`
	LastName       string     `gorm:"size:100" json:"lastName"`
	PhoneNumber    string     `gorm:"size:30" json:"phoneNumber"`
	Address        string     `gorm:"size:255" json:"address"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	ProfilePicture string     `json:"profilePicture"`
	Role           string     `gorm:"size:20;default:'user';not null" json:"role"`
	DeviceToken    string     `gorm:"size:255" json:"-"`

	IsVerified bool   `gorm:"default:false" json:"isVerified"`
	VerifyCode string `gorm:"size:10" json:"-"`

	CopyrightStrikes     int        `gorm:"default:0;not null" json:"copyrightStrikes"`
	UnderReview          bool       `gorm:"default:false;not null" json:"underReview"`
	RestrictionType      *string    `gorm:"size:20" json:"restrictionType"`
	RestrictionExpiresAt *time.Time `json:"restrictionExpiresAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Capability names an action a restriction can block.
type Capability string

const (
	CapabilityLogin   Capability = "login"
	CapabilityPost    Capability = "post"
	CapabilityMessage Capability = "message"
	CapabilityRate    Capability = "rate"
)

// restrictionBlocks is the capability table deciding which actions each
// restriction type gates. The original enforcement was ad hoc per call site
// (suspension blocked login but warnings only blocked posting); this makes
// the policy explicit: warnings block posting only, suspension blocks
// everything, restricted accounts keep login and rating but lose posting
// and messaging.
var restrictionBlocks = map[string]map[Capability]bool{
	RestrictionWarning: {
		CapabilityPost: true,
	},
	RestrictionSuspended: {
		CapabilityLogin:   true,
		CapabilityPost:    true,
		CapabilityMessage: true,
		CapabilityRate:    true,
	},
	RestrictionRestricted: {
		CapabilityPost:    true,
		CapabilityMessage: true,
	},
}

// RestrictionActive reports whether the user carries an unexpired restriction.
func (u *User) RestrictionActive(now time.Time) bool {
	if u.RestrictionType == nil {
		return false
	}
	if u.RestrictionExpiresAt != nil && !now.Before(*u.RestrictionExpiresAt) {
		return false
	}
	return true
}

// RestrictionBlocksCapability reports whether an active restriction blocks
// the given capability.
func (u *User) RestrictionBlocksCapability(cap Capability, now time.Time) bool {
	if !u.RestrictionActive(now) {
		return false
	}
	return restrictionBlocks[*u.RestrictionType][cap]
}

// RestrictionExpired reports whether the user carries a restriction whose
// expiry has passed, i.e. the fields should be lazily cleared.
func (u *User) RestrictionExpired(now time.Time) bool {
	return u.RestrictionType != nil && u.RestrictionExpiresAt != nil &&
		!now.Before(*u.RestrictionExpiresAt)
}

// ClearRestrictionFields zeroes the restriction in-place. The caller is
// responsible for persisting the change.
func (u *User) ClearRestrictionFields() {
	u.RestrictionType = nil
	u.RestrictionExpiresAt = nil
}

// FullName returns the display name used in chat and notifications.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

// ToPublicUser returns the fields safe for public display.
func (u *User) ToPublicUser() map[string]interface{} {
	return map[string]interface{}{
		"id":             u.ID,
		"firstName":      u.FirstName,
		"lastName":       u.LastName,
		"profilePicture": u.ProfilePicture,
		"role":           u.Role,
		"createdAt":      u.CreatedAt,
	}
}

// Request / response DTOs

type RegisterRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	FirstName   string     `json:"firstName" binding:"omitempty,max=100"`
	LastName    string     `json:"lastName" binding:"omitempty,max=100"`
	PhoneNumber string     `json:"phoneNumber" binding:"omitempty,max=30"`
	Address     string     `json:"address" binding:"omitempty,max=255"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName   *string    `json:"firstName" binding:"omitempty,max=100"`
	LastName    *string    `json:"lastName" binding:"omitempty,max=100"`
	PhoneNumber *string    `json:"phoneNumber" binding:"omitempty,max=30"`
	Address     *string    `json:"address" binding:"omitempty,max=255"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	DeviceToken *string    `json:"deviceToken"`
}

type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

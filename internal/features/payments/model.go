package payments

import (
	"time"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// Payment statuses mirror the checkout link lifecycle.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusExpired = "expired"
)

// Payment records a checkout link created for a booking. The platform keeps
// AdminFeeCents of every paid amount; IsFeeClaimed marks fees the operator
// already withdrew.
type Payment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
	User         auth.User `gorm:"foreignKey:UserID" json:"user"`
	CreatorID    uint      `gorm:"index;not null" json:"creatorId"`
	Creator      auth.User `gorm:"foreignKey:CreatorID" json:"creator"`
	AmountCents  int       `gorm:"not null" json:"amountCents"`
	AdminFeeCents int      `gorm:"not null" json:"adminFeeCents"`
	IsFeeClaimed bool      `gorm:"default:false;not null" json:"isFeeClaimed"`
	Reference    string    `gorm:"uniqueIndex;size:50;not null" json:"reference"`
	CheckoutURL  string    `json:"checkoutUrl"`
	Description  string    `gorm:"size:500" json:"description"`
	Status       string    `gorm:"size:20;default:'pending';not null" json:"status"`
	PaidAt       *time.Time `json:"paidAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreatePaymentRequest struct {
	CreatorID   uint   `json:"creatorId" binding:"required"`
	AmountCents int    `json:"amountCents" binding:"required,min=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

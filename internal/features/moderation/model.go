package moderation

// StrikeThreshold is the number of copyright strikes that places an account
// under admin review.
const StrikeThreshold = 5

// Review actions an admin can take on a flagged account. Warn, suspend and
// restrict all require a duration in days; clear and unsuspend take none.
const (
	ActionClear     = "clear"
	ActionWarn      = "warn"
	ActionSuspend   = "suspend"
	ActionRestrict  = "restrict"
	ActionUnsuspend = "unsuspend"
)

type ReviewRequest struct {
	Action       string `json:"action" binding:"required,oneof=clear warn suspend restrict unsuspend"`
	DurationDays int    `json:"durationDays" binding:"omitempty,min=1,max=365"`
	Reason       string `json:"reason" binding:"omitempty,max=500"`
}

// StrikeResult reports what RecordStrike did, so callers and tests can
// observe the threshold transition.
type StrikeResult struct {
	Strikes         int  `json:"strikes"`
	PlacedInReview  bool `json:"placedInReview"`
	AlreadyInReview bool `json:"alreadyInReview"`
}

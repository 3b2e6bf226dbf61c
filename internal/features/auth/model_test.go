package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func restrictedUser(typ string, expiresAt *time.Time) *User {
	return &User{ID: 1, RestrictionType: &typ, RestrictionExpiresAt: expiresAt}
}

func TestRestrictionActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	t.Run("no restriction", func(t *testing.T) {
		u := &User{}
		assert.False(t, u.RestrictionActive(now))
	})

	t.Run("unexpired restriction", func(t *testing.T) {
		u := restrictedUser(RestrictionWarning, &future)
		assert.True(t, u.RestrictionActive(now))
	})

	t.Run("expired restriction", func(t *testing.T) {
		u := restrictedUser(RestrictionWarning, &past)
		assert.False(t, u.RestrictionActive(now))
		assert.True(t, u.RestrictionExpired(now))
	})

	t.Run("indefinite restriction", func(t *testing.T) {
		u := restrictedUser(RestrictionSuspended, nil)
		assert.True(t, u.RestrictionActive(now))
		assert.False(t, u.RestrictionExpired(now))
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		u := restrictedUser(RestrictionSuspended, &now)
		assert.False(t, u.RestrictionActive(now))
	})
}

func TestRestrictionBlocksCapability(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	cases := []struct {
		restriction string
		capability  Capability
		blocked     bool
	}{
		{RestrictionWarning, CapabilityPost, true},
		{RestrictionWarning, CapabilityLogin, false},
		{RestrictionWarning, CapabilityMessage, false},
		{RestrictionWarning, CapabilityRate, false},

		{RestrictionSuspended, CapabilityLogin, true},
		{RestrictionSuspended, CapabilityPost, true},
		{RestrictionSuspended, CapabilityMessage, true},
		{RestrictionSuspended, CapabilityRate, true},

		{RestrictionRestricted, CapabilityPost, true},
		{RestrictionRestricted, CapabilityMessage, true},
		{RestrictionRestricted, CapabilityLogin, false},
		{RestrictionRestricted, CapabilityRate, false},
	}

	for _, tc := range cases {
		u := restrictedUser(tc.restriction, &future)
		assert.Equal(t, tc.blocked, u.RestrictionBlocksCapability(tc.capability, now),
			"%s should block %s = %v", tc.restriction, tc.capability, tc.blocked)
	}
}

func TestRestrictionBlocksNothingWhenExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	u := restrictedUser(RestrictionSuspended, &past)
	assert.False(t, u.RestrictionBlocksCapability(CapabilityLogin, now))
	assert.False(t, u.RestrictionBlocksCapability(CapabilityPost, now))
}

func TestClearRestrictionFields(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	u := restrictedUser(RestrictionWarning, &past)

	u.ClearRestrictionFields()

	assert.Nil(t, u.RestrictionType)
	assert.Nil(t, u.RestrictionExpiresAt)
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Reyes", Email: "ada@example.com"}
	assert.Equal(t, "Ada Reyes", u.FullName())

	anon := &User{Email: "anon@example.com"}
	assert.Equal(t, "anon@example.com", anon.FullName())
}

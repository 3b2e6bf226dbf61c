package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	page, limit := FromQuery("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = FromQuery("3", "50")
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	page, limit = FromQuery("-1", "9999")
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = FromQuery("abc", "xyz")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

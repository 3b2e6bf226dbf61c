package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tunespace/tunespace-api/pkg/errors"
)

func setup() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccessEnvelope(t *testing.T) {
	c, w := setup()
	Success(c, gin.H{"value": 1})

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.NotNil(t, body["data"])
}

func TestPaginatedEnvelope(t *testing.T) {
	c, w := setup()
	Paginated(c, []string{"a", "b"}, 25, 10, 2)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(25), body["total"])
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, float64(2), body["page"])
}

func TestFromErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.NewValidation("email is taken"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "AUTH_FAILED"},
		{"forbidden", fmt.Errorf("account suspended: %w", apperrors.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"unknown", fmt.Errorf("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := setup()
			FromError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}

func TestFromErrorValidationMessageSurfaced(t *testing.T) {
	c, w := setup()
	FromError(c, apperrors.NewValidation("score must be between 1 and 5"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "score must be between 1 and 5", body.Error)
}

func TestFromErrorInternalNeverLeaks(t *testing.T) {
	c, w := setup()
	FromError(c, fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, body.Error, "10.0.0.5")
}

package analytics

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) track(c *gin.Context, typ string) {
	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "VALIDATION_FAILED")
		return
	}

	// Tracking works for anonymous visitors too; userID is zero then.
	userID := auth.CurrentUserID(c)

	if err := h.service.Track(c.Request.Context(), typ, userID, &req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"tracked": true})
}

// TrackProfileView godoc
// @Summary Track a creator profile view
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body TrackRequest true "Event details"
// @Success 200 {object} response.SuccessResponse
// @Router /analytics/track/profile-view [post]
func (h *Handler) TrackProfileView(c *gin.Context) { h.track(c, TypeProfileView) }

// TrackPlay godoc
// @Summary Track a post play
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body TrackRequest true "Event details"
// @Success 200 {object} response.SuccessResponse
// @Router /analytics/track/play [post]
func (h *Handler) TrackPlay(c *gin.Context) { h.track(c, TypePostPlay) }

// TrackShare godoc
// @Summary Track a share
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body TrackRequest true "Event details"
// @Success 200 {object} response.SuccessResponse
// @Router /analytics/track/share [post]
func (h *Handler) TrackShare(c *gin.Context) { h.track(c, TypeShare) }

// TrackSearch godoc
// @Summary Track a search
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body TrackRequest true "Event details"
// @Success 200 {object} response.SuccessResponse
// @Router /analytics/track/search [post]
func (h *Handler) TrackSearch(c *gin.Context) { h.track(c, TypeSearch) }

// CreatorSummary godoc
// @Summary Get own engagement analytics
// @Description Daily rollups and totals for the authenticated creator
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.SuccessResponse
// @Router /analytics/creator [get]
func (h *Handler) CreatorSummary(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "from must be YYYY-MM-DD", "VALIDATION_FAILED")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "to must be YYYY-MM-DD", "VALIDATION_FAILED")
			return
		}
		to = t
	}

	summary, err := h.service.CreatorSummary(c.Request.Context(), auth.CurrentUserID(c), from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summary)
}

package ratings

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/pkg/pagination"
	"github.com/tunespace/tunespace-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Rate godoc
// @Summary Rate a creator
// @Description Records the caller's 1-5 score; rating again replaces the previous score
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param creatorId path int true "Creator user ID"
// @Param request body RateRequest true "Score and optional comment"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /ratings/{creatorId} [post]
func (h *Handler) Rate(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	creatorID, err := strconv.ParseUint(c.Param("creatorId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid creator id", "VALIDATION_FAILED")
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Score must be between 1 and 5", "VALIDATION_FAILED")
		return
	}

	rating, err := h.service.Rate(c.Request.Context(), user, uint(creatorID), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rating)
}

// List godoc
// @Summary List a creator's ratings
// @Tags ratings
// @Produce json
// @Param creatorId path int true "Creator user ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Router /ratings/{creatorId} [get]
func (h *Handler) List(c *gin.Context) {
	creatorID, err := strconv.ParseUint(c.Param("creatorId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid creator id", "VALIDATION_FAILED")
		return
	}
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	ratings, total, err := h.service.ListForCreator(c.Request.Context(), uint(creatorID), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, ratings, total, limit, page)
}

// Summary godoc
// @Summary Get a creator's rating summary
// @Tags ratings
// @Produce json
// @Param creatorId path int true "Creator user ID"
// @Success 200 {object} response.SuccessResponse
// @Router /ratings/{creatorId}/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	creatorID, err := strconv.ParseUint(c.Param("creatorId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid creator id", "VALIDATION_FAILED")
		return
	}

	summary, err := h.service.SummaryForCreator(c.Request.Context(), uint(creatorID))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summary)
}

// Remove godoc
// @Summary Remove own rating of a creator
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param creatorId path int true "Creator user ID"
// @Success 200 {object} response.SuccessResponse
// @Router /ratings/{creatorId} [delete]
func (h *Handler) Remove(c *gin.Context) {
	creatorID, err := strconv.ParseUint(c.Param("creatorId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid creator id", "VALIDATION_FAILED")
		return
	}

	if err := h.service.Remove(c.Request.Context(), auth.CurrentUserID(c), uint(creatorID)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

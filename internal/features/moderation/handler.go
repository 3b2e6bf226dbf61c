package moderation

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/pkg/pagination"
	"github.com/tunespace/tunespace-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListUnderReview godoc
// @Summary List accounts under copyright review
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Router /admin/moderation/under-review [get]
func (h *Handler) ListUnderReview(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	users, total, err := h.service.ListUnderReview(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, users, total, limit, page)
}

// Review godoc
// @Summary Resolve a flagged account
// @Description Applies an admin decision: clear, warn, suspend, restrict or unsuspend
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body ReviewRequest true "Decision"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/moderation/users/{id}/review [post]
func (h *Handler) Review(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user id", "VALIDATION_FAILED")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "VALIDATION_FAILED")
		return
	}

	user, err := h.service.Review(c.Request.Context(), uint(id), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

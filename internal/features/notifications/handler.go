package notifications

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

// List godoc
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Router /notifications [get]
func (h *Handler) List(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	items, total, err := h.service.List(c.Request.Context(), auth.CurrentUserID(c), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, items, total, limit, page)
}

// UnreadCount godoc
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id}/read [put]
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid notification id", "VALIDATION_FAILED")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), uint(id), auth.CurrentUserID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"read": true})
}

// MarkAllRead godoc
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /notifications/read-all [put]
func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), auth.CurrentUserID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"read": true})
}

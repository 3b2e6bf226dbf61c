package payments

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

// Create godoc
// @Summary Create a payment to a creator
// @Description Creates a checkout link at the payment gateway
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePaymentRequest true "Payment details"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /payments [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "VALIDATION_FAILED")
		return
	}

	payment, err := h.service.Create(c.Request.Context(), auth.CurrentUserID(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, payment)
}

// CheckStatus godoc
// @Summary Check a payment's status by reference
// @Description Polls the gateway and settles the payment if the link was paid
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Payment reference"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /payments/status/{reference} [get]
func (h *Handler) CheckStatus(c *gin.Context) {
	payment, err := h.service.CheckStatus(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, payment)
}

// ListMine godoc
// @Summary List own payments
// @Description Payments where the caller is payer or payee
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Router /payments [get]
func (h *Handler) ListMine(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	payments, total, err := h.service.ListMine(c.Request.Context(), auth.CurrentUserID(c), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, payments, total, limit, page)
}

// Get godoc
// @Summary Get a payment by id
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /payments/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid payment id", "VALIDATION_FAILED")
		return
	}

	payment, err := h.service.Get(c.Request.Context(), user.ID, uint(id), user.Role == auth.RoleAdmin)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, payment)
}

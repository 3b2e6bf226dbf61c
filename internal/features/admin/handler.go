package admin

import (
	"time"

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

// Overview godoc
// @Summary Admin dashboard overview
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /admin/overview [get]
func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, overview)
}

// Transactions godoc
// @Summary List all payments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Router /admin/transactions [get]
func (h *Handler) Transactions(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	txs, total, err := h.service.Transactions(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, txs, total, limit, page)
}

// ClaimFees godoc
// @Summary Claim accumulated platform fees
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /admin/fees/claim [post]
func (h *Handler) ClaimFees(c *gin.Context) {
	claimed, err := h.service.ClaimFees(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"claimedCents": claimed})
}

// UpdateFee godoc
// @Summary Update the platform fee percentage
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateFeeRequest true "New fee percent"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/fees [put]
func (h *Handler) UpdateFee(c *gin.Context) {
	var req UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Percent must be between 0 and 50", "VALIDATION_FAILED")
		return
	}

	if err := h.service.UpdateFee(req.Percent); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"percent": h.service.CurrentFee()})
}

// GenerateRollup godoc
// @Summary Generate the daily platform rollup
// @Description Computes and stores the rollup for the given day, defaulting to yesterday
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} response.SuccessResponse
// @Router /admin/analytics/generate [post]
func (h *Handler) GenerateRollup(c *gin.Context) {
	var day time.Time
	if v := c.Query("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "date must be YYYY-MM-DD", "VALIDATION_FAILED")
			return
		}
		day = t
	}

	rollup, err := h.service.GenerateDailyRollup(c.Request.Context(), day)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rollup)
}

// Analytics godoc
// @Summary Get platform analytics over a date range
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.SuccessResponse
// @Router /admin/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
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

	rows, err := h.service.RollupRange(c.Request.Context(), from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rows)
}

package reports

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/pkg/pagination"
	"github.com/tunespace/tunespace-api/internal/pkg/response"
	"github.com/tunespace/tunespace-api/internal/pkg/storage"
)

type Handler struct {
	service *Service
	store   *storage.Store
}

func NewHandler(service *Service, store *storage.Store) *Handler {
	return &Handler{service: service, store: store}
}

// Submit godoc
// @Summary File a report
// @Description Multipart form with reason, description and optional evidence image
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param reportedUserId formData int true "Reported user ID"
// @Param postId formData int false "Reported post ID"
// @Param reason formData string true "Reason"
// @Param description formData string false "Details"
// @Param evidence formData file false "Evidence image"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /reports [post]
func (h *Handler) Submit(c *gin.Context) {
	reportedUserID, err := strconv.ParseUint(c.PostForm("reportedUserId"), 10, 32)
	if err != nil || reportedUserID == 0 {
		response.BadRequest(c, "reportedUserId is required", "VALIDATION_FAILED")
		return
	}
	reason := c.PostForm("reason")
	if reason == "" {
		response.BadRequest(c, "Reason is required", "VALIDATION_FAILED")
		return
	}
	postID, _ := strconv.ParseUint(c.PostForm("postId"), 10, 32)

	var evidencePath string
	if header, err := c.FormFile("evidence"); err == nil {
		if err := storage.ValidateImageFile(header); err != nil {
			response.FromError(c, err)
			return
		}
		file, err := header.Open()
		if err != nil {
			response.InternalServerError(c, "Failed to read upload")
			return
		}
		evidencePath, err = h.store.Save(file, header, storage.CategoryImages)
		file.Close()
		if err != nil {
			response.InternalServerError(c, "Failed to store evidence image")
			return
		}
	}

	report := &Report{
		ReportedUserID: uint(reportedUserID),
		PostID:         uint(postID),
		Reason:         reason,
		Description:    c.PostForm("description"),
		EvidenceImage:  evidencePath,
	}

	created, err := h.service.Submit(c.Request.Context(), auth.CurrentUserID(c), report)
	if err != nil {
		h.store.Remove(evidencePath)
		response.FromError(c, err)
		return
	}
	response.Created(c, created)
}

// List godoc
// @Summary List reports (admin)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Router /admin/reports [get]
func (h *Handler) List(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	reports, total, err := h.service.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, reports, total, limit, page)
}

// Get godoc
// @Summary Get a report (admin)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/reports/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid report id", "VALIDATION_FAILED")
		return
	}

	report, err := h.service.Get(c.Request.Context(), uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// Update godoc
// @Summary Resolve or dismiss a report (admin)
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body UpdateReportRequest true "Decision"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/reports/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid report id", "VALIDATION_FAILED")
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "VALIDATION_FAILED")
		return
	}

	report, err := h.service.Resolve(c.Request.Context(), uint(id), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// Delete godoc
// @Summary Delete a report (admin)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/reports/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid report id", "VALIDATION_FAILED")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

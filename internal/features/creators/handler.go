package creators

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

// UpsertProfile godoc
// @Summary Create or update own creator profile
// @Description Saving a profile for the first time promotes the account to creator
// @Tags creators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertProfileRequest true "Profile details"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /creators/me [put]
func (h *Handler) UpsertProfile(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "VALIDATION_FAILED")
		return
	}

	profile, err := h.service.UpsertProfile(c.Request.Context(), user, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, profile)
}

// GetOwnProfile godoc
// @Summary Get own creator profile
// @Tags creators
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /creators/me [get]
func (h *Handler) GetOwnProfile(c *gin.Context) {
	profile, err := h.service.GetOwnProfile(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, profile)
}

// GetProfile godoc
// @Summary Get a creator profile by id
// @Tags creators
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /creators/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid profile id", "VALIDATION_FAILED")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, profile)
}

// Browse godoc
// @Summary Browse creator profiles
// @Tags creators
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param genre query string false "Filter by genre"
// @Param location query string false "Filter by location"
// @Param search query string false "Search stage name and bio"
// @Success 200 {object} response.PaginatedResponse
// @Router /creators [get]
func (h *Handler) Browse(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))
	filter := BrowseFilter{
		Genre:    c.Query("genre"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}

	profiles, total, err := h.service.Browse(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, profiles, total, limit, page)
}

// UploadCoverImage godoc
// @Summary Upload a profile cover image
// @Tags creators
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Cover image"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /creators/me/cover [post]
func (h *Handler) UploadCoverImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required", "VALIDATION_FAILED")
		return
	}
	if err := storage.ValidateImageFile(header); err != nil {
		response.FromError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	path, err := h.store.Save(file, header, storage.CategoryImages)
	if err != nil {
		response.InternalServerError(c, "Failed to store upload")
		return
	}

	profile, err := h.service.UpdateCoverImage(c.Request.Context(), auth.CurrentUserID(c), path)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, profile)
}

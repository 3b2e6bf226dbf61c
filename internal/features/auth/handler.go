package auth

import (
	"github.com/gin-gonic/gin"

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

// Register godoc
// @Summary Register a new user
// @Description Creates an account and emails a 6-digit verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, formatValidationError(err), "VALIDATION_FAILED")
		return
	}
	if err := validateRegister(&req); err != nil {
		response.FromError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, user)
}

// Login godoc
// @Summary Log in
// @Description Authenticates with email and password, returns a JWT access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, formatValidationError(err), "VALIDATION_FAILED")
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// Verify godoc
// @Summary Verify email
// @Description Confirms the account using the emailed verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Email and code"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, formatValidationError(err), "VALIDATION_FAILED")
		return
	}

	user, err := h.service.VerifyEmail(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// GetProfile godoc
// @Summary Get own profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, formatValidationError(err), "VALIDATION_FAILED")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), CurrentUserID(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// UploadProfilePicture godoc
// @Summary Upload a profile picture
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Profile image"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/profile/picture [post]
func (h *Handler) UploadProfilePicture(c *gin.Context) {
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

	user, err := h.service.UpdateProfilePicture(c.Request.Context(), CurrentUserID(c), path)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

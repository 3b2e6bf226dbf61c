package posts

import (
	"mime/multipart"
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

// Create godoc
// @Summary Upload a new post
// @Description Multipart upload with an audio file and optional cover image. The audio is checked for copyrighted content.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param genre formData string false "Genre"
// @Param audio formData file true "Audio file"
// @Param cover formData file false "Cover image"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /posts [post]
func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		response.BadRequest(c, "Title is required", "VALIDATION_FAILED")
		return
	}
	if len(title) > 200 {
		response.BadRequest(c, "Title must be at most 200 characters", "VALIDATION_FAILED")
		return
	}

	audioHeader, err := c.FormFile("audio")
	if err != nil {
		response.BadRequest(c, "Audio file is required", "VALIDATION_FAILED")
		return
	}
	if err := storage.ValidateAudioFile(audioHeader); err != nil {
		response.FromError(c, err)
		return
	}

	audioPath, err := h.saveUpload(audioHeader, storage.CategoryAudio)
	if err != nil {
		response.InternalServerError(c, "Failed to store audio file")
		return
	}

	var coverPath string
	if coverHeader, err := c.FormFile("cover"); err == nil {
		if err := storage.ValidateImageFile(coverHeader); err != nil {
			h.store.Remove(audioPath)
			response.FromError(c, err)
			return
		}
		coverPath, err = h.saveUpload(coverHeader, storage.CategoryImages)
		if err != nil {
			h.store.Remove(audioPath)
			response.InternalServerError(c, "Failed to store cover image")
			return
		}
	}

	post := &Post{
		Title:       title,
		Description: c.PostForm("description"),
		Genre:       c.PostForm("genre"),
		AudioFile:   audioPath,
		CoverImage:  coverPath,
	}

	created, err := h.service.Create(c.Request.Context(), user, post)
	if err != nil {
		h.store.Remove(audioPath)
		h.store.Remove(coverPath)
		response.FromError(c, err)
		return
	}
	response.Created(c, created)
}

func (h *Handler) saveUpload(header *multipart.FileHeader, cat storage.Category) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return h.store.Save(file, header, cat)
}

// List godoc
// @Summary List posts
// @Description Public feed of active posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param userId query int false "Filter by author"
// @Param genre query string false "Filter by genre"
// @Param search query string false "Search title and description"
// @Success 200 {object} response.PaginatedResponse
// @Router /posts [get]
func (h *Handler) List(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	userID, _ := strconv.ParseUint(c.Query("userId"), 10, 32)
	filter := ListFilter{
		UserID: uint(userID),
		Genre:  c.Query("genre"),
		Search: c.Query("search"),
	}

	posts, total, err := h.service.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, posts, total, limit, page)
}

// ListMine godoc
// @Summary List own posts including flagged ones
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Router /posts/mine [get]
func (h *Handler) ListMine(c *gin.Context) {
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))
	filter := ListFilter{
		UserID:     auth.CurrentUserID(c),
		IncludeAll: true,
	}

	posts, total, err := h.service.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, posts, total, limit, page)
}

// Get godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid post id", "VALIDATION_FAILED")
		return
	}

	post, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// Update godoc
// @Summary Update own post metadata
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /posts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid post id", "VALIDATION_FAILED")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "VALIDATION_FAILED")
		return
	}

	post, err := h.service.Update(c.Request.Context(), auth.CurrentUserID(c), uint(id), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /posts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid post id", "VALIDATION_FAILED")
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, uint(id)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// UpdateStatus godoc
// @Summary Update a post's status (admin)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /admin/posts/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid post id", "VALIDATION_FAILED")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "VALIDATION_FAILED")
		return
	}

	post, err := h.service.UpdateStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// RecordPlay godoc
// @Summary Record a play of a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.SuccessResponse
// @Router /posts/{id}/play [post]
func (h *Handler) RecordPlay(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid post id", "VALIDATION_FAILED")
		return
	}

	if err := h.service.RecordPlay(c.Request.Context(), uint(id)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"recorded": true})
}

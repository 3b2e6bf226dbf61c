package moderation

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// RegisterRoutes mounts the admin moderation endpoints.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/admin/moderation", mw.RequireAuth(), mw.RequireAdmin())
	{
		group.GET("/under-review", h.ListUnderReview)
		group.POST("/users/:id/review", h.Review)
	}
}

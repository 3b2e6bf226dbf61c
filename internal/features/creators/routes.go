package creators

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// RegisterRoutes mounts the creator marketplace endpoints.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/creators")
	{
		group.GET("", h.Browse)
		group.GET("/me", mw.RequireAuth(), h.GetOwnProfile)
		group.PUT("/me", mw.RequireAuth(), h.UpsertProfile)
		group.POST("/me/cover", mw.RequireAuth(), h.UploadCoverImage)
		group.GET("/:id", h.GetProfile)
	}
}

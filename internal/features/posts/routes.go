package posts

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// RegisterRoutes mounts the post endpoints and the admin status route.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/posts")
	{
		group.GET("", h.List)
		group.GET("/mine", mw.RequireAuth(), h.ListMine)
		group.POST("", mw.RequireAuth(), h.Create)
		group.GET("/:id", h.Get)
		group.PUT("/:id", mw.RequireAuth(), h.Update)
		group.DELETE("/:id", mw.RequireAuth(), h.Delete)
		group.POST("/:id/play", h.RecordPlay)
	}

	rg.PUT("/admin/posts/:id/status", mw.RequireAuth(), mw.RequireAdmin(), h.UpdateStatus)
}

package notifications

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/notifications", mw.RequireAuth())
	{
		group.GET("", h.List)
		group.GET("/unread-count", h.UnreadCount)
		group.PUT("/read-all", h.MarkAllRead)
		group.PUT("/:id/read", h.MarkRead)
	}
}

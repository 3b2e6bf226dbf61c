package ratings

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/ratings")
	{
		group.GET("/:creatorId", h.List)
		group.GET("/:creatorId/summary", h.Summary)
		group.POST("/:creatorId", mw.RequireAuth(), h.Rate)
		group.DELETE("/:creatorId", mw.RequireAuth(), h.Remove)
	}
}

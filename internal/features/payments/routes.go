package payments

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/payments", mw.RequireAuth())
	{
		group.POST("", h.Create)
		group.GET("", h.ListMine)
		group.GET("/status/:reference", h.CheckStatus)
		group.GET("/:id", h.Get)
	}
}

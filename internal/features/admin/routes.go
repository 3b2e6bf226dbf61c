package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/admin", mw.RequireAuth(), mw.RequireAdmin())
	{
		group.GET("/overview", h.Overview)
		group.GET("/transactions", h.Transactions)
		group.POST("/fees/claim", h.ClaimFees)
		group.PUT("/fees", h.UpdateFee)
		group.GET("/analytics", h.Analytics)
		group.POST("/analytics/generate", h.GenerateRollup)
	}
}

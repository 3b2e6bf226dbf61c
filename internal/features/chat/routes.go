package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

// RegisterRoutes mounts the chat REST endpoints and the websocket relay.
func RegisterRoutes(rg *gin.RouterGroup, engine *gin.Engine, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/chat", mw.RequireAuth())
	{
		group.POST("/messages", h.Send)
		group.GET("/messages/:userId", h.Thread)
		group.GET("/conversations", h.Conversations)
	}

	engine.GET("/ws", mw.TokenFromQuery(), h.Connect)
}

package analytics

import (
	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/features/auth"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *auth.Middleware) {
	group := rg.Group("/analytics")
	{
		// Tracking accepts anonymous traffic, but a valid bearer token
		// attributes the event to the caller.
		track := group.Group("/track", mw.OptionalAuth())
		track.POST("/profile-view", h.TrackProfileView)
		track.POST("/play", h.TrackPlay)
		track.POST("/share", h.TrackShare)
		track.POST("/search", h.TrackSearch)

		group.GET("/creator", mw.RequireAuth(), h.CreatorSummary)
	}
}

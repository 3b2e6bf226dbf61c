package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the auth endpoints on the given router group.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, mw *Middleware) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/verify", h.Verify)

		authGroup.GET("/profile", mw.RequireAuth(), h.GetProfile)
		authGroup.PUT("/profile", mw.RequireAuth(), h.UpdateProfile)
		authGroup.POST("/profile/picture", mw.RequireAuth(), h.UploadProfilePicture)
	}
}

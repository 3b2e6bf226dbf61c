package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/pkg/logger"
)

var skipPaths = map[string]bool{
	"/health": true,
}

// Logger logs one line per request: method, path, status, latency and the
// authenticated user when present.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		userID := c.GetUint("userID")

		if userID != 0 {
			logger.Info("%s %s %d %s user=%d", c.Request.Method, path, status, latency, userID)
		} else {
			logger.Info("%s %s %d %s", c.Request.Method, path, status, latency)
		}

		for _, e := range c.Errors {
			logger.Error("%s %s: %v", c.Request.Method, path, e.Err)
		}
	}
}

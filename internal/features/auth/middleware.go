package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tunespace/tunespace-api/internal/pkg/response"
	"github.com/tunespace/tunespace-api/internal/pkg/token"
)

// Context keys set by the middleware.
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "user"
)

// Middleware loads the authenticated user for downstream handlers.
type Middleware struct {
	repo      Repository
	jwtSecret string
}

func NewMiddleware(repo Repository, jwtSecret string) *Middleware {
	return &Middleware{repo: repo, jwtSecret: jwtSecret}
}

// RequireAuth validates the bearer token, loads the user row and stores it in
// the request context. Loading the row (instead of trusting claims alone)
// means role changes and suspensions take effect immediately, not at token
// expiry.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c, c.GetHeader("Authorization"))
		if !ok {
			return
		}
		m.loadUser(c, claims.UserID)
	}
}

// OptionalAuth resolves the caller when a valid bearer token is present and
// lets the request through anonymously otherwise. It never aborts; endpoints
// that serve both visitors and logged-in users sit behind this so events from
// the latter are attributed.
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}
		claims, err := token.Validate(parts[1], m.jwtSecret)
		if err != nil {
			c.Next()
			return
		}
		user, err := m.repo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin allows only users whose stored role is admin. The DB row is
// authoritative, a stale admin claim in an old token is not enough.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
			c.Abort()
			return
		}
		if user.Role != RoleAdmin {
			response.Forbidden(c, "Admin access required", "ADMIN_REQUIRED")
			c.Abort()
			return
		}
		c.Next()
	}
}

// TokenFromQuery authenticates using a token query parameter. Browsers cannot
// set headers on WebSocket upgrade requests, so the chat endpoint passes the
// token in the URL instead.
func (m *Middleware) TokenFromQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("token")
		if raw == "" {
			response.Unauthorized(c, "Missing token", "AUTH_REQUIRED")
			c.Abort()
			return
		}
		claims, err := token.Validate(raw, m.jwtSecret)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "AUTH_INVALID_TOKEN")
			c.Abort()
			return
		}
		m.loadUser(c, claims.UserID)
	}
}

func (m *Middleware) authenticate(c *gin.Context, header string) (*token.Claims, bool) {
	if header == "" {
		response.Unauthorized(c, "Missing authorization header", "AUTH_REQUIRED")
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		response.Unauthorized(c, "Invalid authorization header", "AUTH_INVALID_HEADER")
		c.Abort()
		return nil, false
	}

	claims, err := token.Validate(parts[1], m.jwtSecret)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired token", "AUTH_INVALID_TOKEN")
		c.Abort()
		return nil, false
	}
	return claims, true
}

func (m *Middleware) loadUser(c *gin.Context, userID uint) {
	user, err := m.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Unauthorized(c, "User not found", "AUTH_USER_NOT_FOUND")
		c.Abort()
		return
	}

	c.Set(ContextUserIDKey, user.ID)
	c.Set(ContextUserKey, user)
	c.Next()
}

// CurrentUser returns the user loaded by the auth middleware.
func CurrentUser(c *gin.Context) (*User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*User)
	return user, ok
}

// CurrentUserID returns the id set by the auth middleware.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ContextUserIDKey)
}

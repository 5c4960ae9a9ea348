package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/voyatalk/voyatalk/internal/auth"
	"github.com/voyatalk/voyatalk/pkg/response"
)

// Gin context keys set by RequireAuth.
const (
	UserIDKey     = "user_id"
	UsernameKey   = "username"
	bearerPrefix  = "Bearer "
	authHeaderKey = "Authorization"
)

// RequireAuth validates the session token from the cookie (browser flow)
// or the Authorization header (API clients) and stores the caller identity
// in the gin context.
func RequireAuth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Cookie(verifier.CookieName()); err == nil {
			token = cookie
		} else if header := c.GetHeader(authHeaderKey); strings.HasPrefix(header, bearerPrefix) {
			token = strings.TrimPrefix(header, bearerPrefix)
		}

		if token == "" {
			response.Unauthorized(c, "no token provided")
			c.Abort()
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(UsernameKey, identity.Username)
		c.Next()
	}
}

// GetUserID extracts the caller's user ID from the gin context.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		return id.(string)
	}
	return ""
}

// GetUsername extracts the caller's username from the gin context.
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(UsernameKey); exists {
		return username.(string)
	}
	return ""
}

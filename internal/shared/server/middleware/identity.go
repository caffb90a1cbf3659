package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	// TokenPrefix is the opaque bearer token prefix issued at login. The
	// token carries no signature; it exists only to attribute actions.
	TokenPrefix = "token_"

	// defaultUserID is assumed when a request carries no identity at all,
	// matching the permissive behavior this service replaces.
	defaultUserID = "user1"
)

// Identity resolves the acting user from the Authorization bearer token or
// the X-User-Id header. Identity is attribution only; no route requires it.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := ""

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if strings.HasPrefix(token, TokenPrefix) {
				userID = strings.TrimPrefix(token, TokenPrefix)
			}
		}
		if userID == "" {
			userID = strings.TrimSpace(c.GetHeader("X-User-Id"))
		}
		if userID == "" {
			userID = defaultUserID
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/savoraddis/cafe-backend/services"

	"github.com/gin-gonic/gin"
)

const AdminContextKey = "admin_username"

// AdminAuthMiddleware guards admin routes with a bearer token issued by the
// auth service.
func AdminAuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		role, _ := claims["role"].(string)
		if role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		if username, ok := claims["username"].(string); ok {
			c.Set(AdminContextKey, username)
		}
		c.Next()
	}
}

// SessionMiddleware requires the caller to identify its cart session.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
			return
		}
		c.Set("session_id", sessionID)
		c.Next()
	}
}

// GetSessionID pulls the cart session id set by SessionMiddleware.
func GetSessionID(c *gin.Context) string {
	if val, ok := c.Get("session_id"); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

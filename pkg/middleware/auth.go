package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/api/internal/tokens"
	"github.com/devconnect/api/pkg/metrics"
)

// AuthHeader is the request header carrying the bearer token.
const AuthHeader = "x-auth-token"

const userIDKey = "userID"

// RequireAuth returns a Gin middleware that verifies the x-auth-token header
// and attaches the resolved user id to the request context. It never touches
// the data store.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(AuthHeader)
		if raw == "" {
			metrics.AuthFailures.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}
		userID, err := tokens.Verify(secret, raw)
		if err != nil {
			metrics.AuthFailures.WithLabelValues("invalid").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id attached by RequireAuth, or ""
// when the request did not pass through the auth gate.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

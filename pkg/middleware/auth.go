package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/Vallabhkejgir/Location-Tracker/internal/sessions"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	ContextUserKey  = "session_user"
	ContextTokenKey = "session_token"
)

// SessionValidator is the minimal interface the middleware depends on
type SessionValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// SessionAuth returns a Gin middleware that authenticates requests via the
// session cookie. Missing, unknown and expired tokens all produce the same
// 401 so callers can't probe which of the three it was. No handler state is
// touched on failure.
func SessionAuth(v SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessions.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		username, err := v.Validate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(ContextUserKey, username)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

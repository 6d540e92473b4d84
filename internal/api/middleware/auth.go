package middleware

import (
	"github.com/gin-gonic/gin"

	"zintasa/backend/pkg/response"
	"zintasa/backend/pkg/session"
)

// Context keys set by SessionAuth.
const (
	SessionKey = "session"
	RoleKey    = "role"
)

// SessionAuth reads the session cookie, resolves it against the session
// store and injects the caller's identity into the request context.
func SessionAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessions.CookieName())
		if err != nil || token == "" {
			response.FailStatus(c, 401, "authentication required")
			c.Abort()
			return
		}

		sess, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			response.FailStatus(c, 401, "session is invalid or expired")
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Set(RoleKey, sess.Role)

		c.Next()
	}
}

// RoleAuth allows only callers holding one of the given roles. Must run
// after SessionAuth.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			response.FailStatus(c, 401, "authentication required")
			c.Abort()
			return
		}

		callerRole := role.(string)
		for _, r := range allowedRoles {
			if callerRole == r {
				c.Next()
				return
			}
		}

		response.FailStatus(c, 403, "insufficient permissions")
		c.Abort()
	}
}

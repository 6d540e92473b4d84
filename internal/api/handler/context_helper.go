package handler

import (
	"github.com/gin-gonic/gin"

	"zintasa/backend/internal/api/middleware"
	"zintasa/backend/pkg/response"
	"zintasa/backend/pkg/session"
)

// MustGetSession extracts the resolved session injected by SessionAuth.
// On failure it writes a 401 and returns ok=false; callers should return
// immediately.
func MustGetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(middleware.SessionKey)
	if !exists {
		response.FailStatus(c, 401, "authentication required")
		return nil, false
	}
	sess, ok := v.(*session.Session)
	if !ok || sess == nil {
		response.FailStatus(c, 401, "authentication required")
		return nil, false
	}
	return sess, true
}

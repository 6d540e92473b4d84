package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS handles cross-origin requests. A single "*" entry allows any
// origin without credentials; named origins are echoed back and allow
// the session cookie to travel. methodsByPath maps each route path to
// the methods it serves, so pre-flight answers advertise only what the
// endpoint actually accepts.
func CORS(allowOrigins []string, methodsByPath map[string][]string) gin.HandlerFunc {
	allowAll := false
	originsMap := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		originsMap[strings.TrimRight(o, "/")] = true
	}

	allowMethods := make(map[string]string, len(methodsByPath))
	for path, methods := range methodsByPath {
		allowMethods[path] = strings.Join(methods, ", ") + ", " + http.MethodOptions
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case originsMap[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
		if methods, ok := allowMethods[c.Request.URL.Path]; ok {
			c.Header("Access-Control-Allow-Methods", methods)
		}
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true})
			return
		}

		c.Next()
	}
}

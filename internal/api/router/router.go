package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zintasa/backend/config"
	"zintasa/backend/internal/api/handler"
	"zintasa/backend/internal/api/middleware"
	"zintasa/backend/internal/model"
	"zintasa/backend/pkg/redis"
	"zintasa/backend/pkg/session"
)

const maxBodyBytes = 1 << 20 // 1 MB

// routeMethods mirrors the routes registered in Setup; CORS pre-flight
// answers advertise only the methods a path actually serves.
var routeMethods = map[string][]string{
	"/health":                  {http.MethodGet},
	"/login":                   {http.MethodPost},
	"/logout":                  {http.MethodPost},
	"/service_requests":        {http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	"/messages":                {http.MethodGet, http.MethodPost},
	"/notifications":           {http.MethodGet},
	"/notifications/dismiss":   {http.MethodPost},
	"/export/service_requests": {http.MethodGet},
	"/accounts":                {http.MethodPost},
}

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, sessions *session.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS([]string{"*"}, routeMethods))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "status": "healthy"})
	})

	// ── Public ──
	r.POST("/login", middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow), h.Auth.Login)

	// ── Authenticated ──
	authorized := r.Group("")
	authorized.Use(middleware.SessionAuth(sessions))
	{
		authorized.POST("/logout", h.Auth.Logout)

		// Service-request ledger. Updates are staff work; creation and
		// cancellation are role-scoped inside the service.
		authorized.GET("/service_requests", h.Request.List)
		authorized.POST("/service_requests", h.Request.Create)
		authorized.PUT("/service_requests", middleware.RoleAuth(model.RoleStaff, model.RoleAdmin), h.Request.Update)
		authorized.DELETE("/service_requests", h.Request.Cancel)

		// Room message board.
		authorized.GET("/messages", h.Message.List)
		authorized.POST("/messages", h.Message.Send)

		// Staff dashboard.
		authorized.GET("/notifications", middleware.RoleAuth(model.RoleStaff, model.RoleAdmin), h.Notification.List)
		authorized.POST("/notifications/dismiss", middleware.RoleAuth(model.RoleStaff, model.RoleAdmin), h.Notification.Dismiss)
		authorized.GET("/export/service_requests", middleware.RoleAuth(model.RoleStaff, model.RoleAdmin), h.Export.ExportRequests)

		// Account bootstrap.
		authorized.POST("/accounts", middleware.RoleAuth(model.RoleAdmin), h.Auth.CreateAccount)
	}

	return r
}

package handler

import (
	"zintasa/backend/config"
	"zintasa/backend/internal/service"
)

// Handler aggregates the HTTP handlers.
type Handler struct {
	Auth         *AuthHandler
	Request      *RequestHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(&cfg.Auth, svc.Auth),
		Request:      NewRequestHandler(svc.Request),
		Message:      NewMessageHandler(svc.Message),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}

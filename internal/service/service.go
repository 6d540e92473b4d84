package service

import (
	"go.uber.org/zap"

	"zintasa/backend/config"
	"zintasa/backend/internal/repository"
	"zintasa/backend/pkg/session"
)

// Service aggregates the business-layer entry points.
type Service struct {
	Auth         AuthService
	Request      RequestService
	Message      MessageService
	Notification NotificationService
	Export       ExportService
}

// NewService wires the service aggregate. Notifications are built first
// since the request and message services fan into them.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	sessions *session.Manager,
	logger *zap.Logger,
) *Service {
	notif := NewNotificationService(repo, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, sessions, logger),
		Request:      NewRequestService(repo, notif, logger),
		Message:      NewMessageService(repo, notif, logger),
		Notification: notif,
		Export:       NewExportService(repo, logger),
	}
}

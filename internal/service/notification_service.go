package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"zintasa/backend/internal/dto"
	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
	"zintasa/backend/pkg/apperr"
)

const notificationListLimit = 50

// NotificationService feeds the staff dashboard. Recording is
// best-effort: a notification that fails to write never fails the
// operation it announces.
type NotificationService interface {
	List(ctx context.Context) ([]dto.NotificationResponse, error)
	Dismiss(ctx context.Context, id string) error
	RecordNewRequest(ctx context.Context, req *model.ServiceRequest)
	RecordNewMessage(ctx context.Context, msg *model.Message)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService builds the NotificationService.
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context) ([]dto.NotificationResponse, error) {
	rows, err := s.repo.Notification.ListActive(ctx, notificationListLimit)
	if err != nil {
		s.logger.Error("list notifications failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}
	out := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		n := &rows[i]
		out = append(out, dto.NotificationResponse{
			ID:         n.NotificationID,
			Type:       n.Type,
			Title:      n.Title,
			Body:       n.Body,
			RoomNumber: n.RoomNumber,
			RelatedID:  n.RelatedID,
			CreatedAt:  n.CreatedAt,
		})
	}
	return out, nil
}

// Dismiss is idempotent: dismissing a missing or already-dismissed
// entry succeeds without effect. Dashboards dismiss concurrently.
func (s *notificationService) Dismiss(ctx context.Context, id string) error {
	if _, err := s.repo.Notification.DismissIf(ctx, id); err != nil {
		s.logger.Error("dismiss notification failed", zap.Error(err))
		return apperr.Storage(err)
	}
	return nil
}

func (s *notificationService) RecordNewRequest(ctx context.Context, req *model.ServiceRequest) {
	id := req.RequestID
	n := &model.Notification{
		Audience:   model.RoleStaff,
		Type:       model.NotificationNewRequest,
		Title:      fmt.Sprintf("New %s request from room %s", req.RequestType, req.RoomNumber),
		Body:       req.Description,
		RoomNumber: req.RoomNumber,
		RelatedID:  &id,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("record request notification failed",
			zap.String("request_id", req.RequestID), zap.Error(err))
	}
}

func (s *notificationService) RecordNewMessage(ctx context.Context, msg *model.Message) {
	id := msg.MessageID
	n := &model.Notification{
		Audience:   model.RoleStaff,
		Type:       model.NotificationNewMessage,
		Title:      fmt.Sprintf("New message from room %s", msg.RoomNumber),
		Body:       msg.Body,
		RoomNumber: msg.RoomNumber,
		RelatedID:  &id,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("record message notification failed",
			zap.String("message_id", msg.MessageID), zap.Error(err))
	}
}

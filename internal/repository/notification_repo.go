package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"zintasa/backend/internal/model"
)

// NotificationRepository is the staff-dashboard notification interface.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	// ListActive returns undismissed notifications, newest first.
	ListActive(ctx context.Context, limit int) ([]model.Notification, error)
	// DismissIf stamps dismissed_at only where it is still unset and
	// reports how many rows matched. Zero rows is not an error.
	DismissIf(ctx context.Context, id string) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo builds the GORM NotificationRepository.
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListActive(ctx context.Context, limit int) ([]model.Notification, error) {
	var items []model.Notification
	err := r.db.WithContext(ctx).
		Where("dismissed_at IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *notificationRepo) DismissIf(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ? AND dismissed_at IS NULL", id).
		Update("dismissed_at", time.Now())
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

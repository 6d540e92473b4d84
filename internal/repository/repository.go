package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	User         UserRepository
	Request      RequestRepository
	Message      MessageRepository
	Notification NotificationRepository
}

// NewRepository builds the GORM-backed repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Request:      NewRequestRepo(db),
		Message:      NewMessageRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

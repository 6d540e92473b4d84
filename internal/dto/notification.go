package dto

import "time"

// ── Notification DTOs ──

// DismissNotificationRequest dismisses one dashboard entry.
type DismissNotificationRequest struct {
	ID string `json:"id" binding:"required"`
}

// NotificationResponse is a staff dashboard entry.
type NotificationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	RoomNumber string    `json:"room_number,omitempty"`
	RelatedID  *string   `json:"related_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

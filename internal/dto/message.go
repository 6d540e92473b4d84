package dto

import "time"

// ── Message-board DTOs ──

// SendMessageRequest posts into a room thread. room_number is required
// for staff/admin callers and ignored for guests.
type SendMessageRequest struct {
	Message    string `json:"message" binding:"required"`
	RoomNumber string `json:"room_number"`
}

// MessageResponse is a thread entry joined with sender display info.
type MessageResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	SenderName  string    `json:"sender_name,omitempty"`
	RoomNumber  string    `json:"room_number"`
	Body        string    `json:"body"`
	IsFromGuest bool      `json:"is_from_guest"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoomUnreadCount feeds the staff dashboard badge.
type RoomUnreadCount struct {
	RoomNumber string `json:"room_number"`
	Count      int64  `json:"count"`
}

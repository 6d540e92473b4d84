package model

import "time"

// Notification types surfaced on the staff dashboard.
const (
	NotificationNewRequest = "new_request"
	NotificationNewMessage = "new_message"
)

// Notification — staff dashboard entry, maps to notifications. Audience
// is a role, not a user: every staff session sees the same feed until an
// entry is dismissed.
type Notification struct {
	NotificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	Audience       string     `gorm:"type:varchar(20);not null;default:'staff'"      json:"audience"`
	Type           string     `gorm:"type:varchar(30);not null"                      json:"type"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Body           string     `gorm:"type:text;not null"                             json:"body"`
	RoomNumber     string     `gorm:"type:varchar(10)"                               json:"room_number,omitempty"`
	RelatedID      *string    `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	DismissedAt    *time.Time `json:"dismissed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (Notification) TableName() string { return "notifications" }

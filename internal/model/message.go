package model

import "time"

// Message — one entry in a room thread, maps to messages. is_from_guest
// is derived from the sender's role at send time and stored, never
// recomputed. Messages are never deleted.
type Message struct {
	MessageID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"message_id"`
	SenderID    string    `gorm:"type:uuid;not null"                             json:"sender_id"`
	RoomNumber  string    `gorm:"type:varchar(10);not null;index"                json:"room_number"`
	Body        string    `gorm:"type:text;not null"                             json:"body"`
	IsFromGuest bool      `gorm:"not null"                                       json:"is_from_guest"`
	IsRead      bool      `gorm:"not null;default:false"                         json:"is_read"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID;references:UserID" json:"sender,omitempty"`
}

// TableName sets the table name.
func (Message) TableName() string { return "messages" }

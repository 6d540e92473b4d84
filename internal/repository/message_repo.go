package repository

import (
	"context"

	"gorm.io/gorm"

	"zintasa/backend/internal/model"
)

// RoomUnread is the unread guest-message count for one room.
type RoomUnread struct {
	RoomNumber string
	Count      int64
}

// MessageRepository is the message-board access interface. Reads always
// hit the store; dashboards poll, so nothing is cached in process.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, id string) (*model.Message, error)
	// ListByRoom returns a room thread oldest first.
	ListByRoom(ctx context.Context, roomNumber string, limit int) ([]model.Message, error)
	// ListRecent returns the latest messages across all rooms, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Message, error)
	// MarkRoomMessagesRead flags every unread message in the room as
	// read. Idempotent.
	MarkRoomMessagesRead(ctx context.Context, roomNumber string) error
	// UnreadRoomCounts groups unread guest-authored messages by room.
	UnreadRoomCounts(ctx context.Context) ([]RoomUnread, error)
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo builds the GORM MessageRepository.
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepo) GetByID(ctx context.Context, id string) (*model.Message, error) {
	var msg model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("message_id = ?", id).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepo) ListByRoom(ctx context.Context, roomNumber string, limit int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("room_number = ?", roomNumber).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepo) ListRecent(ctx context.Context, limit int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepo) MarkRoomMessagesRead(ctx context.Context, roomNumber string) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("room_number = ? AND NOT is_read", roomNumber).
		Update("is_read", true).Error
}

func (r *messageRepo) UnreadRoomCounts(ctx context.Context) ([]RoomUnread, error) {
	var counts []RoomUnread
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("room_number, COUNT(*) AS count").
		Where("is_from_guest AND NOT is_read").
		Group("room_number").
		Order("room_number").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

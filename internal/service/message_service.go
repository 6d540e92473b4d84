package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"zintasa/backend/internal/dto"
	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
	"zintasa/backend/pkg/apperr"
	"zintasa/backend/pkg/session"
)

const (
	roomThreadLimit    = 100
	recentMessageLimit = 100
	maxMessageLength   = 2000
)

// MessageService is the room message board.
type MessageService interface {
	List(ctx context.Context, caller *session.Identity, room string) ([]dto.MessageResponse, error)
	Send(ctx context.Context, caller *session.Identity, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	UnreadRoomCounts(ctx context.Context) ([]dto.RoomUnreadCount, error)
}

type messageService struct {
	repo   *repository.Repository
	notif  NotificationService
	logger *zap.Logger
}

// NewMessageService builds the MessageService.
func NewMessageService(repo *repository.Repository, notif NotificationService, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, notif: notif, logger: logger}
}

func (s *messageService) List(ctx context.Context, caller *session.Identity, room string) ([]dto.MessageResponse, error) {
	if caller.Role == model.RoleGuest {
		if caller.RoomNumber == "" {
			return []dto.MessageResponse{}, nil
		}
		// A guest opening the thread has caught up on it; the whole
		// thread is marked read, which also clears the room from the
		// staff unread badge. The mark runs before the read so the
		// returned entries carry the read flag they now have.
		if err := s.repo.Message.MarkRoomMessagesRead(ctx, caller.RoomNumber); err != nil {
			s.logger.Error("mark messages read failed", zap.Error(err))
			return nil, apperr.Storage(err)
		}
		rows, err := s.repo.Message.ListByRoom(ctx, caller.RoomNumber, roomThreadLimit)
		if err != nil {
			s.logger.Error("list room messages failed", zap.Error(err))
			return nil, apperr.Storage(err)
		}
		return toMessageResponses(rows), nil
	}

	var (
		rows []model.Message
		err  error
	)
	if room = strings.TrimSpace(room); room != "" {
		rows, err = s.repo.Message.ListByRoom(ctx, room, roomThreadLimit)
	} else {
		rows, err = s.repo.Message.ListRecent(ctx, recentMessageLimit)
	}
	if err != nil {
		s.logger.Error("list messages failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return toMessageResponses(rows), nil
}

func (s *messageService) Send(ctx context.Context, caller *session.Identity, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	body := strings.TrimSpace(req.Message)
	if body == "" {
		return nil, apperr.Validation("message body must not be empty")
	}
	if len(body) > maxMessageLength {
		return nil, apperr.Validation("message body exceeds %d characters", maxMessageLength)
	}

	room := caller.RoomNumber
	if caller.Role != model.RoleGuest {
		room = strings.TrimSpace(req.RoomNumber)
		if room == "" {
			return nil, apperr.Validation("room_number is required when messaging a room")
		}
	}
	if room == "" {
		return nil, apperr.Validation("account has no room assigned")
	}

	msg := &model.Message{
		SenderID:    caller.UserID,
		RoomNumber:  room,
		Body:        body,
		IsFromGuest: caller.Role == model.RoleGuest,
	}
	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("send message failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	if msg.IsFromGuest {
		s.notif.RecordNewMessage(ctx, msg)
	}

	resp := toMessageResponse(msg)
	resp.SenderName = caller.DisplayName
	return &resp, nil
}

func (s *messageService) UnreadRoomCounts(ctx context.Context) ([]dto.RoomUnreadCount, error) {
	counts, err := s.repo.Message.UnreadRoomCounts(ctx)
	if err != nil {
		s.logger.Error("count unread messages failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}
	out := make([]dto.RoomUnreadCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.RoomUnreadCount{RoomNumber: c.RoomNumber, Count: c.Count})
	}
	return out, nil
}

func toMessageResponses(rows []model.Message) []dto.MessageResponse {
	out := make([]dto.MessageResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toMessageResponse(&rows[i]))
	}
	return out
}

func toMessageResponse(m *model.Message) dto.MessageResponse {
	resp := dto.MessageResponse{
		ID:          m.MessageID,
		SenderID:    m.SenderID,
		RoomNumber:  m.RoomNumber,
		Body:        m.Body,
		IsFromGuest: m.IsFromGuest,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.DisplayName
	}
	return resp
}

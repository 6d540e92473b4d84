package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return fmt.Errorf("ERROR: duplicate key value violates unique constraint \"users_username_key\"")
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetActiveByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username && u.IsActive {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetActiveGuestByRoom(_ context.Context, roomNumber string) (*model.User, error) {
	for _, u := range m.users {
		if u.Role == model.RoleGuest && u.RoomNumber == roomNumber && u.IsActive {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListActiveByEmail(_ context.Context, email string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Email == email && u.IsActive {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) CountActiveByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role && u.IsActive {
			n++
		}
	}
	return n, nil
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests map[string]*model.ServiceRequest
	seq      int
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]*model.ServiceRequest)}
}

func (m *mockRequestRepo) Create(_ context.Context, req *model.ServiceRequest) error {
	m.seq++
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("req-%d", m.seq)
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Second)
	}
	req.UpdatedAt = req.CreatedAt
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*model.ServiceRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) ListByRoom(_ context.Context, roomNumber string, limit int) ([]model.ServiceRequest, error) {
	var result []model.ServiceRequest
	for _, r := range m.requests {
		if r.RoomNumber == roomNumber {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockRequestRepo) ListFiltered(_ context.Context, f repository.RequestFilters, limit int) ([]model.ServiceRequest, error) {
	var result []model.ServiceRequest
	for _, r := range m.requests {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Room != "" && r.RoomNumber != f.Room {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if ri, rj := result[i].Priority.Rank(), result[j].Priority.Rank(); ri != rj {
			return ri < rj
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockRequestRepo) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.ServiceRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	applyRequestChanges(r, changes)
	return m.GetByID(ctx, id)
}

func (m *mockRequestRepo) UpdateIf(_ context.Context, id string, pred repository.RequestPredicate, changes map[string]interface{}) (int64, error) {
	r, ok := m.requests[id]
	if !ok {
		return 0, nil
	}
	if pred.GuestID != "" && r.GuestID != pred.GuestID {
		return 0, nil
	}
	if len(pred.Statuses) > 0 {
		match := false
		for _, s := range pred.Statuses {
			if r.Status == s {
				match = true
				break
			}
		}
		if !match {
			return 0, nil
		}
	}
	applyRequestChanges(r, changes)
	return 1, nil
}

func applyRequestChanges(r *model.ServiceRequest, changes map[string]interface{}) {
	if v, ok := changes["status"]; ok {
		r.Status = v.(model.RequestStatus)
	}
	if v, ok := changes["assigned_to"]; ok {
		id := v.(string)
		r.AssignedTo = &id
	}
	if v, ok := changes["completed_at"]; ok {
		r.CompletedAt = v.(*time.Time)
	}
	r.UpdatedAt = time.Now()
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	messages map[string]*model.Message
	seq      int
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{messages: make(map[string]*model.Message)}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.Message) error {
	m.seq++
	if msg.MessageID == "" {
		msg.MessageID = fmt.Sprintf("msg-%d", m.seq)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Second)
	}
	m.messages[msg.MessageID] = msg
	return nil
}

func (m *mockMessageRepo) GetByID(_ context.Context, id string) (*model.Message, error) {
	if msg, ok := m.messages[id]; ok {
		return msg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMessageRepo) ListByRoom(_ context.Context, roomNumber string, limit int) ([]model.Message, error) {
	var result []model.Message
	for _, msg := range m.messages {
		if msg.RoomNumber == roomNumber {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockMessageRepo) ListRecent(_ context.Context, limit int) ([]model.Message, error) {
	var result []model.Message
	for _, msg := range m.messages {
		result = append(result, *msg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockMessageRepo) MarkRoomMessagesRead(_ context.Context, roomNumber string) error {
	for _, msg := range m.messages {
		if msg.RoomNumber == roomNumber {
			msg.IsRead = true
		}
	}
	return nil
}

func (m *mockMessageRepo) UnreadRoomCounts(_ context.Context) ([]repository.RoomUnread, error) {
	counts := make(map[string]int64)
	for _, msg := range m.messages {
		if msg.IsFromGuest && !msg.IsRead {
			counts[msg.RoomNumber]++
		}
	}
	var result []repository.RoomUnread
	for room, n := range counts {
		result = append(result, repository.RoomUnread{RoomNumber: room, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RoomNumber < result[j].RoomNumber
	})
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	seq           int
	failCreate    bool
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if m.failCreate {
		return fmt.Errorf("notifications table unavailable")
	}
	m.seq++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Second)
	}
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) ListActive(_ context.Context, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.DismissedAt == nil {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockNotificationRepo) DismissIf(_ context.Context, id string) (int64, error) {
	n, ok := m.notifications[id]
	if !ok || n.DismissedAt != nil {
		return 0, nil
	}
	now := time.Now()
	n.DismissedAt = &now
	return 1, nil
}

// ── Test fixture helpers ──

func newTestRepository() (*repository.Repository, *mockUserRepo, *mockRequestRepo, *mockMessageRepo, *mockNotificationRepo) {
	users := newMockUserRepo()
	requests := newMockRequestRepo()
	messages := newMockMessageRepo()
	notifications := newMockNotificationRepo()
	repo := &repository.Repository{
		User:         users,
		Request:      requests,
		Message:      messages,
		Notification: notifications,
	}
	return repo, users, requests, messages, notifications
}

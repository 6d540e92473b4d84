package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"zintasa/backend/internal/model"
)

func newTestNotificationService(t *testing.T) (NotificationService, *mockNotificationRepo) {
	t.Helper()
	repo, _, _, _, notifications := newTestRepository()
	return NewNotificationService(repo, zap.NewNop()), notifications
}

func TestRecordAndListNotifications(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	svc.RecordNewRequest(context.Background(), &model.ServiceRequest{
		RequestID: "r1", RoomNumber: "205", RequestType: model.RequestTypeHousekeeping,
		Description: "extra towels",
	})
	svc.RecordNewMessage(context.Background(), &model.Message{
		MessageID: "m1", RoomNumber: "310", Body: "hello",
	})

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	// Newest first.
	if rows[0].Type != model.NotificationNewMessage {
		t.Errorf("first type = %q, want new_message", rows[0].Type)
	}
	if rows[1].RoomNumber != "205" {
		t.Errorf("request notification room = %q, want 205", rows[1].RoomNumber)
	}
	if rows[1].RelatedID == nil || *rows[1].RelatedID != "r1" {
		t.Errorf("related_id = %v, want r1", rows[1].RelatedID)
	}
}

func TestDismissNotification(t *testing.T) {
	svc, notifications := newTestNotificationService(t)
	svc.RecordNewRequest(context.Background(), &model.ServiceRequest{
		RequestID: "r1", RoomNumber: "205", RequestType: model.RequestTypeOther,
	})

	var id string
	for nid := range notifications.notifications {
		id = nid
	}
	if err := svc.Dismiss(context.Background(), id); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len = %d, want dismissed entry hidden", len(rows))
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	if err := svc.Dismiss(context.Background(), "missing"); err != nil {
		t.Errorf("missing id: %v, want nil", err)
	}

	svc.RecordNewMessage(context.Background(), &model.Message{MessageID: "m1", RoomNumber: "205", Body: "x"})
	var id string
	svcRepo := svc.(*notificationService)
	rows, _ := svcRepo.repo.Notification.ListActive(context.Background(), 10)
	id = rows[0].NotificationID

	if err := svc.Dismiss(context.Background(), id); err != nil {
		t.Fatalf("first dismiss: %v", err)
	}
	if err := svc.Dismiss(context.Background(), id); err != nil {
		t.Errorf("second dismiss: %v, want nil", err)
	}
}

func TestRecordSwallowsFailures(t *testing.T) {
	svc, notifications := newTestNotificationService(t)
	notifications.failCreate = true

	// Must not panic or surface anything.
	svc.RecordNewRequest(context.Background(), &model.ServiceRequest{RequestID: "r1", RoomNumber: "205"})
	svc.RecordNewMessage(context.Background(), &model.Message{MessageID: "m1", RoomNumber: "205"})
}

func TestNotificationListCapped(t *testing.T) {
	svc, _ := newTestNotificationService(t)
	for i := 0; i < notificationListLimit+10; i++ {
		svc.RecordNewMessage(context.Background(), &model.Message{RoomNumber: "205", Body: "x"})
	}
	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != notificationListLimit {
		t.Errorf("len = %d, want %d", len(rows), notificationListLimit)
	}
}

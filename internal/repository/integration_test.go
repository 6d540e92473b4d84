//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=zintasa password=zintasa_password dbname=zintasa_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.ServiceRequest{},
		&model.Message{},
		&model.Notification{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "automigrate: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func seedGuest(t *testing.T, room string) (*model.User, func()) {
	t.Helper()
	guest := &model.User{
		Username:     fmt.Sprintf("itest-guest-%d", time.Now().UnixNano()),
		Email:        fmt.Sprintf("itest%d@example.com", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		DisplayName:  "Integration Guest",
		Role:         model.RoleGuest,
		RoomNumber:   room,
		IsActive:     true,
	}
	if err := testDB.Create(guest).Error; err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	cleanup := func() {
		testDB.Unscoped().Where("guest_id = ?", guest.UserID).Delete(&model.ServiceRequest{})
		testDB.Unscoped().Where("sender_id = ?", guest.UserID).Delete(&model.Message{})
		testDB.Unscoped().Where("user_id = ?", guest.UserID).Delete(&model.User{})
	}
	return guest, cleanup
}

func TestConditionalCancelAgainstLiveSQL(t *testing.T) {
	ctx := context.Background()
	guest, cleanup := seedGuest(t, "901")
	defer cleanup()

	repo := repository.NewRepository(testDB)

	entry := &model.ServiceRequest{
		GuestID:     guest.UserID,
		RoomNumber:  guest.RoomNumber,
		RequestType: model.RequestTypeHousekeeping,
		Priority:    model.PriorityMedium,
		Status:      model.StatusPending,
	}
	if err := repo.Request.Create(ctx, entry); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Wrong guest: predicate blocks the write.
	n, err := repo.Request.UpdateIf(ctx, entry.RequestID,
		repository.RequestPredicate{GuestID: "00000000-0000-0000-0000-000000000000", Statuses: []model.RequestStatus{model.StatusPending}},
		map[string]interface{}{"status": model.StatusCancelled})
	if err != nil {
		t.Fatalf("UpdateIf: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows = %d, want 0 for foreign guest", n)
	}

	// Right guest and status: one row.
	n, err = repo.Request.UpdateIf(ctx, entry.RequestID,
		repository.RequestPredicate{GuestID: guest.UserID, Statuses: []model.RequestStatus{model.StatusPending}},
		map[string]interface{}{"status": model.StatusCancelled})
	if err != nil {
		t.Fatalf("UpdateIf: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}

	// Terminal now: a second cancel is a no-op.
	n, err = repo.Request.UpdateIf(ctx, entry.RequestID,
		repository.RequestPredicate{GuestID: guest.UserID, Statuses: []model.RequestStatus{model.StatusPending}},
		map[string]interface{}{"status": model.StatusCancelled})
	if err != nil {
		t.Fatalf("UpdateIf: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows = %d, want 0 once terminal", n)
	}

	got, err := repo.Request.GetByID(ctx, entry.RequestID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusCancelled {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
}

func TestUnreadCountsAgainstLiveSQL(t *testing.T) {
	ctx := context.Background()
	guest, cleanup := seedGuest(t, "902")
	defer cleanup()

	repo := repository.NewRepository(testDB)

	for i := 0; i < 3; i++ {
		msg := &model.Message{
			SenderID:    guest.UserID,
			RoomNumber:  guest.RoomNumber,
			Body:        fmt.Sprintf("message %d", i),
			IsFromGuest: true,
		}
		if err := repo.Message.Create(ctx, msg); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}
	staffReply := &model.Message{
		SenderID:    guest.UserID,
		RoomNumber:  guest.RoomNumber,
		Body:        "staff reply",
		IsFromGuest: false,
	}
	if err := repo.Message.Create(ctx, staffReply); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	counts, err := repo.Message.UnreadRoomCounts(ctx)
	if err != nil {
		t.Fatalf("UnreadRoomCounts: %v", err)
	}
	var room902 int64
	for _, c := range counts {
		if c.RoomNumber == guest.RoomNumber {
			room902 = c.Count
		}
	}
	if room902 != 3 {
		t.Errorf("unread in %s = %d, want 3 guest messages only", guest.RoomNumber, room902)
	}

	// Marking the room read clears its badge entirely.
	if err := repo.Message.MarkRoomMessagesRead(ctx, guest.RoomNumber); err != nil {
		t.Fatalf("MarkRoomMessagesRead: %v", err)
	}
	counts, err = repo.Message.UnreadRoomCounts(ctx)
	if err != nil {
		t.Fatalf("UnreadRoomCounts: %v", err)
	}
	room902 = 0
	for _, c := range counts {
		if c.RoomNumber == guest.RoomNumber {
			room902 = c.Count
		}
	}
	if room902 != 0 {
		t.Errorf("unread after mark = %d, want 0", room902)
	}
}

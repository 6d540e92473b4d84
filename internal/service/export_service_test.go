package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
	"zintasa/backend/pkg/apperr"
)

func newTestExportService(t *testing.T) (ExportService, *mockRequestRepo) {
	t.Helper()
	repo, _, requests, _, _ := newTestRepository()
	return NewExportService(repo, zap.NewNop()), requests
}

func TestExportRequestsEmptyLedger(t *testing.T) {
	svc, _ := newTestExportService(t)
	_, _, err := svc.ExportRequests(context.Background(), &repository.RequestFilters{})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not_found for an empty export", err)
	}
}

func TestExportRequestsInvalidFilter(t *testing.T) {
	svc, _ := newTestExportService(t)
	_, _, err := svc.ExportRequests(context.Background(), &repository.RequestFilters{Status: "bogus"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestExportRequestsWorkbook(t *testing.T) {
	svc, requests := newTestExportService(t)
	assignee := "s9"
	seed := []*model.ServiceRequest{
		{
			GuestID: "g1", RoomNumber: "205", RequestType: model.RequestTypeHousekeeping,
			Priority: model.PriorityUrgent, Status: model.StatusPending, Description: "leak under sink",
		},
		{
			GuestID: "g2", RoomNumber: "310", RequestType: model.RequestTypeRoomService,
			Priority: model.PriorityLow, Status: model.StatusAssigned, AssignedTo: &assignee,
			Assignee: &model.User{UserID: "s9", DisplayName: "Sam"},
		},
	}
	for _, r := range seed {
		if err := requests.Create(context.Background(), r); err != nil {
			t.Fatal(err)
		}
	}

	buf, filename, err := svc.ExportRequests(context.Background(), &repository.RequestFilters{})
	if err != nil {
		t.Fatalf("ExportRequests: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Fatal("empty workbook buffer")
	}
	if !strings.HasPrefix(filename, "service_requests_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}
	// xlsx is a zip container and starts with PK.
	header := buf.Bytes()[:2]
	if header[0] != 0x50 || header[1] != 0x4B {
		t.Error("output is not a valid xlsx container")
	}
}

func TestExportRequestsHonorsFilters(t *testing.T) {
	svc, requests := newTestExportService(t)
	for _, status := range []model.RequestStatus{model.StatusPending, model.StatusCompleted} {
		if err := requests.Create(context.Background(), &model.ServiceRequest{
			GuestID: "g1", RoomNumber: "205", RequestType: model.RequestTypeOther,
			Priority: model.PriorityMedium, Status: status,
		}); err != nil {
			t.Fatal(err)
		}
	}

	buf, _, err := svc.ExportRequests(context.Background(), &repository.RequestFilters{Status: model.StatusCancelled})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("no-match filter: err = %v, want not_found", err)
	}
	if buf != nil {
		t.Error("buffer returned alongside an error")
	}

	if _, _, err := svc.ExportRequests(context.Background(), &repository.RequestFilters{Status: model.StatusPending}); err != nil {
		t.Fatalf("matching filter: %v", err)
	}
}

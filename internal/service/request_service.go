package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"zintasa/backend/internal/dto"
	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
	"zintasa/backend/pkg/apperr"
	"zintasa/backend/pkg/session"
)

// Listing caps. Guests see their own room's recent history; staff
// dashboards page the whole hotel.
const (
	guestRequestListLimit = 50
	staffRequestListLimit = 100
)

// RequestService is the service-request ledger.
type RequestService interface {
	List(ctx context.Context, caller *session.Identity, q *dto.RequestListQuery) ([]dto.RequestResponse, error)
	Create(ctx context.Context, caller *session.Identity, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	Update(ctx context.Context, caller *session.Identity, req *dto.UpdateRequestRequest) (*dto.RequestResponse, error)
	Cancel(ctx context.Context, caller *session.Identity, id string) error
}

type requestService struct {
	repo   *repository.Repository
	notif  NotificationService
	logger *zap.Logger
}

// NewRequestService builds the RequestService.
func NewRequestService(repo *repository.Repository, notif NotificationService, logger *zap.Logger) RequestService {
	return &requestService{repo: repo, notif: notif, logger: logger}
}

func (s *requestService) List(ctx context.Context, caller *session.Identity, q *dto.RequestListQuery) ([]dto.RequestResponse, error) {
	var (
		rows []model.ServiceRequest
		err  error
	)
	if caller.Role == model.RoleGuest {
		// Guests always see their own room, newest first. Filters from
		// the query string are ignored for them.
		rows, err = s.repo.Request.ListByRoom(ctx, caller.RoomNumber, guestRequestListLimit)
	} else {
		filters := repository.RequestFilters{Room: strings.TrimSpace(q.Room)}
		if q.Status != "" {
			status := model.RequestStatus(q.Status)
			if !status.Valid() {
				return nil, apperr.Validation("unknown status filter %q", q.Status)
			}
			filters.Status = status
		}
		rows, err = s.repo.Request.ListFiltered(ctx, filters, staffRequestListLimit)
	}
	if err != nil {
		s.logger.Error("list service requests failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	out := make([]dto.RequestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toRequestResponse(&rows[i]))
	}
	return out, nil
}

func (s *requestService) Create(ctx context.Context, caller *session.Identity, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	reqType := model.RequestType(req.RequestType)
	if !reqType.Valid() {
		return nil, apperr.Validation("unknown request type %q", req.RequestType)
	}

	priority := model.PriorityMedium
	if req.Priority != "" {
		priority = model.RequestPriority(req.Priority)
		if !priority.Valid() {
			return nil, apperr.Validation("unknown priority %q", req.Priority)
		}
	}

	guestID, roomNumber, err := s.resolveScope(ctx, caller, req.RoomNumber)
	if err != nil {
		return nil, err
	}

	entry := &model.ServiceRequest{
		GuestID:     guestID,
		RoomNumber:  roomNumber,
		RequestType: reqType,
		Priority:    priority,
		Status:      model.StatusPending,
		Description: strings.TrimSpace(req.Description),
	}
	if t := strings.TrimSpace(req.PreferredTime); t != "" {
		entry.PreferredTime = &t
	}
	if err := s.repo.Request.Create(ctx, entry); err != nil {
		s.logger.Error("create service request failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	s.notif.RecordNewRequest(ctx, entry)

	resp := toRequestResponse(entry)
	return &resp, nil
}

// resolveScope decides whose ledger the new entry belongs to. Guests
// always file for their own room; staff file on a guest's behalf and
// must name a room with an active guest account.
func (s *requestService) resolveScope(ctx context.Context, caller *session.Identity, roomNumber string) (string, string, error) {
	if caller.Role == model.RoleGuest {
		return caller.UserID, caller.RoomNumber, nil
	}

	room := strings.TrimSpace(roomNumber)
	if room == "" {
		return "", "", apperr.Validation("room_number is required when filing on a guest's behalf")
	}
	guest, err := s.repo.User.GetActiveGuestByRoom(ctx, room)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", apperr.NotFound("no active guest registered for room %s", room)
		}
		s.logger.Error("resolve room guest failed", zap.Error(err))
		return "", "", apperr.Storage(err)
	}
	return guest.UserID, room, nil
}

func (s *requestService) Update(ctx context.Context, caller *session.Identity, req *dto.UpdateRequestRequest) (*dto.RequestResponse, error) {
	if req.Status == nil && req.AssignedTo == nil {
		return nil, apperr.Validation("nothing to update: set status or assigned_to")
	}

	current, err := s.repo.Request.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("service request %s not found", req.ID)
		}
		s.logger.Error("load service request failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}
	if current.Status.Terminal() {
		return nil, apperr.Conflict("request is already %s and can no longer change", current.Status)
	}

	changes := map[string]interface{}{}

	if req.AssignedTo != nil {
		assignee, err := s.repo.User.GetByID(ctx, *req.AssignedTo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("assignee %s does not exist", *req.AssignedTo)
			}
			s.logger.Error("load assignee failed", zap.Error(err))
			return nil, apperr.Storage(err)
		}
		if !assignee.IsActive || !model.IsStaffRole(assignee.Role) {
			return nil, apperr.Validation("assignee must be an active staff member")
		}
		changes["assigned_to"] = *req.AssignedTo
		// Assigning a fresh request moves it out of pending unless the
		// caller sets an explicit status in the same call.
		if req.Status == nil && current.Status == model.StatusPending {
			changes["status"] = model.StatusAssigned
		}
	}

	if req.Status != nil {
		status := model.RequestStatus(*req.Status)
		if !status.Valid() {
			return nil, apperr.Validation("unknown status %q", *req.Status)
		}
		// An assigned request cannot fall back to pending; an assignee on
		// the record always means the request has been picked up.
		if status == model.StatusPending && (current.AssignedTo != nil || req.AssignedTo != nil) {
			return nil, apperr.Validation("an assigned request cannot return to pending")
		}
		changes["status"] = status
		if status == model.StatusCompleted {
			now := time.Now()
			changes["completed_at"] = &now
		}
	}

	updated, err := s.repo.Request.Update(ctx, req.ID, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("service request %s not found", req.ID)
		}
		s.logger.Error("update service request failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	s.logger.Info("service request updated",
		zap.String("request_id", req.ID),
		zap.String("updated_by", caller.UserID))

	resp := toRequestResponse(updated)
	return &resp, nil
}

func (s *requestService) Cancel(ctx context.Context, caller *session.Identity, id string) error {
	changes := map[string]interface{}{"status": model.StatusCancelled}

	if caller.Role == model.RoleGuest {
		// Guests may only withdraw their own still-pending requests. A
		// zero-row write means the request was missing, someone else's,
		// or already picked up; all of those read as "nothing to do".
		pred := repository.RequestPredicate{
			GuestID:  caller.UserID,
			Statuses: []model.RequestStatus{model.StatusPending},
		}
		if _, err := s.repo.Request.UpdateIf(ctx, id, pred, changes); err != nil {
			s.logger.Error("cancel service request failed", zap.Error(err))
			return apperr.Storage(err)
		}
		return nil
	}

	current, err := s.repo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("service request %s not found", id)
		}
		s.logger.Error("load service request failed", zap.Error(err))
		return apperr.Storage(err)
	}
	if current.Status.Terminal() {
		return nil
	}

	pred := repository.RequestPredicate{
		Statuses: []model.RequestStatus{model.StatusPending, model.StatusAssigned, model.StatusInProgress},
	}
	if _, err := s.repo.Request.UpdateIf(ctx, id, pred, changes); err != nil {
		s.logger.Error("cancel service request failed", zap.Error(err))
		return apperr.Storage(err)
	}
	return nil
}

func toRequestResponse(r *model.ServiceRequest) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:            r.RequestID,
		GuestID:       r.GuestID,
		RoomNumber:    r.RoomNumber,
		RequestType:   string(r.RequestType),
		Priority:      string(r.Priority),
		Status:        string(r.Status),
		Description:   r.Description,
		AssignedTo:    r.AssignedTo,
		PreferredTime: r.PreferredTime,
		CompletedAt:   r.CompletedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Guest != nil {
		resp.GuestName = r.Guest.DisplayName
	}
	if r.Assignee != nil {
		resp.AssigneeName = r.Assignee.DisplayName
	}
	return resp
}

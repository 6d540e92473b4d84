package repository

import (
	"context"

	"gorm.io/gorm"

	"zintasa/backend/internal/model"
)

// RequestFilters narrows the staff/admin listing. Zero values mean "no
// filter".
type RequestFilters struct {
	Status model.RequestStatus
	Room   string
}

// RequestPredicate guards a conditional write. Zero values mean "no
// condition". The predicate and mutation are applied in one atomic
// UPDATE so a concurrent writer cannot slip between check and write.
type RequestPredicate struct {
	GuestID  string
	Statuses []model.RequestStatus
}

// RequestRepository is the service-request ledger access interface.
type RequestRepository interface {
	Create(ctx context.Context, req *model.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*model.ServiceRequest, error)
	// ListByRoom returns a room's requests newest first.
	ListByRoom(ctx context.Context, roomNumber string, limit int) ([]model.ServiceRequest, error)
	// ListFiltered returns requests ordered by priority (urgent first),
	// then creation time descending. limit <= 0 means no cap.
	ListFiltered(ctx context.Context, f RequestFilters, limit int) ([]model.ServiceRequest, error)
	// Update applies changes and re-reads the row so the caller sees the
	// authoritative post-write state.
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.ServiceRequest, error)
	// UpdateIf applies changes only where pred still holds and reports
	// how many rows matched. Zero rows is not an error.
	UpdateIf(ctx context.Context, id string, pred RequestPredicate, changes map[string]interface{}) (int64, error)
}

type requestRepo struct {
	db *gorm.DB
}

// NewRequestRepo builds the GORM RequestRepository.
func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

// priorityRank orders urgent > high > medium > low in SQL.
const priorityRank = "CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

func (r *requestRepo) Create(ctx context.Context, req *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*model.ServiceRequest, error) {
	var req model.ServiceRequest
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Assignee").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepo) ListByRoom(ctx context.Context, roomNumber string, limit int) ([]model.ServiceRequest, error) {
	var reqs []model.ServiceRequest
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("room_number = ?", roomNumber).
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *requestRepo) ListFiltered(ctx context.Context, f RequestFilters, limit int) ([]model.ServiceRequest, error) {
	tx := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Assignee").
		Model(&model.ServiceRequest{})
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Room != "" {
		tx = tx.Where("room_number = ?", f.Room)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var reqs []model.ServiceRequest
	err := tx.Order(priorityRank + ", created_at DESC").Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *requestRepo) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.ServiceRequest, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ServiceRequest{}).
		Where("request_id = ?", id).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *requestRepo) UpdateIf(ctx context.Context, id string, pred RequestPredicate, changes map[string]interface{}) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.ServiceRequest{}).
		Where("request_id = ?", id)
	if pred.GuestID != "" {
		tx = tx.Where("guest_id = ?", pred.GuestID)
	}
	if len(pred.Statuses) > 0 {
		tx = tx.Where("status IN ?", pred.Statuses)
	}

	res := tx.Updates(changes)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

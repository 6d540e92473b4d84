package model

import "time"

// RequestType is the category of a service request.
type RequestType string

const (
	RequestTypeHousekeeping RequestType = "housekeeping"
	RequestTypeRoomService  RequestType = "room_service"
	RequestTypeMaintenance  RequestType = "maintenance"
	RequestTypeLaundry      RequestType = "laundry"
	RequestTypeAmenities    RequestType = "amenities"
	RequestTypeOther        RequestType = "other"
)

// Valid reports whether t is one of the enumerated request types.
func (t RequestType) Valid() bool {
	switch t {
	case RequestTypeHousekeeping, RequestTypeRoomService, RequestTypeMaintenance,
		RequestTypeLaundry, RequestTypeAmenities, RequestTypeOther:
		return true
	}
	return false
}

// RequestPriority orders requests on staff dashboards.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityMedium RequestPriority = "medium"
	PriorityHigh   RequestPriority = "high"
	PriorityUrgent RequestPriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p RequestPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank maps priority to sort order: urgent sorts first.
func (p RequestPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// RequestStatus is the lifecycle state of a service request.
// pending → assigned → in_progress → completed; any non-terminal state
// may move to cancelled. completed and cancelled are terminal.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusAssigned   RequestStatus = "assigned"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// Valid reports whether s is one of the five lifecycle states.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status writes are allowed.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ServiceRequest — the ledger record, maps to service_requests.
// room_number and guest_id are immutable after creation; completed_at is
// set exactly when status becomes completed.
type ServiceRequest struct {
	RequestID     string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	GuestID       string          `gorm:"type:uuid;not null;index"                       json:"guest_id"`
	RoomNumber    string          `gorm:"type:varchar(10);not null;index"                json:"room_number"`
	RequestType   RequestType     `gorm:"type:varchar(20);not null"                      json:"request_type"`
	Priority      RequestPriority `gorm:"type:varchar(10);not null;default:'medium'"     json:"priority"`
	Status        RequestStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Description   string          `gorm:"type:text"                                      json:"description,omitempty"`
	AssignedTo    *string         `gorm:"type:uuid"                                      json:"assigned_to,omitempty"`
	PreferredTime *string         `gorm:"type:varchar(20)"                               json:"preferred_time,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	Timestamps

	Guest    *User `gorm:"foreignKey:GuestID;references:UserID"    json:"guest,omitempty"`
	Assignee *User `gorm:"foreignKey:AssignedTo;references:UserID" json:"assignee,omitempty"`
}

// TableName sets the table name.
func (ServiceRequest) TableName() string { return "service_requests" }

package dto

import "time"

// ── Service-request DTOs ──

// CreateRequestRequest creates a ledger entry. room_number is required
// for staff/admin callers and ignored for guests.
type CreateRequestRequest struct {
	RequestType   string `json:"request_type" binding:"required"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	PreferredTime string `json:"preferred_time"`
	RoomNumber    string `json:"room_number"`
}

// UpdateRequestRequest mutates status and/or assignment. At least one of
// status and assigned_to must be set.
type UpdateRequestRequest struct {
	ID         string  `json:"id" binding:"required"`
	Status     *string `json:"status"`
	AssignedTo *string `json:"assigned_to"`
}

// RequestListQuery filters the staff/admin listing. Guests ignore it.
type RequestListQuery struct {
	Status string `form:"status"`
	Room   string `form:"room"`
}

// RequestResponse is the ledger record as returned to clients.
type RequestResponse struct {
	ID            string     `json:"id"`
	GuestID       string     `json:"guest_id"`
	GuestName     string     `json:"guest_name,omitempty"`
	RoomNumber    string     `json:"room_number"`
	RequestType   string     `json:"request_type"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	Description   string     `json:"description,omitempty"`
	AssignedTo    *string    `json:"assigned_to,omitempty"`
	AssigneeName  string     `json:"assignee_name,omitempty"`
	PreferredTime *string    `json:"preferred_time,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

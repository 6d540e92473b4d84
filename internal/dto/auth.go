package dto

// ── Auth DTOs ──

// LoginRequest carries login credentials. The email field is the login
// identifier; it is resolved as username, then room number, then email.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// CreateAccountRequest is the admin account-bootstrap payload.
type CreateAccountRequest struct {
	Username    string `json:"username"     binding:"required,min=3,max=50"`
	Email       string `json:"email"        binding:"required,email"`
	Password    string `json:"password"     binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Role        string `json:"role"         binding:"required"`
	RoomNumber  string `json:"room_number"`
	Department  string `json:"department"`
}

// UserResponse is the sanitized account view.
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	RoomNumber  string `json:"room_number,omitempty"`
	Department  string `json:"department,omitempty"`
}

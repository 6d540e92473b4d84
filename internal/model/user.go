package model

// Caller roles. Guests act on their own room; staff and admins act
// across rooms.
const (
	RoleGuest = "guest"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	return r == RoleGuest || r == RoleStaff || r == RoleAdmin
}

// IsStaffRole reports whether r acts across rooms.
func IsStaffRole(r string) bool {
	return r == RoleStaff || r == RoleAdmin
}

// User — account record, maps to users.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Email        string `gorm:"type:varchar(255);not null;index"               json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	DisplayName  string `gorm:"type:varchar(100);not null"                     json:"display_name"`
	Role         string `gorm:"type:varchar(20);not null;default:'guest'"      json:"role"`
	RoomNumber   string `gorm:"type:varchar(10);index"                         json:"room_number,omitempty"`
	Department   string `gorm:"type:varchar(50)"                               json:"department,omitempty"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	Timestamps
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

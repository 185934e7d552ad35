package models

import (
	"time"
)

// User defines the staff account model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"admin@pandu.go.id"`                            // User's email address
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FullName    string     `json:"fullName" db:"full_name" example:"Dewi Lestari"`                          // User's full name
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"admin"`                                 // User's role (admin or superadmin)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the account is active
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2025-08-20T18:00:00Z"` // Timestamp of the last login (nullable)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2025-01-02T15:30:00Z"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the slice of the account record the watchdog engine reads. Accounts
// and roles are managed by the user service; this process never writes them.
type User struct {
	ID        uuid.UUID  `json:"id" db:"user_id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	Role      string     `json:"role" db:"role"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleVIP   UserRole = "vip"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleVIP, RoleAdmin:
		return true
	default:
		return false
	}
}

func (u *User) HasRole(requiredRole string) bool {
	switch UserRole(requiredRole) {
	case RoleAdmin:
		return u.Role == string(RoleAdmin)
	case RoleVIP:
		return u.Role == string(RoleVIP) || u.Role == string(RoleAdmin)
	case RoleUser:
		return UserRole(u.Role).IsValid()
	default:
		return false
	}
}

// IsElevated reports whether the account may own active watchdogs.
func (u *User) IsElevated() bool {
	return u.IsActive && u.DeletedAt == nil && u.HasRole(string(RoleVIP))
}

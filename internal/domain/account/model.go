package account

import (
	"time"

	"github.com/google/uuid"
)

// Roles assignable to an account. A role is a single value, not a set.
const (
	RoleDoctor = "doctor"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleDoctor, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// Account is a hospital staff login identity. PasswordDigest is never
// serialized in API responses.
type Account struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Handle         string     `db:"handle" json:"handle"`
	Email          string     `db:"email" json:"email"`
	DisplayName    string     `db:"display_name" json:"display_name"`
	PasswordDigest string     `db:"password_digest" json:"-"`
	Role           string     `db:"role" json:"role"`
	Active         bool       `db:"active" json:"active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	LastLoginAt    *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

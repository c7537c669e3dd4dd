package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is a coarse access level checked by route allow-lists.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleHRManager      Role = "hr_manager"
	RoleRecruiter      Role = "recruiter"
	RoleFinanceManager Role = "finance_manager"
	RoleEmployee       Role = "employee"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleHRManager, RoleRecruiter, RoleFinanceManager, RoleEmployee:
		return true
	}
	return false
}

// User represents an account in the system. Every account belongs to
// exactly one tenant; records are never visible across tenants.
type User struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package domain

import "time"

// UserRole is the closed set of roles recognized at the API boundary.
// Role checks gate handlers only; the ledger engine itself is role-agnostic.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleManager    UserRole = "MANAGER"
	RoleDataEntry  UserRole = "DATA_ENTRY"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleManager, RoleDataEntry:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	IsActive     bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

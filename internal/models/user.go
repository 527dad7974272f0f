package models

import "time"

// User is the DB representation of an application user.
type User struct {
	UserID       string     `db:"user_id"`
	Username     string     `db:"username"`
	Name         string     `db:"name"`
	Role         string     `db:"role"`
	PasswordHash string     `db:"password_hash"`
	IsActive     bool       `db:"is_active"`
	DeletedAt    *time.Time `db:"deleted_at"` // Nullable; soft delete
	AuditFields
}

package repositories

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by ID, excluding soft-deleted users.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username, excluding soft-deleted users.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves users with limit/offset pagination.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts a new user. Duplicate usernames surface ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser persists changes to name, role and active flag.
	UpdateUser(ctx context.Context, user domain.User) error

	// MarkUserDeleted soft deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

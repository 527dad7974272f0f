package services

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves users with limit/offset pagination.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates user details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorUserID string) (*domain.User, error)

	// DeleteUser soft deletes a user.
	DeleteUser(ctx context.Context, userID string, actorUserID string) error
}

// UserAuthenticatorSvc verifies credentials at the API boundary.
type UserAuthenticatorSvc interface {
	// AuthenticateUser checks username/password and returns the user on
	// success. Failures are indistinguishable to the caller.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/nbenhadj/bookkeeping_app/internal/utils"
)

// userService provides user management and authentication operations.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserSvcFacade backed by the given repository.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, req.Username)
		}
		s.LogError(ctx, err, "failed to save user", slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "user created", slog.String("userID", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// AuthenticateUser checks username/password and returns the user on success.
// Unknown usernames and wrong passwords both come back as ErrForbidden so
// callers cannot distinguish them.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves users with limit/offset pagination.
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// UpdateUser updates user details.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = actorUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "failed to update user", slog.String("userID", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.LogInfo(ctx, "user updated", slog.String("userID", userID))
	return user, nil
}

// DeleteUser soft deletes a user; the record remains for audit references.
func (s *userService) DeleteUser(ctx context.Context, userID string, actorUserID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, actorUserID); err != nil {
		s.LogError(ctx, err, "failed to delete user", slog.String("userID", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "user deleted", slog.String("userID", userID), slog.String("deletedBy", actorUserID))
	return nil
}

package dto

import (
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a new user.
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required,min=8"`
	Name     string          `json:"name" binding:"required"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN ACCOUNTANT MANAGER DATA_ENTRY"`
}

// UpdateUserRequest defines the data allowed for updating a user.
type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Role     *domain.UserRole `json:"role"`
	IsActive *bool            `json:"isActive"`
}

// LoginRequest defines the credentials for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token  string       `json:"token"`
	User   UserResponse `json:"user"`
	Expiry time.Time    `json:"expiry"`
}

// UserResponse defines the data returned for a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to []UserResponse.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(&u)
	}
	return responses
}

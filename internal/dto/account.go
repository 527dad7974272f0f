package dto

import (
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description"`     // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ParentAccountID *string `json:"parentAccountID"` // Re-checked for cycles on update
	IsActive        *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string if null in DB
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		responses[i] = ToAccountResponse(&acc)
	}
	return responses
}

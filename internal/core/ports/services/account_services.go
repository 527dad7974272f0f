package services

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts with limit/offset pagination.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount registers a new account in the chart of accounts.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates account details, re-validating the parent chain.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an unused account; referenced accounts are protected.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

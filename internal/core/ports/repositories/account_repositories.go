package repositories

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	// Missing IDs are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindFirstAccountByType returns the first active account of the given
	// type, ordered by account code. Returns ErrNotFound when the chart has
	// no account of that type.
	FindFirstAccountByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount inserts a new account. Duplicate codes surface ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to name, description, parent and active flag.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. An account referenced by journal
	// entry lines is protected and surfaces ErrAccountInUse.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

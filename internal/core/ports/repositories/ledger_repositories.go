package repositories

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// LedgerRepository defines the read-only aggregate queries of the ledger.
// Both queries derive everything from the stored journal entry lines; no
// cached totals are consulted anywhere.
type LedgerRepository interface {
	// GetAccountLedgerLines returns all lines touching one account, ordered
	// by (entry date, line insertion order) ascending, without running
	// balances. The service computes the fold.
	GetAccountLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerLine, error)

	// GetTrialBalanceData aggregates total debit and total credit per
	// account, omitting accounts with zero on both sides.
	GetTrialBalanceData(ctx context.Context) ([]domain.TrialBalanceRow, error)
}

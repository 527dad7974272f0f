package services

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// LedgerSvcFacade exposes the derived views of the ledger. Balances are
// always recomputed from the stored lines; nothing here mutates state.
type LedgerSvcFacade interface {
	// AccountLedger returns the ordered lines of one account annotated with
	// running balances folded from zero.
	AccountLedger(ctx context.Context, accountID string) ([]domain.LedgerLine, error)

	// TrialBalance returns the per-account debit/credit aggregates for all
	// accounts with activity.
	TrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error)
}

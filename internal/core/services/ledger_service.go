package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/utils/accounting"
)

// ledgerService serves the derived read-only views of the ledger.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new LedgerSvcFacade backed by the given repositories.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// AccountLedger returns the ordered lines of one account annotated with
// running balances. The fold always starts from zero; no cached balance is
// consulted, so repeated calls over unchanged data return identical results.
func (s *ledgerService) AccountLedger(ctx context.Context, accountID string) ([]domain.LedgerLine, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	lines, err := s.ledgerRepo.GetAccountLedgerLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch account ledger lines", slog.String("accountID", accountID))
		return nil, fmt.Errorf("failed to fetch ledger lines for account %s: %w", accountID, err)
	}
	return accounting.RunningBalances(lines), nil
}

// TrialBalance returns per-account debit/credit totals for every account
// with activity. For a store containing only balanced entries the grand
// totals of the two columns are equal.
func (s *ledgerService) TrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	rows, err := s.ledgerRepo.GetTrialBalanceData(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to compute trial balance")
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}
	return rows, nil
}

package pgsql

import (
	"context"
	"fmt"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// newPgxLedgerRepository creates a new repository for the derived ledger views.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// GetAccountLedgerLines returns every line touching one account, joined with
// its entry header, in stable chronological order. Running balances are left
// at zero; the service folds them from the returned sequence.
func (r *PgxLedgerRepository) GetAccountLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, e.entry_date, e.description, l.line_no, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		ORDER BY e.entry_date, e.created_at, l.line_no;
	`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var line domain.LedgerLine
		err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.EntryDate,
			&line.Description,
			&line.LineNo,
			&line.Debit,
			&line.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger line for account %s: %w", accountID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines for account %s: %w", accountID, err)
	}
	return lines, nil
}

// GetTrialBalanceData aggregates total debit and total credit per account.
// Accounts with no activity on either side are omitted.
func (r *PgxLedgerRepository) GetTrialBalanceData(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		JOIN journal_entry_lines l ON l.account_id = a.account_id
		GROUP BY a.account_id, a.code, a.name, a.account_type
		HAVING COALESCE(SUM(l.debit), 0) <> 0 OR COALESCE(SUM(l.credit), 0) <> 0
		ORDER BY a.code;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.AccountType,
			&row.TotalDebit,
			&row.TotalCredit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
	"github.com/nbenhadj/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, code, name, account_type, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// scanAccount reads one account row into a model, handling the nullable parent column.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&parentID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

// SaveAccount inserts a new account. A duplicate code violates the unique
// constraint and surfaces as ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	var parentID sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.AccountType,
		parentID,
		modelAcc.Description,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, modelAcc.Code)
			}
			if pgErr.Code == "23503" { // FK violation on parent_account_id
				return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, modelAcc.ParentAccountID)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// FindAccountByCode retrieves an account by its unique code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. IDs without a
// matching row are simply absent from the result.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", scanErr)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return result, nil
}

// FindFirstAccountByType returns the first active account of the given type
// ordered by code. Used by the invoice translation to pick target accounts.
func (r *PgxAccountRepository) FindFirstAccountByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_type = $1 AND is_active = TRUE
		ORDER BY code
		LIMIT 1;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, string(accountType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account of type %s: %w", accountType, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// ListAccounts retrieves accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", scanErr)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount persists changes to name, description, parent and active flag.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, parent_account_id = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	var parentID sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}

	tag, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Description,
		parentID,
		modelAcc.IsActive,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. The RESTRICT constraint on journal entry
// lines rejects deletion of accounts with ledger history.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	query := `DELETE FROM accounts WHERE account_id = $1;`

	tag, err := r.pool.Exec(ctx, query, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return fmt.Errorf("%w: account %s", apperrors.ErrAccountInUse, accountID)
		}
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

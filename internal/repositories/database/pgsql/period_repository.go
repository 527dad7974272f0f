package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
	"github.com/nbenhadj/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, name, start_date, end_date, is_closed, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	var closedAt sql.NullTime
	var closedBy sql.NullString
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&closedAt,
		&closedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.AccountingPeriod{}, err
	}
	if closedAt.Valid {
		t := closedAt.Time
		m.ClosedAt = &t
	}
	if closedBy.Valid {
		m.ClosedBy = closedBy.String
	}
	return m, nil
}

// SavePeriod inserts a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	modelPeriod := mapping.ToModelPeriod(period)

	query := `
		INSERT INTO accounting_periods (period_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelPeriod.PeriodID,
		modelPeriod.Name,
		modelPeriod.StartDate,
		modelPeriod.EndDate,
		modelPeriod.IsClosed,
		modelPeriod.CreatedAt,
		modelPeriod.CreatedBy,
		modelPeriod.LastUpdatedAt,
		modelPeriod.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" { // Exclusion violation on the no-overlap constraint
			return fmt.Errorf("%w: range %s to %s collides with an existing period",
				apperrors.ErrPeriodOverlap,
				modelPeriod.StartDate.Format("2006-01-02"),
				modelPeriod.EndDate.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save accounting period %s: %w", modelPeriod.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by ID %s: %w", periodID, err)
	}

	domainPeriod := mapping.ToDomainPeriod(m)
	return &domainPeriod, nil
}

// FindPeriodOverlapping returns any period whose inclusive date range
// intersects [start, end], or ErrNotFound when the range is free.
func (r *PgxPeriodRepository) FindPeriodOverlapping(ctx context.Context, start, end time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}

	domainPeriod := mapping.ToDomainPeriod(m)
	return &domainPeriod, nil
}

// ListPeriods retrieves all periods ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounting periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		m, scanErr := scanPeriod(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", scanErr)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}
	return periods, nil
}

// ClosePeriod flips the period to closed. The period row is locked first so
// a concurrent close or a concurrent entry insert against the same period
// serializes with this transaction; the closed flag and the unposted-entry
// count are both re-checked under the lock.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, closedBy string, closedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var isClosed bool
	err = tx.QueryRow(ctx, `SELECT is_closed FROM accounting_periods WHERE period_id = $1 FOR UPDATE;`, periodID).Scan(&isClosed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock period %s: %w", periodID, err)
	}
	if isClosed {
		return fmt.Errorf("%w: period %s", apperrors.ErrAlreadyClosed, periodID)
	}

	var unposted int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE period_id = $1 AND posted = FALSE;`, periodID).Scan(&unposted)
	if err != nil {
		return fmt.Errorf("failed to count unposted entries for period %s: %w", periodID, err)
	}
	if unposted > 0 {
		return fmt.Errorf("%w: %d unposted entries in period %s", apperrors.ErrUnpostedEntries, unposted, periodID)
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounting_periods
		SET is_closed = TRUE, closed_at = $2, closed_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE period_id = $1;
	`, periodID, closedAt, closedBy)
	if err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}

	return r.Commit(ctx, tx)
}

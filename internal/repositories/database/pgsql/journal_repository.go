package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
	"github.com/nbenhadj/bookkeeping_app/internal/utils/mapping"
	"github.com/nbenhadj/bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, entry_date, description, entry_type, status, posted, period_id, invoice_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, line_no, debit, credit, created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var periodID, invoiceID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.EntryType,
		&m.Status,
		&m.Posted,
		&periodID,
		&invoiceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if periodID.Valid {
		m.PeriodID = periodID.String
	}
	if invoiceID.Valid {
		m.InvoiceID = invoiceID.String
	}
	return m, nil
}

func scanLine(row pgx.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.LineNo,
		&m.Debit,
		&m.Credit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockPeriodForWrite takes a share lock on the period row inside tx and
// re-checks the closed flag. A concurrent ClosePeriod takes a conflicting
// exclusive lock on the same row, so one of the two serializes behind the
// other and observes its outcome.
func lockPeriodForWrite(ctx context.Context, tx pgx.Tx, periodID string) error {
	var isClosed bool
	err := tx.QueryRow(ctx, `SELECT is_closed FROM accounting_periods WHERE period_id = $1 FOR SHARE;`, periodID).Scan(&isClosed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
		}
		return fmt.Errorf("failed to lock period %s: %w", periodID, err)
	}
	if isClosed {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, periodID)
	}
	return nil
}

// insertEntryWithLines inserts the header and queues the line inserts as one batch.
func insertEntryWithLines(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	modelEntry := mapping.ToModelJournalEntry(entry)

	var periodID, invoiceID sql.NullString
	if modelEntry.PeriodID != "" {
		periodID = sql.NullString{String: modelEntry.PeriodID, Valid: true}
	}
	if modelEntry.InvoiceID != "" {
		invoiceID = sql.NullString{String: modelEntry.InvoiceID, Valid: true}
	}

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.EntryType,
		modelEntry.Status,
		modelEntry.Posted,
		periodID,
		invoiceID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.LineNo,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", modelEntry.EntryID, err)
	}
	return nil
}

// SaveEntry persists an entry header and all of its lines in one transaction.
// When the entry references a period, the period is locked and re-checked so
// an entry can never slip into a period that closed after the service-level
// validation ran.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if entry.PeriodID != "" {
		if err := lockPeriodForWrite(ctx, tx, entry.PeriodID); err != nil {
			return err
		}
	}
	if err := insertEntryWithLines(ctx, tx, entry, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApproveEntry transitions an entry from draft to approved and marks it
// posted. The entry row is locked so concurrent approvals serialize; the
// loser observes the already-updated status.
func (r *PgxEntryRepository) ApproveEntry(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status string
	var periodID sql.NullString
	err = tx.QueryRow(ctx, `SELECT status, period_id FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&status, &periodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock entry %s: %w", entryID, err)
	}
	if status == string(domain.Approved) {
		return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyApproved, entryID)
	}
	if periodID.Valid {
		if err := lockPeriodForWrite(ctx, tx, periodID.String); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $2, posted = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`, entryID, string(domain.Approved), approvedAt, approvedBy)
	if err != nil {
		return fmt.Errorf("failed to approve entry %s: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves all lines of one entry ordered by line number.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_no;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, scanErr)
		}
		lines = append(lines, mapping.ToDomainJournalEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}
	return lines, nil
}

// ListEntries retrieves a paginated list of entries using token-based
// pagination, ordered by entry date descending with created_at as tie-breaker.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + ` WHERE (entry_date, created_at) < ($1, $2) ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}
	return domainEntries, nextTokenVal, nil
}

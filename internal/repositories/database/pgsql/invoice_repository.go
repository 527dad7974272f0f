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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `invoice_id, invoice_number, invoice_type, counterparty_name, invoice_date, total_amount, is_approved, period_id, created_at, created_by, last_updated_at, last_updated_by`

const invoiceItemColumns = `item_id, invoice_id, description, quantity, unit_price, total_price, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	var periodID sql.NullString
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.InvoiceType,
		&m.CounterpartyName,
		&m.InvoiceDate,
		&m.TotalAmount,
		&m.IsApproved,
		&periodID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Invoice{}, err
	}
	if periodID.Valid {
		m.PeriodID = periodID.String
	}
	return m, nil
}

func scanInvoiceItem(row pgx.Row) (models.InvoiceItem, error) {
	var m models.InvoiceItem
	err := row.Scan(
		&m.ItemID,
		&m.InvoiceID,
		&m.Description,
		&m.Quantity,
		&m.UnitPrice,
		&m.TotalPrice,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertInvoiceItem(ctx context.Context, tx pgx.Tx, item models.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		item.ItemID,
		item.InvoiceID,
		item.Description,
		item.Quantity,
		item.UnitPrice,
		item.TotalPrice,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice item %s: %w", item.ItemID, err)
	}
	return nil
}

// recomputeInvoiceTotal rewrites the stored total from the current items
// inside tx. The total is always the sum of item totals, never drifting
// state of its own.
func recomputeInvoiceTotal(ctx context.Context, tx pgx.Tx, invoiceID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET total_amount = (SELECT COALESCE(SUM(total_price), 0) FROM invoice_items WHERE invoice_id = $1),
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE invoice_id = $1;
	`
	if _, err := tx.Exec(ctx, query, invoiceID, updatedAt, updatedBy); err != nil {
		return fmt.Errorf("failed to recompute total for invoice %s: %w", invoiceID, err)
	}
	return nil
}

// SaveInvoice persists an invoice header and its initial items as one
// transaction, then recomputes the stored total from the inserted items.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelInvoice := mapping.ToModelInvoice(invoice)
	var periodID sql.NullString
	if modelInvoice.PeriodID != "" {
		periodID = sql.NullString{String: modelInvoice.PeriodID, Valid: true}
	}

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		modelInvoice.InvoiceID,
		modelInvoice.InvoiceNumber,
		modelInvoice.InvoiceType,
		modelInvoice.CounterpartyName,
		modelInvoice.InvoiceDate,
		modelInvoice.TotalAmount,
		modelInvoice.IsApproved,
		periodID,
		modelInvoice.CreatedAt,
		modelInvoice.CreatedBy,
		modelInvoice.LastUpdatedAt,
		modelInvoice.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on invoice_number
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateInvoiceNumber, modelInvoice.InvoiceNumber)
		}
		return fmt.Errorf("failed to insert invoice %s: %w", modelInvoice.InvoiceID, err)
	}

	for _, item := range items {
		if err := insertInvoiceItem(ctx, tx, mapping.ToModelInvoiceItem(item)); err != nil {
			return err
		}
	}
	if err := recomputeInvoiceTotal(ctx, tx, modelInvoice.InvoiceID, modelInvoice.CreatedBy, modelInvoice.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// lockInvoiceForWrite locks the invoice row and returns its approved flag
// and owning period.
func lockInvoiceForWrite(ctx context.Context, tx pgx.Tx, invoiceID string) (isApproved bool, periodID string, err error) {
	var nullablePeriod sql.NullString
	err = tx.QueryRow(ctx, `SELECT is_approved, period_id FROM invoices WHERE invoice_id = $1 FOR UPDATE;`, invoiceID).Scan(&isApproved, &nullablePeriod)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, "", apperrors.ErrNotFound
		}
		return false, "", fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}
	if nullablePeriod.Valid {
		periodID = nullablePeriod.String
	}
	return isApproved, periodID, nil
}

// AddItemAndRecomputeTotal appends one item to an unapproved invoice and
// recomputes the stored total, all under the invoice row lock.
func (r *PgxInvoiceRepository) AddItemAndRecomputeTotal(ctx context.Context, item domain.InvoiceItem, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	isApproved, periodID, err := lockInvoiceForWrite(ctx, tx, item.InvoiceID)
	if err != nil {
		return err
	}
	if isApproved {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyApproved, item.InvoiceID)
	}
	if periodID != "" {
		if err := lockPeriodForWrite(ctx, tx, periodID); err != nil {
			return err
		}
	}

	if err := insertInvoiceItem(ctx, tx, mapping.ToModelInvoiceItem(item)); err != nil {
		return err
	}
	if err := recomputeInvoiceTotal(ctx, tx, item.InvoiceID, updatedBy, updatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveInvoiceApproval atomically persists the derived journal entry with its
// lines and flips the invoice's approved flag. The invoice row lock makes
// concurrent approvals of the same invoice serialize; the loser observes the
// flipped flag and nothing is double-posted.
func (r *PgxInvoiceRepository) SaveInvoiceApproval(ctx context.Context, invoiceID string, entry domain.JournalEntry, lines []domain.JournalEntryLine, approvedBy string, approvedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	isApproved, periodID, err := lockInvoiceForWrite(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if isApproved {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyApproved, invoiceID)
	}
	if periodID != "" {
		if err := lockPeriodForWrite(ctx, tx, periodID); err != nil {
			return err
		}
	}

	if err := insertEntryWithLines(ctx, tx, entry, lines); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE invoices
		SET is_approved = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $1;
	`, invoiceID, approvedAt, approvedBy)
	if err != nil {
		return fmt.Errorf("failed to mark invoice %s approved: %w", invoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice header by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	domainInvoice := mapping.ToDomainInvoice(m)
	return &domainInvoice, nil
}

// FindItemsByInvoiceID retrieves all items of one invoice in insertion order.
func (r *PgxInvoiceRepository) FindItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at, item_id;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	items := []domain.InvoiceItem{}
	for rows.Next() {
		m, scanErr := scanInvoiceItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan item row for invoice %s: %w", invoiceID, scanErr)
		}
		items = append(items, mapping.ToDomainInvoiceItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows for invoice %s: %w", invoiceID, err)
	}
	return items, nil
}

// ListInvoices retrieves a paginated list of invoices using token-based
// pagination, ordered by invoice date descending.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + invoiceColumns + ` FROM invoices`
	orderByClause := `ORDER BY invoice_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + ` WHERE (invoice_date, created_at) < ($1, $2) ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row: %w", scanErr)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}

	var nextTokenVal *string
	results := modelInvoices
	if len(modelInvoices) > limit {
		lastInvoice := modelInvoices[limit-1]
		newToken := pagination.EncodeToken(lastInvoice.InvoiceDate, lastInvoice.CreatedAt)
		nextTokenVal = &newToken
		results = modelInvoices[:limit]
	}

	domainInvoices := make([]domain.Invoice, len(results))
	for i, m := range results {
		domainInvoices[i] = mapping.ToDomainInvoice(m)
	}
	return domainInvoices, nextTokenVal, nil
}

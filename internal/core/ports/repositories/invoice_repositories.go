package repositories

import (
	"context"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindItemsByInvoiceID retrieves all items of one invoice in insertion order.
	FindItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error)

	// ListInvoices retrieves a paginated list of invoices using token-based pagination.
	ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists an invoice header and its initial items as one
	// transaction. A duplicate invoice number surfaces
	// ErrDuplicateInvoiceNumber. The stored total is the recomputed sum of
	// the item totals, never a caller-provided figure.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error

	// AddItemAndRecomputeTotal appends one item and explicitly recomputes
	// the invoice total from all current items inside the same transaction.
	// The owning period is re-checked; ErrPeriodClosed when it has closed.
	AddItemAndRecomputeTotal(ctx context.Context, item domain.InvoiceItem, updatedBy string, updatedAt time.Time) error

	// SaveInvoiceApproval atomically persists the derived journal entry
	// (header plus both lines) and flips the invoice's approved flag.
	// Either everything commits or nothing does. An already approved
	// invoice surfaces ErrAlreadyApproved; a closed owning period
	// ErrPeriodClosed.
	SaveInvoiceApproval(ctx context.Context, invoiceID string, entry domain.JournalEntry, lines []domain.JournalEntryLine, approvedBy string, approvedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

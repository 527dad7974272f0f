package services

import (
	"context"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its items.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice validates and persists a new invoice with its items.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// AddInvoiceItem appends an item and recomputes the invoice total.
	AddInvoiceItem(ctx context.Context, invoiceID string, req dto.AddInvoiceItemRequest, userID string) (*domain.Invoice, error)

	// ApproveInvoice marks the invoice approved and derives the balancing
	// journal entry from it, all in one transaction.
	ApproveInvoice(ctx context.Context, invoiceID string, actorUserID string) (*domain.JournalEntry, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/nbenhadj/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// invoiceService provides invoice operations including the translation of
// an approved invoice into its journal entry.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodSvc   portssvc.PeriodReaderSvc
}

// NewInvoiceService creates a new InvoiceSvcFacade backed by the given repositories.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, periodSvc portssvc.PeriodReaderSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		periodSvc:   periodSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// buildItem validates one requested item and materializes it with its
// extended total (quantity * unit price).
func buildItem(invoiceID string, description string, quantity int64, unitPrice decimal.Decimal, audit domain.AuditFields) (domain.InvoiceItem, error) {
	if quantity <= 0 {
		return domain.InvoiceItem{}, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
	}
	if unitPrice.IsNegative() {
		return domain.InvoiceItem{}, fmt.Errorf("%w: item unit price must not be negative", apperrors.ErrValidation)
	}
	if err := accounting.ValidateAmountScale(unitPrice); err != nil {
		return domain.InvoiceItem{}, fmt.Errorf("%w: item unit price: %s", apperrors.ErrValidation, err.Error())
	}
	return domain.InvoiceItem{
		ItemID:      uuid.NewString(),
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(quantity)),
		AuditFields: audit,
	}, nil
}

// checkPeriodOpen verifies the referenced period, when present, exists, is
// open and covers the invoice date.
func (s *invoiceService) checkPeriodOpen(ctx context.Context, periodID string, invoiceDate time.Time) error {
	if periodID == "" {
		return nil
	}
	period, err := s.periodSvc.GetPeriodByID(ctx, periodID)
	if err != nil {
		return err
	}
	if period.IsClosed {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, periodID)
	}
	if !period.Contains(invoiceDate) {
		return fmt.Errorf("%w: invoice date %s is outside period %s",
			apperrors.ErrValidation, invoiceDate.Format("2006-01-02"), period.Name)
	}
	return nil
}

// CreateInvoice validates and persists a new invoice with its items. The
// stored total is always the recomputed sum of the item totals.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if req.InvoiceType != domain.Sale && req.InvoiceType != domain.Purchase {
		return nil, fmt.Errorf("%w: unknown invoice type %q", apperrors.ErrValidation, req.InvoiceType)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: an invoice needs at least one item", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	invoice := domain.Invoice{
		InvoiceID:        uuid.NewString(),
		InvoiceNumber:    req.InvoiceNumber,
		InvoiceType:      req.InvoiceType,
		CounterpartyName: req.CounterpartyName,
		InvoiceDate:      req.InvoiceDate,
		IsApproved:       false,
		AuditFields:      audit,
	}
	if req.PeriodID != nil {
		invoice.PeriodID = *req.PeriodID
	}

	if err := s.checkPeriodOpen(ctx, invoice.PeriodID, invoice.InvoiceDate); err != nil {
		return nil, err
	}

	items := make([]domain.InvoiceItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, err := buildItem(invoice.InvoiceID, itemReq.Description, itemReq.Quantity, itemReq.UnitPrice, audit)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	invoice.Items = items
	invoice.TotalAmount = invoice.ComputeTotal()

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, items); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateInvoiceNumber) || errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: invoice number %s", apperrors.ErrDuplicateInvoiceNumber, req.InvoiceNumber)
		}
		s.LogError(ctx, err, "failed to save invoice", slog.String("invoiceID", invoice.InvoiceID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "invoice created",
		slog.String("invoiceID", invoice.InvoiceID),
		slog.String("invoiceNumber", invoice.InvoiceNumber),
		slog.String("totalAmount", invoice.TotalAmount.String()),
	)
	return &invoice, nil
}

// AddInvoiceItem appends an item to an unapproved invoice and recomputes
// the stored total in the same transaction.
func (s *invoiceService) AddInvoiceItem(ctx context.Context, invoiceID string, req dto.AddInvoiceItemRequest, userID string) (*domain.Invoice, error) {
	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.IsApproved {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyApproved, invoiceID)
	}
	if err := s.checkPeriodOpen(ctx, invoice.PeriodID, invoice.InvoiceDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	item, err := buildItem(invoiceID, req.Description, req.Quantity, req.UnitPrice, audit)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.AddItemAndRecomputeTotal(ctx, item, userID, now); err != nil {
		s.LogError(ctx, err, "failed to add invoice item", slog.String("invoiceID", invoiceID))
		return nil, err
	}

	invoice.Items = append(invoice.Items, item)
	invoice.TotalAmount = invoice.ComputeTotal()
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	s.LogInfo(ctx, "invoice item added",
		slog.String("invoiceID", invoiceID),
		slog.String("itemID", item.ItemID),
		slog.String("newTotal", invoice.TotalAmount.String()),
	)
	return invoice, nil
}

// translationAccounts resolves the debit and credit accounts for an invoice
// type from the chart of accounts. A chart missing either account type
// surfaces ErrChartIncomplete.
func (s *invoiceService) translationAccounts(ctx context.Context, invoiceType domain.InvoiceType) (debit *domain.Account, credit *domain.Account, err error) {
	var debitType, creditType domain.AccountType
	switch invoiceType {
	case domain.Sale:
		debitType, creditType = domain.Asset, domain.Revenue
	case domain.Purchase:
		debitType, creditType = domain.Expense, domain.Liability
	default:
		return nil, nil, fmt.Errorf("%w: unknown invoice type %q", apperrors.ErrValidation, invoiceType)
	}

	debit, err = s.accountRepo.FindFirstAccountByType(ctx, debitType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: no active %s account", apperrors.ErrChartIncomplete, debitType)
		}
		return nil, nil, err
	}
	credit, err = s.accountRepo.FindFirstAccountByType(ctx, creditType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: no active %s account", apperrors.ErrChartIncomplete, creditType)
		}
		return nil, nil, err
	}
	return debit, credit, nil
}

// ApproveInvoice marks the invoice approved and derives the balancing
// journal entry from it. The derived entry passes through the same balance
// validation as manual entries, and entry plus approval flag are persisted
// in one transaction.
func (s *invoiceService) ApproveInvoice(ctx context.Context, invoiceID string, actorUserID string) (*domain.JournalEntry, error) {
	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.IsApproved {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyApproved, invoiceID)
	}
	if err := s.checkPeriodOpen(ctx, invoice.PeriodID, invoice.InvoiceDate); err != nil {
		return nil, err
	}

	debitAccount, creditAccount, err := s.translationAccounts(ctx, invoice.InvoiceType)
	if err != nil {
		return nil, err
	}

	total := invoice.ComputeTotal()
	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorUserID,
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   invoice.InvoiceDate,
		Description: fmt.Sprintf("Automatic entry for invoice %s", invoice.InvoiceNumber),
		EntryType:   domain.EntryInvoice,
		Status:      domain.Approved,
		Posted:      true,
		PeriodID:    invoice.PeriodID,
		InvoiceID:   invoice.InvoiceID,
		AuditFields: audit,
	}
	lines := []domain.JournalEntryLine{
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   debitAccount.AccountID,
			LineNo:      1,
			Debit:       total,
			Credit:      decimal.Zero,
			AuditFields: audit,
		},
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   creditAccount.AccountID,
			LineNo:      2,
			Debit:       decimal.Zero,
			Credit:      total,
			AuditFields: audit,
		},
	}
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveInvoiceApproval(ctx, invoiceID, entry, lines, actorUserID, now); err != nil {
		s.LogError(ctx, err, "failed to approve invoice", slog.String("invoiceID", invoiceID))
		return nil, err
	}

	entry.Lines = lines
	s.LogInfo(ctx, "invoice approved",
		slog.String("invoiceID", invoiceID),
		slog.String("entryID", entryID),
		slog.String("amount", total.String()),
	)
	return &entry, nil
}

// GetInvoiceByID retrieves an invoice with its items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.FindItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items for invoice %s: %w", invoiceID, err)
	}
	invoice.Items = items
	return invoice, nil
}

// ListInvoices returns a page of invoices with a token for the next page.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	resp := dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, 0, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices = append(resp.Invoices, dto.ToInvoiceResponse(&invoices[i]))
	}
	return &resp, nil
}

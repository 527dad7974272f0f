package services

import (
	"context"
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
)

// entryService provides core journal entry operations.
type entryService struct {
	BaseService
	entryRepo  portsrepo.EntryRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
	periodSvc  portssvc.PeriodReaderSvc
}

// NewEntryService creates a new EntrySvcFacade backed by the given repository.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade, periodSvc portssvc.PeriodReaderSvc) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:  entryRepo,
		accountSvc: accountSvc,
		periodSvc:  periodSvc,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// validateLines checks each requested line for a well formed amount pair:
// exactly one of debit/credit must be positive, both must be non-negative,
// and neither may carry more than two decimal places.
func (s *entryService) validateLines(lines []dto.CreateEntryLineRequest) error {
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d has both a debit and a credit amount", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("%w: line %d has neither a debit nor a credit amount", apperrors.ErrValidation, i+1)
		}
		if err := accounting.ValidateAmountScale(line.Debit); err != nil {
			return fmt.Errorf("%w: line %d debit: %s", apperrors.ErrValidation, i+1, err.Error())
		}
		if err := accounting.ValidateAmountScale(line.Credit); err != nil {
			return fmt.Errorf("%w: line %d credit: %s", apperrors.ErrValidation, i+1, err.Error())
		}
	}
	return nil
}

// validateAccounts ensures every referenced account exists and is active.
func (s *entryService) validateAccounts(ctx context.Context, lines []dto.CreateEntryLineRequest) error {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		accountIDs = append(accountIDs, line.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for entry lines: %w", err)
	}
	for _, accountID := range accountIDs {
		account, ok := accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
		}
	}
	return nil
}

// resolvePeriod loads the referenced period and verifies it is open and
// covers the entry date. A nil periodID is allowed; the entry is then not
// attached to any period.
func (s *entryService) resolvePeriod(ctx context.Context, periodID *string, entryDate time.Time) (*domain.AccountingPeriod, error) {
	if periodID == nil {
		return nil, nil
	}
	period, err := s.periodSvc.GetPeriodByID(ctx, *periodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, period.PeriodID)
	}
	if !period.Contains(entryDate) {
		return nil, fmt.Errorf("%w: entry date %s is outside period %s (%s to %s)",
			apperrors.ErrValidation, entryDate.Format("2006-01-02"), period.Name,
			period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}
	return period, nil
}

// CreateEntry validates and persists a new draft journal entry together with
// its lines. The whole write happens in a single transaction; the period open
// check is repeated inside it by the repository.
func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: a journal entry needs at least two lines", apperrors.ErrValidation)
	}
	if err := s.validateLines(req.Lines); err != nil {
		return nil, err
	}
	if err := s.validateAccounts(ctx, req.Lines); err != nil {
		return nil, err
	}

	lines := make([]domain.JournalEntryLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		lines = append(lines, domain.JournalEntryLine{
			AccountID: lineReq.AccountID,
			Debit:     lineReq.Debit,
			Credit:    lineReq.Credit,
		})
	}
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	if _, err := s.resolvePeriod(ctx, req.PeriodID, req.Date); err != nil {
		return nil, err
	}

	entryType := domain.EntryManual
	if req.EntryType != "" {
		entryType = domain.EntryType(req.EntryType)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.Date,
		Description: req.Description,
		EntryType:   entryType,
		Status:      domain.Draft,
		Posted:      false,
		AuditFields: audit,
	}
	if req.PeriodID != nil {
		entry.PeriodID = *req.PeriodID
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
		lines[i].LineNo = i + 1
		lines[i].AuditFields = audit
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "failed to save journal entry", slog.String("entryID", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	entry.Lines = lines
	logger.Info("journal entry created",
		slog.String("entryID", entryID),
		slog.Int("lineCount", len(lines)),
	)
	return &entry, nil
}

// ApproveEntry marks a draft entry as approved and posted. Approving an
// already approved entry fails with ErrAlreadyApproved.
func (s *entryService) ApproveEntry(ctx context.Context, entryID string, actorUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.Approved {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyApproved, entryID)
	}
	if entry.PeriodID != "" {
		period, err := s.periodSvc.GetPeriodByID(ctx, entry.PeriodID)
		if err != nil {
			return nil, err
		}
		if period.IsClosed {
			return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, period.PeriodID)
		}
	}

	now := time.Now().UTC()
	if err := s.entryRepo.ApproveEntry(ctx, entryID, actorUserID, now); err != nil {
		s.LogError(ctx, err, "failed to approve journal entry", slog.String("entryID", entryID))
		return nil, err
	}

	entry.Status = domain.Approved
	entry.Posted = true
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorUserID
	s.LogInfo(ctx, "journal entry approved", slog.String("entryID", entryID), slog.String("approvedBy", actorUserID))
	return entry, nil
}

// GetEntryByID fetches a single entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries returns a page of entries ordered by entry date descending,
// together with a token for the next page when more rows remain.
func (s *entryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.entryRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.ToEntryResponse(&entries[i]))
	}
	return &resp, nil
}

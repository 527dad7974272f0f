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
)

// maxParentChainDepth bounds the ancestor walk during cycle detection so a
// corrupted parent chain cannot loop forever.
const maxParentChainDepth = 64

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountSvcFacade backed by the given repository.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// validateParent ensures the proposed parent exists and that attaching
// accountID under it does not create a cycle in the hierarchy.
func (s *accountService) validateParent(ctx context.Context, accountID string, parentAccountID string) error {
	currentID := parentAccountID
	for depth := 0; currentID != ""; depth++ {
		if depth >= maxParentChainDepth {
			return fmt.Errorf("%w: account hierarchy exceeds maximum depth", apperrors.ErrValidation)
		}
		if currentID == accountID {
			return fmt.Errorf("%w: account %s cannot be its own ancestor", apperrors.ErrValidation, accountID)
		}
		ancestor, err := s.accountRepo.FindAccountByID(ctx, currentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, currentID)
			}
			return fmt.Errorf("failed to resolve parent account %s: %w", currentID, err)
		}
		currentID = ancestor.ParentAccountID
	}
	return nil
}

// CreateAccount registers a new account in the chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	accountID := uuid.NewString()
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		if err := s.validateParent(ctx, accountID, *req.ParentAccountID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   accountID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.ParentAccountID != nil {
		account.ParentAccountID = *req.ParentAccountID
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "failed to save account", slog.String("accountID", accountID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "account created", slog.String("accountID", accountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a specific account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves accounts with limit/offset pagination.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// UpdateAccount updates account details. When the parent changes, the new
// parent chain is re-validated for cycles.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.ParentAccountID != nil {
		if *req.ParentAccountID != "" {
			if err := s.validateParent(ctx, accountID, *req.ParentAccountID); err != nil {
				return nil, err
			}
		}
		account.ParentAccountID = *req.ParentAccountID
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update account", slog.String("accountID", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "account updated", slog.String("accountID", accountID))
	return account, nil
}

// DeleteAccount removes an account that no journal entry line references.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrAccountInUse) {
			return fmt.Errorf("%w: account %s is referenced by journal entries", apperrors.ErrAccountInUse, accountID)
		}
		s.LogError(ctx, err, "failed to delete account", slog.String("accountID", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.LogInfo(ctx, "account deleted", slog.String("accountID", accountID), slog.String("deletedBy", userID))
	return nil
}

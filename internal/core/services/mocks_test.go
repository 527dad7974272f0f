package services_test

import (
	"context"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindFirstAccountByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodOverlapping(ctx context.Context, start, end time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, periodID string, closedBy string, closedAt time.Time) error {
	args := m.Called(ctx, periodID, closedBy, closedAt)
	return args.Error(0)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) ApproveEntry(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time) error {
	args := m.Called(ctx, entryID, approvedBy, approvedAt)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) AddItemAndRecomputeTotal(ctx context.Context, item domain.InvoiceItem, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, item, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveInvoiceApproval(ctx context.Context, invoiceID string, entry domain.JournalEntry, lines []domain.JournalEntryLine, approvedBy string, approvedAt time.Time) error {
	args := m.Called(ctx, invoiceID, entry, lines, approvedBy, approvedAt)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) GetAccountLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) GetTrialBalanceData(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string) error {
	args := m.Called(ctx, userID, deletedBy)
	return args.Error(0)
}

// --- Mock AccountService (as used by the entry service) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// --- Mock PeriodService (reader side used by entry and invoice services) ---
type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodReaderSvc = (*MockPeriodService)(nil)

func (m *MockPeriodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

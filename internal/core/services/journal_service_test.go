package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/core/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo    *MockEntryRepository
	mockAccountSvc   *MockAccountService
	mockPeriodSvc    *MockPeriodService
	service          portssvc.EntrySvcFacade
	cashAccount      domain.Account
	revenueAccount   domain.Account
	inactiveAccount  domain.Account
	openPeriod       domain.AccountingPeriod
	closedPeriod     domain.AccountingPeriod
	userID           string
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockPeriodSvc = new(MockPeriodService)
	suite.service = services.NewEntryService(suite.mockEntryRepo, suite.mockAccountSvc, suite.mockPeriodSvc)

	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1999",
		AccountType: domain.Asset,
		IsActive:    false,
	}

	closedAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.openPeriod = domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "2026-01",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.closedPeriod = domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "2025-12",
		StartDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		IsClosed:  true,
		ClosedAt:  &closedAt,
	}
}

func (suite *EntryServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *EntryServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.AccountID] = acc
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, mock.Anything).Return(accountsMap, nil).Once()
}

// --- Test Cases ---

func (suite *EntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.Draft, entry.Status)
	suite.False(entry.Posted)
	suite.Equal(domain.EntryManual, entry.EntryType)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNo)
	suite.Equal(2, entry.Lines[1].LineNo)
	suite.Equal(entry.EntryID, entry.Lines[0].EntryID)

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_SingleLineRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_LineWithDebitAndCredit() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(50)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_EmptyLineRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.Zero

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_NegativeAmountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.NewFromInt(-100)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_ExcessiveScaleRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.RequireFromString("100.005")
	req.Lines[1].Credit = decimal.RequireFromString("100.005")

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Only the cash account comes back; the revenue account is unknown.
	suite.expectAccounts(suite.cashAccount)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].AccountID = suite.inactiveAccount.AccountID

	suite.expectAccounts(suite.inactiveAccount, suite.revenueAccount)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_ClosedPeriod() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Date = time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	req.PeriodID = &suite.closedPeriod.PeriodID

	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockPeriodSvc.On("GetPeriodByID", ctx, suite.closedPeriod.PeriodID).Return(&suite.closedPeriod, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_EndOfPeriodTimestamp() {
	ctx := context.Background()
	req := suite.balancedRequest()
	// Late-afternoon timestamp on the period's last day. Period bounds are
	// day-granular, so this must still land inside the period.
	req.Date = time.Date(2026, 1, 31, 18, 45, 12, 0, time.UTC)
	req.PeriodID = &suite.openPeriod.PeriodID

	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockPeriodSvc.On("GetPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_DateOutsidePeriod() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req.PeriodID = &suite.openPeriod.PeriodID

	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockPeriodSvc.On("GetPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_SaveError() {
	ctx := context.Background()
	req := suite.balancedRequest()
	repoErr := assert.AnError

	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(repoErr).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestApproveEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := domain.JournalEntry{
		EntryID:   entryID,
		EntryDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.Draft,
		PeriodID:  suite.openPeriod.PeriodID,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(&draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalEntryLine{}, nil).Once()
	suite.mockPeriodSvc.On("GetPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockEntryRepo.On("ApproveEntry", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	approved, err := suite.service.ApproveEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Approved, approved.Status)
	suite.True(approved.Posted)
	suite.Equal(suite.userID, approved.LastUpdatedBy)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestApproveEntry_AlreadyApproved() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Approved,
		Posted:  true,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(&posted, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalEntryLine{}, nil).Once()

	_, err := suite.service.ApproveEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyApproved)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ApproveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestApproveEntry_PeriodClosed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := domain.JournalEntry{
		EntryID:  entryID,
		Status:   domain.Draft,
		PeriodID: suite.closedPeriod.PeriodID,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(&draft, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalEntryLine{}, nil).Once()
	suite.mockPeriodSvc.On("GetPeriodByID", ctx, suite.closedPeriod.PeriodID).Return(&suite.closedPeriod, nil).Once()

	_, err := suite.service.ApproveEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func (suite *EntryServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	entries := []domain.JournalEntry{{EntryID: uuid.NewString()}}
	token := "next-page"

	suite.mockEntryRepo.On("ListEntries", ctx, 20, (*string)(nil)).Return(entries, token, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestEntryService(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}

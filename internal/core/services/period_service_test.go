package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/core/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	service        portssvc.PeriodSvcFacade
	userID         string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo)
	suite.userID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "2026-01",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("FindPeriodOverlapping", ctx, req.StartDate, req.EndDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.AccountingPeriod")).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(period.PeriodID)
	suite.Equal("2026-01", period.Name)
	suite.False(period.IsClosed)
	suite.Nil(period.ClosedAt)
	suite.Equal(suite.userID, period.CreatedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "backwards",
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Overlap() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "2026-01b",
		StartDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	}
	existing := domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "2026-01",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("FindPeriodOverlapping", ctx, req.StartDate, req.EndDate).Return(&existing, nil).Once()

	_, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodOverlap)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_OverlapCaughtOnInsert() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "2026-01b",
		StartDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	}

	// A competing period lands between the overlap read and the insert; the
	// database exclusion constraint is the backstop and its violation must
	// still surface as ErrPeriodOverlap.
	suite.mockPeriodRepo.On("FindPeriodOverlapping", ctx, req.StartDate, req.EndDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.AccountingPeriod")).
		Return(fmt.Errorf("%w: range 2026-01-15 to 2026-02-15 collides with an existing period", apperrors.ErrPeriodOverlap)).Once()

	_, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodOverlap)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	open := domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		Name:      "2026-01",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, open.PeriodID).Return(&open, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriod", ctx, open.PeriodID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	closed, err := suite.service.ClosePeriod(ctx, open.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.True(closed.IsClosed)
	suite.Require().NotNil(closed.ClosedAt)
	suite.Equal(suite.userID, closed.ClosedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	closedAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	closed := domain.AccountingPeriod{
		PeriodID: uuid.NewString(),
		IsClosed: true,
		ClosedAt: &closedAt,
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, closed.PeriodID).Return(&closed, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, closed.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "ClosePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_UnpostedEntriesBlock() {
	ctx := context.Background()
	open := domain.AccountingPeriod{PeriodID: uuid.NewString()}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, open.PeriodID).Return(&open, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriod", ctx, open.PeriodID, suite.userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrUnpostedEntries).Once()

	_, err := suite.service.ClosePeriod(ctx, open.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnpostedEntries)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func TestPeriodService(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

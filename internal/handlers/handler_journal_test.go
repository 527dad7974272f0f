package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/nbenhadj/bookkeeping_app/internal/handlers"
	"github.com/nbenhadj/bookkeeping_app/internal/middleware"
	"github.com/nbenhadj/bookkeeping_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) ApproveEntry(ctx context.Context, entryID string, actorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock UserReaderService (role checks) ---
type MockUserReaderService struct {
	mock.Mock
}

func (m *MockUserReaderService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReaderService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portssvc.UserReaderSvc = (*MockUserReaderService)(nil)

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockEntryService *MockEntryService
	mockUserService  *MockUserReaderService
	jwtSecret        string
}

func (suite *EntryHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "bookkeeping-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockEntryService = new(MockEntryService)
	suite.mockUserService = new(MockUserReaderService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterEntryRoutes(v1, suite.mockEntryService, suite.mockUserService)
}

// expectUserWithRole stubs the role lookup the route guard performs.
func (suite *EntryHandlerTestSuite) expectUserWithRole(userID string, role domain.UserRole) {
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).
		Return(&domain.User{UserID: userID, Username: "tester", Role: role, IsActive: true}, nil)
}

func (suite *EntryHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	userID := uuid.NewString()
	suite.expectUserWithRole(userID, domain.RoleAccountant)

	entryDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	reqBody := dto.CreateEntryRequest{
		Date:        entryDate,
		Description: "Office rent January",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(500)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(500)},
		},
	}

	created := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryDate:   entryDate,
		Description: reqBody.Description,
		EntryType:   domain.EntryManual,
		Status:      domain.Draft,
	}
	suite.mockEntryService.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), userID).
		Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries", suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.EntryID, resp.EntryID)
	suite.Equal(domain.Draft, resp.Status)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_UnbalancedReturns400() {
	userID := uuid.NewString()
	suite.expectUserWithRole(userID, domain.RoleAccountant)

	reqBody := dto.CreateEntryRequest{
		Date:        time.Now().UTC(),
		Description: "Does not balance",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(99)},
		},
	}

	suite.mockEntryService.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), userID).
		Return(nil, fmt.Errorf("%w: debits 100 != credits 99", apperrors.ErrUnbalancedEntry)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries", suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_DataEntryRoleAllowed() {
	userID := uuid.NewString()
	suite.expectUserWithRole(userID, domain.RoleDataEntry)

	reqBody := dto.CreateEntryRequest{
		Date:        time.Now().UTC(),
		Description: "Petty cash",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(20)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(20)},
		},
	}
	suite.mockEntryService.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), userID).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Draft}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries", suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *EntryHandlerTestSuite) TestApproveEntry_DataEntryRoleForbidden() {
	userID := uuid.NewString()
	suite.expectUserWithRole(userID, domain.RoleDataEntry)

	entryID := uuid.NewString()
	w := suite.doJSON(http.MethodPost, "/api/v1/entries/"+entryID+"/approve", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "ApproveEntry", mock.Anything, entryID, userID)
}

func (suite *EntryHandlerTestSuite) TestApproveEntry_AlreadyApprovedReturns409() {
	userID := uuid.NewString()
	suite.expectUserWithRole(userID, domain.RoleManager)

	entryID := uuid.NewString()
	suite.mockEntryService.On("ApproveEntry", mock.Anything, entryID, userID).
		Return(nil, apperrors.ErrAlreadyApproved).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries/"+entryID+"/approve", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFoundReturns404() {
	userID := uuid.NewString()

	entryID := uuid.NewString()
	suite.mockEntryService.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/entries/"+entryID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EntryHandlerTestSuite) TestListEntries_PassesLimitAndToken() {
	userID := uuid.NewString()

	token := "opaque-page-token"
	expected := &dto.ListEntriesResponse{
		Entries: []dto.EntryResponse{
			{EntryID: uuid.NewString(), Description: "First page entry"},
		},
		NextToken: nil,
	}
	suite.mockEntryService.On("ListEntries", mock.Anything, mock.MatchedBy(func(p dto.ListEntriesParams) bool {
		return p.Limit == 10 && p.NextToken != nil && *p.NextToken == token
	})).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/entries?limit=10&nextToken=%s", token)
	w := suite.doJSON(http.MethodGet, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestListEntries_InvalidTokenReturns400() {
	userID := uuid.NewString()

	suite.mockEntryService.On("ListEntries", mock.Anything, mock.AnythingOfType("dto.ListEntriesParams")).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", apperrors.ErrValidation)).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/entries?nextToken=garbage", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_MissingTokenReturns401() {
	reqBody := dto.CreateEntryRequest{
		Date:        time.Now().UTC(),
		Description: "No credentials",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(10)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(10)},
		},
	}
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(reqBody))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func TestEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/core/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/nbenhadj/bookkeeping_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	adminID      string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.adminID = uuid.NewString()
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Password: "correct horse battery",
		Name:     "J. Doe",
		Role:     domain.RoleAccountant,
	}

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.User)
	}).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleAccountant, user.Role)
	suite.NotEqual(req.Password, saved.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Password: "correct horse battery",
		Name:     "J. Doe",
		Role:     domain.RoleDataEntry,
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) activeUser(password string) domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return domain.User{
		UserID:       uuid.NewString(),
		Username:     "jdoe",
		Role:         domain.RoleManager,
		PasswordHash: hash,
		IsActive:     true,
	}
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	user := suite.activeUser("s3cr3t-enough")

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, user.Username, "s3cr3t-enough")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	user := suite.activeUser("s3cr3t-enough")

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, user.Username, "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUserSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	// Unknown users fail the same way as bad passwords.
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveUser() {
	ctx := context.Background()
	user := suite.activeUser("s3cr3t-enough")
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, user.Username, "s3cr3t-enough")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestDeleteUser_SoftDelete() {
	ctx := context.Background()
	user := suite.activeUser("s3cr3t-enough")

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(&user, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, user.UserID, suite.adminID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, user.UserID, suite.adminID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/nbenhadj/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

// RegisterAccountRoutes registers the chart-of-accounts routes. Reads are
// open to every authenticated user; writes require a bookkeeping role.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, userService portssvc.UserReaderSvc) {
	h := newAccountHandler(accountService)

	canWrite := middleware.RequireRole(userService, domain.RoleAdmin, domain.RoleAccountant)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", canWrite, h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", canWrite, h.updateAccount)
		accounts.DELETE("/:accountID", canWrite, h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Registers a new account in the chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate account code"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate account code", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Parent account not found", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves a single account from the chart of accounts
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves the chart of accounts with limit/offset pagination
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Max accounts to return (default 100)"
// @Param   offset query int false "Offset into the result set"
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates account details; the parent chain is re-validated
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Account not found for update", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update account in service", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that no journal entry line references
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 204 {object} nil
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account referenced by journal entries"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.accountService.DeleteAccount(c.Request.Context(), accountID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Account not found for delete", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrAccountInUse):
			logger.Warn("Account in use, cannot delete", slog.String("account_id", accountID))
			c.JSON(http.StatusConflict, gin.H{"error": "Account is referenced by journal entries"})
		default:
			logger.Error("Failed to delete account in service", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		}
		return
	}

	logger.Info("Account deleted successfully", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

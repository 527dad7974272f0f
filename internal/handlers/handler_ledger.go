package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/nbenhadj/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the derived, read-only views of the ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

// RegisterLedgerRoutes registers the ledger query routes. These are reads
// only, so every authenticated user may call them.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/accounts/:accountID", h.getAccountLedger)
		ledger.GET("/trial-balance", h.getTrialBalance)
	}
}

// getAccountLedger godoc
// @Summary Get the ledger of one account
// @Description Retrieves the ordered entry lines of an account with running balances recomputed from zero
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Router /ledger/accounts/{accountID} [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	lines, err := h.ledgerService.AccountLedger(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for ledger", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account ledger from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		return
	}

	resp := dto.AccountLedgerResponse{
		AccountID: accountID,
		Lines:     make([]dto.LedgerLineResponse, len(lines)),
	}
	for i, line := range lines {
		resp.Lines[i] = dto.ToLedgerLineResponse(&line)
	}

	c.JSON(http.StatusOK, resp)
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Retrieves the per-account debit/credit aggregates for all accounts with activity
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 500 {object} map[string]string "Failed to compute trial balance"
// @Router /ledger/trial-balance [get]
func (h *ledgerHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.ledgerService.TrialBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute trial balance in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows))
}

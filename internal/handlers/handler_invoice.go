package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/nbenhadj/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
	}
}

// RegisterInvoiceRoutes registers the invoice routes. Approval derives the
// balancing journal entry, so it is gated like entry approval.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, userService portssvc.UserReaderSvc) {
	h := newInvoiceHandler(invoiceService)

	canCreate := middleware.RequireRole(userService, domain.RoleAdmin, domain.RoleAccountant, domain.RoleDataEntry)
	canApprove := middleware.RequireRole(userService, domain.RoleAdmin, domain.RoleAccountant, domain.RoleManager)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", canCreate, h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/items", canCreate, h.addInvoiceItem)
		invoices.POST("/:invoiceID/approve", canApprove, h.approveInvoice)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates a new invoice with its line items; the total is computed from the items
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice and its items"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 409 {object} map[string]string "Duplicate invoice number or closed period"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateInvoiceNumber):
			logger.Warn("Duplicate invoice number", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodClosed):
			logger.Warn("Invoice targets a closed period", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Referenced period not found", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		}
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice and its items
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to get invoice from service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves invoices newest first with token pagination
// @Tags invoices
// @Produce  json
// @Param   limit query int false "Max invoices to return (default 20)"
// @Param   nextToken query string false "Opaque token from a previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			logger.Warn("Invalid pagination token for listInvoices", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list invoices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// addInvoiceItem godoc
// @Summary Add an item to an invoice
// @Description Appends a line item to an unapproved invoice and recomputes its total
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   item body dto.AddInvoiceItemRequest true "Item details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice already approved or its period is closed"
// @Failure 500 {object} map[string]string "Failed to add invoice item"
// @Router /invoices/{invoiceID}/items [post]
func (h *invoiceHandler) addInvoiceItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.AddInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addInvoiceItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.AddInvoiceItem(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Invoice not found for item add", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, apperrors.ErrAlreadyApproved):
			logger.Warn("Invoice already approved, cannot add item", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice is already approved"})
		case errors.Is(err, apperrors.ErrPeriodClosed):
			logger.Warn("Invoice period closed, cannot add item", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error adding invoice item", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to add invoice item in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add invoice item"})
		}
		return
	}

	logger.Info("Invoice item added successfully", slog.String("invoice_id", invoiceID))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// approveInvoice godoc
// @Summary Approve an invoice
// @Description Marks the invoice approved and derives its balancing journal entry in one transaction
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.EntryResponse "The derived journal entry"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice already approved, period closed, or chart of accounts incomplete"
// @Failure 500 {object} map[string]string "Failed to approve invoice"
// @Router /invoices/{invoiceID}/approve [post]
func (h *invoiceHandler) approveInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.invoiceService.ApproveInvoice(c.Request.Context(), invoiceID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Invoice not found for approval", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, apperrors.ErrAlreadyApproved):
			logger.Warn("Invoice already approved", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice is already approved"})
		case errors.Is(err, apperrors.ErrPeriodClosed):
			logger.Warn("Invoice period closed, cannot approve", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrChartIncomplete):
			logger.Warn("Chart of accounts incomplete for invoice translation", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to approve invoice in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve invoice"})
		}
		return
	}

	logger.Info("Invoice approved successfully", slog.String("invoice_id", invoiceID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

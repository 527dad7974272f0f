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

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: entryService,
	}
}

// RegisterEntryRoutes registers the journal entry routes. Data entry roles
// may create drafts; approval needs a role with approval authority.
func RegisterEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade, userService portssvc.UserReaderSvc) {
	h := newEntryHandler(entryService)

	canCreate := middleware.RequireRole(userService, domain.RoleAdmin, domain.RoleAccountant, domain.RoleDataEntry)
	canApprove := middleware.RequireRole(userService, domain.RoleAdmin, domain.RoleAccountant, domain.RoleManager)

	entries := rg.Group("/entries")
	{
		entries.POST("", canCreate, h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/approve", canApprove, h.approveEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a new balanced journal entry with its lines as one atomic unit
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry and its lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request format, unbalanced entry or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Target period is closed"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnbalancedEntry):
			logger.Warn("Unbalanced entry rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodClosed):
			logger.Warn("Entry targets a closed period", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Referenced account or period not found", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	logger.Info("Entry created successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry and its lines
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves journal entries newest first with token pagination
// @Tags entries
// @Produce  json
// @Param   limit query int false "Max entries to return (default 20)"
// @Param   nextToken query string false "Opaque token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			logger.Warn("Invalid pagination token for listEntries", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// approveEntry godoc
// @Summary Approve a journal entry
// @Description Transitions a draft entry to approved and marks it posted
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already approved or its period is closed"
// @Failure 500 {object} map[string]string "Failed to approve entry"
// @Router /entries/{entryID}/approve [post]
func (h *entryHandler) approveEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.ApproveEntry(c.Request.Context(), entryID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Entry not found for approval", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrAlreadyApproved):
			logger.Warn("Entry already approved", slog.String("entry_id", entryID))
			c.JSON(http.StatusConflict, gin.H{"error": "Entry is already approved"})
		case errors.Is(err, apperrors.ErrPeriodClosed):
			logger.Warn("Entry period closed, cannot approve", slog.String("entry_id", entryID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to approve entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve entry"})
		}
		return
	}

	logger.Info("Entry approved successfully", slog.String("entry_id", entryID), slog.String("approved_by", actorUserID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

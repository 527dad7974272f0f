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

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{
		periodService: periodService,
	}
}

// RegisterPeriodRoutes registers the accounting period routes. Closing a
// period is gated to roles with approval authority.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade, userService portssvc.UserReaderSvc) {
	h := newPeriodHandler(periodService)

	canCreate := middleware.RequireRole(userService, domain.RoleAdmin, domain.RoleAccountant)
	canClose := middleware.RequireRole(userService, domain.RoleAdmin, domain.RoleAccountant, domain.RoleManager)

	periods := rg.Group("/periods")
	{
		periods.POST("", canCreate, h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/close", canClose, h.closePeriod)
	}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Description Registers a new open period; the date range must not overlap any existing period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 409 {object} map[string]string "Date range overlaps an existing period"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPeriodOverlap):
			logger.Warn("Period overlap", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating period", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create period"})
		}
		return
	}

	logger.Info("Period created successfully", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a period by ID
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Router /periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Period not found", slog.String("period_id", periodID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
			return
		}
		logger.Error("Failed to get period from service", slog.String("error", err.Error()), slog.String("period_id", periodID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List accounting periods
// @Description Retrieves all periods ordered by start date
// @Tags periods
// @Produce  json
// @Success 200 {array} dto.PeriodResponse
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list periods from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Transitions a period from open to closed. Every entry in the period must be posted. Closing is irreversible.
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed or has unposted entries"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Router /periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), periodID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Period not found for close", slog.String("period_id", periodID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		case errors.Is(err, apperrors.ErrAlreadyClosed):
			logger.Warn("Period already closed", slog.String("period_id", periodID))
			c.JSON(http.StatusConflict, gin.H{"error": "Period is already closed"})
		case errors.Is(err, apperrors.ErrUnpostedEntries):
			logger.Warn("Unposted entries block period close", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close period in service", slog.String("error", err.Error()), slog.String("period_id", periodID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	logger.Info("Period closed successfully", slog.String("period_id", periodID), slog.String("closed_by", actorUserID))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

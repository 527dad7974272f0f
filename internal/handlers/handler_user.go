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

// userHandler handles HTTP requests related to user management.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(userService portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: userService,
	}
}

// RegisterUserRoutes registers the user management routes, admin only.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	adminOnly := middleware.RequireRole(userService, domain.RoleAdmin)

	users := rg.Group("/users", adminOnly)
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:userID", h.getUser)
		users.PUT("/:userID", h.updateUser)
		users.DELETE("/:userID", h.deleteUser)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Registers a new user with a role from the closed role set
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 409 {object} map[string]string "Username already taken"
// @Failure 500 {object} map[string]string "Failed to create user"
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate username", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating user", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create user in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	logger.Info("User created successfully", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to retrieve user"
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("User not found", slog.String("user_id", userID))
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to get user from service", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Param   limit query int false "Max users to return"
// @Param   offset query int false "Offset into the result set"
// @Success 200 {array} dto.UserResponse
// @Failure 500 {object} map[string]string "Failed to list users"
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.userService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list users from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// updateUser godoc
// @Summary Update a user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to update user"
// @Router /users/{userID} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("User not found for update", slog.String("user_id", userID))
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating user", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update user in service", slog.String("error", err.Error()), slog.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	logger.Info("User updated successfully", slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Soft deletes a user; their audit trail remains intact
// @Tags users
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 204 {object} nil
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to delete user"
// @Router /users/{userID} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, actorUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("User not found for delete", slog.String("user_id", userID))
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to delete user in service", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	logger.Info("User deleted successfully", slog.String("user_id", userID))
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
	"github.com/nbenhadj/bookkeeping_app/internal/dto"
	"github.com/nbenhadj/bookkeeping_app/internal/middleware"
	"github.com/nbenhadj/bookkeeping_app/internal/platform/config"
	"github.com/nbenhadj/bookkeeping_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService portssvc.UserSvcFacade
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: us,
		jwtSecret:   cfg.JWTSecret,
		jwtDuration: cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the public routes for authentication. Login is
// rate limited per client IP.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := NewAuthHandler(userService, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
	}
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authenticate"})
		return
	}

	expiry := time.Now().Add(h.jwtDuration)
	signed, err := utils.GenerateJWT(user.UserID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:  signed,
		User:   dto.ToUserResponse(user),
		Expiry: expiry,
	})
}

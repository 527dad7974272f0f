package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portssvc "github.com/nbenhadj/bookkeeping_app/internal/core/ports/services"
)

// RequireRole creates a Gin middleware that gates a route group to users
// holding one of the allowed roles. Role checks live here at the boundary;
// the ledger services themselves are role-agnostic.
func RequireRole(userSvc portssvc.UserReaderSvc, allowed ...domain.UserRole) gin.HandlerFunc {
	allowedSet := make(map[domain.UserRole]bool, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = true
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// Role comes from the user record, not the token, so a role change
		// takes effect without waiting for token expiry.
		role, found := GetUserRoleFromContext(c)
		if !found {
			user, err := userSvc.GetUserByID(c.Request.Context(), userID)
			if err != nil {
				logger.Warn("Failed to load user for role check", slog.String("user_id", userID), slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			role = string(user.Role)
			c.Set(string(userRoleKey), role)
		}

		if !allowedSet[domain.UserRole(role)] {
			logger.Warn("Role not permitted for route", slog.String("user_id", userID), slog.String("role", role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Next()
	}
}

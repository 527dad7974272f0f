package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// userRoleKey is the key used to store the authenticated user's role.
const userRoleKey = contextKey("userRole")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			if id, ok := v.(string); ok {
				return id, true
			}
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	roleVal, exists := c.Get(string(userRoleKey))
	if !exists {
		return "", false
	}
	role, ok := roleVal.(string)
	return role, ok
}

// withUserID stores the user ID on both the gin context and the request context.
func withUserID(c *gin.Context, userID string) {
	c.Set(string(userIDKey), userID)
	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	c.Request = c.Request.WithContext(ctx)
}

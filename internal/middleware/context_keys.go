package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kdverse/vidtube_backend/internal/core/domain"
)

// userIDKey and authUserKey hold the authenticated caller's ID and identity
// in the request context. Custom types prevent collisions.
const (
	userIDKey   = contextKey("userID")
	authUserKey = contextKey("authUser")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetAuthUserFromContext retrieves the authenticated identity bound by the
// auth middleware. Secret fields are already stripped.
func GetAuthUserFromContext(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(authUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

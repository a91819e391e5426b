package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/dto"
)

// AuthMiddleware creates a Gin middleware handler that verifies the presented
// access token and binds the caller's identity to the request context.
//
// The token is taken from the access token cookie first, then from an
// Authorization: Bearer header. Every failure in this path collapses into the
// same 401 response so callers cannot distinguish an expired token from a
// forged one.
func AuthMiddleware(cookieName string, tokenService portssvc.TokenSvcFacade, userService portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := extractToken(c, cookieName)
		if tokenString == "" {
			logger.Warn("No access token presented")
			abortUnauthorized(c)
			return
		}

		userID, err := tokenService.ValidateAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Access token verification failed")
			abortUnauthorized(c)
			return
		}

		user, err := userService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// Identity vanished after issuance; the signature alone is not
			// enough to act on behalf of a deleted user.
			logger.Warn("Access token subject no longer exists")
			abortUnauthorized(c)
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, user.UserID)
		ctx = context.WithValue(ctx, authUserKey, user)

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// extractToken pulls the presented access token from the designated cookie,
// falling back to the bearer scheme authorization header.
func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewAPIErrorResponse(http.StatusUnauthorized, "unauthorized"))
}

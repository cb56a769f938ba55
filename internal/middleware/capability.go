package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// CapabilityChecker is the slice of the user service the middleware needs.
type CapabilityChecker interface {
	RequireCapability(ctx context.Context, userID string, role domain.Role) error
}

// RequireCapability aborts with 403 unless the authenticated principal holds role.
// It must run after AuthMiddleware.
func RequireCapability(checker CapabilityChecker, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		err := checker.RequireCapability(c.Request.Context(), userID, role)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Capability check failed", slog.String("role", string(role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		default:
			logger.Error("Capability check errored", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Failed to check permissions"})
		}
	}
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps err onto the error taxonomy. Server-side failures get a generic
// message so internal details never reach the client.
func respondError(c *gin.Context, err error, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)

	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failureMsg})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Request not authorized", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Not authorized"})
	default:
		logger.Warn(failureMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// requireUserID returns the authenticated principal or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

func badRequest(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_portal/internal/middleware"
	"github.com/SscSPs/banking_portal/internal/telemetry"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
}

// Now returns the service's notion of the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogDegradedAudit records a state change whose audit entry could not be confirmed.
func (s *BaseService) LogDegradedAudit(ctx context.Context, operation string, err error, keyvals ...any) {
	telemetry.DegradedAuditTotal.WithLabelValues(operation).Inc()
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("operation", operation), slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn("State change stands but its audit entry is unconfirmed", args...)
}

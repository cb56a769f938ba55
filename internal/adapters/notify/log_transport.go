// Package notify holds notification transports. The real email, SMS and push
// gateways live outside the portal; LogTransport stands in for them.
package notify

import (
	"context"
	"log/slog"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
)

// LogTransport "delivers" by writing a structured log line.
type LogTransport struct {
	logger *slog.Logger
}

// NewLogTransport creates a transport that logs through logger, or slog.Default when nil.
func NewLogTransport(logger *slog.Logger) *LogTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTransport{logger: logger}
}

var _ portssvc.NotificationTransport = (*LogTransport)(nil)

// Deliver implements portssvc.NotificationTransport.
func (t *LogTransport) Deliver(ctx context.Context, n domain.Notification, channel domain.DeliveryPreference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.logger.InfoContext(ctx, "Notification handed to transport",
		slog.String("notification_id", n.NotificationID),
		slog.String("recipient", n.RecipientUserID),
		slog.String("type", string(n.Type)),
		slog.String("channel", string(channel)))
	return nil
}

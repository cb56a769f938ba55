package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/safego"
	"github.com/SscSPs/banking_portal/internal/telemetry"
	"github.com/google/uuid"
)

const DefaultNotificationDeliveryTimeout = 10 * time.Second

// notificationService stores notifications synchronously and hands delivery to the
// transport in the background. Delivery never runs under any caller's lock.
type notificationService struct {
	BaseService
	repo            portsrepo.NotificationRepositoryFacade
	users           portsrepo.UserReader
	audit           portssvc.AuditAppender
	transport       portssvc.NotificationTransport
	deliveryTimeout time.Duration
	deliveries      sync.WaitGroup
}

// NotificationServiceOption is a functional option for configuring the notification service
type NotificationServiceOption func(*notificationService)

// WithDeliveryTimeout bounds each external delivery attempt.
func WithDeliveryTimeout(d time.Duration) NotificationServiceOption {
	return func(s *notificationService) {
		if d > 0 {
			s.deliveryTimeout = d
		}
	}
}

// WithUserReader lets the dispatcher honour each recipient's delivery preference.
func WithUserReader(users portsrepo.UserReader) NotificationServiceOption {
	return func(s *notificationService) {
		s.users = users
	}
}

// WithNotificationClock overrides the dispatcher's clock.
func WithNotificationClock(clock func() time.Time) NotificationServiceOption {
	return func(s *notificationService) {
		s.Clock = clock
	}
}

// NewNotificationService creates the notification dispatcher.
func NewNotificationService(repo portsrepo.NotificationRepositoryFacade, audit portssvc.AuditAppender, transport portssvc.NotificationTransport, options ...NotificationServiceOption) portssvc.NotificationSvcFacade {
	svc := &notificationService{
		repo:            repo,
		audit:           audit,
		transport:       transport,
		deliveryTimeout: DefaultNotificationDeliveryTimeout,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) Send(ctx context.Context, recipientUserID string, notificationType domain.NotificationType, payload string) (string, error) {
	if recipientUserID == "" {
		return "", fmt.Errorf("%w: recipient is required", apperrors.ErrValidation)
	}
	if notificationType == "" {
		notificationType = domain.NotificationGeneral
	}

	n := domain.Notification{
		NotificationID:  uuid.NewString(),
		RecipientUserID: recipientUserID,
		Type:            notificationType,
		Payload:         payload,
		SentAt:          s.Now(),
		DeliveryStatus:  domain.DeliveryPending,
	}
	if err := s.repo.SaveNotification(ctx, n); err != nil {
		s.LogError(ctx, err, "Failed to save notification", slog.String("recipient", recipientUserID))
		return "", storageErr("save notification", err)
	}

	bg := context.WithoutCancel(ctx)
	if _, err := s.audit.Append(bg, domain.SystemActor, domain.ActionNotificationSent,
		fmt.Sprintf("notification=%s recipient=%s type=%s", n.NotificationID, recipientUserID, notificationType), n.SentAt); err != nil {
		s.LogDegradedAudit(ctx, "notification_send", err, slog.String("notification_id", n.NotificationID))
	}

	safego.GoTracked(&s.deliveries, func() {
		s.deliver(bg, n)
	})
	return n.NotificationID, nil
}

func (s *notificationService) deliver(ctx context.Context, n domain.Notification) {
	channel := domain.DeliveryEmail
	if s.users != nil {
		user, err := s.users.FindUserByID(ctx, n.RecipientUserID)
		switch {
		case err == nil && user.DeliveryPreference != "":
			channel = user.DeliveryPreference
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			s.LogWarn(ctx, "Could not load delivery preference, using default channel",
				slog.String("notification_id", n.NotificationID), slog.String("error", err.Error()))
		}
	}
	if channel == domain.DeliveryNone {
		s.LogDebug(ctx, "Recipient opted out of external delivery", slog.String("notification_id", n.NotificationID))
		return
	}

	dctx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
	deliveryErr := s.transport.Deliver(dctx, n, channel)
	cancel()

	status := domain.DeliveryDeliveredExternally
	action := domain.ActionNotificationDelivered
	details := fmt.Sprintf("notification=%s channel=%s", n.NotificationID, channel)
	if deliveryErr != nil {
		status = domain.DeliveryExternalDeliveryFailed
		action = domain.ActionNotificationDeliveryFailed
		details = fmt.Sprintf("%s reason=%s", details, deliveryErr.Error())
		s.LogWarn(ctx, "External notification delivery failed",
			slog.String("notification_id", n.NotificationID),
			slog.String("channel", string(channel)),
			slog.String("error", deliveryErr.Error()))
	}
	telemetry.NotificationDeliveriesTotal.WithLabelValues(string(status)).Inc()

	if err := s.repo.UpdateDeliveryStatus(ctx, n.NotificationID, status); err != nil {
		s.LogError(ctx, err, "Failed to record delivery status", slog.String("notification_id", n.NotificationID))
	}
	if _, err := s.audit.Append(ctx, domain.SystemActor, action, details, s.Now()); err != nil {
		s.LogDegradedAudit(ctx, "notification_delivery", err, slog.String("notification_id", n.NotificationID))
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	notifications, err := s.repo.FindNotificationsByRecipient(ctx, userID, unreadOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		return nil, storageErr("list notifications", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) (domain.MarkReadResult, error) {
	if userID == "" || notificationID == "" {
		return "", fmt.Errorf("%w: user id and notification id are required", apperrors.ErrValidation)
	}

	now := s.Now()
	result, err := s.repo.MarkNotificationRead(ctx, notificationID, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark notification read", slog.String("notification_id", notificationID))
		return "", storageErr("mark notification read", err)
	}
	if result == domain.MarkReadMarked {
		if _, err := s.audit.Append(context.WithoutCancel(ctx), userID, domain.ActionNotificationRead,
			fmt.Sprintf("notification=%s", notificationID), now); err != nil {
			s.LogDegradedAudit(ctx, "notification_read", err, slog.String("notification_id", notificationID))
		}
	}
	return result, nil
}

func (s *notificationService) WaitForDeliveries() {
	s.deliveries.Wait()
}

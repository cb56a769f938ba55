package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
)

// NotificationRepository is the in-memory notification store.
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]domain.Notification
}

// NewNotificationRepository creates an empty notification store.
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{notifications: make(map[string]domain.Notification)}
}

var _ portsrepo.NotificationRepositoryFacade = (*NotificationRepository)(nil)

// FindNotificationByID implements portsrepo.NotificationReader.
func (r *NotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notifications[notificationID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneNotification(n), nil
}

// FindNotificationsByRecipient implements portsrepo.NotificationReader.
func (r *NotificationRepository) FindNotificationsByRecipient(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	r.mu.RLock()
	out := make([]domain.Notification, 0)
	for _, n := range r.notifications {
		if n.RecipientUserID != userID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, *cloneNotification(n))
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Notification) int {
		if c := b.SentAt.Compare(a.SentAt); c != 0 {
			return c
		}
		return strings.Compare(a.NotificationID, b.NotificationID)
	})
	return out, nil
}

// SaveNotification implements portsrepo.NotificationWriter.
func (r *NotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.notifications[notification.NotificationID]; exists {
		return fmt.Errorf("notification %s: %w", notification.NotificationID, apperrors.ErrDuplicate)
	}
	r.notifications[notification.NotificationID] = *cloneNotification(notification)
	return nil
}

// MarkNotificationRead implements portsrepo.NotificationWriter.
func (r *NotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, recipientUserID string, at time.Time) (domain.MarkReadResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[notificationID]
	if !ok || n.RecipientUserID != recipientUserID {
		return domain.MarkReadNotFound, nil
	}
	if n.Read {
		return domain.MarkReadAlreadyRead, nil
	}
	n.Read = true
	n.ReadAt = &at
	r.notifications[notificationID] = n
	return domain.MarkReadMarked, nil
}

// UpdateDeliveryStatus implements portsrepo.NotificationWriter.
func (r *NotificationRepository) UpdateDeliveryStatus(ctx context.Context, notificationID string, status domain.DeliveryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[notificationID]
	if !ok {
		return apperrors.ErrNotFound
	}
	n.DeliveryStatus = status
	r.notifications[notificationID] = n
	return nil
}

func cloneNotification(n domain.Notification) *domain.Notification {
	if n.ReadAt != nil {
		readAt := *n.ReadAt
		n.ReadAt = &readAt
	}
	return &n
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	"github.com/SscSPs/banking_portal/internal/models"
	"github.com/SscSPs/banking_portal/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const notificationColumns = `notification_id, recipient_user_id, notification_type, payload, sent_at, is_read, read_at, delivery_status`

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(base BaseRepository) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: base}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func scanNotification(row pgx.Row) (models.Notification, error) {
	var m models.Notification
	err := row.Scan(&m.NotificationID, &m.RecipientUserID, &m.Type, &m.Payload, &m.SentAt, &m.IsRead, &m.ReadAt, &m.DeliveryStatus)
	return m, err
}

func (r *PgxNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	m, err := scanNotification(r.Pool.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE notification_id = $1;`, notificationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find notification", err)
	}
	n := mapping.ToDomainNotification(m)
	return &n, nil
}

func (r *PgxNotificationRepository) FindNotificationsByRecipient(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE recipient_user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY sent_at DESC, notification_id ASC;`
	rows, err := r.Pool.Query(ctx, query, userID, unreadOnly)
	if err != nil {
		return nil, unavailable("list notifications", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Notification, error) {
		return scanNotification(row)
	})
	if err != nil {
		return nil, unavailable("scan notifications", err)
	}
	out := make([]domain.Notification, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainNotification(m)
	}
	return out, nil
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query,
		m.NotificationID,
		m.RecipientUserID,
		m.Type,
		m.Payload,
		m.SentAt,
		m.IsRead,
		m.ReadAt,
		m.DeliveryStatus,
	)
	if err != nil {
		return mapWriteError("save notification", "notification "+notification.NotificationID, err)
	}
	return nil
}

// MarkNotificationRead only touches unread rows, so a repeat call never moves read_at.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, recipientUserID string, at time.Time) (domain.MarkReadResult, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = $3
		WHERE notification_id = $1 AND recipient_user_id = $2 AND NOT is_read;`,
		notificationID, recipientUserID, at)
	if err != nil {
		return "", unavailable("mark notification read", err)
	}
	if tag.RowsAffected() == 1 {
		return domain.MarkReadMarked, nil
	}

	var isRead bool
	err = r.Pool.QueryRow(ctx, `SELECT is_read FROM notifications WHERE notification_id = $1 AND recipient_user_id = $2;`,
		notificationID, recipientUserID).Scan(&isRead)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MarkReadNotFound, nil
	}
	if err != nil {
		return "", unavailable("check notification", err)
	}
	return domain.MarkReadAlreadyRead, nil
}

func (r *PgxNotificationRepository) UpdateDeliveryStatus(ctx context.Context, notificationID string, status domain.DeliveryStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE notifications SET delivery_status = $1 WHERE notification_id = $2;`, string(status), notificationID)
	if err != nil {
		return unavailable("update delivery status", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, apperrors.ErrNotFound)
	}
	return nil
}

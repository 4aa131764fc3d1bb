package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusdesk/helpdesk/internal/domain"
)

// notificationListLimit caps the notification feed, matching the API contract.
const notificationListLimit = 20

// NotificationRepository persists directed notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository constructs repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (recipient_id, ticket_id, type, message)
        VALUES ($1,$2,$3,$4)
        RETURNING id, is_read, created_at`
	return r.pool.QueryRow(ctx, query,
		notification.RecipientID,
		notification.TicketID,
		notification.Type,
		notification.Message,
	).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	const query = `
        SELECT n.id, n.recipient_id, n.ticket_id, n.type, n.message, n.is_read, n.created_at,
               COALESCE(t.subject, '')
        FROM notifications n
        LEFT JOIN tickets t ON n.ticket_id = t.id
        WHERE n.recipient_id=$1
        ORDER BY n.created_at DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, recipientID, notificationListLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.RecipientID,
			&notification.TicketID,
			&notification.Type,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
			&notification.TicketSubject,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE recipient_id=$1 AND is_read=FALSE`
	var count int64
	if err := r.pool.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead is scoped to the recipient: a caller cannot mark another user's
// notification. Idempotent; unknown IDs are a no-op.
func (r *notificationRepository) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	const query = `UPDATE notifications SET is_read=TRUE WHERE id=$1 AND recipient_id=$2`
	_, err := r.pool.Exec(ctx, query, notificationID, recipientID)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	const query = `UPDATE notifications SET is_read=TRUE WHERE recipient_id=$1`
	_, err := r.pool.Exec(ctx, query, recipientID)
	return err
}

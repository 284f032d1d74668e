package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const notificationColumns = `id, user_id, type, title, message, link, is_read, read_at, created_at`

type NotificationRepository struct {
	db database.DBTX
}

func NewNotificationRepository(db database.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func scanNotification(row pgx.Row) (model.Notification, error) {
	var n model.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.Link,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	)
	return n, err
}

func (r *NotificationRepository) Create(ctx context.Context, n model.NewNotification) (*model.Notification, error) {
	created, err := scanNotification(r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, title, message, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+notificationColumns,
		n.UserID, n.Type, n.Title, n.Message, n.Link,
	))
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return &created, nil
}

// CreateBroadcast inserts one broadcast notification per user id in a
// single statement and returns the number of rows written. Users that
// already hold a row for broadcastID are skipped, so a retried fan-out
// never duplicates notifications.
func (r *NotificationRepository) CreateBroadcast(
	ctx context.Context,
	broadcastID uuid.UUID,
	userIDs []uuid.UUID,
	title, message string,
	link *string,
) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `
		INSERT INTO notifications (user_id, broadcast_id, type, title, message, link)
		SELECT uid, $2, $3, $4, $5, $6 FROM unnest($1::uuid[]) AS uid
		ON CONFLICT (broadcast_id, user_id) WHERE broadcast_id IS NOT NULL DO NOTHING`,
		userIDs, broadcastID, model.NotificationTypeBroadcast, title, message, link,
	)
	if err != nil {
		return 0, fmt.Errorf("insert notifications batch: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	unreadOnly bool,
	p model.PaginationQuery,
) ([]model.Notification, int64, error) {
	var w where
	w.add(`user_id = ?`, userID)
	if unreadOnly {
		w.raw(`NOT is_read`)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	limit, args := w.page(p.Limit, p.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+notificationColumns+` FROM notifications`+w.String()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Notification, error) {
		return scanNotification(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan notifications: %w", err)
	}
	return items, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead is scoped to the owner so users cannot touch each other's rows.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error) {
	n, err := scanNotification(r.db.QueryRow(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, now())
		WHERE id = $1 AND user_id = $2
		RETURNING `+notificationColumns, id, userID))
	if err != nil {
		return nil, notFound("notifications", err)
	}
	return &n, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = now()
		WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("notifications", pgx.ErrNoRows)
	}
	return nil
}

// PurgeReadBefore deletes read notifications created before cutoff.
func (r *NotificationRepository) PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE is_read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

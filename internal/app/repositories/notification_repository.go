package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for per-user notifications
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateEndingSoonBatch inserts ending-soon notifications for every
// recipient/intern pair that does not already have one. The anti-join keeps
// the hourly scan idempotent: re-running it never duplicates alerts for the
// same intern.
func (r *NotificationRepository) CreateEndingSoonBatch(ctx context.Context, recipientIDs []int64, internID int64, title, body string) (int64, error) {
	if len(recipientIDs) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO notifications (recipient_id, intern_id, type, title, body)
		SELECT r.id, $1, $2, $3, $4
		FROM unnest($5::bigint[]) AS r(id)
		WHERE NOT EXISTS (
			SELECT 1 FROM notifications n
			WHERE n.recipient_id = r.id AND n.intern_id = $1 AND n.type = $2
		)
	`
	cmdTag, err := r.db.Exec(ctx, query,
		internID, models.NotificationInternEnding, title, body, recipientIDs)
	if err != nil {
		return 0, fmt.Errorf("error creating ending-soon notifications: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// ListByRecipient retrieves notifications for a user, newest first. When
// unreadOnly is set, read notifications are skipped.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error) {
	conds := squirrel.And{squirrel.Eq{"recipient_id": recipientID}}
	if unreadOnly {
		conds = append(conds, squirrel.Eq{"is_read": false})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(conds).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count notifications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	listSQL, listArgs, err := r.sb.Select("id", "recipient_id", "intern_id", "type", "title", "body", "is_read", "created_at").
		From("notifications").
		Where(conds).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.InternID,
		&n.Type,
		&n.Title,
		&n.Body,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read. The recipient check keeps
// users from touching each other's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`,
		id, recipientID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read, returning how
// many changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteReadOlderThan removes read notifications older than the given number
// of days. Run by the daily cleanup job.
func (r *NotificationRepository) DeleteReadOlderThan(ctx context.Context, days int) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE is_read = TRUE AND created_at < NOW() - make_interval(days => $1)`,
		days)
	if err != nil {
		return 0, fmt.Errorf("error deleting old notifications: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

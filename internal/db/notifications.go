package db

import (
	"context"
	"time"
)

func (q *Queries) CreateNotification(ctx context.Context, n Notification) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.RelatedID, n.IsRead, n.CreatedAt)
	return err
}

func (q *Queries) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, user_id, type, title, message, related_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC
	`, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (q *Queries) NotificationStats(ctx context.Context, userID string) (NotificationStats, error) {
	var stats NotificationStats
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_read = false)
		FROM notifications
		WHERE user_id = $1
	`, userID).Scan(&stats.Total, &stats.Unread)
	return stats, err
}

func (q *Queries) GetNotification(ctx context.Context, id string) (Notification, error) {
	var n Notification
	err := q.db.QueryRow(ctx, `
		SELECT id, user_id, type, title, message, related_id, is_read, created_at
		FROM notifications
		WHERE id = $1
	`, id).Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt)
	return n, err
}

func (q *Queries) MarkNotificationRead(ctx context.Context, id, userID string) error {
	return q.execExpectingRow(ctx, `
		UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2
	`, id, userID)
}

func (q *Queries) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := q.db.Exec(ctx, `
		UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false
	`, userID)
	return err
}

func (q *Queries) DeleteNotification(ctx context.Context, id, userID string) error {
	return q.execExpectingRow(ctx, `
		DELETE FROM notifications WHERE id = $1 AND user_id = $2
	`, id, userID)
}

func (q *Queries) DeleteAllNotifications(ctx context.Context, userID string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	return err
}

// HasRecentNotification reports whether a notification of the given type was
// already written for the user since the given instant. The alert job uses
// it as dedup fallback when Redis is not configured.
func (q *Queries) HasRecentNotification(ctx context.Context, userID, notificationType string, since time.Time) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND type = $2 AND created_at >= $3
		)
	`, userID, notificationType, since).Scan(&exists)
	return exists, err
}

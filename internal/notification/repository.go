package notification

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

const notificationColumns = `id, recipient_id, actor_role, type, request_id, content, is_read, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, n Notification) (*Notification, error) {
	query := `
		INSERT INTO notifications (recipient_id, actor_role, type, request_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + notificationColumns

	var created Notification
	if err := r.db.GetContext(ctx, &created, query, n.RecipientID, n.ActorRole, n.Type, n.RequestID, n.Content); err != nil {
		return nil, err
	}
	created.normalize()
	return &created, nil
}

func (r *repository) ListForRecipient(ctx context.Context, recipientID string, since time.Time, limit int) ([]Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE recipient_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	notifications := []Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, recipientID, since, limit); err != nil {
		return nil, err
	}
	for i := range notifications {
		notifications[i].normalize()
	}
	return notifications, nil
}

func (r *repository) MarkRead(ctx context.Context, recipientID string, id int64) (int64, error) {
	return r.exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
}

func (r *repository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return r.exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND NOT is_read`, recipientID)
}

func (r *repository) CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE created_at < $1`, cutoff)
	return count, err
}

func (r *repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.exec(ctx, `DELETE FROM notifications WHERE created_at < $1`, cutoff)
}

func (r *repository) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

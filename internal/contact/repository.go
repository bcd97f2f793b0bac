package contact

import (
	"context"
	"database/sql"
	"errors"

	"gym24/internal/db"

	"github.com/jmoiron/sqlx"
)

const requestSelect = `
	SELECT r.id, r.user_id, r.subject, r.message, r.status, r.created_at,
	       COALESCE(p.email, 'No email') AS user_email,
	       COALESCE(p.full_name, 'Unknown User') AS user_name
	FROM contact_requests r
	LEFT JOIN profiles p ON p.id = r.user_id
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID, subject, message string) (*Request, error) {
	query := `
		INSERT INTO contact_requests (user_id, subject, message)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, subject, message, status, created_at
	`

	var req Request
	if err := r.db.GetContext(ctx, &req, query, userID, subject, message); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Request, error) {
	var req Request
	err := r.db.GetContext(ctx, &req, requestSelect+`WHERE r.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]Request, error) {
	requests := []Request{}
	err := r.db.SelectContext(ctx, &requests, requestSelect+`WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
	return requests, err
}

func (r *repository) ListByStatus(ctx context.Context, status string) ([]Request, error) {
	requests := []Request{}
	if status == "" {
		err := r.db.SelectContext(ctx, &requests, requestSelect+`ORDER BY r.created_at DESC`)
		return requests, err
	}
	err := r.db.SelectContext(ctx, &requests, requestSelect+`WHERE r.status = $1 ORDER BY r.created_at DESC`, status)
	return requests, err
}

func (r *repository) Accept(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_requests SET status = 'accepted' WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM contact_messages WHERE request_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM contact_requests WHERE id = $1`, id)
		return err
	})
}

func (r *repository) ListMessages(ctx context.Context, requestID int64) ([]ChatMessage, error) {
	query := `
		SELECT id, request_id, sender_id, content, created_at
		FROM contact_messages
		WHERE request_id = $1
		ORDER BY created_at ASC, id ASC
	`

	messages := []ChatMessage{}
	err := r.db.SelectContext(ctx, &messages, query, requestID)
	return messages, err
}

func (r *repository) InsertMessage(ctx context.Context, requestID int64, senderID, content string) (*ChatMessage, error) {
	query := `
		INSERT INTO contact_messages (request_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, request_id, sender_id, content, created_at
	`

	var msg ChatMessage
	if err := r.db.GetContext(ctx, &msg, query, requestID, senderID, content); err != nil {
		return nil, err
	}
	return &msg, nil
}

package adminsession

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSession(ctx context.Context, adminID, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO admin_sessions (admin_id, token, expires_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, adminID, token, expiresAt)
	return err
}

func (r *repository) GetSession(ctx context.Context, token string) (*Session, error) {
	query := `
		SELECT token, admin_id, expires_at
		FROM admin_sessions
		WHERE token = $1
	`

	var session Session
	err := r.db.GetContext(ctx, &session, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *repository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE token = $1`, token)
	return err
}

func (r *repository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	var removed int64
	err := r.db.GetContext(ctx, &removed, `SELECT clean_expired_admin_sessions()`)
	return removed, err
}

func (r *repository) getAdmin(ctx context.Context, where string, arg interface{}) (*AdminAccount, error) {
	query := `
		SELECT id, email, full_name, role, is_active, password_hash, created_at
		FROM admins
		WHERE ` + where

	var account AdminAccount
	err := r.db.GetContext(ctx, &account, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *repository) GetAdminByID(ctx context.Context, id string) (*AdminAccount, error) {
	return r.getAdmin(ctx, "id = $1", id)
}

func (r *repository) GetAdminByEmail(ctx context.Context, email string) (*AdminAccount, error) {
	return r.getAdmin(ctx, "lower(email) = lower($1)", email)
}

// ValidateSessionProcedure calls the stored function that joins session and
// account in one statement. No row means no valid session.
func (r *repository) ValidateSessionProcedure(ctx context.Context, token string) (*Admin, error) {
	query := `SELECT admin_id, email, full_name, role FROM validate_admin_session($1)`

	var admin Admin
	err := r.db.GetContext(ctx, &admin, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

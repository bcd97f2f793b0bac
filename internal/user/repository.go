package user

import (
	"context"
	"database/sql"
	"errors"

	"gym24/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// date_of_birth is rendered as text so an unset date scans as "".
const profileColumns = `id, full_name, email, password_hash, phone, avatar_url,
	COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), '') AS date_of_birth,
	fitness_goal, preferred_class_types, emergency_contact_name,
	emergency_contact_phone, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, fullName, email, passwordHash string) (*User, error) {
	query := `
		INSERT INTO profiles (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + profileColumns

	var user User
	if err := r.db.GetContext(ctx, &user, query, fullName, email, passwordHash); err != nil {
		return nil, err
	}

	return &user, nil
}

// getOne runs a single-row query and maps no rows to ErrUserNotFound.
func (r *repository) getOne(ctx context.Context, query string, args ...interface{}) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) find(ctx context.Context, where string, arg interface{}) (*User, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE `+where, arg)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.find(ctx, "lower(email) = lower($1)", email)
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.find(ctx, "id = $1", id)
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE lower(email) = lower($1))`
	return db.Exists(ctx, r.db, query, email)
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	query := `
		UPDATE profiles
		SET full_name = $2,
		    phone = $3,
		    date_of_birth = NULLIF($4, '')::date,
		    fitness_goal = $5,
		    preferred_class_types = COALESCE($6::text[], '{}'),
		    emergency_contact_name = $7,
		    emergency_contact_phone = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns

	return r.getOne(ctx, query, id, req.FullName, req.Phone, req.DateOfBirth, req.FitnessGoal,
		pq.Array(req.PreferredClassTypes), req.EmergencyContactName, req.EmergencyContactPhone)
}

func (r *repository) SetAvatar(ctx context.Context, id, url string) (*User, error) {
	query := `
		UPDATE profiles
		SET avatar_url = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns

	return r.getOne(ctx, query, id, sql.NullString{String: url, Valid: url != ""})
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE user_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE user_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
		return err
	})
}

package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gym24/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UserHasBooking(ctx context.Context, userID string, classID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE user_id = $1 AND class_id = $2)`
	return db.Exists(ctx, r.db, query, userID, classID)
}

func (r *repository) Create(ctx context.Context, userID string, classID int64) (*Booking, error) {
	query := `
		INSERT INTO bookings (user_id, class_id)
		VALUES ($1, $2)
		RETURNING id, user_id, class_id, created_at
	`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, userID, classID); err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) CreateWithinCapacity(ctx context.Context, userID string, classID int64) (*Booking, error) {
	var b Booking

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var maxCapacity int
		err := tx.GetContext(ctx, &maxCapacity, `SELECT max_capacity FROM classes WHERE id = $1 FOR UPDATE`, classID)
		if err != nil {
			return err
		}

		var count int
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE class_id = $1`, classID); err != nil {
			return err
		}
		if count >= maxCapacity {
			return ErrClassFull
		}

		query := `
			INSERT INTO bookings (user_id, class_id)
			VALUES ($1, $2)
			RETURNING id, user_id, class_id, created_at
		`
		return tx.GetContext(ctx, &b, query, userID, classID)
	})
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) DeleteForUser(ctx context.Context, userID string, bookingID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1 AND user_id = $2`, bookingID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) DeleteByClassForUser(ctx context.Context, userID string, classID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE class_id = $1 AND user_id = $2`, classID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]UserBooking, error) {
	query := `
		SELECT b.id, b.user_id, b.class_id, b.created_at, c.name AS class_name, c.schedule
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		WHERE b.user_id = $1
		ORDER BY c.schedule ASC
	`

	bookings := []UserBooking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}

	return bookings, nil
}

type adminBookingRow struct {
	ID        int64          `db:"id"`
	UserID    string         `db:"user_id"`
	ClassID   int64          `db:"class_id"`
	CreatedAt time.Time      `db:"created_at"`
	UserEmail sql.NullString `db:"user_email"`
	UserName  sql.NullString `db:"user_name"`
	ClassName sql.NullString `db:"class_name"`
}

func (r *repository) ListAll(ctx context.Context) ([]AdminBooking, error) {
	query := `
		SELECT b.id, b.user_id, b.class_id, b.created_at,
			p.email AS user_email, p.full_name AS user_name, c.name AS class_name
		FROM bookings b
		LEFT JOIN profiles p ON p.id = b.user_id
		LEFT JOIN classes c ON c.id = b.class_id
		ORDER BY b.created_at DESC
	`

	var rows []adminBookingRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	bookings := make([]AdminBooking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, AdminBooking{
			Booking: Booking{
				ID:        row.ID,
				UserID:    row.UserID,
				ClassID:   row.ClassID,
				CreatedAt: row.CreatedAt,
			},
			UserEmail: orDefault(row.UserEmail, NoEmail),
			UserName:  orDefault(row.UserName, UnknownUser),
			ClassName: orDefault(row.ClassName, UnknownClass),
		})
	}

	return bookings, nil
}

func orDefault(v sql.NullString, fallback string) string {
	if !v.Valid || v.String == "" {
		return fallback
	}
	return v.String
}

func (r *repository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) GetMember(ctx context.Context, userID string) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m, `SELECT email, full_name FROM profiles WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

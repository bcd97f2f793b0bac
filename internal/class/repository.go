package class

import (
	"context"
	"database/sql"
	"errors"

	"gym24/internal/db"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
)

var dialect = goqu.Dialect("postgres")

var classColumns = []interface{}{
	"id", "name", "description", "schedule", "duration_minutes",
	"trainer_name", "max_capacity", "category", "created_at",
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Class, error) {
	query := `
		SELECT id, name, description, schedule, duration_minutes, trainer_name, max_capacity, category, created_at
		FROM classes
		ORDER BY schedule ASC
	`

	classes := []Class{}
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Class, error) {
	query := `
		SELECT id, name, description, schedule, duration_minutes, trainer_name, max_capacity, category, created_at
		FROM classes
		WHERE id = $1
	`

	var c Class
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) Create(ctx context.Context, c Class) (*Class, error) {
	query := `
		INSERT INTO classes (name, description, schedule, duration_minutes, trainer_name, max_capacity, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, schedule, duration_minutes, trainer_name, max_capacity, category, created_at
	`

	var created Class
	err := r.db.GetContext(ctx, &created, query,
		c.Name, c.Description, c.Schedule, c.DurationMinutes, c.TrainerName, c.MaxCapacity, c.Category)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, id int64, fields goqu.Record) (*Class, error) {
	query, args, err := dialect.Update("classes").
		Prepared(true).
		Set(fields).
		Where(goqu.C("id").Eq(id)).
		Returning(classColumns...).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var updated Class
	err = r.db.GetContext(ctx, &updated, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE class_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE class_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
		return err
	})
}

func (r *repository) CountBookings(ctx context.Context, classID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE class_id = $1`, classID)
	return count, err
}

func (r *repository) ReviewStats(ctx context.Context, classID int64) (ReviewStats, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count
		FROM reviews
		WHERE class_id = $1 AND is_approved
	`

	var stats ReviewStats
	err := r.db.GetContext(ctx, &stats, query, classID)
	return stats, err
}

func (r *repository) ListApprovedReviews(ctx context.Context, classID int64) ([]ClassReview, error) {
	query := `
		SELECT id, user_id, rating, comment, created_at
		FROM reviews
		WHERE class_id = $1 AND is_approved
		ORDER BY created_at DESC
	`

	reviews := []ClassReview{}
	if err := r.db.SelectContext(ctx, &reviews, query, classID); err != nil {
		return nil, err
	}

	return reviews, nil
}

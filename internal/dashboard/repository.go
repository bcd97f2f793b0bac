package dashboard

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrUnknownTable = errors.New("unknown table")

type Repository interface {
	Count(ctx context.Context, table string) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	BookingUserIDs(ctx context.Context) ([]string, error)
	CountProfiles(ctx context.Context, ids []string) (int64, error)
}

// counted is the closed set of tables Count accepts.
var counted = map[string]string{
	"profiles": `SELECT COUNT(*) FROM profiles`,
	"classes":  `SELECT COUNT(*) FROM classes`,
	"reviews":  `SELECT COUNT(*) FROM reviews`,
	"bookings": `SELECT COUNT(*) FROM bookings`,
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Count(ctx context.Context, table string) (int64, error) {
	query, ok := counted[table]
	if !ok {
		return 0, ErrUnknownTable
	}
	var n int64
	err := r.db.GetContext(ctx, &n, query)
	return n, err
}

func (r *repository) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.GetContext(ctx, &avg, `SELECT COALESCE(AVG(rating), 0)::float8 FROM reviews`)
	return avg, err
}

func (r *repository) BookingUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.QueryRowxContext(ctx,
		`SELECT ARRAY(SELECT DISTINCT user_id::text FROM bookings)`,
	).Scan(pq.Array(&ids))
	return ids, err
}

// CountProfiles counts the ids that still belong to a member profile.
func (r *repository) CountProfiles(ctx context.Context, ids []string) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM profiles WHERE id::text = ANY($1)`, pq.Array(ids))
	return n, err
}

package class

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
)

var ErrClassNotFound = errors.New("class not found")

type Repository interface {
	List(ctx context.Context) ([]Class, error)
	GetByID(ctx context.Context, id int64) (*Class, error)
	Create(ctx context.Context, c Class) (*Class, error)
	Update(ctx context.Context, id int64, fields goqu.Record) (*Class, error)
	// Delete removes the class together with its bookings and reviews.
	Delete(ctx context.Context, id int64) error
	CountBookings(ctx context.Context, classID int64) (int, error)
	ReviewStats(ctx context.Context, classID int64) (ReviewStats, error)
	ListApprovedReviews(ctx context.Context, classID int64) ([]ClassReview, error)
}

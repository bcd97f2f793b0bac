package review

import (
	"context"
	"errors"
)

var ErrReviewNotFound = errors.New("review not found")

type Repository interface {
	FindByUserAndClass(ctx context.Context, userID string, classID int64) (*Review, error)
	Create(ctx context.Context, userID string, classID int64, rating int, comment string) (*Review, error)
	Update(ctx context.Context, id int64, rating int, comment string) (*Review, error)
	ListForUser(ctx context.Context, userID string) ([]Review, error)
	DeleteForUser(ctx context.Context, userID string, id int64) (int64, error)
	ListAll(ctx context.Context) ([]AdminReview, error)
	Delete(ctx context.Context, id int64) error
}

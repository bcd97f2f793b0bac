package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const reviewColumns = "id, user_id, class_id, rating, comment, is_approved, created_at, updated_at"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUserAndClass(ctx context.Context, userID string, classID int64) (*Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1 AND class_id = $2
		ORDER BY created_at ASC
		LIMIT 1
	`

	var review Review
	err := r.db.GetContext(ctx, &review, query, userID, classID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *repository) Create(ctx context.Context, userID string, classID int64, rating int, comment string) (*Review, error) {
	query := `
		INSERT INTO reviews (user_id, class_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + reviewColumns

	var review Review
	if err := r.db.GetContext(ctx, &review, query, userID, classID, rating, comment); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *repository) Update(ctx context.Context, id int64, rating int, comment string) (*Review, error) {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reviewColumns

	var review Review
	err := r.db.GetContext(ctx, &review, query, id, rating, comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	reviews := []Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, userID); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *repository) DeleteForUser(ctx context.Context, userID string, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) ListAll(ctx context.Context) ([]AdminReview, error) {
	query := `
		SELECT r.id, r.user_id, r.class_id, r.rating, r.comment, r.is_approved, r.created_at, r.updated_at,
			COALESCE(p.email, 'No email') AS user_email,
			COALESCE(NULLIF(p.full_name, ''), 'Unknown User') AS user_name,
			COALESCE(c.name, 'Unknown Class') AS class_name
		FROM reviews r
		LEFT JOIN profiles p ON p.id = r.user_id
		LEFT JOIN classes c ON c.id = r.class_id
		ORDER BY r.created_at DESC
	`

	reviews := []AdminReview{}
	if err := r.db.SelectContext(ctx, &reviews, query); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}

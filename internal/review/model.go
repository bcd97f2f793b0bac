package review

import "time"

type Review struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	ClassID    int64     `db:"class_id" json:"class_id"`
	Rating     int       `db:"rating" json:"rating"`
	Comment    string    `db:"comment" json:"comment"`
	IsApproved bool      `db:"is_approved" json:"is_approved"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type AdminReview struct {
	Review
	UserEmail string `db:"user_email" json:"user_email"`
	UserName  string `db:"user_name" json:"user_name"`
	ClassName string `db:"class_name" json:"class_name"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type SubmitReviewResponse struct {
	Review  *Review `json:"review"`
	Created bool    `json:"created"`
}

type DeleteReviewRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

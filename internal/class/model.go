package class

import "time"

const (
	DefaultDurationMinutes = 60
	DefaultMaxCapacity     = 20
	DefaultCategory        = "General"
)

type Class struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	Schedule        time.Time `db:"schedule" json:"schedule"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	TrainerName     string    `db:"trainer_name" json:"trainer_name"`
	MaxCapacity     int       `db:"max_capacity" json:"max_capacity"`
	Category        string    `db:"category" json:"category"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ClassView is a class merged with its live occupancy and rating.
type ClassView struct {
	Class
	CurrentBookings int     `json:"current_bookings"`
	Remaining       int     `json:"remaining"`
	IsFull          bool    `json:"is_full"`
	AverageRating   float64 `json:"average_rating"`
	ReviewCount     int     `json:"review_count"`
}

type ReviewStats struct {
	Average float64 `db:"average"`
	Count   int     `db:"count"`
}

type ClassReview struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ClassDetail struct {
	ClassView
	Reviews            []ClassReview `json:"reviews"`
	RatingDistribution map[int]int   `json:"rating_distribution"`
}

type CreateClassRequest struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Schedule        *time.Time `json:"schedule"`
	DurationMinutes int        `json:"duration_minutes"`
	TrainerName     string     `json:"trainer_name"`
	MaxCapacity     int        `json:"max_capacity"`
	Category        string     `json:"category"`
}

type DeleteClassRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// Occupancy derives the seat projection. Remaining never goes below zero,
// even for an overbooked class.
func Occupancy(maxCapacity, booked int) (remaining int, full bool) {
	remaining = maxCapacity - booked
	if remaining < 0 {
		remaining = 0
	}
	return remaining, booked >= maxCapacity
}

// toClass applies ingress defaults so nothing downstream branches on
// missing values.
func (r CreateClassRequest) toClass() Class {
	c := Class{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		TrainerName:     r.TrainerName,
		MaxCapacity:     r.MaxCapacity,
		Category:        r.Category,
	}
	if r.Schedule != nil {
		c.Schedule = *r.Schedule
	}
	if c.DurationMinutes <= 0 {
		c.DurationMinutes = DefaultDurationMinutes
	}
	if c.MaxCapacity <= 0 {
		c.MaxCapacity = DefaultMaxCapacity
	}
	if c.Category == "" {
		c.Category = DefaultCategory
	}
	return c
}

package booking

import "time"

const (
	OutcomeBooked        = "booked"
	OutcomeAlreadyBooked = "already_booked"
	OutcomeFull          = "full"
	OutcomeRejected      = "rejected"
	OutcomeError         = "error"
)

// Fallbacks used when a joined profile or class row is gone.
const (
	NoEmail      = "No email"
	UnknownUser  = "Unknown User"
	UnknownClass = "Unknown Class"
)

type Booking struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	ClassID   int64     `db:"class_id" json:"class_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserBooking is a member's booking with the class fields the dashboard shows.
type UserBooking struct {
	Booking
	ClassName string    `db:"class_name" json:"class_name"`
	Schedule  time.Time `db:"schedule" json:"schedule"`
}

type AdminBooking struct {
	Booking
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	ClassName string `json:"class_name"`
}

type Member struct {
	Email    string `db:"email"`
	FullName string `db:"full_name"`
}

type BookResponse struct {
	Booking *Booking `json:"booking"`
}

type CancelBookingResponse struct {
	Message string `json:"message" example:"Booking cancelled successfully"`
}

type AdminBookingsResponse struct {
	Bookings []AdminBooking `json:"bookings"`
}

// DeleteBookingsRequest accepts a single id or a batch.
type DeleteBookingsRequest struct {
	ID  int64   `json:"id"`
	IDs []int64 `json:"ids"`
}

func (r DeleteBookingsRequest) all() []int64 {
	ids := make([]int64, 0, len(r.IDs)+1)
	if r.ID > 0 {
		ids = append(ids, r.ID)
	}
	for _, id := range r.IDs {
		if id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

type DeleteBookingsResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

package booking

import (
	"context"
	"errors"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrClassFull       = errors.New("class is fully booked")
	ErrMemberNotFound  = errors.New("member not found")
)

type Repository interface {
	UserHasBooking(ctx context.Context, userID string, classID int64) (bool, error)
	// Create inserts unconditionally; capacity is checked by the caller.
	Create(ctx context.Context, userID string, classID int64) (*Booking, error)
	// CreateWithinCapacity locks the class row and inserts only while the
	// class has a free seat, returning ErrClassFull otherwise.
	CreateWithinCapacity(ctx context.Context, userID string, classID int64) (*Booking, error)
	DeleteForUser(ctx context.Context, userID string, bookingID int64) (int64, error)
	DeleteByClassForUser(ctx context.Context, userID string, classID int64) (int64, error)
	ListForUser(ctx context.Context, userID string) ([]UserBooking, error)
	ListAll(ctx context.Context) ([]AdminBooking, error)
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	GetMember(ctx context.Context, userID string) (*Member, error)
}

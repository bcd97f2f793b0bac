package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gym24/internal/apperrors"
	"gym24/internal/audit"
	"gym24/internal/class"
	"gym24/internal/metrics"
)

type Service interface {
	BookClass(ctx context.Context, userID string, classID int64) (*Booking, error)
	CancelBooking(ctx context.Context, userID string, bookingID int64) error
	CancelByClass(ctx context.Context, userID string, classID int64) error
	ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error)
	ListAll(ctx context.Context) ([]AdminBooking, error)
	Delete(ctx context.Context, adminID string, ids []int64) (int64, error)
}

// Mailer is the part of the email service bookings need.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to, name, className string, when time.Time) error
}

type service struct {
	repo    Repository
	classes class.Repository
	mailer  Mailer
	audit   audit.Recorder
	strict  bool
}

// NewService wires the booking flow. With strict set, the final insert is
// guarded by a row lock on the class so concurrent bookings cannot overfill
// it; without it the capacity check is advisory, as it always was.
func NewService(repo Repository, classes class.Repository, mailer Mailer, recorder audit.Recorder, strict bool) Service {
	return &service{
		repo:    repo,
		classes: classes,
		mailer:  mailer,
		audit:   recorder,
		strict:  strict,
	}
}

func (s *service) BookClass(ctx context.Context, userID string, classID int64) (*Booking, error) {
	if userID == "" {
		metrics.RecordBooking(OutcomeRejected)
		return nil, apperrors.NewAuthenticationError("must be logged in")
	}

	c, err := s.classes.GetByID(ctx, classID)
	if errors.Is(err, class.ErrClassNotFound) {
		metrics.RecordBooking(OutcomeRejected)
		return nil, apperrors.NewNotFoundError("class not found")
	}
	if err != nil {
		metrics.RecordBooking(OutcomeError)
		return nil, apperrors.NewRemoteStoreError("failed to load class", err)
	}

	booked, err := s.repo.UserHasBooking(ctx, userID, classID)
	if err != nil {
		metrics.RecordBooking(OutcomeError)
		return nil, apperrors.NewRemoteStoreError("failed to check bookings", err)
	}
	if booked {
		metrics.RecordBooking(OutcomeAlreadyBooked)
		return nil, apperrors.NewConflictError("already booked")
	}

	count, err := s.classes.CountBookings(ctx, classID)
	if err != nil {
		metrics.RecordBooking(OutcomeError)
		return nil, apperrors.NewRemoteStoreError("failed to count bookings", err)
	}
	if count >= c.MaxCapacity {
		metrics.RecordBooking(OutcomeFull)
		return nil, apperrors.NewConflictError("class is fully booked")
	}

	var b *Booking
	if s.strict {
		b, err = s.repo.CreateWithinCapacity(ctx, userID, classID)
	} else {
		b, err = s.repo.Create(ctx, userID, classID)
	}
	switch {
	case errors.Is(err, ErrClassFull):
		metrics.RecordBooking(OutcomeFull)
		return nil, apperrors.NewConflictError("class is fully booked")
	case errors.Is(err, sql.ErrNoRows):
		metrics.RecordBooking(OutcomeRejected)
		return nil, apperrors.NewNotFoundError("class not found")
	case err != nil:
		metrics.RecordBooking(OutcomeError)
		return nil, apperrors.NewRemoteStoreError("failed to create booking", err)
	}

	metrics.RecordBooking(OutcomeBooked)
	s.confirm(ctx, userID, c)

	return b, nil
}

func (s *service) confirm(ctx context.Context, userID string, c *class.Class) {
	if s.mailer == nil {
		return
	}
	apperrors.BestEffort(ctx, "booking_email", func(ctx context.Context) error {
		member, err := s.repo.GetMember(ctx, userID)
		if err != nil {
			return err
		}
		return s.mailer.SendBookingConfirmation(ctx, member.Email, member.FullName, c.Name, c.Schedule)
	})
}

func (s *service) CancelBooking(ctx context.Context, userID string, bookingID int64) error {
	if userID == "" {
		return apperrors.NewAuthenticationError("must be logged in")
	}

	removed, err := s.repo.DeleteForUser(ctx, userID, bookingID)
	return s.cancelled(removed, err)
}

func (s *service) CancelByClass(ctx context.Context, userID string, classID int64) error {
	if userID == "" {
		return apperrors.NewAuthenticationError("must be logged in")
	}

	removed, err := s.repo.DeleteByClassForUser(ctx, userID, classID)
	return s.cancelled(removed, err)
}

func (s *service) cancelled(removed int64, err error) error {
	if err != nil {
		return apperrors.NewRemoteStoreError("failed to cancel booking", err)
	}
	if removed == 0 {
		return apperrors.NewNotFoundError("booking not found")
	}
	metrics.RecordBookingCancellation()
	return nil
}

func (s *service) ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error) {
	if userID == "" {
		return nil, apperrors.NewAuthenticationError("must be logged in")
	}

	bookings, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *service) ListAll(ctx context.Context) ([]AdminBooking, error) {
	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteStoreError("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *service) Delete(ctx context.Context, adminID string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("id", "Missing booking id")
	}

	removed, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, apperrors.NewRemoteStoreError("failed to delete bookings", err)
	}

	for _, id := range ids {
		s.audit.Record(ctx, audit.NewEntry(adminID, audit.ActionDelete, "bookings", id, nil))
	}
	return removed, nil
}

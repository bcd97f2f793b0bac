package booking

import (
	"context"
	"time"

	"gym24/internal/class"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) UserHasBooking(ctx context.Context, userID string, classID int64) (bool, error) {
	args := m.Called(ctx, userID, classID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, userID string, classID int64) (*Booking, error) {
	args := m.Called(ctx, userID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) CreateWithinCapacity(ctx context.Context, userID string, classID int64) (*Booking, error) {
	args := m.Called(ctx, userID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) DeleteForUser(ctx context.Context, userID string, bookingID int64) (int64, error) {
	args := m.Called(ctx, userID, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DeleteByClassForUser(ctx context.Context, userID string, classID int64) (int64, error) {
	args := m.Called(ctx, userID, classID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListForUser(ctx context.Context, userID string) ([]UserBooking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]UserBooking), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]AdminBooking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]AdminBooking), args.Error(1)
}

func (m *MockRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetMember(ctx context.Context, userID string) (*Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

// MockClassRepository covers the class lookups a booking needs.
type MockClassRepository struct {
	class.Repository
	mock.Mock
}

func (m *MockClassRepository) GetByID(ctx context.Context, id int64) (*class.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassRepository) CountBookings(ctx context.Context, classID int64) (int, error) {
	args := m.Called(ctx, classID)
	return args.Int(0), args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendBookingConfirmation(ctx context.Context, to, name, className string, when time.Time) error {
	return m.Called(ctx, to, name, className, when).Error(0)
}

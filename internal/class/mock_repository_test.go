package class

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) List(ctx context.Context) ([]Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Class), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c Class) (*Class, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, fields goqu.Record) (*Class, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) CountBookings(ctx context.Context, classID int64) (int, error) {
	args := m.Called(ctx, classID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ReviewStats(ctx context.Context, classID int64) (ReviewStats, error) {
	args := m.Called(ctx, classID)
	return args.Get(0).(ReviewStats), args.Error(1)
}

func (m *MockRepository) ListApprovedReviews(ctx context.Context, classID int64) ([]ClassReview, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassReview), args.Error(1)
}

type MockService struct{ mock.Mock }

func (m *MockService) ListWithOccupancy(ctx context.Context) ([]ClassView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassView), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id int64) (*ClassDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassDetail), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, adminID string, req CreateClassRequest) (*Class, error) {
	args := m.Called(ctx, adminID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, adminID string, id int64, fields map[string]interface{}) (*Class, error) {
	args := m.Called(ctx, adminID, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, adminID string, id int64) error {
	return m.Called(ctx, adminID, id).Error(0)
}

package adminsession

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) CreateSession(ctx context.Context, adminID, token string, expiresAt time.Time) error {
	return m.Called(ctx, adminID, token, expiresAt).Error(0)
}

func (m *MockRepository) GetSession(ctx context.Context, token string) (*Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockRepository) DeleteSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetAdminByID(ctx context.Context, id string) (*AdminAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AdminAccount), args.Error(1)
}

func (m *MockRepository) GetAdminByEmail(ctx context.Context, email string) (*AdminAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AdminAccount), args.Error(1)
}

func (m *MockRepository) ValidateSessionProcedure(ctx context.Context, token string) (*Admin, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

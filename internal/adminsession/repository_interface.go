package adminsession

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrAdminNotFound   = errors.New("admin not found")
)

type Repository interface {
	CreateSession(ctx context.Context, adminID, token string, expiresAt time.Time) error
	GetSession(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
	GetAdminByID(ctx context.Context, id string) (*AdminAccount, error)
	GetAdminByEmail(ctx context.Context, email string) (*AdminAccount, error)
	ValidateSessionProcedure(ctx context.Context, token string) (*Admin, error)
}

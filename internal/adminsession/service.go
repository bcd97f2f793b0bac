package adminsession

import (
	"context"
	"errors"
	"time"

	"gym24/internal/apperrors"
	"gym24/internal/auth"
	"gym24/internal/logger"
	"gym24/internal/metrics"

	"github.com/google/uuid"
)

const DefaultSessionTTL = 24 * time.Hour

var ErrSessionCreation = errors.New("session creation failed")

// Authority issues, validates and revokes admin session tokens.
type Authority struct {
	repo     Repository
	primary  SessionLookup
	fallback SessionLookup
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
}

type Option func(*Authority)

func WithClock(now func() time.Time) Option {
	return func(a *Authority) { a.now = now }
}

func WithTokenGenerator(fn func() string) Option {
	return func(a *Authority) { a.newToken = fn }
}

func WithLookups(primary, fallback SessionLookup) Option {
	return func(a *Authority) {
		a.primary = primary
		a.fallback = fallback
	}
}

func NewAuthority(repo Repository, ttl time.Duration, opts ...Option) *Authority {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	a := &Authority{
		repo:     repo,
		ttl:      ttl,
		now:      time.Now,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.primary == nil {
		a.primary = NewProcedureLookup(repo)
	}
	if a.fallback == nil {
		a.fallback = NewTableLookup(repo, a.now)
	}

	return a
}

func (a *Authority) TTL() time.Duration {
	return a.ttl
}

func (a *Authority) CreateSession(ctx context.Context, adminID string) (string, error) {
	token := a.newToken()
	expiresAt := a.now().Add(a.ttl)

	if err := a.repo.CreateSession(ctx, adminID, token, expiresAt); err != nil {
		logger.WithError(err).Error("failed to persist admin session", "admin_id", adminID)
		return "", apperrors.NewInternalError(ErrSessionCreation.Error(), ErrSessionCreation)
	}

	metrics.RecordAdminSession("created")
	return token, nil
}

// ValidateSession returns the admin owning token. A missing, unknown or
// expired token, or one that belongs to an inactive account, yields
// (nil, nil). An error means the fallback lookup could not reach the store;
// the caller still has no admin.
func (a *Authority) ValidateSession(ctx context.Context, token string) (*Admin, error) {
	if token == "" {
		return nil, nil
	}

	admin, err := a.primary.Lookup(ctx, token)
	if err == nil && admin != nil {
		metrics.RecordSessionLookup(a.primary.Name(), "valid")
		return admin, nil
	}
	if err != nil {
		logger.WithError(err).Debug("primary session lookup failed, using fallback")
	}

	admin, err = a.fallback.Lookup(ctx, token)
	if err != nil {
		metrics.RecordSessionLookup(a.fallback.Name(), "error")
		return nil, apperrors.NewRemoteStoreError("failed to validate admin session", err)
	}
	if admin == nil {
		metrics.RecordSessionLookup(a.fallback.Name(), "invalid")
		return nil, nil
	}

	metrics.RecordSessionLookup(a.fallback.Name(), "valid")
	return admin, nil
}

// DeleteSession removes token. Unknown tokens are not an error.
func (a *Authority) DeleteSession(ctx context.Context, token string) error {
	if err := a.repo.DeleteSession(ctx, token); err != nil {
		return apperrors.NewRemoteStoreError("failed to delete session", err)
	}
	metrics.RecordAdminSession("revoked")
	return nil
}

func (a *Authority) CleanExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := a.repo.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, apperrors.NewRemoteStoreError("failed to clean expired sessions", err)
	}
	if removed > 0 {
		metrics.AdminSessionsTotal.WithLabelValues("cleaned").Add(float64(removed))
	}
	return removed, nil
}

// Login checks credentials and opens a session for an active admin.
func (a *Authority) Login(ctx context.Context, email, password string) (*Admin, string, error) {
	account, err := a.repo.GetAdminByEmail(ctx, email)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, "", apperrors.NewAuthenticationError("invalid credentials")
	}
	if err != nil {
		return nil, "", apperrors.NewRemoteStoreError("failed to load admin", err)
	}

	if !account.IsActive || !auth.VerifyPassword(password, account.PasswordHash) {
		metrics.RecordAdminSession("rejected")
		return nil, "", apperrors.NewAuthenticationError("invalid credentials")
	}

	token, err := a.CreateSession(ctx, account.ID)
	if err != nil {
		return nil, "", err
	}

	return account.Admin(), token, nil
}

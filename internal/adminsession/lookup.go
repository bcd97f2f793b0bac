package adminsession

import (
	"context"
	"errors"
	"time"
)

// SessionLookup resolves a token to the admin owning it. Every
// implementation returns a non-nil Admin only when the session row exists,
// has not expired and belongs to an active account.
type SessionLookup interface {
	Name() string
	Lookup(ctx context.Context, token string) (*Admin, error)
}

// ProcedureLookup answers with a single round trip to validate_admin_session.
type ProcedureLookup struct {
	repo Repository
}

func NewProcedureLookup(repo Repository) *ProcedureLookup {
	return &ProcedureLookup{repo: repo}
}

func (l *ProcedureLookup) Name() string { return "primary" }

func (l *ProcedureLookup) Lookup(ctx context.Context, token string) (*Admin, error) {
	return l.repo.ValidateSessionProcedure(ctx, token)
}

// TableLookup reads the session row and then the account row. The two reads
// are not atomic with each other.
type TableLookup struct {
	repo Repository
	now  func() time.Time
}

func NewTableLookup(repo Repository, now func() time.Time) *TableLookup {
	if now == nil {
		now = time.Now
	}
	return &TableLookup{repo: repo, now: now}
}

func (l *TableLookup) Name() string { return "fallback" }

func (l *TableLookup) Lookup(ctx context.Context, token string) (*Admin, error) {
	session, err := l.repo.GetSession(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !l.now().Before(session.ExpiresAt) {
		return nil, nil
	}

	account, err := l.repo.GetAdminByID(ctx, session.AdminID)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, nil
	}

	return account.Admin(), nil
}

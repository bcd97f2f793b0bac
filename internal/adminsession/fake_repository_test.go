package adminsession

import (
	"context"
	"sync"
	"time"
)

// memoryRepository is a map-backed Repository used to exercise session
// lifecycles end to end. procedureErr simulates a database without the
// validate_admin_session function.
type memoryRepository struct {
	mu           sync.Mutex
	now          func() time.Time
	sessions     map[string]Session
	admins       map[string]*AdminAccount
	procedureErr error
	createErr    error
}

func newMemoryRepository(now func() time.Time) *memoryRepository {
	return &memoryRepository{
		now:      now,
		sessions: make(map[string]Session),
		admins:   make(map[string]*AdminAccount),
	}
}

func (r *memoryRepository) addAdmin(a *AdminAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[a.ID] = a
}

func (r *memoryRepository) setActive(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[id].IsActive = active
}

func (r *memoryRepository) CreateSession(ctx context.Context, adminID, token string, expiresAt time.Time) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = Session{Token: token, AdminID: adminID, ExpiresAt: expiresAt}
	return nil
}

func (r *memoryRepository) GetSession(ctx context.Context, token string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (r *memoryRepository) DeleteSession(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r *memoryRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for token, s := range r.sessions {
		if s.ExpiresAt.Before(r.now()) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func (r *memoryRepository) GetAdminByID(ctx context.Context, id string) (*AdminAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, ErrAdminNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memoryRepository) GetAdminByEmail(ctx context.Context, email string) (*AdminAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (r *memoryRepository) ValidateSessionProcedure(ctx context.Context, token string) (*Admin, error) {
	if r.procedureErr != nil {
		return nil, r.procedureErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || !s.ExpiresAt.After(r.now()) {
		return nil, nil
	}
	a, ok := r.admins[s.AdminID]
	if !ok || !a.IsActive {
		return nil, nil
	}
	return a.Admin(), nil
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

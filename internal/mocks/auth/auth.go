package auth

// Package auth contains simple hand-written test doubles for session and cache ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	apperrors "github.com/simbrella/cms-console/internal/errors"
	"github.com/simbrella/cms-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore    = (*MemorySessionStore)(nil)
	_ ports.SessionSupplier = StaticSupplier{}
	_ ports.ViewInvalidator = (*RecordingInvalidator)(nil)
)

// MemorySessionStore is an in-memory session store for unit tests.
// Expired sessions read as not found, matching the Redis store.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
	now      func() time.Time
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
		now:      time.Now,
	}
}

// WithClock overrides the store's notion of now.
func (m *MemorySessionStore) WithClock(now func() time.Time) *MemorySessionStore {
	m.now = now
	return m
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok || id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	if sess.Expired(m.now()) {
		delete(m.sessions, id)
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by the memory store when a session is absent or expired.
var ErrNotFound error = apperrors.NotFound("session not found")

// StaticSupplier returns a fixed session (nil = anonymous) or error.
type StaticSupplier struct {
	Session *domainauth.Session
	Err     error
}

func (s StaticSupplier) Current(context.Context) (*domainauth.Session, error) {
	return s.Session, s.Err
}

// RecordingInvalidator remembers every invalidated path in call order.
type RecordingInvalidator struct {
	mu    sync.Mutex
	paths []string
	Err   error
}

func (r *RecordingInvalidator) Invalidate(_ context.Context, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
	return r.Err
}

// Paths returns the invalidated paths so far.
func (r *RecordingInvalidator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

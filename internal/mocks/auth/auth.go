// Package auth provides hand-written session fakes for tests.
package auth

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	"github.com/target/schoolsite-ui/internal/ports"
)

var _ ports.SessionStore = (*MemorySessionStore)(nil)

// ErrNotFound is returned when no session exists for an ID.
var ErrNotFound = domainauth.ErrSessionNotFound

// MemorySessionStore is an in-memory session store for unit tests.
// It is safe for concurrent use.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// SaveErr, GetErr and DeleteErr force failures when set.
	SaveErr   error
	GetErr    error
	DeleteErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if m.GetErr != nil {
		return domainauth.Session{}, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok || id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Put stores a session directly, bypassing SaveErr.
func (m *MemorySessionStore) Put(sess domainauth.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	"github.com/target/schoolsite-ui/internal/ports"
)

const defaultSessionRetention = 7 * 24 * time.Hour

// slideEvery is the fraction of the retention window that must pass before an
// active session's expiry is pushed forward again.
const slideEvery = 24

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Store     ports.SessionStore
	Retention time.Duration    // how long a record is kept in storage; not a credential lifetime
	Now       func() time.Time // optional clock for tests
	Logger    *slog.Logger
}

// SessionService is the session store used by the rest of the front end.
// The current session is the one whose ID travels in the request context
// (see domainauth.WithSessionID). It implements ports.CredentialSource so the
// authenticated API client can read and clear it.
type SessionService struct {
	store     ports.SessionStore
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

var _ ports.CredentialSource = (*SessionService)(nil)

// NewSessionService constructs a SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	retention := opts.Retention
	if retention <= 0 {
		retention = defaultSessionRetention
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:     opts.Store,
		retention: retention,
		now:       now,
		logger:    logger.With("component", "sessions"),
	}
}

// Load returns the session stored under id. A missing or lapsed record yields
// domainauth.ErrSessionNotFound. Retention slides: a live record whose expiry
// is older than retention/slideEvery gets a fresh window and Extended is set.
func (s *SessionService) Load(ctx context.Context, id string) (*domainauth.Session, error) {
	if id == "" {
		return nil, domainauth.ErrSessionNotFound
	}

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if !sess.ExpiresAt.IsZero() && s.now().After(sess.ExpiresAt) {
		if delErr := s.store.Delete(ctx, id); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete lapsed session", "error", delErr)
		}
		return nil, domainauth.ErrSessionNotFound
	}

	s.slide(ctx, &sess)
	return &sess, nil
}

func (s *SessionService) slide(ctx context.Context, sess *domainauth.Session) {
	sess.Extended = false
	if sess.ExpiresAt.IsZero() {
		return
	}
	now := s.now()
	if sess.ExpiresAt.Sub(now) >= s.retention-s.retention/slideEvery {
		return
	}
	prev := sess.ExpiresAt
	sess.ExpiresAt = now.Add(s.retention)
	if err := s.store.Save(ctx, *sess); err != nil {
		sess.ExpiresAt = prev
		s.logger.WarnContext(ctx, "failed to extend session", "error", err)
		return
	}
	sess.Extended = true
}

// Current returns the session for the request context, if any.
func (s *SessionService) Current(ctx context.Context) (*domainauth.Session, bool) {
	id, ok := domainauth.SessionIDFrom(ctx)
	if !ok {
		return nil, false
	}
	sess, err := s.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, domainauth.ErrSessionNotFound) {
			s.logger.WarnContext(ctx, "session lookup failed", "error", err)
		}
		return nil, false
	}
	return sess, true
}

// Get returns the credential of the current session. It is false when there is
// no session or the session holds no credential.
func (s *SessionService) Get(ctx context.Context) (domainauth.Credential, bool) {
	sess, ok := s.Current(ctx)
	if !ok || !sess.Authenticated() {
		return "", false
	}
	return sess.Credential, true
}

// Set stores cred and profile in a brand new session and returns it. Any
// session named by the request context is removed so IDs never survive a sign-in.
func (s *SessionService) Set(ctx context.Context, cred domainauth.Credential, profile *domainauth.Profile) (domainauth.Session, error) {
	if !cred.Present() {
		return domainauth.Session{}, errors.New("credential is required")
	}

	now := s.now()
	sess := domainauth.Session{
		ID:         uuid.New().String(),
		Credential: cred,
		Profile:    profile,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.retention),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}

	if old, ok := domainauth.SessionIDFrom(ctx); ok && old != sess.ID {
		if err := s.store.Delete(ctx, old); err != nil {
			s.logger.WarnContext(ctx, "failed to delete replaced session", "error", err)
		}
	}
	return sess, nil
}

// Clear removes the current session. Clearing when nothing is stored succeeds.
func (s *SessionService) Clear(ctx context.Context) error {
	id, ok := domainauth.SessionIDFrom(ctx)
	if !ok {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Credential implements ports.CredentialSource.
func (s *SessionService) Credential(ctx context.Context) (string, bool) {
	cred, ok := s.Get(ctx)
	return string(cred), ok
}

// MarkRead records that the current admin opened a message.
func (s *SessionService) MarkRead(ctx context.Context, messageID string) error {
	return s.update(ctx, func(sess *domainauth.Session) bool { return sess.MarkRead(messageID) })
}

// ForgetRead drops a message from the current session's read-state.
func (s *SessionService) ForgetRead(ctx context.Context, messageID string) error {
	return s.update(ctx, func(sess *domainauth.Session) bool { return sess.ForgetRead(messageID) })
}

func (s *SessionService) update(ctx context.Context, fn func(*domainauth.Session) bool) error {
	sess, ok := s.Current(ctx)
	if !ok || !fn(sess) {
		return nil
	}
	if err := s.store.Save(ctx, *sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

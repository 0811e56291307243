package ports

// Package ports defines interfaces (hexagonal ports) between services and adapters.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
)

// SessionStore persists and retrieves admin sessions.
// Get returns domainauth.ErrSessionNotFound when no record exists.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

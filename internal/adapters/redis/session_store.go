// Package redis provides Redis-based adapters for the school site front end.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
)

// DefaultSessionPrefix namespaces session keys when no prefix is configured.
const DefaultSessionPrefix = "session:"

const (
	scanCount      = 100
	deleteBatchCap = 500
)

// ErrNotFound is returned when a session is not found.
var ErrNotFound = domainauth.ErrSessionNotFound

// SessionStore is a Redis-based admin session store.
// Records expire through Redis TTL derived from Session.ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, DefaultSessionPrefix)
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &SessionStore{
		client: client,
		prefix: prefix,
	}
}

// Save writes the session, replacing any previous record with the same ID.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session retention has already elapsed")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

// Get loads a session by ID.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// Ping reports whether Redis is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SessionSummary describes a stored session without exposing its credential.
type SessionSummary struct {
	ID        string
	Admin     string
	CreatedAt time.Time
	TTL       time.Duration
}

// List scans every stored session. Records that fail to decode are skipped.
func (s *SessionStore) List(ctx context.Context) ([]SessionSummary, error) {
	var out []SessionSummary
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("redis get %s: %w", key, err)
		}
		var sess domainauth.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		ttl, err := s.client.TTL(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis ttl %s: %w", key, err)
		}
		out = append(out, SessionSummary{
			ID:        sess.ID,
			Admin:     sess.Profile.DisplayName(),
			CreatedAt: sess.CreatedAt,
			TTL:       ttl,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return out, nil
}

// Purge deletes every stored session, signing all administrators out.
// With dryRun set it only counts the keys it would delete.
func (s *SessionStore) Purge(ctx context.Context, dryRun bool) (int64, error) {
	var (
		deleted int64
		batch   = make([]string, 0, deleteBatchCap)
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if dryRun {
			deleted += int64(len(batch))
		} else {
			n, err := s.client.Del(ctx, batch...).Result()
			if err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			deleted += n
		}
		batch = batch[:0]
		return nil
	}

	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == deleteBatchCap {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("redis scan: %w", err)
	}
	if err := flush(); err != nil {
		return deleted, err
	}
	return deleted, nil
}

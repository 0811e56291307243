package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/target/schoolsite-ui/internal/adapters/backend"
	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	fakes "github.com/target/schoolsite-ui/internal/mocks/auth"
	"github.com/target/schoolsite-ui/internal/testutil"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	be       *testutil.Backend
	store    *fakes.MemorySessionStore
	sessions *SessionService
	public   *backend.Client
	admin    *backend.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	be := testutil.NewBackend(t)
	store := fakes.NewMemorySessionStore()
	sessions := NewSessionService(SessionServiceOptions{
		Store:     store,
		Retention: time.Hour,
		Now:       func() time.Time { return testNow },
	})

	cfg := backend.Config{BaseURL: be.URL(), MessagePath: "message || error"}
	public, err := backend.NewPublic(cfg)
	require.NoError(t, err)
	admin, err := backend.NewAuthenticated(cfg, sessions)
	require.NoError(t, err)

	return &testEnv{be: be, store: store, sessions: sessions, public: public, admin: admin}
}

// signedIn stores a session holding token and returns a context bound to it.
func (e *testEnv) signedIn(t *testing.T, token string) context.Context {
	t.Helper()
	sess := domainauth.Session{
		ID:         "sess-" + token,
		Credential: domainauth.Credential(token),
		CreatedAt:  testNow,
		ExpiresAt:  testNow.Add(time.Hour),
	}
	e.store.Put(sess)
	return domainauth.WithSessionID(context.Background(), sess.ID)
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

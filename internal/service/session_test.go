package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	fakes "github.com/target/schoolsite-ui/internal/mocks/auth"
)

func newSessionService(store *fakes.MemorySessionStore, now time.Time) *SessionService {
	return NewSessionService(SessionServiceOptions{
		Store:     store,
		Retention: 2 * time.Hour,
		Now:       func() time.Time { return now },
	})
}

func TestSessionService_GetWithoutSession(t *testing.T) {
	svc := newSessionService(fakes.NewMemorySessionStore(), testNow)

	cred, ok := svc.Get(context.Background())
	assert.False(t, ok)
	assert.Empty(t, cred)

	ctx := domainauth.WithSessionID(context.Background(), "missing")
	_, ok = svc.Get(ctx)
	assert.False(t, ok)
}

func TestSessionService_SetGetClear(t *testing.T) {
	store := fakes.NewMemorySessionStore()
	svc := newSessionService(store, testNow)

	sess, err := svc.Set(context.Background(), "tok-1", &domainauth.Profile{Name: "Ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, testNow.Add(2*time.Hour), sess.ExpiresAt)
	assert.Equal(t, "Ada", sess.Profile.DisplayName())

	ctx := domainauth.WithSessionID(context.Background(), sess.ID)
	cred, ok := svc.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, domainauth.Credential("tok-1"), cred)

	raw, ok := svc.Credential(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", raw)

	require.NoError(t, svc.Clear(ctx))
	_, ok = svc.Get(ctx)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())

	// Clearing again is a no-op.
	require.NoError(t, svc.Clear(ctx))
}

func TestSessionService_SetRejectsEmptyCredential(t *testing.T) {
	svc := newSessionService(fakes.NewMemorySessionStore(), testNow)
	_, err := svc.Set(context.Background(), "  ", nil)
	assert.Error(t, err)
}

func TestSessionService_SetReplacesPreviousSession(t *testing.T) {
	store := fakes.NewMemorySessionStore()
	svc := newSessionService(store, testNow)

	first, err := svc.Set(context.Background(), "old", nil)
	require.NoError(t, err)

	ctx := domainauth.WithSessionID(context.Background(), first.ID)
	second, err := svc.Set(ctx, "new", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, store.Len())
	_, err = svc.Load(context.Background(), first.ID)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestSessionService_LoadDropsLapsedRecord(t *testing.T) {
	store := fakes.NewMemorySessionStore()
	store.Put(domainauth.Session{ID: "s1", Credential: "tok", ExpiresAt: testNow.Add(-time.Minute)})
	svc := newSessionService(store, testNow)

	_, err := svc.Load(context.Background(), "s1")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestSessionService_LoadStoreFailure(t *testing.T) {
	store := fakes.NewMemorySessionStore()
	store.GetErr = errors.New("redis down")
	svc := newSessionService(store, testNow)

	_, err := svc.Load(context.Background(), "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainauth.ErrSessionNotFound)

	_, ok := svc.Get(domainauth.WithSessionID(context.Background(), "s1"))
	assert.False(t, ok)
}

func TestSessionService_ReadState(t *testing.T) {
	store := fakes.NewMemorySessionStore()
	store.Put(domainauth.Session{ID: "s1", Credential: "tok", ExpiresAt: testNow.Add(time.Hour)})
	svc := newSessionService(store, testNow)
	ctx := domainauth.WithSessionID(context.Background(), "s1")

	require.NoError(t, svc.MarkRead(ctx, "m1"))
	require.NoError(t, svc.MarkRead(ctx, "m1"))
	sess, ok := svc.Current(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"m1"}, sess.ReadMessages)

	require.NoError(t, svc.ForgetRead(ctx, "m1"))
	sess, _ = svc.Current(ctx)
	assert.False(t, sess.HasRead("m1"))

	// No session bound: nothing to update.
	assert.NoError(t, svc.MarkRead(context.Background(), "m2"))
}

func TestSessionService_LoadSlidesRetention(t *testing.T) {
	store := fakes.NewMemorySessionStore()
	store.Put(domainauth.Session{ID: "old", Credential: "tok", ExpiresAt: testNow.Add(time.Hour)})
	store.Put(domainauth.Session{ID: "fresh", Credential: "tok", ExpiresAt: testNow.Add(2 * time.Hour)})
	svc := newSessionService(store, testNow)

	sess, err := svc.Load(context.Background(), "old")
	require.NoError(t, err)
	assert.True(t, sess.Extended)
	assert.Equal(t, testNow.Add(2*time.Hour), sess.ExpiresAt)

	stored, err := store.Get(context.Background(), "old")
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(2*time.Hour), stored.ExpiresAt)
	assert.False(t, stored.Extended)

	sess, err = svc.Load(context.Background(), "fresh")
	require.NoError(t, err)
	assert.False(t, sess.Extended, "a record inside the slide window is left alone")
}

func TestSessionService_LoadKeepsSessionWhenExtendFails(t *testing.T) {
	store := fakes.NewMemorySessionStore()
	store.Put(domainauth.Session{ID: "s1", Credential: "tok", ExpiresAt: testNow.Add(time.Hour)})
	store.SaveErr = errors.New("redis down")
	svc := newSessionService(store, testNow)

	sess, err := svc.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, sess.Extended)
	assert.Equal(t, testNow.Add(time.Hour), sess.ExpiresAt)
}

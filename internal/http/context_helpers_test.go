package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
)

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetSessionFromContext(ctx))
	assert.Equal(t, ctx, SetSessionInContext(ctx, nil))

	sess := &domainauth.Session{ID: "s-1", Credential: "tok"}
	ctx = SetSessionInContext(ctx, sess)

	got, ok := GetUserSessionFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, sess, got)

	id, ok := domainauth.SessionIDFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "s-1", id)
}

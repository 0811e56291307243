package main

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "github.com/target/schoolsite-ui/internal/adapters/redis"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() {
		os.Stdout = oldStdout
	}()

	os.Stdout = w
	require.NoError(t, fn())
	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return string(output)
}

func TestRenderSessions(t *testing.T) {
	created := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	out := captureStdout(t, func() error {
		return renderSessions([]redisadapter.SessionSummary{
			{ID: "0123456789abcdef", Admin: "principal@example.edu", CreatedAt: created.Add(time.Hour), TTL: 90 * time.Minute},
			{ID: "short", CreatedAt: created, TTL: -1 * time.Second},
		})
	})

	assert.Contains(t, out, "SESSION")
	assert.Contains(t, out, "01234567…")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "principal@example.edu")
	assert.Contains(t, out, "no expiry")
	assert.Contains(t, out, "Total sessions: 2")
	assert.Less(t, strings.Index(out, "short"), strings.Index(out, "01234567"), "oldest session first")
}

func TestRenderSessions_Empty(t *testing.T) {
	out := captureStdout(t, func() error { return renderSessions(nil) })
	assert.Equal(t, "(no sessions found)\n", out)
}

func TestParseClearFlags(t *testing.T) {
	opts, err := parseClearFlags([]string{"--dry-run"})
	require.NoError(t, err)
	assert.True(t, opts.DryRun)
	assert.False(t, opts.Yes)

	_, err = parseClearFlags([]string{"--bogus"})
	assert.Error(t, err)

	assert.NoError(t, confirmAction(clearOptions{Yes: true}, "delete"))
}

func TestRenderTTL(t *testing.T) {
	assert.Equal(t, "key missing", renderTTL(-2*time.Second))
	assert.Equal(t, "1m30s", renderTTL(90*time.Second+200*time.Millisecond))
}


package backend

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/schoolsite-ui/internal/domain/api"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/testutil"
)

// memoryCredentials is an in-memory CredentialSource.
type memoryCredentials struct {
	mu     sync.Mutex
	token  string
	clears int
}

func (m *memoryCredentials) Credential(context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memoryCredentials) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.clears++
	return nil
}

func newTestClients(t *testing.T, creds *memoryCredentials) (*testutil.Backend, *Client, *Client) {
	t.Helper()
	be := testutil.NewBackend(t)
	cfg := Config{BaseURL: be.URL(), UserAgent: "schoolsite-test"}

	public, err := NewPublic(cfg)
	require.NoError(t, err)
	authed, err := NewAuthenticated(cfg, creds)
	require.NoError(t, err)
	return be, public, authed
}

func TestClient_AttachesBearerOnlyWhenAuthenticated(t *testing.T) {
	creds := &memoryCredentials{token: "tok-1"}
	be, public, authed := newTestClients(t, creds)
	be.JSON("GET /admin/pages", http.StatusOK, []any{})
	be.JSON("GET /news", http.StatusOK, []any{})

	_, err := authed.Send(context.Background(), api.Request{Method: http.MethodGet, Path: "/admin/pages"})
	require.NoError(t, err)
	_, err = public.Send(context.Background(), api.Request{Method: http.MethodGet, Path: "/news"})
	require.NoError(t, err)

	adminReq, ok := be.Last("GET /admin/pages")
	require.True(t, ok)
	assert.Equal(t, "Bearer tok-1", adminReq.Authorization)

	publicReq, ok := be.Last("GET /news")
	require.True(t, ok)
	assert.Empty(t, publicReq.Authorization)

	assert.True(t, authed.Authenticated())
	assert.False(t, public.Authenticated())
}

func TestClient_NoCredentialSendsNoHeader(t *testing.T) {
	be, _, authed := newTestClients(t, &memoryCredentials{})
	be.JSON("GET /admin/news", http.StatusOK, []any{})

	_, err := authed.Send(context.Background(), api.Request{Path: "/admin/news"})
	require.NoError(t, err)

	req, _ := be.Last("GET /admin/news")
	assert.Empty(t, req.Authorization)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	creds := &memoryCredentials{token: "stale"}
	be, _, authed := newTestClients(t, creds)
	be.JSON("GET /admin/messages", http.StatusUnauthorized, map[string]string{"message": "jwt expired"})

	_, err := authed.Send(context.Background(), api.Request{Path: "/admin/messages"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, 1, creds.clears)
	_, ok := creds.Credential(context.Background())
	assert.False(t, ok, "credential must be gone after a 401")
}

func TestClient_PublicUnauthorizedNeverClears(t *testing.T) {
	creds := &memoryCredentials{token: "admin-token"}
	be, public, _ := newTestClients(t, creds)
	be.JSON("GET /gallery", http.StatusUnauthorized, map[string]string{"message": "nope"})

	_, err := public.Send(context.Background(), api.Request{Path: "/gallery"})

	require.Error(t, err)
	assert.False(t, apperrors.IsUnauthorized(err))
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, 0, creds.clears)
	assert.Equal(t, "nope", apperrors.UserMessage(err, ""))
}

func TestClient_MapsFailureStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		code    apperrors.ErrorCode
		message string
	}{
		{name: "backend message", status: http.StatusBadRequest, body: map[string]string{"message": "Title is required"}, code: apperrors.ErrCodeValidation, message: "Title is required"},
		{name: "error field", status: http.StatusInternalServerError, body: map[string]string{"error": "db down"}, code: apperrors.ErrCodeUpstream, message: "db down"},
		{name: "no body", status: http.StatusBadGateway, code: apperrors.ErrCodeUpstream, message: apperrors.DefaultFailureMessage},
		{name: "not found", status: http.StatusNotFound, body: map[string]string{"message": "Page not found"}, code: apperrors.ErrCodeNotFound, message: "Page not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be, public, _ := newTestClients(t, &memoryCredentials{})
			be.JSON("GET /pages/about", tt.status, tt.body)

			_, err := public.Send(context.Background(), api.Request{Path: "/pages/about"})
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.GetCode(err))
			assert.Equal(t, tt.message, apperrors.UserMessage(err, ""))
		})
	}
}

func TestClient_JSONBody(t *testing.T) {
	be, _, authed := newTestClients(t, &memoryCredentials{token: "t"})
	be.JSON("POST /admin/news", http.StatusCreated, map[string]string{"_id": "n1"})

	resp, err := authed.Send(context.Background(), api.Request{
		Method: http.MethodPost,
		Path:   "/admin/news",
		Body:   map[string]any{"title": "Sports day", "content": "<p>Fun</p>", "isPublished": true},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)

	req, _ := be.Last("POST /admin/news")
	assert.Equal(t, "application/json", req.ContentType)
	assert.False(t, req.IsMultipart())
	assert.Equal(t, "Sports day", req.JSON(t)["title"])
	assert.Equal(t, true, req.JSON(t)["isPublished"])

	var created struct {
		ID string `json:"_id"`
	}
	require.NoError(t, resp.Decode(&created))
	assert.Equal(t, "n1", created.ID)
}

func TestClient_MultipartBody(t *testing.T) {
	be, _, authed := newTestClients(t, &memoryCredentials{token: "t"})
	be.JSON("POST /admin/gallery", http.StatusCreated, nil)

	body := &api.Multipart{File: &api.Attachment{
		Field:       "image",
		FileName:    "sports \"day\".png",
		ContentType: "image/png",
		Data:        []byte("\x89PNG"),
	}}
	body.Add("title", "Sports day")

	_, err := authed.Send(context.Background(), api.Request{Method: http.MethodPost, Path: "/admin/gallery", Body: body})
	require.NoError(t, err)

	req, _ := be.Last("POST /admin/gallery")
	require.True(t, req.IsMultipart())
	parts := req.Multipart(t)
	assert.Equal(t, "Sports day", parts["title"].Value)
	assert.Equal(t, `sports "day".png`, parts["image"].FileName)
	assert.Equal(t, "image/png", parts["image"].ContentType)
	assert.Equal(t, []byte("\x89PNG"), parts["image"].Data)
}

func TestClient_EscapedPathAndQuery(t *testing.T) {
	be, public, _ := newTestClients(t, &memoryCredentials{})
	be.JSON("GET /pages/a b", http.StatusOK, map[string]string{})

	_, err := public.Send(context.Background(), api.Request{
		Path:  "/pages/a%20b",
		Query: map[string][]string{"preview": {"1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, be.Count("GET /pages/a b"))
}

func TestClient_TransportFailure(t *testing.T) {
	public, err := NewPublic(Config{BaseURL: "http://127.0.0.1:1/api", Timeout: time.Second})
	require.NoError(t, err)

	_, err = public.Send(context.Background(), api.Request{Path: "/news"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestClient_CanceledContext(t *testing.T) {
	be, public, _ := newTestClients(t, &memoryCredentials{})
	be.JSON("GET /news", http.StatusOK, []any{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := public.Send(ctx, api.Request{Path: "/news"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewPublic(Config{BaseURL: "localhost:5000"})
	assert.Error(t, err)

	_, err = NewAuthenticated(Config{BaseURL: "http://localhost:5000/api"}, nil)
	assert.EqualError(t, err, "credential source is required")

	_, err = NewPublic(Config{BaseURL: "http://localhost:5000/api", MessagePath: "message ||"})
	assert.Error(t, err)
}

// Package backend is the HTTP client for the school content API.
//
// Two flavours share one transport configuration: the public client never
// sends a credential, and the authenticated client attaches the current
// session's bearer token and ends that session when the API answers 401.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"

	"github.com/target/schoolsite-ui/internal/domain/api"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/ports"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMessagePath = "message || error"
	maxResponseBytes   = 10 << 20
)

// Config holds the settings shared by the public and authenticated clients.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	UserAgent   string
	MessagePath string       // JMESPath locating the human-readable message in error bodies
	HTTPClient  *http.Client // optional; Timeout is ignored when set
	Logger      *slog.Logger
}

// Client sends requests to the content API.
type Client struct {
	base        *url.URL
	http        *http.Client
	userAgent   string
	messagePath string
	creds       ports.CredentialSource
	logger      *slog.Logger
}

var _ ports.APIClient = (*Client)(nil)

// NewPublic creates a client for unauthenticated reads and the contact form.
// It never attaches a credential and a 401 never affects any session.
func NewPublic(cfg Config) (*Client, error) {
	return newClient(cfg, nil)
}

// NewAuthenticated creates a client for admin calls. The credential comes from
// creds on every request; a 401 clears it and yields errors.ErrUnauthorized.
func NewAuthenticated(cfg Config, creds ports.CredentialSource) (*Client, error) {
	if creds == nil {
		return nil, errors.New("credential source is required")
	}
	return newClient(cfg, creds)
}

func newClient(cfg Config, creds ports.CredentialSource) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base URL %q must be http or https", cfg.BaseURL)
	}

	messagePath := strings.TrimSpace(cfg.MessagePath)
	if messagePath == "" {
		messagePath = defaultMessagePath
	}
	if _, err := jmespath.Compile(messagePath); err != nil {
		return nil, fmt.Errorf("compile message path %q: %w", messagePath, err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:        base,
		http:        hc,
		userAgent:   cfg.UserAgent,
		messagePath: messagePath,
		creds:       creds,
		logger:      logger.With("component", "backend_client", "authenticated", creds != nil),
	}, nil
}

// Authenticated reports whether this client attaches session credentials.
func (c *Client) Authenticated() bool { return c.creds != nil }

// Send dispatches req and returns the response for any 2xx status.
// Other statuses and transport failures are returned as *errors.AppError.
func (c *Client) Send(ctx context.Context, req api.Request) (*api.Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.creds != nil {
		if cred, ok := c.creds.Credential(ctx); ok {
			(&oauth2.Token{AccessToken: cred, TokenType: "Bearer"}).SetAuthHeader(httpReq)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "backend request failed",
			"method", req.Method, "path", req.Path, "error", err)
		return nil, apperrors.MapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.MapTransportError(fmt.Errorf("read backend response: %w", err))
	}

	c.logger.DebugContext(ctx, "backend request",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &api.Response{Status: resp.StatusCode, Body: body}, nil
	}

	return nil, c.failure(ctx, resp.StatusCode, body)
}

func (c *Client) failure(ctx context.Context, status int, body []byte) error {
	message := c.extractMessage(body)

	if status != http.StatusUnauthorized {
		return apperrors.MapStatus(status, message)
	}

	if c.creds == nil {
		// A public call rejected as unauthorized is an ordinary failure.
		return apperrors.Upstream(status, nonEmpty(message, apperrors.DefaultFailureMessage))
	}

	if err := c.creds.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "failed to clear session after unauthorized response", "error", err)
	}
	return apperrors.ErrUnauthorized
}

func (c *Client) extractMessage(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	v, err := jmespath.Search(c.messagePath, data)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func (c *Client) newRequest(ctx context.Context, req api.Request) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	target := c.resolve(req.Path, req.Query)

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not prepare the request.")
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not prepare the request.")
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	return httpReq, nil
}

// resolve joins an already escaped resource path onto the base URL.
func (c *Client) resolve(path string, query url.Values) string {
	u := *c.base
	escaped := strings.TrimRight(c.base.EscapedPath(), "/") + "/" + strings.TrimLeft(path, "/")
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		u.Path = unescaped
		u.RawPath = escaped
	} else {
		u.Path = escaped
		u.RawPath = ""
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

package httpx

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/target/schoolsite-ui/internal/adapters/backend"
	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	"github.com/target/schoolsite-ui/internal/http/richtext"
	fakes "github.com/target/schoolsite-ui/internal/mocks/auth"
	"github.com/target/schoolsite-ui/internal/service"
	"github.com/target/schoolsite-ui/internal/testutil"
)

const (
	testCSRFToken  = "test-csrf-token"
	testAdminToken = "admin-token"
	testSiteName   = "Test Academy"
)

// SkipIfNoTemplates checks if templates are available and skips the test if not.
func SkipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}
}

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		RichText:   richtext.New(richtext.PolicyTrusted),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// uiHarness runs the full router against a fake content API and an in-memory session store.
type uiHarness struct {
	t       *testing.T
	api     *testutil.Backend
	store   *fakes.MemorySessionStore
	handler http.Handler
}

func newUIHarness(t *testing.T) *uiHarness {
	t.Helper()
	SkipIfNoTemplates(t)

	logger := discardLogger()
	api := testutil.NewBackend(t)
	store := fakes.NewMemorySessionStore()
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store, Logger: logger})

	cfg := backend.Config{BaseURL: api.URL(), Timeout: 5 * time.Second, Logger: logger}
	public, err := backend.NewPublic(cfg)
	require.NoError(t, err)
	admin, err := backend.NewAuthenticated(cfg, sessions)
	require.NoError(t, err)

	auth, err := service.NewAuthService(service.AuthServiceOptions{Public: public, Admin: admin, Sessions: sessions})
	require.NoError(t, err)

	pages := service.NewPageRepository(admin)
	news := service.NewNewsRepository(admin)
	gallery := service.NewGalleryRepository(admin)
	messages := service.NewMessageRepository(admin)

	handler := NewRouter(RouterServices{
		Pages:      pages,
		News:       news,
		Gallery:    gallery,
		Messages:   messages,
		SchoolInfo: service.NewSchoolInfoRepository(admin),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Pages: pages, News: news, Gallery: gallery, Messages: messages,
		}),
		Account:  auth,
		Sessions: sessions,
		Public:   service.NewPublicService(service.PublicServiceOptions{Client: public}),
		Site: SiteDefaults{
			Name:        testSiteName,
			Description: "A modern starter school.",
			Keywords:    "school, education",
		},
		RichText:   richtext.New(richtext.PolicyTrusted),
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     logger,
	})

	return &uiHarness{t: t, api: api, store: store, handler: handler}
}

// signIn stores an authenticated session and returns its ID.
func (h *uiHarness) signIn() string {
	h.t.Helper()
	return h.signInAs("sess-" + strings.ReplaceAll(h.t.Name(), "/", "-"))
}

// signInAs stores an authenticated session under id.
func (h *uiHarness) signInAs(id string) string {
	h.t.Helper()
	h.store.Put(domainauth.Session{
		ID:         id,
		Credential: testAdminToken,
		Profile:    &domainauth.Profile{Name: "Principal", Email: "principal@example.edu"},
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(time.Hour),
	})
	return id
}

type reqOption func(*http.Request)

func withSession(id string) reqOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id}) }
}

func asHTMX() reqOption {
	return func(r *http.Request) { r.Header.Set("Hx-Request", "true") }
}

func withCookie(c *http.Cookie) reqOption {
	return func(r *http.Request) { r.AddCookie(c) }
}

func (h *uiHarness) do(r *http.Request, opts ...reqOption) *httptest.ResponseRecorder {
	for _, opt := range opts {
		opt(r)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, r)
	return rec
}

func (h *uiHarness) get(target string, opts ...reqOption) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, target, nil), opts...)
}

// post submits an urlencoded form carrying a valid CSRF token.
func (h *uiHarness) post(target string, form url.Values, opts ...reqOption) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, testCSRFToken)
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	return h.do(r, opts...)
}

type uploadFile struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// postMultipart submits a multipart form with an optional file and a valid CSRF token.
func (h *uiHarness) postMultipart(target string, fields map[string]string, file *uploadFile, opts ...reqOption) *httptest.ResponseRecorder {
	h.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(h.t, mw.WriteField(DefaultCSRFCookieName, testCSRFToken))
	for k, v := range fields {
		require.NoError(h.t, mw.WriteField(k, v))
	}
	if file != nil {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="` + file.Field + `"; filename="` + file.Name + `"`}
		header["Content-Type"] = []string{file.ContentType}
		part, err := mw.CreatePart(header)
		require.NoError(h.t, err)
		_, err = part.Write(file.Data)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	return h.do(r, opts...)
}

// responseCookie returns the last named Set-Cookie from rec, or nil. Browsers
// apply Set-Cookie headers in order, so the last one wins.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

// followFlash replays the flash cookie set by rec onto the next request.
func followFlash(rec *httptest.ResponseRecorder) reqOption {
	c := responseCookie(rec, FlashCookieName)
	return func(r *http.Request) {
		if c != nil {
			r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// newFormRequest builds an urlencoded POST without any CSRF token.
func newFormRequest(target string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

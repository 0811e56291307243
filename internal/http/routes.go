package httpx

import (
	"bytes"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"

	schoolsite "github.com/target/schoolsite-ui"
	"github.com/target/schoolsite-ui/internal/http/richtext"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Pages      PagesService
	News       NewsService
	Gallery    GalleryService
	Messages   MessagesService
	SchoolInfo SchoolInfoService
	Dashboard  DashboardService
	Account    AccountService
	Sessions   SessionStateService
	Public     PublicSiteService
	Health     Pinger // optional; /healthz reports ok without it

	Site          SiteDefaults
	RichText      *richtext.Renderer
	ExcerptLength int
	CookieDomain  string

	// TemplateFS overrides the embedded (or, in dev, on-disk) templates. Used by tests.
	TemplateFS fs.FS
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router for the school site.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	health := &HealthHandlers{Pinger: services.Health, Logger: services.Logger}
	mux.Handle("GET /healthz", http.HandlerFunc(health.Healthz))
	mux.Handle("HEAD /healthz", http.HandlerFunc(health.Healthz))

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticWithFallback(services.IsDev))

	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		cfg := uiRouteConfig{Sessions: services.Sessions, CookieDomain: services.CookieDomain, Logger: services.Logger}
		registerUIRoutes(mux, uiHandlers, cfg)
	}

	return &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}
}

// templateFS picks the template source: an explicit override, the disk in dev
// mode, otherwise the embedded copy.
func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(schoolsite.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// setupUIHandlers creates UI handlers with the template renderer.
func setupUIHandlers(services RouterServices) *UIHandlers {
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS:    templateFS(services),
		RichText:      services.RichText,
		ExcerptLength: services.ExcerptLength,
		Logger:        services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:          tr,
		Pages:      services.Pages,
		News:       services.News,
		Gallery:    services.Gallery,
		Messages:   services.Messages,
		SchoolInfo: services.SchoolInfo,
		Dashboard:  services.Dashboard,
		Account:    services.Account,
		Sessions:   services.Sessions,
		Public:     services.Public,
		Site:       services.Site,
		Cookies:    cookieWriter{Domain: services.CookieDomain},
		IsDev:      services.IsDev,
		Logger:     services.Logger,
	}
}

// staticWithFallback serves /static/* assets.
// In dev mode (isDev=true), serves from disk.
// In production mode (isDev=false), serves from embedded FS.
func staticWithFallback(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}

	staticSub, err := fs.Sub(schoolsite.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		// Fallback to disk serving if embed fails
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// hashedFilePattern matches content-hashed filenames such as site.abc12345.css.
var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=300")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only unmatched routes reach the custom page; matched handlers write directly.
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound && !strings.HasPrefix(r.URL.Path, "/static/") && h.uiHandlers != nil {
		h.uiHandlers.NotFound(w, r)
		return
	}
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Sessions     SessionLoader
	CookieDomain string
	Logger       *slog.Logger
}

// publicWrap applies CSRF protection; every UI form carries the token.
func (cfg uiRouteConfig) publicWrap() func(http.Handler) http.Handler {
	return CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
}

// adminWrap chains the session guard in front of CSRF protection. Without a
// session store every admin route redirects to the login entry.
func (cfg uiRouteConfig) adminWrap() func(http.Handler) http.Handler {
	csrf := cfg.publicWrap()
	guard := RequireSession(GuardConfig{Sessions: cfg.Sessions, CookieDomain: cfg.CookieDomain, Logger: cfg.Logger})
	return func(h http.Handler) http.Handler {
		return guard(csrf(h))
	}
}

// registerUIRoutes delegates to per-area UI route registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerPublicRoutes(mux, h, cfg)
	registerLoginRoutes(mux, h, cfg)
	registerAdminRoutes(mux, h, cfg)
	registerAccountRoutes(mux, h, cfg)
}

// registerPublicRoutes wires the visitor-facing site.
func registerPublicRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.publicWrap()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Home)))
	mux.Handle("GET /news", wrap(http.HandlerFunc(h.NewsPage)))
	mux.Handle("GET /gallery", wrap(http.HandlerFunc(h.GalleryPage)))
	mux.Handle("GET /contact", wrap(http.HandlerFunc(h.ContactPage)))
	mux.Handle("POST /contact", wrap(http.HandlerFunc(h.SubmitContact)))
	mux.Handle("GET /pages/{slug}", wrap(http.HandlerFunc(h.CMSPage)))
}

// registerLoginRoutes wires the unguarded admin entry points.
func registerLoginRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.publicWrap()
	mux.Handle("GET /admin/login", wrap(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /admin/login", wrap(http.HandlerFunc(h.Login)))
	mux.Handle("GET /admin/forgot-password", wrap(http.HandlerFunc(h.ForgotPasswordPage)))
	mux.Handle("POST /admin/forgot-password", wrap(http.HandlerFunc(h.ForgotPassword)))
	mux.Handle("GET /admin/reset-password", wrap(http.HandlerFunc(h.ResetPasswordPage)))
	mux.Handle("POST /admin/reset-password", wrap(http.HandlerFunc(h.ResetPassword)))
}

// registerAdminRoutes wires the guarded content management pages.
func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.adminWrap()
	mux.Handle("GET /admin/{$}", wrap(http.HandlerFunc(h.AdminIndex)))
	mux.Handle("GET /admin/dashboard", wrap(http.HandlerFunc(h.DashboardPage)))

	mux.Handle("GET /admin/pages", wrap(http.HandlerFunc(h.PagesPage)))
	mux.Handle("POST /admin/pages", wrap(http.HandlerFunc(h.CreatePage)))
	mux.Handle("POST /admin/pages/{id}", wrap(http.HandlerFunc(h.UpdatePage)))

	mux.Handle("GET /admin/news", wrap(http.HandlerFunc(h.AdminNewsPage)))
	mux.Handle("POST /admin/news", wrap(http.HandlerFunc(h.CreateNews)))

	mux.Handle("GET /admin/gallery", wrap(http.HandlerFunc(h.AdminGalleryPage)))
	mux.Handle("POST /admin/gallery", wrap(http.HandlerFunc(h.UploadGalleryImage)))

	mux.Handle("GET /admin/messages", wrap(http.HandlerFunc(h.MessagesPage)))
	mux.Handle("GET /admin/messages/{id}", wrap(http.HandlerFunc(h.MessagePage)))

	mux.Handle("GET /admin/school-info", wrap(http.HandlerFunc(h.SchoolInfoPage)))
	mux.Handle("POST /admin/school-info", wrap(http.HandlerFunc(h.SaveSchoolInfo)))

	mux.Handle("GET /admin/{resource}/{id}/delete", wrap(http.HandlerFunc(h.ConfirmDelete)))
	mux.Handle("POST /admin/{resource}/{id}/delete", wrap(http.HandlerFunc(h.Delete)))

	// Unknown admin paths are still guarded before the not-found view.
	mux.Handle("/admin/", wrap(http.HandlerFunc(h.NotFound)))
}

// registerAccountRoutes wires the signed-in admin's account pages.
func registerAccountRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.adminWrap()
	mux.Handle("POST /admin/logout", wrap(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /admin/account/password", wrap(http.HandlerFunc(h.PasswordPage)))
	mux.Handle("POST /admin/account/password", wrap(http.HandlerFunc(h.ChangePassword)))
	mux.Handle("GET /admin/account/admins", wrap(http.HandlerFunc(h.AddAdminPage)))
	mux.Handle("POST /admin/account/admins", wrap(http.HandlerFunc(h.AddAdmin)))
}

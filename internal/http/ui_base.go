package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/http/ui/viewmodel"
	"github.com/target/schoolsite-ui/internal/service"
)

const (
	errMsgFixBelow   = "Please fix the errors below."
	errMsgLoadFailed = "Something went wrong while loading this page. Please try again."
	errMsgSaveFailed = "Something went wrong. Please try again."
)

// PagesService is a minimal interface for the CMS pages UI.
type PagesService interface {
	List(ctx context.Context) ([]content.Page, error)
	Get(ctx context.Context, idOrSlug string) (*content.Page, error)
	Create(ctx context.Context, in content.PageInput) error
	Update(ctx context.Context, id string, in content.PageInput) error
	Delete(ctx context.Context, id string) error
}

// NewsService is a minimal interface for the news UI.
type NewsService interface {
	List(ctx context.Context) ([]content.NewsItem, error)
	Create(ctx context.Context, in content.NewsInput) error
	Delete(ctx context.Context, id string) error
}

// GalleryService is a minimal interface for the gallery UI.
type GalleryService interface {
	List(ctx context.Context) ([]content.GalleryImage, error)
	Upload(ctx context.Context, in content.GalleryInput) error
	Delete(ctx context.Context, id string) error
}

// MessagesService is a minimal interface for the contact messages UI.
type MessagesService interface {
	List(ctx context.Context) ([]content.Message, error)
	Delete(ctx context.Context, id string) error
}

// SchoolInfoService is a minimal interface for the school profile UI.
type SchoolInfoService interface {
	Get(ctx context.Context) (*content.SchoolInfo, error)
	Upsert(ctx context.Context, in content.SchoolInfoInput) error
}

// DashboardService provides the admin overview counts.
type DashboardService interface {
	Stats(ctx context.Context) (*content.DashboardStats, error)
}

// AccountService covers sign-in and the admin account pages.
type AccountService interface {
	Login(ctx context.Context, in content.Credentials) (domainauth.Session, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in content.PasswordReset) error
	ChangePassword(ctx context.Context, in content.PasswordChange) error
	AddAdmin(ctx context.Context, in content.NewAdmin) error
}

// SessionStateService manages per-session UI state and resolves session cookies.
type SessionStateService interface {
	SessionLoader
	MarkRead(ctx context.Context, messageID string) error
	ForgetRead(ctx context.Context, messageID string) error
}

// PublicSiteService serves the visitor-facing pages.
type PublicSiteService interface {
	Home(ctx context.Context) (*service.HomeData, error)
	News(ctx context.Context, page int) (*service.NewsPage, error)
	Gallery(ctx context.Context) ([]content.GalleryImage, error)
	SchoolInfo(ctx context.Context) (*content.SchoolInfo, error)
	PageBySlug(ctx context.Context, slug string) (*content.Page, error)
	SubmitContact(ctx context.Context, msg content.ContactSubmission) error
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ PagesService        = (*service.PageRepository)(nil)
	_ NewsService         = (*service.NewsRepository)(nil)
	_ GalleryService      = (*service.GalleryRepository)(nil)
	_ MessagesService     = (*service.MessageRepository)(nil)
	_ SchoolInfoService   = (*service.SchoolInfoRepository)(nil)
	_ DashboardService    = (*service.DashboardService)(nil)
	_ AccountService      = (*service.AuthService)(nil)
	_ SessionStateService = (*service.SessionService)(nil)
	_ PublicSiteService   = (*service.PublicService)(nil)
)

// SiteDefaults are the SEO fallbacks used when the school profile leaves a field blank.
type SiteDefaults struct {
	Name        string
	Description string
	Keywords    string
}

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T          *TemplateRenderer
	Pages      PagesService
	News       NewsService
	Gallery    GalleryService
	Messages   MessagesService
	SchoolInfo SchoolInfoService
	Dashboard  DashboardService
	Account    AccountService
	Sessions   SessionStateService
	Public     PublicSiteService
	Site       SiteDefaults
	Cookies    cookieWriter
	IsDev      bool // Development mode flag for enhanced error reporting
	Logger     *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func (h *UIHandlers) buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		SiteName:    h.Site.Name,
		IsAdmin:     adminPage(meta.CurrentPage),
		SEO: viewmodel.SEO{
			Title:       meta.Title,
			Description: h.Site.Description,
			Keywords:    h.Site.Keywords,
		},
	}

	if session := GetSessionFromContext(r.Context()); session != nil && session.Authenticated() {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{}
		if p := session.Profile; p != nil {
			layout.User = &viewmodel.User{Name: p.DisplayName(), Email: p.Email, Role: p.Role}
		}
	}
	return layout
}

// basePageData constructs the common page data map with user context.
func (h *UIHandlers) basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := h.buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"SiteName":        layout.SiteName,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"SEO":             layout.SEO,
		"CSRFToken":       layout.CSRFToken,
		"Errors":          map[string]string{},
		"Values":          map[string]string{},
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// renderPage renders data as a full document, or as the content fragment for htmx.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderPageStatus(w, r, data, http.StatusOK)
}

func (h *UIHandlers) renderPageStatus(w http.ResponseWriter, r *http.Request, data map[string]any, status int) {
	if _, ok := data["Flash"]; !ok {
		if f := h.Cookies.takeFlash(w, r); f != nil {
			data["Flash"] = f
		}
	}

	if !WantsPartial(r) {
		if err := h.T.RenderFullStatus(w, data, status); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
	w.WriteHeader(status)

	title, _ := data["Title"].(string)
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if isAdmin, _ := data["IsAdmin"].(bool); isAdmin {
		pageTitle, _ := data["PageTitle"].(string)
		oob := `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + html.EscapeString(pageTitle) + `</h1>`
		if _, err := w.Write([]byte(oob)); err != nil {
			h.logger().Error("failed to write partial header title", "error", err)
			return
		}
	}

	if err := h.T.ExecuteContent(w, data); err != nil {
		h.logger().Error("partial content render failed", "error", err, "path", r.URL.Path)
	}
}

// markPageError flags a page-local error; the page still renders with what it has.
func markPageError(data map[string]any, message string) {
	data["Error"] = true
	if message == "" {
		message = errMsgLoadFailed
	}
	data["ErrorMessage"] = message
}

// sessionEnded handles the hard navigation after the backend rejected the session.
// The authenticated client has already cleared the stored session; the cookie is
// expired here and the browser sent to the login entry. Reports whether it did so.
func (h *UIHandlers) sessionEnded(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apperrors.IsUnauthorized(err) {
		return false
	}
	h.Cookies.clear(w, r, SessionCookieName)
	redirectToLogin(w, r)
	return true
}

// fetchFailed records a failed read on data. It returns true when the response was
// already written because the session ended.
func (h *UIHandlers) fetchFailed(w http.ResponseWriter, r *http.Request, data map[string]any, err error) bool {
	if h.sessionEnded(w, r, err) {
		return true
	}
	h.logger().WarnContext(r.Context(), "content fetch failed",
		"path", r.URL.Path, "error", err, "code", apperrors.GetCode(err))
	markPageError(data, apperrors.UserMessage(err, errMsgLoadFailed))
	return false
}

// mutationFailed records a failed write on data, keeping the submitted form for re-render.
// It returns true when the response was already written because the session ended.
func (h *UIHandlers) mutationFailed(w http.ResponseWriter, r *http.Request, data map[string]any, err error) bool {
	if h.sessionEnded(w, r, err) {
		return true
	}
	h.logger().WarnContext(r.Context(), "content update failed",
		"path", r.URL.Path, "method", r.Method, "error", err, "code", apperrors.GetCode(err))
	if field := apperrors.GetField(err); field != "" {
		if errs, ok := data["Errors"].(map[string]string); ok {
			errs[field] = apperrors.UserMessage(err, errMsgSaveFailed)
		}
	}
	data["FormError"] = apperrors.UserMessage(err, errMsgSaveFailed)
	return false
}

// succeeded finishes a successful mutation: flash notice, then POST/redirect/GET.
func (h *UIHandlers) succeeded(w http.ResponseWriter, r *http.Request, target, message string) {
	h.Cookies.setFlash(w, r, viewmodel.Flash{Kind: "success", Message: message})
	seeOther(w, r, target)
}

// applyForm copies a submitted form's values and errors onto page data for re-render.
func applyForm(data map[string]any, form *submittedForm) {
	data["Values"] = form.Values
	data["Errors"] = form.Errors
	if msg, ok := form.Errors["_form"]; ok {
		data["FormError"] = msg
	} else if !form.Valid() {
		data["FormError"] = errMsgFixBelow
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="template-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("htmx", IsHTMX(r)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
						panic(err)
					}
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionLoader resolves a session cookie value to a stored session.
type SessionLoader interface {
	Load(ctx context.Context, id string) (*domainauth.Session, error)
}

// GuardConfig configures RequireSession.
type GuardConfig struct {
	Sessions     SessionLoader
	CookieDomain string
	Logger       *slog.Logger
}

// RequireSession returns the admin route guard. It decides synchronously from the
// session store alone: without a session carrying a credential the browser is sent
// to the login entry and next never runs. Otherwise the session is bound to the
// request context and next is called unchanged. When the loader extended the
// session the cookie is reissued so its lifetime follows the stored record.
func RequireSession(cfg GuardConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cookies := cookieWriter{Domain: cfg.CookieDomain}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessionFromRequest(r, cfg.Sessions)
			switch {
			case err == nil && session.Authenticated():
				if session.Extended {
					cookies.setSession(w, r, *session)
				}
				next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
				return
			case err != nil && !errors.Is(err, domainauth.ErrSessionNotFound):
				logger.ErrorContext(r.Context(), "session lookup failed", "error", err, "path", r.URL.Path)
				http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
				return
			}

			if _, cookieErr := r.Cookie(SessionCookieName); cookieErr == nil {
				cookies.clear(w, r, SessionCookieName)
			}
			redirectToLogin(w, r)
		})
	}
}

// sessionFromRequest loads the session named by the session cookie.
func sessionFromRequest(r *http.Request, sessions SessionLoader) (*domainauth.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, domainauth.ErrSessionNotFound
	}
	return sessions.Load(r.Context(), cookie.Value)
}

// redirectToLogin navigates the browser to the login entry, replacing the current
// history entry. The current location is carried in "next" so sign-in can return to it.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	loginURL := PathLogin
	if back := redirectPathForRequest(r); back != "" && back != "/" && back != PathLogin {
		loginURL += "?next=" + url.QueryEscape(back)
	}

	if IsHTMX(r) {
		SetHXRedirect(w, loginURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
	}
	if r.Method == http.MethodGet {
		return safeRedirectPath(r.URL.RequestURI())
	}
	// Replaying a form post through a GET is never right; return to the page that posted it.
	return safeRedirectFromURL(r.Header.Get("Referer"))
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.ContainsAny(candidate, "\\") {
		return "/"
	}
	return candidate
}

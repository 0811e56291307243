package httpx

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	"github.com/target/schoolsite-ui/internal/http/ui/viewmodel"
)

const flashMaxAge = 60 // seconds; a flash survives exactly one redirect

// cookieWriter issues the cookies owned by the UI: the session pointer and flash notices.
type cookieWriter struct {
	Domain string
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || isForwardedHTTPS(r)
}

// setSession writes the session cookie based on the session's retention window.
func (c cookieWriter) setSession(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   max(int(time.Until(s.ExpiresAt).Seconds()), 1),
	})
}

// clear expires a cookie, mirroring the attributes used when it was set.
func (c cookieWriter) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash stores a one-shot notice shown by the next rendered page.
func (c cookieWriter) setFlash(w http.ResponseWriter, r *http.Request, f viewmodel.Flash) {
	if strings.TrimSpace(f.Message) == "" {
		return
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   flashMaxAge,
	})
}

// takeFlash returns the pending notice, if any, and expires it.
func (c cookieWriter) takeFlash(w http.ResponseWriter, r *http.Request) *viewmodel.Flash {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.clear(w, r, FlashCookieName)

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f viewmodel.Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}

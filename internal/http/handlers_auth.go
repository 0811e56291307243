package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/http/ui/viewmodel"
)

func loginMeta() PageMeta {
	return PageMeta{Title: "Admin Login", PageTitle: "Admin Login", CurrentPage: PageLogin}
}

// postLoginTarget returns the safe "next" destination, defaulting to the dashboard.
func postLoginTarget(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/admin/") || strings.HasPrefix(next, PathLogin) {
		return PathDashboard
	}
	if p := safeRedirectPath(next); p != "/" {
		return p
	}
	return PathDashboard
}

// LoginPage renders the sign-in form. A browser that already holds a valid
// session goes straight to the dashboard.
// GET /admin/login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session, err := sessionFromRequest(r, h.Sessions); err == nil && session.Authenticated() {
		http.Redirect(w, r, postLoginTarget(r.URL.Query().Get("next")), http.StatusSeeOther)
		return
	}

	data := h.basePageData(r, loginMeta())
	data["Next"] = r.URL.Query().Get("next")
	h.renderPage(w, r, data)
}

// Login exchanges credentials for a session and sets the session cookie.
// POST /admin/login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, loginMeta())
	form := readForm(r, content.LoginSchema)
	next := r.PostFormValue("next")
	data["Next"] = next

	if !form.Valid() {
		applyForm(data, form)
		h.renderPage(w, r, data)
		return
	}

	ctx := r.Context()
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		// Replacing the previous session drops it from the store.
		ctx = domainauth.WithSessionID(ctx, cookie.Value)
	}

	session, err := h.Account.Login(ctx, content.Credentials{
		Email:    form.Get("email"),
		Password: form.Secret("password"),
	})
	if err != nil {
		h.logger().InfoContext(ctx, "admin sign-in failed", "error", err, "code", apperrors.GetCode(err))
		applyForm(data, form)
		data["FormError"] = apperrors.UserMessage(err, "Login failed")
		h.renderPage(w, r, data)
		return
	}

	h.Cookies.setSession(w, r, session)
	seeOther(w, r, postLoginTarget(next))
}

// Logout ends the session and returns to the login entry.
// POST /admin/logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Account.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	h.Cookies.clear(w, r, SessionCookieName)
	h.Cookies.setFlash(w, r, viewmodel.Flash{Kind: "success", Message: "You have been signed out."})
	seeOther(w, r, PathLogin)
}

func forgotMeta() PageMeta {
	return PageMeta{Title: "Forgot Password", PageTitle: "Forgot Password", CurrentPage: PageForgot}
}

// ForgotPasswordPage renders the reset request form.
// GET /admin/forgot-password.
func (h *UIHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, h.basePageData(r, forgotMeta()))
}

// ForgotPassword asks the backend to email a reset link.
// POST /admin/forgot-password.
func (h *UIHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, forgotMeta())
	form := readForm(r, content.ForgotPasswordSchema)
	if !form.Valid() {
		applyForm(data, form)
		h.renderPage(w, r, data)
		return
	}

	if err := h.Account.ForgotPassword(r.Context(), form.Get("email")); err != nil {
		applyForm(data, form)
		if h.mutationFailed(w, r, data, err) {
			return
		}
		h.renderPage(w, r, data)
		return
	}

	data["Success"] = "If that email belongs to an administrator, a reset link is on its way."
	h.renderPage(w, r, data)
}

func resetMeta() PageMeta {
	return PageMeta{Title: "Reset Password", PageTitle: "Reset Password", CurrentPage: PageReset}
}

// ResetPasswordPage renders the new password form; the token comes from the emailed link.
// GET /admin/reset-password.
func (h *UIHandlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, resetMeta())
	data["Values"] = map[string]string{"token": r.URL.Query().Get("token")}
	h.renderPage(w, r, data)
}

// ResetPassword completes the reset and sends the admin to sign in.
// POST /admin/reset-password.
func (h *UIHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, resetMeta())
	form := readForm(r, content.ResetPasswordSchema)
	if !form.Valid() {
		applyForm(data, form)
		h.renderPage(w, r, data)
		return
	}

	err := h.Account.ResetPassword(r.Context(), content.PasswordReset{
		Token:       form.Get("token"),
		NewPassword: form.Secret("newPassword"),
	})
	if err != nil {
		applyForm(data, form)
		if h.mutationFailed(w, r, data, err) {
			return
		}
		h.renderPage(w, r, data)
		return
	}

	h.succeeded(w, r, PathLogin, "Your password was reset. Please sign in.")
}

func passwordMeta() PageMeta {
	return PageMeta{Title: "Change Password", PageTitle: "Change Password", CurrentPage: PagePassword}
}

// PasswordPage renders the change password form.
// GET /admin/account/password.
func (h *UIHandlers) PasswordPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, h.basePageData(r, passwordMeta()))
}

// ChangePassword changes the signed-in admin's password.
// POST /admin/account/password.
func (h *UIHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, passwordMeta())
	form := readForm(r, content.ChangePasswordSchema)
	if !form.Valid() {
		applyForm(data, form)
		h.renderPage(w, r, data)
		return
	}

	err := h.Account.ChangePassword(r.Context(), content.PasswordChange{
		CurrentPassword: form.Secret("currentPassword"),
		NewPassword:     form.Secret("newPassword"),
	})
	if err != nil {
		applyForm(data, form)
		if h.mutationFailed(w, r, data, err) {
			return
		}
		h.renderPage(w, r, data)
		return
	}

	h.succeeded(w, r, "/admin/account/password", "Password changed.")
}

func addAdminMeta() PageMeta {
	return PageMeta{Title: "Administrators", PageTitle: "Add Administrator", CurrentPage: PageAddAdmin}
}

// AddAdminPage renders the add administrator form.
// GET /admin/account/admins.
func (h *UIHandlers) AddAdminPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, h.basePageData(r, addAdminMeta()))
}

// AddAdmin creates another administrator account.
// POST /admin/account/admins.
func (h *UIHandlers) AddAdmin(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, addAdminMeta())
	form := readForm(r, content.AddAdminSchema)
	if !form.Valid() {
		applyForm(data, form)
		h.renderPage(w, r, data)
		return
	}

	err := h.Account.AddAdmin(r.Context(), content.NewAdmin{
		Name:     form.Get("name"),
		Email:    form.Get("email"),
		Password: form.Secret("password"),
	})
	if err != nil {
		applyForm(data, form)
		if h.mutationFailed(w, r, data, err) {
			return
		}
		h.renderPage(w, r, data)
		return
	}

	h.succeeded(w, r, "/admin/account/admins", "Administrator added.")
}

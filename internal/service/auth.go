package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/target/schoolsite-ui/internal/domain/api"
	domainauth "github.com/target/schoolsite-ui/internal/domain/auth"
	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/ports"
)

const (
	loginPath          = "/admin/login"
	forgotPasswordPath = "/admin/forgot-password"
	resetPasswordPath  = "/admin/reset-password"
	changePasswordPath = "/admin/change-password"
	addAdminPath       = "/admin/add"

	defaultTokenPath   = "token || data.token || accessToken"
	defaultProfilePath = "admin || user || data.admin"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Public      ports.APIClient // sign-in and password reset run without a credential
	Admin       ports.APIClient
	Sessions    *SessionService
	TokenPath   string // JMESPath locating the bearer token in the login response
	ProfilePath string // JMESPath locating the admin profile object in the login response
	Evaluator   JMESPathEvaluator
}

// AuthService orchestrates sign-in, sign-out and account management against the backend.
type AuthService struct {
	public      ports.APIClient
	admin       ports.APIClient
	sessions    *SessionService
	tokenPath   string
	profilePath string
	eval        JMESPathEvaluator
}

// NewAuthService constructs a new AuthService. Malformed JMESPath expressions are rejected.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Public == nil || opts.Admin == nil {
		return nil, errors.New("public and admin API clients are required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("session service is required")
	}

	eval := opts.Evaluator
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}

	tokenPath := strings.TrimSpace(opts.TokenPath)
	if tokenPath == "" {
		tokenPath = defaultTokenPath
	}
	profilePath := strings.TrimSpace(opts.ProfilePath)
	if profilePath == "" {
		profilePath = defaultProfilePath
	}
	for _, expr := range []string{tokenPath, profilePath} {
		if err := eval.Validate(expr); err != nil {
			return nil, fmt.Errorf("invalid JMESPath %q: %w", expr, err)
		}
	}

	return &AuthService{
		public:      opts.Public,
		admin:       opts.Admin,
		sessions:    opts.Sessions,
		tokenPath:   tokenPath,
		profilePath: profilePath,
		eval:        eval,
	}, nil
}

// Login exchanges credentials for a bearer token and stores it in a new session.
// A rejected sign-in surfaces the backend's message and leaves sessions untouched.
func (s *AuthService) Login(ctx context.Context, in content.Credentials) (domainauth.Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return domainauth.Session{}, apperrors.Validation("Email and password are required.")
	}

	resp, err := s.public.Send(ctx, api.Request{Method: http.MethodPost, Path: loginPath, Body: in})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("login: %w", err)
	}

	data, err := decodeAny(resp.Body)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "The sign-in response could not be read.")
	}

	token := extractString(s.eval, s.tokenPath, data)
	if token == "" {
		return domainauth.Session{}, apperrors.Upstream(resp.Status, "The sign-in response did not include a token.")
	}

	profile := s.profileFrom(data, token)
	if profile.Email == "" {
		profile.Email = in.Email
	}

	sess, err := s.sessions.Set(ctx, domainauth.Credential(token), profile)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("login: %w", err)
	}
	return sess, nil
}

// Logout ends the current session. It does not call the backend.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// ForgotPassword asks the backend to email a reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.ValidationField("email", "Email is required.")
	}
	body := map[string]string{"email": email}
	if err := send(ctx, s.public, http.MethodPost, forgotPasswordPath, body); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

// ResetPassword completes a reset with the emailed token.
func (s *AuthService) ResetPassword(ctx context.Context, in content.PasswordReset) error {
	if err := send(ctx, s.public, http.MethodPost, resetPasswordPath, in); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// ChangePassword changes the signed-in admin's password.
func (s *AuthService) ChangePassword(ctx context.Context, in content.PasswordChange) error {
	if err := send(ctx, s.admin, http.MethodPut, changePasswordPath, in); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// AddAdmin creates another administrator account.
func (s *AuthService) AddAdmin(ctx context.Context, in content.NewAdmin) error {
	if err := send(ctx, s.admin, http.MethodPost, addAdminPath, in); err != nil {
		return fmt.Errorf("add admin: %w", err)
	}
	return nil
}

// backendProfile accepts both "id" and "_id" keyed admin objects.
type backendProfile struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

func (p backendProfile) toDomain() *domainauth.Profile {
	id := p.ID
	if id == "" {
		id = p.MongoID
	}
	return &domainauth.Profile{ID: id, Name: p.Name, Email: p.Email, Role: p.Role}
}

// profileFrom reads the display profile from the login response, falling back
// to the token's unverified claims. The profile is never used for authorization.
func (s *AuthService) profileFrom(data any, token string) *domainauth.Profile {
	var bp backendProfile
	if extractObject(s.eval, s.profilePath, data, &bp) {
		return bp.toDomain()
	}
	return profileFromToken(token)
}

func profileFromToken(token string) *domainauth.Profile {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return &domainauth.Profile{}
	}

	str := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := claims[k].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}
	return &domainauth.Profile{
		ID:    str("id", "_id", "sub"),
		Name:  str("name"),
		Email: str("email"),
		Role:  str("role"),
	}
}

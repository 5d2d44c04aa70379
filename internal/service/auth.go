package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/simbrella/cms-console/internal/apiclient"
	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/domain/forms"
	apperrors "github.com/simbrella/cms-console/internal/errors"
	"github.com/simbrella/cms-console/internal/ports"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgSomethingWrong     = "Something went wrong"
)

// AuthSettings tunes session lifetimes and sign-in routing.
type AuthSettings struct {
	SuperRole   string
	SessionTTL  time.Duration
	RememberTTL time.Duration
	Routes      domainauth.RouteAccess
	Now         func() time.Time
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Actions  ActionDeps         // Required: API client for the exchange and account flows
	Sessions ports.SessionStore // Required: server-side session persistence
	Settings AuthSettings
}

// AuthService runs the credential sign-in lifecycle and the account self-service flows.
type AuthService struct {
	act      *actions
	sessions ports.SessionStore
	cfg      AuthSettings
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Sessions == nil {
		panic("service: AuthServiceOptions.Sessions is required")
	}
	cfg := opts.Settings
	if cfg.SuperRole == "" {
		cfg.SuperRole = domainauth.SuperRole
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.RememberTTL < cfg.SessionTTL {
		cfg.RememberTTL = cfg.SessionTTL
	}
	if cfg.Routes.LoginPath == "" {
		cfg.Routes = domainauth.DefaultRouteAccess()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &AuthService{act: newActions("auth", opts.Actions), sessions: opts.Sessions, cfg: cfg}
}

// Routes returns the sign-in route table.
func (s *AuthService) Routes() domainauth.RouteAccess { return s.cfg.Routes }

// Authorization builds the capability context for sess (nil is anonymous).
func (s *AuthService) Authorization(sess *domainauth.Session) domainauth.AuthorizationContext {
	return domainauth.NewAuthorizationContext(sess, s.cfg.SuperRole)
}

// Login validates the credentials, exchanges them for a token and persists a session.
//
// Any failure of the exchange itself (transport, non-2xx, success=false, missing token)
// is reported as invalid credentials so the response does not reveal which one occurred.
// Only a local failure to persist the session reports a generic error.
func (s *AuthService) Login(ctx context.Context, in forms.Input) Result[*domainauth.Session] {
	state, _ := domainauth.StateAnonymous.Next(domainauth.EventSubmit)

	var form forms.Login
	if err := s.act.bind(in, &form, "Invalid fields. Failed to log in."); err != nil {
		return invalid[*domainauth.Session](ctx, s.act, "login", err, "Invalid fields. Failed to log in.")
	}

	grant, err := s.exchange(ctx, form)
	if err != nil {
		state, _ = state.Next(domainauth.EventDenied)
		s.act.failed(ctx, "login", err)
		s.act.logger.InfoContext(ctx, "login denied", "email", maskEmail(form.Email), "state", state)
		return Fail[*domainauth.Session](msgInvalidCredentials)
	}

	now := s.cfg.Now()
	ttl := s.cfg.SessionTTL
	if form.Remember {
		ttl = s.cfg.RememberTTL
	}
	sess := domainauth.Session{
		ID:          uuid.NewString(),
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		User:        grant.User,
		Remember:    form.Remember,
		CreatedAt:   now,
		ExpiresAt:   domainauth.SessionExpiry(grant, now, ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.act.failed(ctx, "login", fmt.Errorf("save session: %w", err))
		return Fail[*domainauth.Session](msgSomethingWrong)
	}

	state, _ = state.Next(domainauth.EventGranted)
	s.act.succeeded("login")
	s.act.logger.InfoContext(ctx, "login granted", "user_id", sess.User.ID, "state", state)
	res := Ok(&sess, nil, "Signed in successfully")
	res.Redirect = s.cfg.Routes.HomePath
	return res
}

func (s *AuthService) exchange(ctx context.Context, form forms.Login) (domainauth.Grant, error) {
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   apiclient.JSONBody{Value: form},
		NoAuth: true,
	}
	env, err := s.act.call(ctx, req)
	if err != nil {
		return domainauth.Grant{}, err
	}
	decoded, err := apiclient.Decode[domainauth.Grant](env)
	if err != nil {
		return domainauth.Grant{}, apperrors.Malformed(err)
	}
	if decoded.Data.AccessToken == "" {
		return domainauth.Grant{}, apperrors.Auth("login response carried no access token")
	}
	return decoded.Data, nil
}

// SessionState is a stored session together with its lifecycle state.
type SessionState struct {
	Session *domainauth.Session
	State   domainauth.State
}

// Session resolves a session id. Missing ids are anonymous; sessions past their
// expiry are removed and reported as expired.
func (s *AuthService) Session(ctx context.Context, id string) (SessionState, error) {
	if id == "" {
		return SessionState{State: domainauth.StateAnonymous}, nil
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return SessionState{State: domainauth.StateAnonymous}, nil
		}
		return SessionState{}, fmt.Errorf("get session: %w", err)
	}
	if sess.Expired(s.cfg.Now()) {
		if err := s.sessions.Delete(ctx, id); err != nil {
			return SessionState{State: domainauth.StateExpired}, fmt.Errorf("delete expired session: %w", err)
		}
		return SessionState{State: domainauth.StateExpired}, nil
	}
	return SessionState{Session: &sess, State: domainauth.StateOf(&sess, false)}, nil
}

// Logout discards session id and points the caller at the sign-in page.
func (s *AuthService) Logout(ctx context.Context, id string) Result[any] {
	if id != "" {
		if err := s.sessions.Delete(ctx, id); err != nil && !apperrors.IsNotFound(err) {
			s.act.failed(ctx, "logout", fmt.Errorf("delete session: %w", err))
			return Fail[any](msgSomethingWrong)
		}
	}
	s.act.succeeded("logout")
	res := Ok[any](nil, nil, "Signed out successfully")
	res.Redirect = s.cfg.Routes.LoginPath
	return res
}

// Register creates an account. The API's own message is returned on success.
func (s *AuthService) Register(ctx context.Context, in forms.Input) Result[any] {
	const fallback = "Registration failed. Please try again."
	var form forms.Register
	if err := s.act.bind(in, &form, "Invalid fields. Failed to register."); err != nil {
		return invalid[any](ctx, s.act, "register", err, fallback)
	}
	req := apiclient.Request{Method: http.MethodPost, Path: "/auth/register", Body: apiclient.JSONBody{Value: form}, NoAuth: true}
	return acknowledge(ctx, s.act, "register", req, "", fallback)
}

// Profile returns the signed-in user's profile.
func (s *AuthService) Profile(ctx context.Context) Result[*domainauth.UserProfile] {
	req := apiclient.Request{Method: http.MethodGet, Path: "/auth/me"}
	return send[*domainauth.UserProfile](ctx, s.act, "profile", req, "", "Failed to fetch profile")
}

// UpdateProfile saves the profile form. When sessionID names a stored session, its
// user snapshot is replaced by the updated profile.
func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, in forms.Input) Result[*domainauth.UserProfile] {
	const fallback = "Failed to update profile"
	var form forms.Profile
	if err := s.act.bind(in, &form, "Invalid fields. Failed to update profile."); err != nil {
		return invalid[*domainauth.UserProfile](ctx, s.act, "update_profile", err, fallback)
	}
	req := apiclient.Request{Method: http.MethodPost, Path: "/auth/profile", Body: apiclient.JSONBody{Value: form}}
	res := send[*domainauth.UserProfile](ctx, s.act, "update_profile", req, "Profile updated successfully", fallback)
	if !res.Success {
		return res
	}
	s.act.invalidate(ctx, "/profile")
	if sessionID != "" && res.Data != nil {
		s.refreshUser(ctx, sessionID, *res.Data)
	}
	return res
}

// RefreshSession reloads the user snapshot of session id from /auth/me.
func (s *AuthService) RefreshSession(ctx context.Context, id string) Result[*domainauth.UserProfile] {
	res := s.Profile(ctx)
	if res.Success && res.Data != nil {
		s.refreshUser(ctx, id, *res.Data)
	}
	return res
}

func (s *AuthService) refreshUser(ctx context.Context, id string, user domainauth.UserProfile) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.act.logger.WarnContext(ctx, "load session for refresh failed", "error", err)
		}
		return
	}
	sess.User = user
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.act.logger.WarnContext(ctx, "refresh session user failed", "error", err)
	}
}

// ForgotPassword requests a reset OTP for an email address.
func (s *AuthService) ForgotPassword(ctx context.Context, in forms.Input) Result[any] {
	const fallback = "Failed to send reset password email"
	var form forms.ForgotPassword
	if err := s.act.bind(in, &form, "Invalid email address."); err != nil {
		return invalid[any](ctx, s.act, "forgot_password", err, fallback)
	}
	req := apiclient.Request{Method: http.MethodPost, Path: "/auth/forgot-password", Body: apiclient.JSONBody{Value: form}, NoAuth: true}
	return acknowledge(ctx, s.act, "forgot_password", req, "", fallback)
}

// ResetPassword sets a new password with an OTP and sends the caller to sign in.
func (s *AuthService) ResetPassword(ctx context.Context, in forms.Input) Result[any] {
	const fallback = "Failed to reset password"
	var form forms.ResetPassword
	if err := s.act.bind(in, &form, "Invalid fields. Failed to reset password."); err != nil {
		return invalid[any](ctx, s.act, "reset_password", err, fallback)
	}
	req := apiclient.Request{Method: http.MethodPost, Path: "/auth/reset-password", Body: apiclient.JSONBody{Value: form}, NoAuth: true}
	res := acknowledge(ctx, s.act, "reset_password", req, "", fallback)
	if res.Success {
		res.Redirect = s.cfg.Routes.LoginPath
	}
	return res
}

// VerifyEmail confirms email with an OTP and sends the caller to sign in.
func (s *AuthService) VerifyEmail(ctx context.Context, email string, in forms.Input) Result[any] {
	const fallback = "Failed to verify email"
	var form forms.VerifyEmail
	if err := s.act.bind(in, &form, "Invalid OTP."); err != nil {
		return invalid[any](ctx, s.act, "verify_email", err, fallback)
	}
	if email == "" {
		err := apperrors.ValidationField("email", "Email is required")
		return invalid[any](ctx, s.act, "verify_email", err, fallback)
	}
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/email/verify/" + url.PathEscape(email),
		Body:   apiclient.JSONBody{Value: form},
		NoAuth: true,
	}
	res := acknowledge(ctx, s.act, "verify_email", req, "", fallback)
	if res.Success {
		res.Redirect = s.cfg.Routes.LoginPath
	}
	return res
}

// ResendVerification asks the API to send a new verification OTP to the signed-in user.
func (s *AuthService) ResendVerification(ctx context.Context) Result[any] {
	req := apiclient.Request{Method: http.MethodPost, Path: "/auth/email/resend", Body: apiclient.JSONBody{Value: struct{}{}}}
	return acknowledge(ctx, s.act, "resend_verification", req, "", "Failed to resend verification email")
}

// ChangePassword rotates the signed-in user's password.
func (s *AuthService) ChangePassword(ctx context.Context, in forms.Input) Result[any] {
	const fallback = "Failed to change password"
	var form forms.ChangePassword
	if err := s.act.bind(in, &form, "Invalid fields. Failed to change password."); err != nil {
		return invalid[any](ctx, s.act, "change_password", err, fallback)
	}
	req := apiclient.Request{Method: http.MethodPost, Path: "/auth/change-password", Body: apiclient.JSONBody{Value: form}}
	return acknowledge(ctx, s.act, "change_password", req, "", fallback)
}

// maskEmail keeps the first character of the local part and the domain: "a***@example.com".
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "***"
	}
	r, _ := utf8.DecodeRuneInString(local)
	return string(r) + "***@" + domain
}

package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/service"
)

// AuthHandlers serves sign-in, sign-out and the account self-service flows.
type AuthHandlers struct {
	Svc          *service.AuthService
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login exchanges credentials for a session and sets the session cookie.
// The access token stays server-side; the response carries the user profile.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	res := h.Svc.Login(r.Context(), in)
	out := service.Result[*domainauth.UserProfile]{
		Success:  res.Success,
		Error:    res.Error,
		Message:  res.Message,
		Redirect: res.Redirect,
	}
	if res.Success && res.Data != nil {
		setCookie(w, r, cookieParams{
			Name:    SessionCookieName,
			Value:   res.Data.ID,
			Domain:  h.CookieDomain,
			Expires: res.Data.ExpiresAt,
		})
		out.Data = &res.Data.User
	}
	WriteResult(w, http.StatusOK, out)
}

// Logout drops the session and clears the cookie. It always clears the cookie, even
// when the store could not be reached.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	res := h.Svc.Logout(r.Context(), sessionID(r))
	if !res.Success {
		h.logger().WarnContext(r.Context(), "logout failed", "message", res.Message)
	}
	clearCookie(w, r, cookieParams{Name: SessionCookieName, Domain: h.CookieDomain})
	WriteResult(w, http.StatusOK, res)
}

type statusResponse struct {
	Authenticated bool                    `json:"authenticated"`
	User          *domainauth.UserProfile `json:"user,omitempty"`
	SuperAdmin    bool                    `json:"super_admin,omitempty"`
	Permissions   []string                `json:"permissions,omitempty"`
	ExpiresAt     *time.Time              `json:"expires_at,omitempty"`
}

// Status reports the caller's session and capabilities.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		WriteJSON(w, http.StatusOK, statusResponse{})
		return
	}
	authz := h.Svc.Authorization(sess)
	user, _ := authz.CurrentUser()
	expires := sess.ExpiresAt
	WriteJSON(w, http.StatusOK, statusResponse{
		Authenticated: true,
		User:          &user,
		SuperAdmin:    authz.IsSuperAdmin(),
		Permissions:   authz.Capabilities(),
		ExpiresAt:     &expires,
	})
}

// Route answers where a visitor of ?path= should be sent, given their session.
func (h *AuthHandlers) Route(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	signedIn := GetSessionFromContext(r.Context()) != nil
	WriteJSON(w, http.StatusOK, map[string]string{"redirect": h.Svc.Routes().Redirect(path, signedIn)})
}

func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	WriteResult(w, http.StatusOK, h.Svc.Profile(r.Context()))
}

func (h *AuthHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.UpdateProfile(r.Context(), sessionID(r), in))
}

func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	WriteResult(w, http.StatusOK, h.Svc.RefreshSession(r.Context(), sessionID(r)))
}

func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusCreated, h.Svc.Register(r.Context(), in))
}

func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.ForgotPassword(r.Context(), in))
}

func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.ResetPassword(r.Context(), in))
}

func (h *AuthHandlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.VerifyEmail(r.Context(), r.PathValue("email"), in))
}

func (h *AuthHandlers) ResendVerification(w http.ResponseWriter, r *http.Request) {
	WriteResult(w, http.StatusOK, h.Svc.ResendVerification(r.Context()))
}

func (h *AuthHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.ChangePassword(r.Context(), in))
}

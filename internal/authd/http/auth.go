package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/service"
	"github.com/doughlab/authd/internal/authd/store"
	"github.com/doughlab/authd/pkg/httpx"
	"github.com/doughlab/authd/pkg/slogx"
)

// RefreshTokenCookie is the cookie carrying the long-lived refresh token.
const RefreshTokenCookie = "refreshToken"

const (
	accessCookieMaxAge  = int(time.Hour / time.Second)
	refreshCookieMaxAge = int(365 * 24 * time.Hour / time.Second)
)

// AuthHandler owns the session endpoints: register, login, self, refresh and
// logout. Tokens travel in httpOnly cookies, response bodies only ever carry
// the numeric user id (or the profile, for self).
type AuthHandler struct {
	Sessions     *service.SessionService
	Users        *service.UserService
	CookieDomain string
}

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, pair, err := h.Sessions.Register(ctx, service.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusBadRequest, "email_taken", "an account with this email already exists")
			return
		}
		log.Error("registration failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "registration failed")
		return
	}

	h.setAuthCookies(w, pair)
	httpx.WriteJSON(w, http.StatusCreated, map[string]int64{"id": user.ID})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, pair, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrCredentialMismatch) {
			httpx.WriteError(w, http.StatusBadRequest, "credential_mismatch", "Email or password does not match")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "login failed")
		return
	}

	h.setAuthCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
}

// Self returns the authenticated user's profile, password hash excluded.
func (h *AuthHandler) Self(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, err := strconv.ParseInt(httpx.UserIDFromCtx(ctx), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "missing access token")
		return
	}

	user, err := h.Users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token still valid but the account is gone.
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "account no longer exists")
			return
		}
		log.Error("failed to load user", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "failed to load user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "missing refresh token")
		return
	}

	user, pair, err := h.Sessions.Refresh(ctx, cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefresh), errors.Is(err, service.ErrUnknownRefreshRecord):
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "refresh token is no longer valid")
		default:
			log.Error("refresh failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "refresh failed")
		}
		return
	}

	h.setAuthCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "missing refresh token")
		return
	}

	if err := h.Sessions.Logout(ctx, cookie.Value); err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "refresh token is no longer valid")
			return
		}
		log.Error("logout failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "logout failed")
		return
	}

	h.clearAuthCookies(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "User has been logged out"})
}

// setAuthCookies installs both session cookies. Strict same-site plus
// httpOnly keeps the tokens away from scripts and cross-site requests.
func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, pair domain.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.AccessTokenCookie,
		Value:    pair.AccessToken,
		Domain:   h.CookieDomain,
		Path:     "/",
		MaxAge:   accessCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Domain:   h.CookieDomain,
		Path:     "/",
		MaxAge:   refreshCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{httpx.AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Domain:   h.CookieDomain,
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

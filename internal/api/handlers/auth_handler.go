package handlers

import (
	"context"
	"net/http"

	"github.com/advocacy-resources/advo-sub001/internal/api/middleware"
	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
)

// Authenticator is the credential surface the auth handler needs.
type Authenticator interface {
	Register(ctx context.Context, email, password, name string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
	RequestPasswordChange(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, code, newPassword string) error
}

// SessionStore issues and revokes cookie sessions.
type SessionStore interface {
	Create(ctx context.Context, user *entities.User) (string, error)
	Destroy(ctx context.Context, cookieValue string) error
	CookieName() string
	TTLSeconds() int
}

// ProfileProvider loads and updates the caller's own account.
type ProfileProvider interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
	UpdateDemographics(ctx context.Context, userID string, d services.Demographics) (*entities.User, error)
}

// AuthHandler handles registration, login and profile HTTP requests
type AuthHandler struct {
	auth     Authenticator
	sessions SessionStore
	profiles ProfileProvider
	secure   bool
}

// NewAuthHandler creates a new auth handler. secure controls the cookie's
// Secure flag and should be true outside development.
func NewAuthHandler(auth Authenticator, sessions SessionStore, profiles ProfileProvider, secure bool) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		profiles: profiles,
		secure:   secure,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.issueSession(w, r, user); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.issueSession(w, r, user); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.sessions.CookieName()); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			respondWithAppError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessions.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.profiles.GetByID(r.Context(), principal.UserID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PATCH /api/auth/me
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var demographics services.Demographics
	if err := decodeJSON(r, &demographics); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.profiles.UpdateDemographics(r.Context(), principal.UserID, demographics)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// RequestPasswordChange handles POST /api/auth/password/request
func (h *AuthHandler) RequestPasswordChange(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.auth.RequestPasswordChange(r.Context(), principal.UserID); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "code sent"})
}

type changePasswordRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ChangePassword handles POST /api/auth/password/change
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), principal.UserID, req.Code, req.NewPassword); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, user *entities.User) error {
	cookieValue, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessions.CookieName(),
		Value:    cookieValue,
		Path:     "/",
		MaxAge:   h.sessions.TTLSeconds(),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

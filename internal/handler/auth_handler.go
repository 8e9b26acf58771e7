package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// AuthHandler handles registration, login and the current-user endpoints.
type AuthHandler struct {
	svc           service.AuthService
	sessionSecret []byte
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc service.AuthService, sessionSecret []byte, secureCookies bool) *AuthHandler {
	return &AuthHandler{svc: svc, sessionSecret: sessionSecret, secureCookies: secureCookies}
}

func (h *AuthHandler) setSession(w http.ResponseWriter, user *model.User) {
	token := auth.CreateSessionToken(user.ID, user.Role, h.sessionSecret)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"fullName" validate:"omitempty,max=128"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Country  string `json:"country" validate:"required,max=64"`
	City     string `json:"city" validate:"omitempty,max=64"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeValid(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Country:  req.Country,
		City:     req.City,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondErr(w, http.StatusConflict, "email_taken")
			return
		}
		if errors.Is(err, service.ErrUsernameTaken) {
			respondErr(w, http.StatusConflict, "username_taken")
			return
		}
		respondServiceErr(w, err, "register failed", "email", req.Email)
		return
	}

	h.setSession(w, user)
	respond(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeValid(w, r, &req) {
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondErr(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		respondServiceErr(w, err, "login failed")
		return
	}

	h.setSession(w, user)
	respond(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout, clearing the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/me (auth required).
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceErr(w, err, "get current user failed", "user_id", userID)
		return
	}
	respond(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,max=128"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	Country  *string `json:"country" validate:"omitempty,max=64"`
	City     *string `json:"city" validate:"omitempty,max=64"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

// UpdateProfile handles PATCH /api/me (auth required).
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateProfileRequest
	if !decodeValid(w, r, &req) {
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, model.UserPatch{
		FullName: req.FullName,
		Phone:    req.Phone,
		Country:  req.Country,
		City:     req.City,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondServiceErr(w, err, "profile update failed", "user_id", userID)
		return
	}
	respond(w, http.StatusOK, user)
}

// DeleteAccount handles DELETE /api/me (auth required). The session cookie is
// cleared along with the account.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.DeleteAccount(r.Context(), userID); err != nil {
		respondServiceErr(w, err, "account delete failed", "user_id", userID)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListUsers handles GET /api/admin/users (admin only).
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role, _ := auth.RoleFromContext(r.Context())
	if role != model.RoleAdmin {
		respondErr(w, http.StatusForbidden, "forbidden")
		return
	}
	limit, offset := pageParams(r)
	users, err := h.svc.ListUsers(r.Context(), limit, offset)
	if err != nil {
		respondServiceErr(w, err, "user list failed")
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	respond(w, http.StatusOK, users)
}

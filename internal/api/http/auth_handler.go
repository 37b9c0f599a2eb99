package http

import (
	"errors"
	"net/http"

	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/metrics"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/session"
)

type AuthHandler struct {
	svc      service.AuthService
	sessions *session.Manager
}

func NewAuthHandler(svc service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.svc.Signup(r.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	metrics.IncAuthEvent("signup", err == nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// The account is already committed; the client can still log in.
	if err := h.sessions.Begin(w, r, user.ID); err != nil {
		logger.ErrorContext(r.Context(), "Failed to start session after signup", "user_id", user.ID, "error", err)
	}
	writeJSON(w, http.StatusCreated, MapUser(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	metrics.IncAuthEvent("login", err == nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.sessions.Begin(w, r, user.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapUser(user))
}

// Logout always succeeds, with or without an active session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(w, r); err != nil {
		logger.WarnContext(r.Context(), "Failed to delete session", "error", err)
	}
	metrics.IncAuthEvent("logout", true)
	w.WriteHeader(http.StatusNoContent)
}

// CheckSession answers 401 with an empty body when no session is active.
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapUser(user))
}

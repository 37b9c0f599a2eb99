package session

import (
	"errors"
	"net/http"
	"time"

	"toolshare-backend/internal/config"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/security"
)

// Manager ties the session cookie to the server-side Store.
type Manager struct {
	store      Store
	tokens     security.TokenManager
	cookieName string
	maxAge     time.Duration
	secure     bool
}

func NewManager(store Store, tokens security.TokenManager, cfg config.SessionConfig) *Manager {
	return &Manager{
		store:      store,
		tokens:     tokens,
		cookieName: cfg.CookieName,
		maxAge:     time.Duration(cfg.MaxAgeSeconds) * time.Second,
		secure:     cfg.Secure,
	}
}

// Begin starts a session for userID on the client behind r, replacing any
// session the client already had.
func (m *Manager) Begin(w http.ResponseWriter, r *http.Request, userID int32) error {
	ctx := r.Context()

	if old := m.sessionID(r); old != "" {
		if err := m.store.Delete(ctx, old); err != nil {
			logger.WarnContext(ctx, "Failed to drop replaced session", "error", err)
		}
	}

	token, sessionID, err := m.tokens.GenerateSessionToken(userID, m.maxAge)
	if err != nil {
		return err
	}
	if err := m.store.Save(ctx, sessionID, userID, m.maxAge); err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.maxAge > 0 {
		cookie.MaxAge = int(m.maxAge.Seconds())
	}
	http.SetCookie(w, cookie)
	return nil
}

// End forgets the client's session, if any, and expires the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	var err error
	if sessionID := m.sessionID(r); sessionID != "" {
		err = m.store.Delete(r.Context(), sessionID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

// Middleware resolves the session cookie and puts the user id into the
// request context. Requests without a valid session pass through anonymously.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims := m.claims(r)
		if claims == nil {
			next.ServeHTTP(w, r)
			return
		}

		sessionID := claims.SessionID()
		ctx = withSessionID(ctx, sessionID)

		userID, err := m.store.Get(ctx, sessionID)
		switch {
		case errors.Is(err, ErrSessionNotFound):
		case err != nil:
			logger.ErrorContext(ctx, "Session lookup failed", "error", err)
		case userID != claims.UserID:
			logger.WarnContext(ctx, "Session user mismatch", "session_user", userID, "token_user", claims.UserID)
		default:
			ctx = WithUserID(ctx, userID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID prefers the id resolved by Middleware and falls back to the cookie.
func (m *Manager) sessionID(r *http.Request) string {
	if id := sessionIDFromContext(r.Context()); id != "" {
		return id
	}
	if claims := m.claims(r); claims != nil {
		return claims.SessionID()
	}
	return ""
}

func (m *Manager) claims(r *http.Request) *security.SessionClaims {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := m.tokens.ValidateToken(cookie.Value)
	if err != nil {
		logger.DebugContext(r.Context(), "Ignoring session cookie", "error", err)
		return nil
	}
	return claims
}

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"toolshare-backend/internal/config"
	"toolshare-backend/internal/security"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(store Store) *Manager {
	return NewManager(store, security.NewTokenManager(testSecret), config.SessionConfig{
		CookieName: "sid",
		Secret:     testSecret,
	})
}

// echoUser writes the resolved user id, or 0 when anonymous.
func echoUser(t *testing.T, seen *int32) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := UserIDFromContext(r.Context())
		*seen = id
		w.WriteHeader(http.StatusNoContent)
	})
}

func beginSession(t *testing.T, m *Manager, userID int32) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Begin(rec, httptest.NewRequest(http.MethodPost, "/login", nil), userID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	return cookies[0]
}

func TestManager_BeginAndResolve(t *testing.T) {
	m := newTestManager(NewMemoryStore())
	cookie := beginSession(t, m, 12)

	var seen int32
	req := httptest.NewRequest(http.MethodGet, "/check_session", nil)
	req.AddCookie(cookie)
	m.Middleware(echoUser(t, &seen)).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int32(12), seen)
}

func TestManager_Anonymous(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(store)

	t.Run("NoCookie", func(t *testing.T) {
		var seen int32 = -1
		m.Middleware(echoUser(t, &seen)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, int32(0), seen)
	})

	t.Run("TamperedCookie", func(t *testing.T) {
		cookie := beginSession(t, m, 3)
		cookie.Value += "x"

		var seen int32 = -1
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		m.Middleware(echoUser(t, &seen)).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, int32(0), seen)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		token, _, err := security.NewTokenManager(testSecret).GenerateSessionToken(3, time.Hour)
		require.NoError(t, err)

		var seen int32 = -1
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: token})
		m.Middleware(echoUser(t, &seen)).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, int32(0), seen)
	})

	t.Run("UserMismatch", func(t *testing.T) {
		token, sid, err := security.NewTokenManager(testSecret).GenerateSessionToken(3, time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Save(context.Background(), sid, 4, 0))

		var seen int32 = -1
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: token})
		m.Middleware(echoUser(t, &seen)).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, int32(0), seen)
	})
}

func TestManager_End(t *testing.T) {
	m := newTestManager(NewMemoryStore())
	cookie := beginSession(t, m, 5)

	req := httptest.NewRequest(http.MethodDelete, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	require.NoError(t, m.End(rec, req))

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)

	// the old cookie no longer resolves even if the client keeps sending it
	var seen int32 = -1
	again := httptest.NewRequest(http.MethodGet, "/check_session", nil)
	again.AddCookie(cookie)
	m.Middleware(echoUser(t, &seen)).ServeHTTP(httptest.NewRecorder(), again)
	assert.Equal(t, int32(0), seen)

	t.Run("WithoutSession", func(t *testing.T) {
		rec := httptest.NewRecorder()
		assert.NoError(t, m.End(rec, httptest.NewRequest(http.MethodDelete, "/logout", nil)))
		assert.Len(t, rec.Result().Cookies(), 1)
	})
}

func TestManager_BeginReplacesSession(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(store)
	first := beginSession(t, m, 1)

	claims, err := security.NewTokenManager(testSecret).ValidateToken(first.Value)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(first)
	require.NoError(t, m.Begin(httptest.NewRecorder(), req, 2))

	_, err = store.Get(context.Background(), claims.SessionID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", 1, time.Minute))
	require.NoError(t, store.Save(ctx, "b", 2, 0))

	id, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), id)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	id, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int32(2), id)

	require.NoError(t, store.Delete(ctx, "b"))
	require.NoError(t, store.Delete(ctx, "b"))
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// Runs against a real server when REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, Ping(ctx, client))

	store := NewRedisStore(client)
	sid := uuid.NewString()

	require.NoError(t, store.Save(ctx, sid, 77, time.Minute))
	id, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, int32(77), id)

	ttl, err := client.TTL(ctx, keyPrefix+sid).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, sid))
	_, err = store.Get(ctx, sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

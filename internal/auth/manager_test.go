package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/authz"
	"github.com/carelane/carectl/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(t.TempDir())
	m := NewManager(api.NewClient(srv.URL), store, discardLogger())
	return m, store
}

func loginHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			Token:      "tok-live",
			Email:      req.Email,
			FirstName:  "June",
			LastName:   "Okafor",
			Role:       "Doctor",
			Expiration: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		})
	})
}

func TestManager_InitializeEndsLoading(t *testing.T) {
	m, _ := newTestManager(t, http.NotFoundHandler())

	assert.True(t, m.IsLoading())
	m.Initialize()
	assert.False(t, m.IsLoading())
	assert.False(t, m.IsAuthenticated())
}

func TestManager_InitializeRestoresPersistedSession(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	seed := session.NewStore(dir)
	require.NoError(t, seed.Save(session.Session{
		Token: "tok-restored",
		User: &session.UserProfile{
			Email: "ward@example.com",
			Role:  authz.RoleAdmin,
		},
	}))

	m := NewManager(api.NewClient(srv.URL), session.NewStore(dir), discardLogger())
	m.Initialize()

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-restored", m.Token())
	assert.Equal(t, authz.RoleAdmin, m.Role())
}

func TestManager_LoginFlipsStateOnce(t *testing.T) {
	m, store := newTestManager(t, loginHandler(t))
	m.Initialize()

	require.False(t, m.IsAuthenticated())

	err := m.Login(context.Background(), Credentials{Email: "june@hospital.test", Password: "correct"})
	require.NoError(t, err)

	require.True(t, m.IsAuthenticated())
	sess := m.Current()
	require.NotNil(t, sess.User)
	assert.Equal(t, "tok-live", sess.Token)
	assert.Equal(t, authz.RoleDoctor, sess.User.Role)

	// Login response carries no ID; IsActive defaults true; CreatedAt holds
	// the token expiration timestamp from the response.
	assert.Empty(t, sess.User.ID)
	assert.True(t, sess.User.IsActive)
	assert.Equal(t, time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), sess.User.CreatedAt)

	// Persisted too.
	assert.Equal(t, "tok-live", store.Load().Token)
}

func TestManager_LoginFailureLeavesSessionUntouched(t *testing.T) {
	m, store := newTestManager(t, loginHandler(t))
	m.Initialize()

	err := m.Login(context.Background(), Credentials{Email: "june@hospital.test", Password: "wrong"})
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, ErrInvalidCredentials, authErr.Code)
	assert.Equal(t, "Invalid email or password", authErr.Message)

	assert.False(t, m.IsAuthenticated())
	assert.False(t, store.Load().IsAuthenticated())
}

func TestManager_LoginPersistFailureIsFailedLogin(t *testing.T) {
	srv := httptest.NewServer(loginHandler(t))
	t.Cleanup(srv.Close)

	// A store rooted at a path occupied by a regular file cannot persist.
	blocked := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o600))

	m := NewManager(api.NewClient(srv.URL), session.NewStore(blocked), discardLogger())
	m.Initialize()

	err := m.Login(context.Background(), Credentials{Email: "june@hospital.test", Password: "correct"})
	require.Error(t, err)
	assert.True(t, IsAuthError(err, ErrSessionPersist))
	assert.False(t, m.IsAuthenticated())
}

func TestManager_LogoutIsIdempotent(t *testing.T) {
	m, store := newTestManager(t, loginHandler(t))
	m.Initialize()
	require.NoError(t, m.Login(context.Background(), Credentials{Email: "a@b.c", Password: "correct"}))

	require.NoError(t, m.Logout())
	assert.False(t, m.IsAuthenticated())
	assert.False(t, store.Load().IsAuthenticated())

	require.NoError(t, m.Logout())
	assert.False(t, m.IsAuthenticated())
}

func TestManager_ConcurrentUnauthorizedLogsOutOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler(t))
	mux.HandleFunc("/patients", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL)
	m := NewManager(client, session.NewStore(t.TempDir()), discardLogger())
	m.Initialize()
	require.NoError(t, m.Login(context.Background(), Credentials{Email: "a@b.c", Password: "correct"}))

	var redirects atomic.Int32
	m.SetForcedLogoutHook(func() { redirects.Add(1) })

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.ListPatients(context.Background())
		}()
	}
	wg.Wait()

	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, int32(1), redirects.Load(), "exactly one redirect-to-login")
}

func TestManager_HandleUnauthorizedIgnoresStaleToken(t *testing.T) {
	m, _ := newTestManager(t, loginHandler(t))
	m.Initialize()
	require.NoError(t, m.Login(context.Background(), Credentials{Email: "a@b.c", Password: "correct"}))

	fired := false
	m.SetForcedLogoutHook(func() { fired = true })

	m.HandleUnauthorized("some-older-token")
	assert.True(t, m.IsAuthenticated(), "a stale token's failure must not invalidate the live session")
	assert.False(t, fired)

	m.HandleUnauthorized("")
	assert.True(t, m.IsAuthenticated())
}

func TestManager_RefreshProfileFillsIdentity(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/auth/login", loginHandler(t))
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.CurrentUser{
			ID:        "usr-42",
			Email:     "june@hospital.test",
			FirstName: "June",
			LastName:  "Okafor",
			Role:      "Doctor",
			IsActive:  true,
			CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	m := NewManager(api.NewClient(srv.URL), session.NewStore(t.TempDir()), discardLogger())
	m.Initialize()
	require.NoError(t, m.Login(context.Background(), Credentials{Email: "june@hospital.test", Password: "correct"}))
	require.Empty(t, m.Current().User.ID)

	require.NoError(t, m.RefreshProfile(context.Background()))

	sess := m.Current()
	assert.Equal(t, "usr-42", sess.User.ID)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), sess.User.CreatedAt)
}

func TestManager_RefreshProfileRequiresLogin(t *testing.T) {
	m, _ := newTestManager(t, http.NotFoundHandler())
	m.Initialize()

	err := m.RefreshProfile(context.Background())
	assert.True(t, IsAuthError(err, ErrNotAuthenticated))
}

func TestManager_RegisterAdoptsSession(t *testing.T) {
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			Token:     "tok-new",
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      req.Role,
		})
	}))
	m.Initialize()

	err := m.Register(context.Background(), NewUser{
		Email:     "new@hospital.test",
		Password:  "pw",
		FirstName: "Nia",
		LastName:  "Bell",
		Role:      authz.RoleHospitalEmployee,
	})
	require.NoError(t, err)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, authz.RoleHospitalEmployee, m.Role())
}

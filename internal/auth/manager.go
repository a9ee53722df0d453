// Package auth owns the client's session lifecycle: login, registration,
// logout, session restore at startup, and forced invalidation when the
// backend rejects the credential.
//
// The manager is the only writer of the Session value. Consumers read
// through its methods; the session is swapped whole under a mutex so no
// reader observes a half-updated state.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/authz"
	"github.com/carelane/carectl/internal/session"
)

// Credentials are the login inputs.
type Credentials struct {
	Email    string
	Password string
}

// NewUser are the registration inputs. The registering caller's own
// permission to register users is the authorization policy's concern, not
// this package's.
type NewUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      authz.Role
}

// Manager orchestrates authentication against the backend and persistence
// through the session store.
type Manager struct {
	client *api.Client
	store  *session.Store
	logger *slog.Logger

	mu      sync.Mutex
	sess    session.Session
	loading bool

	// onForcedLogout runs after an unauthorized response invalidates the
	// session: the navigation layer uses it to send the user to the login
	// entry point. Fired at most once per invalidation.
	onForcedLogout func()
}

// NewManager creates a manager. The manager installs itself as the client's
// token source and unauthorized handler.
func NewManager(client *api.Client, store *session.Store, logger *slog.Logger) *Manager {
	m := &Manager{
		client:  client,
		store:   store,
		logger:  logger,
		loading: true,
	}
	client.SetTokenSource(m.Token)
	client.SetUnauthorizedHook(m.HandleUnauthorized)
	return m
}

// SetForcedLogoutHook installs the navigation callback for forced logouts.
func (m *Manager) SetForcedLogoutHook(hook func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onForcedLogout = hook
}

// Initialize restores the persisted session. It runs once at process start
// and always ends the loading window, even when the store reads nothing
// usable back.
func (m *Manager) Initialize() {
	restored := m.store.Load()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loading {
		return
	}
	m.sess = restored
	m.loading = false

	if restored.IsAuthenticated() {
		m.logger.Debug("session restored", "email", restored.User.Email, "role", restored.User.Role.String())
	} else {
		m.logger.Debug("no persisted session")
	}
}

// IsLoading reports whether the initial session restore is still pending.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// IsAuthenticated reports whether a credential is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.IsAuthenticated()
}

// Current returns a copy of the session.
func (m *Manager) Current() session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// Token returns the current bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.Token
}

// Role returns the current user's role, RoleUnknown when logged out.
func (m *Manager) Role() authz.Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.Role()
}

// Login authenticates and persists the resulting session.
//
// On any failure the in-memory session is left untouched. The profile is
// built from the auth response: the backend does not return an ID on login,
// so it stays empty, and CreatedAt receives the token expiration timestamp
// the response carries. RefreshProfile corrects both from /auth/me.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	resp, err := m.client.Login(ctx, api.LoginRequest{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		return loginError(ErrLoginFailed, err)
	}

	return m.adoptSession(resp)
}

// Register creates a new user account and adopts the returned session, same
// contract as Login.
func (m *Manager) Register(ctx context.Context, user NewUser) error {
	resp, err := m.client.Register(ctx, api.RegisterRequest{
		Email:     user.Email,
		Password:  user.Password,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	})
	if err != nil {
		return loginError(ErrRegisterFailed, err)
	}

	return m.adoptSession(resp)
}

// adoptSession persists and installs the session from an auth response.
func (m *Manager) adoptSession(resp *api.AuthResponse) error {
	newSess := session.Session{
		Token: resp.Token,
		User: &session.UserProfile{
			ID:        "",
			Email:     resp.Email,
			FirstName: resp.FirstName,
			LastName:  resp.LastName,
			Role:      authz.ParseRole(resp.Role),
			IsActive:  true,
			CreatedAt: resp.Expiration,
		},
	}

	if err := m.store.Save(newSess); err != nil {
		// A session we cannot persist is a failed login.
		return WrapError(ErrSessionPersist, "could not persist session", err)
	}

	m.mu.Lock()
	m.sess = newSess
	m.loading = false
	m.mu.Unlock()

	m.logger.Info("logged in", "email", resp.Email, "role", resp.Role)
	return nil
}

// RefreshProfile replaces the cached profile with the full record from
// /auth/me, filling the ID and real CreatedAt the login response lacks.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	m.mu.Lock()
	token := m.sess.Token
	m.mu.Unlock()
	if token == "" {
		return NewError(ErrNotAuthenticated, "not logged in")
	}

	user, err := m.client.GetCurrentUser(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// The session may have been invalidated while the call was in flight;
	// applying the result then would resurrect a logged-out state.
	if m.sess.Token != token {
		return nil
	}
	m.sess = session.Session{
		Token: token,
		User: &session.UserProfile{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      authz.ParseRole(user.Role),
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		},
	}
	return m.store.Save(m.sess)
}

// Logout clears the persisted and in-memory session unconditionally.
// Idempotent: logging out while logged out is a no-op.
func (m *Manager) Logout() error {
	m.mu.Lock()
	wasAuthenticated := m.sess.IsAuthenticated()
	m.sess = session.Empty()
	m.mu.Unlock()

	err := m.store.Clear()
	if wasAuthenticated {
		m.logger.Info("logged out")
	}
	return err
}

// HandleUnauthorized is the cross-cutting 401 handler. It invalidates the
// session only when the failing request carried the token we still hold, so
// concurrent failures produce exactly one logout and one redirect. Requests
// that carried no token never reach here (see the api package).
func (m *Manager) HandleUnauthorized(failedToken string) {
	m.mu.Lock()
	if failedToken == "" || m.sess.Token != failedToken {
		// Someone else already invalidated this credential.
		m.mu.Unlock()
		return
	}
	m.sess = session.Empty()
	hook := m.onForcedLogout
	m.mu.Unlock()

	_ = m.store.Clear()
	m.logger.Warn("session invalidated by backend, logging out")

	if hook != nil {
		hook()
	}
}

// loginError shapes an API failure into an AuthError carrying the backend's
// message.
func loginError(code string, err error) *AuthError {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Unauthorized() {
			code = ErrInvalidCredentials
		}
		return WrapError(code, apiErr.Message, err)
	}
	return WrapError(code, "backend unreachable", err)
}

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Storage file names under the state directory. Two durable values: the
// opaque bearer token and the serialized user profile.
const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store persists sessions to the local filesystem.
//
// Load never fails: corrupt or partial state on disk self-heals to the
// logged-out session. Save and Clear report errors so a caller can treat a
// failed persist as a failed login.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the state directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads the persisted session.
//
// Missing state yields the empty session. Malformed state (unreadable token,
// invalid profile JSON, or one value present without the other) discards both
// values and yields the empty session rather than an error.
func (s *Store) Load() Session {
	tokenBytes, tokenErr := os.ReadFile(filepath.Join(s.dir, tokenFile))
	userBytes, userErr := os.ReadFile(filepath.Join(s.dir, userFile))

	if tokenErr != nil || userErr != nil {
		// Either value missing on its own means broken state; heal it.
		if !errors.Is(tokenErr, fs.ErrNotExist) || !errors.Is(userErr, fs.ErrNotExist) {
			_ = s.Clear()
		}
		return Empty()
	}

	token := strings.TrimSpace(string(tokenBytes))
	var user UserProfile
	if token == "" || json.Unmarshal(userBytes, &user) != nil {
		_ = s.Clear()
		return Empty()
	}

	return Session{Token: token, User: &user}
}

// Save persists the session's token and user profile.
//
// The profile is written first so a crash between the two writes leaves a
// state Load treats as logged out rather than a token without an identity.
func (s *Store) Save(sess Session) error {
	if !sess.Valid() {
		return fmt.Errorf("session violates token/user invariant")
	}
	if !sess.IsAuthenticated() {
		return s.Clear()
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	userBytes, err := json.MarshalIndent(sess.User, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), userBytes, 0o600); err != nil {
		return fmt.Errorf("write user profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(sess.Token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes both persisted values. Idempotent: clearing an already-empty
// store succeeds.
func (s *Store) Clear() error {
	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove %s: %w", name, err)
			}
		}
	}
	return firstErr
}

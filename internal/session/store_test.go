package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelane/carectl/internal/authz"
)

func testSession() Session {
	return Session{
		Token: "tok-abc123",
		User: &UserProfile{
			Email:     "ward@example.com",
			FirstName: "Greta",
			LastName:  "Ward",
			Role:      authz.RoleHospitalEmployee,
			IsActive:  true,
			CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	sess := testSession()
	require.NoError(t, store.Save(sess))

	loaded := store.Load()
	assert.Equal(t, sess.Token, loaded.Token)
	require.NotNil(t, loaded.User)
	assert.Equal(t, *sess.User, *loaded.User)
	assert.True(t, loaded.IsAuthenticated())
}

func TestStore_LoadEmptyDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"))

	loaded := store.Load()
	assert.Equal(t, Empty(), loaded)
	assert.False(t, loaded.IsAuthenticated())
}

func TestStore_ClearThenLoadYieldsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(testSession()))

	require.NoError(t, store.Clear())
	assert.Equal(t, Empty(), store.Load())

	// Clear is idempotent.
	require.NoError(t, store.Clear())
}

func TestStore_MalformedUserSelfHeals(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(testSession()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))

	loaded := store.Load()
	assert.Equal(t, Empty(), loaded, "corrupt profile must yield logged-out session")

	// Both values are gone afterwards, not just the broken one.
	_, err := os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(err), "token must be discarded with the corrupt profile")
}

func TestStore_TokenWithoutUserSelfHeals(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(testSession()))

	require.NoError(t, os.Remove(filepath.Join(dir, "user.json")))

	assert.Equal(t, Empty(), store.Load())
	_, err := os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_SaveEmptySessionClears(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(testSession()))

	require.NoError(t, store.Save(Empty()))
	assert.Equal(t, Empty(), store.Load())
}

func TestStore_SaveRejectsInvariantViolation(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Save(Session{Token: "tok-only"})
	require.Error(t, err)

	err = store.Save(Session{User: &UserProfile{Email: "x@example.com"}})
	require.Error(t, err)
}

func TestSession_Role(t *testing.T) {
	assert.Equal(t, authz.RoleUnknown, Empty().Role())
	assert.Equal(t, authz.RoleHospitalEmployee, testSession().Role())
}

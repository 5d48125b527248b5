package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

func createStore(t *testing.T) (*SessionStore, string, func()) {
	filename := filepath.Join(t.TempDir(), "nested", "session.db")

	driver := Driver{}
	if err := driver.Open(filename); err != nil {
		t.Fatal("could not open driver:", err)
	}

	return &SessionStore{Driver: &driver}, filename, func() { driver.Close() }
}

func TestSessionStore_SaveLoadClear(t *testing.T) {
	store, _, f := createStore(t)
	defer f()

	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, fileshelf.User{}, user)

	alice := fileshelf.User{ID: 4, Username: "alice", Role: fileshelf.RoleSuperAdmin}
	require.NoError(t, store.Save("token-1", alice))

	token, user, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, alice, user)

	require.NoError(t, store.Clear())
	token, user, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, fileshelf.User{}, user)
}

func TestSessionStore_SurvivesReopen(t *testing.T) {
	store, filename, f := createStore(t)
	require.NoError(t, store.Save("persisted", fileshelf.User{ID: 1, Username: "bob"}))
	f()

	driver := Driver{}
	require.NoError(t, driver.Open(filename))
	defer driver.Close()

	token, user, err := (&SessionStore{Driver: &driver}).Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
	assert.Equal(t, "bob", user.Username)
}

func TestDriver_Open(t *testing.T) {
	store, filename, f := createStore(t)
	defer f()

	err := store.Driver.Open(filename)
	errors.AssertCode(t, err, 409)

	other := Driver{}
	err = other.Open(filename)
	errors.AssertCode(t, err, 409)
	assert.Contains(t, err.Error(), "another fileshelf process")

	require.NoError(t, other.Close())
}

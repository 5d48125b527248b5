package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/jwt"
)

func TestSession_Lifecycle(t *testing.T) {
	store := NewInMemStore()
	s := New(store)

	assert.False(t, s.Authenticated(), "a new session has no token")
	_, ok := s.User()
	assert.False(t, ok)

	alice := fileshelf.User{ID: 1, Username: "alice", Role: fileshelf.RoleUser}
	require.NoError(t, s.Init("opaque", alice))

	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "opaque", token)
	user, ok := s.User()
	assert.True(t, ok)
	assert.Equal(t, alice, user)

	// A second process picks the session up from the store.
	other := New(store)
	require.NoError(t, other.Restore())
	assert.True(t, other.Authenticated())

	tornDown := 0
	s.OnTeardown(func() { tornDown++ })
	require.NoError(t, s.Teardown())
	assert.Equal(t, 1, tornDown)
	assert.False(t, s.Authenticated())

	storedToken, _, _ := store.Load()
	assert.Empty(t, storedToken, "teardown should clear the store")
}

func TestSession_InitWithoutToken(t *testing.T) {
	s := New(NewInMemStore())
	assert.Error(t, s.Init("", fileshelf.User{ID: 1}))
}

func TestSession_ExpiredToken(t *testing.T) {
	enc := jwt.NewEncodeDecoder([]byte("key"), time.Minute)
	token, err := enc.Encode(fileshelf.User{ID: 2})
	require.NoError(t, err)

	store := NewInMemStore()
	s := New(store)
	require.NoError(t, s.Init(token, fileshelf.User{ID: 2}))
	assert.True(t, s.Authenticated())

	s.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.False(t, s.Authenticated(), "an expired token disables the session")

	restored := New(store)
	restored.now = s.now
	require.NoError(t, restored.Restore())
	assert.False(t, restored.Authenticated())
	storedToken, _, _ := store.Load()
	assert.Empty(t, storedToken, "restoring an expired session drops it")
}

package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

func TestEncodeDecode(t *testing.T) {
	enc := NewEncodeDecoder([]byte("secret"), time.Hour)
	user := fileshelf.User{ID: 3, Username: "alice", Role: fileshelf.RoleUser}

	token, err := enc.Encode(user)
	require.NoError(t, err)

	claims, err := enc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, fileshelf.RoleUser, claims.Role)

	_, err = NewEncodeDecoder([]byte("other"), time.Hour).Decode(token)
	errors.AssertCode(t, err, 401)
}

func TestExpired(t *testing.T) {
	enc := NewEncodeDecoder([]byte("secret"), time.Hour)
	token, err := enc.Encode(fileshelf.User{ID: 1})
	require.NoError(t, err)

	now := time.Now()
	assert.False(t, Expired(token, now))
	assert.True(t, Expired(token, now.Add(2*time.Hour)))

	// Opaque tokens are left to the server.
	assert.False(t, Expired("opaque-session-token", now))
}

package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/clients/auth"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/mock"
)

func TestClient_Login(t *testing.T) {
	backend := mock.New()
	baseURL := mock.Start(t, backend)
	alice := backend.AddUser("alice", "secret", fileshelf.RoleUser)

	c := auth.NewClient(clients.NewClient(http.DefaultClient, baseURL, clients.StaticToken("")))

	tts := []struct {
		username string
		password string
		code     int
	}{
		{username: "alice", password: "secret", code: 0},
		{username: "alice", password: "wrong", code: http.StatusUnauthorized},
		{username: "nobody", password: "secret", code: http.StatusUnauthorized},
	}

	for i, tt := range tts {
		res, err := c.Login(context.Background(), tt.username, tt.password)
		if tt.code != 0 {
			require.Error(t, err, "%d", i)
			errors.AssertCode(t, err, tt.code)
			continue
		}

		require.NoError(t, err, "%d", i)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, alice, res.User)
	}
}

func TestClient_UserManagement(t *testing.T) {
	backend := mock.New()
	baseURL := mock.Start(t, backend)
	ctx := context.Background()

	admin := backend.AddUser("root", "pwd", fileshelf.RoleSuperAdmin)
	user := backend.AddUser("alice", "pwd", fileshelf.RoleUser)

	adminClient := auth.NewClient(clients.NewClient(http.DefaultClient, baseURL, clients.StaticToken(backend.Token(admin))))
	userClient := auth.NewClient(clients.NewClient(http.DefaultClient, baseURL, clients.StaticToken(backend.Token(user))))

	bob, err := adminClient.Register(ctx, auth.Registration{Username: "bob", Password: "pwd", Role: fileshelf.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "bob", bob.Username)

	_, err = adminClient.Register(ctx, auth.Registration{Username: "bob", Password: "pwd", Role: fileshelf.RoleUser})
	errors.AssertCode(t, err, http.StatusConflict)

	_, err = adminClient.Register(ctx, auth.Registration{Username: "eve", Password: "pwd", Role: "god"})
	errors.AssertCode(t, err, http.StatusBadRequest)

	users, err := adminClient.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = userClient.Users(ctx)
	errors.AssertKind(t, err, errors.KindPermissionDenied)

	role := fileshelf.RoleSuperAdmin
	require.NoError(t, adminClient.UpdateUser(ctx, bob.ID, fileshelf.UserPatch{Role: &role}))
	require.NoError(t, adminClient.DeleteUser(ctx, bob.ID))

	users, err = adminClient.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	err = adminClient.DeleteUser(ctx, bob.ID)
	errors.AssertKind(t, err, errors.KindNotFound)
}

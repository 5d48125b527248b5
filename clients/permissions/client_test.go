package permissions_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/clients/permissions"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/mock"
)

func TestClient_Lifecycle(t *testing.T) {
	backend := mock.New()
	baseURL := mock.Start(t, backend)
	ctx := context.Background()

	owner := backend.AddUser("owner", "pwd", fileshelf.RoleUser)
	guest := backend.AddUser("guest", "pwd", fileshelf.RoleUser)
	folder := backend.AddFolder("shared", nil, owner.ID)

	ownerClient := permissions.NewClient(clients.NewClient(http.DefaultClient, baseURL, clients.StaticToken(backend.Token(owner))))
	guestClient := permissions.NewClient(clients.NewClient(http.DefaultClient, baseURL, clients.StaticToken(backend.Token(guest))))

	assigned, err := ownerClient.Assign(ctx, fileshelf.Grant{
		UserID:       guest.ID,
		ResourceID:   folder.ID,
		ResourceType: fileshelf.ResourceFolder,
		Capabilities: fileshelf.Capabilities{CanRead: true},
	})
	require.NoError(t, err)
	assert.NotZero(t, assigned.ID)

	// Assigning again replaces the row.
	again, err := ownerClient.Assign(ctx, fileshelf.Grant{
		UserID:       guest.ID,
		ResourceID:   folder.ID,
		ResourceType: fileshelf.ResourceFolder,
		Capabilities: fileshelf.Capabilities{CanRead: true, CanDownload: true},
	})
	require.NoError(t, err)
	assert.Equal(t, assigned.ID, again.ID)

	perms, err := ownerClient.ForResource(ctx, folder.Resource())
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.True(t, perms[0].CanDownload)
	assert.Equal(t, fileshelf.ResourceFolder, perms[0].ResourceType)
	assert.Nil(t, perms[0].CanEdit)

	mine, err := guestClient.ForUser(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, folder.ID, mine[0].ResourceID)

	_, err = guestClient.ForResource(ctx, folder.Resource())
	errors.AssertKind(t, err, errors.KindPermissionDenied)

	require.NoError(t, ownerClient.Remove(ctx, assigned.ID))
	mine, err = guestClient.ForUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)

	err = ownerClient.Remove(ctx, assigned.ID)
	errors.AssertKind(t, err, errors.KindNotFound)
}

func TestClient_InvalidResourceType(t *testing.T) {
	c := permissions.NewClient(clients.NewClient(http.DefaultClient, "http://unused", clients.StaticToken("abc")))

	_, err := c.ForResource(context.Background(), fileshelf.Resource{ID: 1})
	errors.AssertCode(t, err, http.StatusBadRequest)
}

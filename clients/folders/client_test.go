package folders_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/clients/folders"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/mock"
)

func setup(t *testing.T) (*mock.Backend, fileshelf.User, *folders.Client) {
	backend := mock.New()
	baseURL := mock.Start(t, backend)

	user := backend.AddUser("alice", "pwd", fileshelf.RoleUser)
	base := clients.NewClient(http.DefaultClient, baseURL, clients.StaticToken(backend.Token(user)))
	return backend, user, folders.NewClient(base)
}

func TestClient_CreateAndList(t *testing.T) {
	_, _, c := setup(t)
	ctx := context.Background()

	docs, err := c.Create(ctx, "docs", nil)
	require.NoError(t, err)
	assert.Equal(t, "docs", docs.Name)
	assert.Nil(t, docs.ParentID)

	invoices, err := c.Create(ctx, "invoices", fileshelf.IntPtr(docs.ID))
	require.NoError(t, err)
	assert.True(t, fileshelf.SameID(invoices.ParentID, fileshelf.IntPtr(docs.ID)))

	root, err := c.Root(ctx)
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, docs.ID, root[0].ID)

	children, err := c.List(ctx, fileshelf.IntPtr(docs.ID))
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, invoices.ID, children[0].ID)

	got, err := c.Get(ctx, invoices.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoices", got.Name)

	tree, err := c.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, invoices.ID, tree[0].Children[0].ID)
}

func TestClient_CreateRejectsEmptyName(t *testing.T) {
	backend, _, c := setup(t)

	_, err := c.Create(context.Background(), "", nil)
	require.Error(t, err)
	errors.AssertKind(t, err, errors.KindInvalid)
	assert.Equal(t, 0, backend.Calls())
}

func TestClient_TrashAndFavourites(t *testing.T) {
	backend, user, c := setup(t)
	ctx := context.Background()

	folder := backend.AddFolder("old", nil, user.ID)

	fav, err := c.ToggleFavourite(ctx, folder.ID)
	require.NoError(t, err)
	assert.True(t, fav)

	favs, err := c.Favourites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.True(t, favs[0].IsFavourite)

	require.NoError(t, c.Rename(ctx, folder.ID, "older"))
	require.NoError(t, c.Delete(ctx, folder.ID))

	trash, err := c.Trash(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, "older", trash[0].Name)

	require.NoError(t, c.Restore(ctx, folder.ID))
	require.NoError(t, c.Delete(ctx, folder.ID))
	require.NoError(t, c.PermanentDelete(ctx, folder.ID))

	_, err = c.Get(ctx, folder.ID)
	errors.AssertKind(t, err, errors.KindNotFound)
}

func TestClient_Download(t *testing.T) {
	backend, user, c := setup(t)

	folder := backend.AddFolder("reports", nil, user.ID)
	backend.AddFile("q1.csv", []byte("a,b"), fileshelf.IntPtr(folder.ID), user.ID)

	payload, err := c.Download(context.Background(), folder.ID)
	require.NoError(t, err)
	defer payload.Body.Close()

	assert.Equal(t, "reports.zip", payload.Filename)
	assert.Equal(t, "application/zip", payload.ContentType)

	data, err := io.ReadAll(payload.Body)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "reports/q1.csv", zr.File[0].Name)
}

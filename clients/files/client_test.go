package files_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/clients/files"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/mock"
)

func setup(t *testing.T) (*mock.Backend, fileshelf.User, *files.Client) {
	backend := mock.New()
	baseURL := mock.Start(t, backend)

	user := backend.AddUser("alice", "pwd", fileshelf.RoleUser)
	base := clients.NewClient(http.DefaultClient, baseURL, clients.StaticToken(backend.Token(user)))
	return backend, user, files.NewClient(base)
}

func names(files []fileshelf.File) []string {
	res := make([]string, len(files))
	for i, f := range files {
		res[i] = f.Name
	}
	return res
}

func TestClient_UploadToFolder(t *testing.T) {
	backend, user, c := setup(t)
	ctx := context.Background()

	folder := backend.AddFolder("projects", nil, user.ID)
	backend.AddFile("notes.txt", []byte("hello"), nil, user.ID)

	uploaded, err := c.Upload(ctx, files.Form{
		FolderID: fileshelf.IntPtr(folder.ID),
		Parts: []files.Part{
			{Name: "report.pdf", ContentType: "application/pdf", Body: strings.NewReader("%PDF-1.4")},
		},
	})
	require.NoError(t, err)
	require.Len(t, uploaded, 1)
	assert.Equal(t, "report.pdf", uploaded[0].Name)
	assert.Equal(t, "application/pdf", uploaded[0].MimeType)
	assert.True(t, fileshelf.SameID(uploaded[0].FolderID, fileshelf.IntPtr(folder.ID)))

	inFolder, err := c.List(ctx, fileshelf.IntPtr(folder.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"report.pdf"}, names(inFolder))

	root, err := c.Root(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, names(root))

	all, err := c.List(ctx, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"notes.txt", "report.pdf"}, names(all))
}

func TestClient_UploadFolder(t *testing.T) {
	backend, user, c := setup(t)
	ctx := context.Background()

	uploaded, err := c.UploadFolder(ctx, files.Form{
		Parts: []files.Part{
			{Name: "a.txt", RelativePath: "photos/a.txt", Body: strings.NewReader("a")},
			{Name: "b.txt", RelativePath: "photos/2024/b.txt", Body: strings.NewReader("b")},
		},
	})
	require.NoError(t, err)
	require.Len(t, uploaded, 2)
	require.NotNil(t, uploaded[0].FolderID)
	require.NotNil(t, uploaded[1].FolderID)

	photos, ok := backend.Folder(*uploaded[0].FolderID)
	require.True(t, ok)
	assert.Equal(t, "photos", photos.Name)
	assert.Nil(t, photos.ParentID)
	assert.Equal(t, user.ID, photos.CreatedBy)

	year, ok := backend.Folder(*uploaded[1].FolderID)
	require.True(t, ok)
	assert.Equal(t, "2024", year.Name)
	assert.True(t, fileshelf.SameID(year.ParentID, fileshelf.IntPtr(photos.ID)))
}

func TestClient_UploadValidation(t *testing.T) {
	backend, _, c := setup(t)

	_, err := c.Upload(context.Background(), files.Form{})
	require.Error(t, err)
	errors.AssertCode(t, err, http.StatusBadRequest)

	_, err = c.Upload(context.Background(), files.Form{Parts: []files.Part{{Name: "x"}}})
	require.Error(t, err)
	assert.Equal(t, 0, backend.Calls())
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (r *closeRecorder) Close() error {
	r.closed = true
	return nil
}

func TestClient_UploadClosesBodies(t *testing.T) {
	backend, _, c := setup(t)
	ctx := context.Background()

	sent := &closeRecorder{Reader: strings.NewReader("a")}
	_, err := c.Upload(ctx, files.Form{Parts: []files.Part{{Name: "a.txt", Body: sent}}})
	require.NoError(t, err)
	assert.True(t, sent.closed)

	backend.Fail(http.MethodPost, "/api/files/upload", http.StatusRequestEntityTooLarge, "too large")
	big := &closeRecorder{Reader: strings.NewReader(strings.Repeat("x", 4<<20))}
	other := &closeRecorder{Reader: strings.NewReader("b")}
	_, err = c.Upload(ctx, files.Form{Parts: []files.Part{
		{Name: "big.bin", Body: big},
		{Name: "b.txt", Body: other},
	}})
	require.Error(t, err)
	errors.AssertCode(t, err, http.StatusRequestEntityTooLarge)
	assert.True(t, big.closed, "aborted part")
	assert.True(t, other.closed, "part never sent")
}

func TestClient_TrashLifecycle(t *testing.T) {
	backend, user, c := setup(t)
	ctx := context.Background()

	f := backend.AddFile("draft.md", []byte("# draft"), nil, user.ID)

	require.NoError(t, c.Rename(ctx, f.ID, "final.md"))
	require.NoError(t, c.Delete(ctx, f.ID))

	root, err := c.Root(ctx)
	require.NoError(t, err)
	assert.Empty(t, root)

	trash, err := c.Trash(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"final.md"}, names(trash))

	require.NoError(t, c.Restore(ctx, f.ID))
	root, err = c.Root(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"final.md"}, names(root))

	err = c.PermanentDelete(ctx, f.ID)
	require.Error(t, err, "only trashed files can be purged")
	errors.AssertCode(t, err, http.StatusBadRequest)

	require.NoError(t, c.Delete(ctx, f.ID))
	require.NoError(t, c.PermanentDelete(ctx, f.ID))
	_, ok := backend.File(f.ID)
	assert.False(t, ok)
}

func TestClient_Favourites(t *testing.T) {
	backend, user, c := setup(t)
	ctx := context.Background()

	folder := backend.AddFolder("music", nil, user.ID)
	f := backend.AddFile("song.mp3", []byte("ID3"), fileshelf.IntPtr(folder.ID), user.ID)

	fav, err := c.ToggleFavourite(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, fav)

	favs, err := c.Favourites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"song.mp3"}, names(favs))

	navigated, err := c.FavouritesNavigate(ctx, fileshelf.IntPtr(folder.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"song.mp3"}, names(navigated))

	fav, err = c.ToggleFavourite(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, fav)

	favs, err = c.FavouritesNavigate(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

package upload

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/clients/files"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/hooks"
	"github.com/bobinette/fileshelf/mock"
	"github.com/bobinette/fileshelf/query"
	"github.com/bobinette/fileshelf/session"
)

func writeTree(t *testing.T, files map[string]string) string {
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	return root
}

func TestPlan_Validate(t *testing.T) {
	root := writeTree(t, map[string]string{
		"notes.txt":      "hello",
		"photos/cat.txt": "meow",
	})

	tts := []struct {
		name string
		plan Plan
		code int
	}{
		{name: "no selection", plan: Plan{Mode: Files}, code: 400},
		{name: "files", plan: Plan{Mode: Files, Paths: []string{filepath.Join(root, "notes.txt")}}},
		{name: "directory in files mode", plan: Plan{Mode: Files, Paths: []string{filepath.Join(root, "photos")}}, code: 400},
		{name: "directory", plan: Plan{Mode: Directory, Paths: []string{filepath.Join(root, "photos")}}},
		{name: "file in directory mode", plan: Plan{Mode: Directory, Paths: []string{filepath.Join(root, "notes.txt")}}, code: 400},
		{name: "two directories", plan: Plan{Mode: Directory, Paths: []string{root, filepath.Join(root, "photos")}}, code: 400},
		{name: "missing file", plan: Plan{Mode: Files, Paths: []string{filepath.Join(root, "nope")}}, code: 404},
		{name: "no mode", plan: Plan{Paths: []string{root}}, code: 400},
	}

	for _, tt := range tts {
		err := tt.plan.Validate()
		if tt.code == 0 {
			assert.NoError(t, err, tt.name)
			continue
		}
		errors.AssertCode(t, err, tt.code)
	}
}

func TestPlan_FormDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.txt":        "second",
		"a/report.pdf": "%PDF-1.4\n%...",
		"a/deep/c.txt": "third",
	})

	form, err := Plan{Mode: Directory, FolderID: fileshelf.IntPtr(3), Paths: []string{root}}.Form()
	require.NoError(t, err)

	base := filepath.Base(root)
	require.Len(t, form.Parts, 3)
	assert.Equal(t, fileshelf.IntPtr(3), form.FolderID)
	assert.Equal(t, base+"/a/deep/c.txt", form.Parts[0].RelativePath)
	assert.Equal(t, base+"/a/report.pdf", form.Parts[1].RelativePath)
	assert.Equal(t, base+"/b.txt", form.Parts[2].RelativePath)

	assert.Equal(t, "report.pdf", form.Parts[1].Name)
	assert.Equal(t, "application/pdf", form.Parts[1].ContentType)

	content, err := io.ReadAll(form.Parts[2].Body)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	n, err := form.Parts[2].Body.Read(make([]byte, 4))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestPlan_FormEmptyDirectory(t *testing.T) {
	_, err := Plan{Mode: Directory, Paths: []string{t.TempDir()}}.Form()
	errors.AssertCode(t, err, 400)
}

type target struct {
	upload, folder []files.Form
}

func (t *target) Upload(_ context.Context, form files.Form) ([]fileshelf.File, error) {
	t.upload = append(t.upload, form)
	return nil, nil
}

func (t *target) UploadFolder(_ context.Context, form files.Form) ([]fileshelf.File, error) {
	t.folder = append(t.folder, form)
	return nil, nil
}

func TestUploader_SubmitRoutesByMode(t *testing.T) {
	root := writeTree(t, map[string]string{"dir/a.txt": "a", "b.txt": "b"})
	tgt := &target{}
	u := NewUploader(tgt, nil)

	_, err := u.Submit(context.Background(), Plan{Mode: Files, Paths: []string{filepath.Join(root, "b.txt")}})
	require.NoError(t, err)
	_, err = u.Submit(context.Background(), Plan{Mode: Directory, Paths: []string{filepath.Join(root, "dir")}})
	require.NoError(t, err)
	_, err = u.Submit(context.Background(), Plan{Mode: Files})
	errors.AssertCode(t, err, 400)

	assert.Len(t, tgt.upload, 1)
	assert.Len(t, tgt.folder, 1)
}

func TestUploader_IntoFolder(t *testing.T) {
	backend := mock.New()
	baseURL := mock.Start(t, backend)

	bob := backend.AddUser("bob", "pwd", fileshelf.RoleUser)
	folder := backend.AddFolder("reports", nil, bob.ID)

	s := session.New(session.NewInMemStore())
	require.NoError(t, s.Init(backend.Token(bob), bob))
	deps := hooks.Deps{Session: s, Cache: query.New()}
	h := hooks.NewFiles(deps, files.NewClient(clients.NewClient(http.DefaultClient, baseURL, s)))

	root := writeTree(t, map[string]string{"report.pdf": "%PDF-1.4\n%..."})
	uploaded, err := NewUploader(h, nil).Submit(context.Background(), Plan{
		Mode:     Files,
		FolderID: fileshelf.IntPtr(folder.ID),
		Paths:    []string{filepath.Join(root, "report.pdf")},
	})
	require.NoError(t, err)
	require.Len(t, uploaded, 1)
	assert.Equal(t, "report.pdf", uploaded[0].Name)

	inFolder, err := h.List(context.Background(), fileshelf.IntPtr(folder.ID))
	require.NoError(t, err)
	require.Len(t, inFolder, 1)
	assert.Equal(t, "report.pdf", inFolder[0].Name)
	assert.Equal(t, "application/pdf", inFolder[0].MimeType)

	atRoot, err := h.Root(context.Background())
	require.NoError(t, err)
	assert.Empty(t, atRoot)
}

func TestLazyFile_Close(t *testing.T) {
	root := writeTree(t, map[string]string{"big.txt": "0123456789"})
	l := &lazyFile{path: filepath.Join(root, "big.txt")}

	require.NoError(t, l.Close(), "never opened")

	l = &lazyFile{path: filepath.Join(root, "big.txt")}
	buf := make([]byte, 4)
	n, err := l.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(buf[:n]))
	require.NotNil(t, l.f)

	require.NoError(t, l.Close())
	assert.Nil(t, l.f)
	_, err = l.Read(buf)
	assert.Equal(t, io.EOF, err)
}

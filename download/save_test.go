package download

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf/clients"
)

func payload(name, content string) clients.Payload {
	return clients.Payload{
		Filename: name,
		Size:     int64(len(content)),
		Body:     io.NopCloser(strings.NewReader(content)),
	}
}

func TestSanitize(t *testing.T) {
	tts := []struct {
		name     string
		expected string
	}{
		{name: "report.pdf", expected: "report.pdf"},
		{name: "../../etc/passwd", expected: "passwd"},
		{name: `C:\Users\bob\notes.txt`, expected: "notes.txt"},
		{name: "dir/", expected: DefaultName},
		{name: "..", expected: DefaultName},
		{name: "", expected: DefaultName},
	}

	for _, tt := range tts {
		assert.Equal(t, tt.expected, Sanitize(tt.name), tt.name)
	}
}

func TestSave_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for _, content := range []string{"first", "second", "third"} {
		path, n, err := Save(payload("report.pdf", content), dir)
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), n)
		paths = append(paths, path)
	}

	assert.Equal(t, []string{
		filepath.Join(dir, "report.pdf"),
		filepath.Join(dir, "report (1).pdf"),
		filepath.Join(dir, "report (2).pdf"),
	}, paths)

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestSave_DotFile(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Save(payload(".env", "a"), dir)
	require.NoError(t, err)
	path, _, err := Save(payload(".env", "b"), dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".env (1)"), path)
}

func TestSave_StripsPath(t *testing.T) {
	dir := t.TempDir()

	path, _, err := Save(payload("../outside.txt", "x"), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "outside.txt"), path)
}

func TestSave_MissingDir(t *testing.T) {
	_, _, err := Save(payload("a.txt", "x"), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
)

func names(entries []Entry) []string {
	res := make([]string, len(entries))
	for i, e := range entries {
		res[i] = e.Name
	}
	return res
}

func newIndex(t *testing.T) *Index {
	idx, err := NewIndex()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	require.NoError(t, idx.AddFolders([]fileshelf.Folder{
		{ID: 1, Name: "Reports", Children: []fileshelf.Folder{
			{ID: 2, Name: "2024 reports", ParentID: fileshelf.IntPtr(1)},
		}},
		{ID: 3, Name: "Photos"},
	}))
	require.NoError(t, idx.AddFiles([]fileshelf.File{
		{ID: 10, Name: "report.pdf", FolderID: fileshelf.IntPtr(1)},
		{ID: 11, Name: "Q1 REPORT.xlsx", FolderID: fileshelf.IntPtr(2)},
		{ID: 12, Name: "cat.jpg", FolderID: fileshelf.IntPtr(3)},
		{ID: 13, Name: "notes (draft).txt"},
	}))
	return idx
}

func TestIndex_Search(t *testing.T) {
	idx := newIndex(t)

	tts := []struct {
		name     string
		query    Query
		expected []string
	}{
		{
			name:     "substring ignoring case",
			query:    Query{Text: "rEpOrT"},
			expected: []string{"2024 reports", "Reports", "Q1 REPORT.xlsx", "report.pdf"},
		},
		{
			name:     "restricted to a folder",
			query:    Query{Text: "report", InFolder: true, Folder: fileshelf.IntPtr(1)},
			expected: []string{"2024 reports", "report.pdf"},
		},
		{
			name:     "root only",
			query:    Query{InFolder: true},
			expected: []string{"Photos", "Reports", "notes (draft).txt"},
		},
		{
			name:     "files only",
			query:    Query{Text: "report", Type: fileshelf.ResourceFile},
			expected: []string{"Q1 REPORT.xlsx", "report.pdf"},
		},
		{
			name:     "regexp characters are literal",
			query:    Query{Text: "(draft)"},
			expected: []string{"notes (draft).txt"},
		},
		{
			name:     "wildcards are literal",
			query:    Query{Text: "c*t"},
			expected: []string{},
		},
		{
			name:     "no match",
			query:    Query{Text: "invoice"},
			expected: []string{},
		},
	}

	for _, tt := range tts {
		res, err := idx.Search(tt.query)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.expected, names(res), tt.name)
	}
}

func TestIndex_ReplaceAndRemove(t *testing.T) {
	idx := newIndex(t)

	require.NoError(t, idx.AddFiles([]fileshelf.File{{ID: 12, Name: "dog.jpg", FolderID: fileshelf.IntPtr(3)}}))
	require.NoError(t, idx.Remove(fileshelf.FileResource(10)))
	require.NoError(t, idx.Remove(fileshelf.FileResource(99)))

	res, err := idx.Search(Query{Text: ".jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dog.jpg"}, names(res))

	res, err = idx.Search(Query{Text: "report.pdf"})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestIndex_Empty(t *testing.T) {
	idx, err := NewIndex()
	require.NoError(t, err)
	defer idx.Close()

	res, err := idx.Search(Query{Text: "a"})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFilter(t *testing.T) {
	files := []fileshelf.File{{Name: "b-report.pdf"}, {Name: "cat.jpg"}, {Name: "A-REPORT.doc"}}

	assert.Equal(t, []fileshelf.File{{Name: "b-report.pdf"}, {Name: "A-REPORT.doc"}}, FilterFiles(files, " Report "))
	assert.Equal(t, files, FilterFiles(files, ""))
	assert.Empty(t, FilterFiles(files, "zip"))

	folders := []fileshelf.Folder{{Name: "Photos"}, {Name: "photo backups"}}
	assert.Len(t, FilterFolders(folders, "PHOTO"), 2)
}

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobinette/fileshelf"
)

func TestNewKey(t *testing.T) {
	var nilID *int

	tts := []struct {
		key      Key
		expected string
	}{
		{key: NewKey("rootFolders"), expected: "rootFolders"},
		{key: NewKey("files", 7), expected: "files/7"},
		{key: NewKey("files", fileshelf.IntPtr(7)), expected: "files/7"},
		{key: NewKey("files", nil), expected: "files/nil"},
		{key: NewKey("files", nilID), expected: "files/nil"},
		{key: NewKey("permissions", 3, fileshelf.ResourceFolder), expected: "permissions/3/folder"},
		{key: NewKey("sharedResource", "abc"), expected: "sharedResource/abc"},
	}

	for i, tt := range tts {
		assert.Equal(t, tt.expected, tt.key.String(), "%d", i)
	}
}

func TestKey_HasPrefix(t *testing.T) {
	tts := []struct {
		key      Key
		prefix   Key
		expected bool
	}{
		{key: NewKey("files", 7), prefix: NewKey("files"), expected: true},
		{key: NewKey("files", 7), prefix: NewKey("files", 7), expected: true},
		{key: NewKey("files", 7), prefix: NewKey("files", 8), expected: false},
		{key: NewKey("files", nil), prefix: NewKey("files", 7), expected: false},
		{key: NewKey("rootFiles"), prefix: NewKey("files"), expected: false},
		{key: NewKey("files"), prefix: NewKey("files", 7), expected: false},
		{key: NewKey("files", 7), prefix: nil, expected: true},
	}

	for i, tt := range tts {
		assert.Equal(t, tt.expected, tt.key.HasPrefix(tt.prefix), "%d - %s / %s", i, tt.key, tt.prefix)
	}
}

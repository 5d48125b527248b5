package fileshelf

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf/errors"
)

func TestParseResourceType(t *testing.T) {
	tts := []struct {
		in   string
		want ResourceType
		code int
	}{
		{in: "file", want: ResourceFile},
		{in: "folder", want: ResourceFolder},
		{in: "File", code: http.StatusBadRequest},
		{in: "", code: http.StatusBadRequest},
	}

	for _, tt := range tts {
		got, err := ParseResourceType(tt.in)
		errors.AssertCode(t, err, tt.code)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResourceType_JSON(t *testing.T) {
	data, err := json.Marshal(FolderResource(4))
	require.NoError(t, err)
	assert.JSONEq(t, `{"resource_type":"folder","resource_id":4}`, string(data))

	var r Resource
	require.NoError(t, json.Unmarshal([]byte(`{"resource_type":"file","resource_id":9}`), &r))
	assert.Equal(t, FileResource(9), r)

	assert.Error(t, json.Unmarshal([]byte(`{"resource_type":"disk","resource_id":9}`), &r))

	_, err = json.Marshal(Resource{ID: 1})
	assert.Error(t, err)
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID(nil, nil))
	assert.True(t, SameID(IntPtr(3), IntPtr(3)))
	assert.False(t, SameID(IntPtr(3), nil))
	assert.False(t, SameID(nil, IntPtr(3)))
	assert.False(t, SameID(IntPtr(3), IntPtr(4)))
}

func TestSharedResource_Expired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Minute)
	after := now.Add(time.Minute)

	assert.False(t, SharedResource{}.Expired(now))
	assert.True(t, SharedResource{ExpiresAt: &before}.Expired(now))
	assert.True(t, SharedResource{ExpiresAt: &now}.Expired(now))
	assert.False(t, SharedResource{ExpiresAt: &after}.Expired(now))
}

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobinette/fileshelf"
)

func TestCanDownload(t *testing.T) {
	alice := fileshelf.User{ID: 1, Username: "alice", Role: fileshelf.RoleUser}
	admin := fileshelf.User{ID: 9, Username: "root", Role: fileshelf.RoleSuperAdmin}

	owned := fileshelf.File{ID: 10, CreatedBy: alice.ID}
	foreign := fileshelf.File{ID: 11, CreatedBy: 2}
	inFolder := fileshelf.File{ID: 12, CreatedBy: 2, FolderID: fileshelf.IntPtr(7)}
	folder := fileshelf.Folder{ID: 7, CreatedBy: 2}
	subFolder := fileshelf.Folder{ID: 8, CreatedBy: 2, ParentID: fileshelf.IntPtr(7)}

	row := func(r fileshelf.Resource, read, download bool) fileshelf.Permission {
		return fileshelf.Permission{
			UserID:       alice.ID,
			ResourceID:   r.ID,
			ResourceType: r.Type,
			Capabilities: fileshelf.Capabilities{CanRead: read, CanDownload: download},
		}
	}

	tts := []struct {
		name     string
		user     fileshelf.User
		item     fileshelf.Item
		perms    Snapshot
		expected bool
	}{
		{name: "owned without rows", user: alice, item: owned, perms: nil, expected: true},
		{name: "foreign without snapshot", user: alice, item: foreign, perms: nil, expected: false},
		{name: "foreign without rows", user: alice, item: foreign, perms: Snapshot{}, expected: false},
		{name: "direct row allows", user: alice, item: foreign, perms: Snapshot{row(foreign.Resource(), true, true)}, expected: true},
		{name: "direct row denies", user: alice, item: foreign, perms: Snapshot{row(foreign.Resource(), true, false)}, expected: false},
		{name: "parent row allows", user: alice, item: inFolder, perms: Snapshot{row(folder.Resource(), true, true)}, expected: true},
		{
			name:     "direct row wins over parent",
			user:     alice,
			item:     inFolder,
			perms:    Snapshot{row(folder.Resource(), true, true), row(inFolder.Resource(), true, false)},
			expected: false,
		},
		{name: "folder inherits from parent", user: alice, item: subFolder, perms: Snapshot{row(folder.Resource(), false, true)}, expected: true},
		{name: "grand parent is not inherited", user: alice, item: fileshelf.File{ID: 13, CreatedBy: 2, FolderID: fileshelf.IntPtr(8)}, perms: Snapshot{row(folder.Resource(), true, true)}, expected: false},
		{name: "same id other type", user: alice, item: fileshelf.File{ID: 7, CreatedBy: 2}, perms: Snapshot{row(folder.Resource(), true, true)}, expected: false},
		{name: "admin is not special", user: admin, item: foreign, perms: Snapshot{}, expected: false},
		{
			name:     "row without user id",
			user:     alice,
			item:     foreign,
			perms:    Snapshot{{ResourceID: foreign.ID, ResourceType: fileshelf.ResourceFile, Capabilities: fileshelf.Capabilities{CanDownload: true}}},
			expected: true,
		},
		{
			name:     "parent row without user id",
			user:     alice,
			item:     inFolder,
			perms:    Snapshot{{ResourceID: folder.ID, ResourceType: fileshelf.ResourceFolder, Capabilities: fileshelf.Capabilities{CanDownload: true}}},
			expected: true,
		},
	}

	for _, tt := range tts {
		assert.Equal(t, tt.expected, CanDownload(tt.user, tt.item, tt.perms), tt.name)
	}
}

func TestCanRead(t *testing.T) {
	alice := fileshelf.User{ID: 1}
	file := fileshelf.File{ID: 5, CreatedBy: 2}
	perms := Snapshot{{UserID: 1, ResourceID: 5, ResourceType: fileshelf.ResourceFile, Capabilities: fileshelf.Capabilities{CanRead: true}}}

	assert.True(t, CanRead(alice, file, perms))
	assert.False(t, CanDownload(alice, file, perms))
}

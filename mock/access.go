package mock

import (
	"github.com/bobinette/fileshelf"
)

// The fake backend grants a capability to super admins, to the owner, then
// through the permission row of the resource or of its parent folder.

func (b *Backend) row(user int, r fileshelf.Resource) *fileshelf.Permission {
	for _, p := range b.permissions {
		if p.UserID == user && p.Resource() == r {
			return p
		}
	}
	return nil
}

func (b *Backend) allowed(user fileshelf.User, item fileshelf.Item, capability func(fileshelf.Capabilities) bool) bool {
	if user.IsAdmin() || item.Owner() == user.ID {
		return true
	}
	if p := b.row(user.ID, item.Resource()); p != nil {
		return capability(p.Capabilities)
	}
	if parent := item.Parent(); parent != nil {
		if p := b.row(user.ID, fileshelf.FolderResource(*parent)); p != nil {
			return capability(p.Capabilities)
		}
	}
	return false
}

func canRead(c fileshelf.Capabilities) bool     { return c.CanRead }
func canDownload(c fileshelf.Capabilities) bool { return c.CanDownload }

// canManage is required to rename, delete, favourite and share.
func (b *Backend) canManage(user fileshelf.User, item fileshelf.Item) bool {
	return user.IsAdmin() || item.Owner() == user.ID
}

func (b *Backend) visibleFiles(user fileshelf.User, keep func(*fileshelf.File) bool) []fileshelf.File {
	files := make([]fileshelf.File, 0)
	for _, f := range b.files {
		if keep(f) && b.allowed(user, f, canRead) {
			files = append(files, *f)
		}
	}
	sortFiles(files)
	return files
}

func (b *Backend) visibleFolders(user fileshelf.User, keep func(*fileshelf.Folder) bool) []fileshelf.Folder {
	folders := make([]fileshelf.Folder, 0)
	for _, f := range b.folders {
		if keep(f) && b.allowed(user, f, canRead) {
			folders = append(folders, *f)
		}
	}
	sortFolders(folders)
	return folders
}

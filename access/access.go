// Package access decides, client side, whether the current user may read or
// download a resource. The answer is advisory: the backend checks again.
package access

import (
	"github.com/bobinette/fileshelf"
)

// Snapshot is the set of permission rows of the current user, as answered by
// /permissions/user. A nil Snapshot means none were loaded.
type Snapshot []fileshelf.Permission

// Find returns the row on r, if any. Rows are matched on the resource only:
// the user id of a row is not checked, the backend may leave it out.
func (s Snapshot) Find(r fileshelf.Resource) (fileshelf.Permission, bool) {
	for _, p := range s {
		if p.Resource() == r {
			return p, true
		}
	}
	return fileshelf.Permission{}, false
}

// Resolve walks the resolution order for one capability: ownership, the row
// of the item itself, the row of its parent folder. Anything else is denied.
func Resolve(user fileshelf.User, item fileshelf.Item, perms Snapshot, capability func(fileshelf.Capabilities) bool) bool {
	if user.ID != 0 && item.Owner() == user.ID {
		return true
	}

	if perms == nil {
		return false
	}

	if p, ok := perms.Find(item.Resource()); ok {
		return capability(p.Capabilities)
	}

	if parent := item.Parent(); parent != nil {
		if p, ok := perms.Find(fileshelf.FolderResource(*parent)); ok {
			return capability(p.Capabilities)
		}
	}

	return false
}

func CanDownload(user fileshelf.User, item fileshelf.Item, perms Snapshot) bool {
	return Resolve(user, item, perms, func(c fileshelf.Capabilities) bool { return c.CanDownload })
}

func CanRead(user fileshelf.User, item fileshelf.Item, perms Snapshot) bool {
	return Resolve(user, item, perms, func(c fileshelf.Capabilities) bool { return c.CanRead })
}

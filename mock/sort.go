package mock

import (
	"sort"

	"github.com/bobinette/fileshelf"
)

// Listings are ordered by id so that answers are deterministic.

func sortFiles(files []fileshelf.File) {
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
}

func sortFolders(folders []fileshelf.Folder) {
	sort.Slice(folders, func(i, j int) bool { return folders[i].ID < folders[j].ID })
}

func sortUsers(users []fileshelf.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}

func sortPermissions(perms []fileshelf.Permission) {
	sort.Slice(perms, func(i, j int) bool { return perms[i].ID < perms[j].ID })
}

func sortShares(shares []fileshelf.SharedResource) {
	sort.Slice(shares, func(i, j int) bool { return shares[i].ID < shares[j].ID })
}

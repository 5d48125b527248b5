package hooks

import (
	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/query"
)

// Cache keys of the read hooks.
var (
	RootFilesKey      = query.NewKey("rootFiles")
	TrashFilesKey     = query.NewKey("trashFiles")
	FavouriteFilesKey = query.NewKey("favouriteFiles")

	RootFoldersKey      = query.NewKey("rootFolders")
	FolderTreeKey       = query.NewKey("folderTree")
	TrashFoldersKey     = query.NewKey("trashFolders")
	FavouriteFoldersKey = query.NewKey("favouriteFolders")

	UserPermissionsKey = query.NewKey("userPermissions")
	UsersKey           = query.NewKey("users")
	SharedWithMeKey    = query.NewKey("sharedWithMe")
	SharedByMeKey      = query.NewKey("sharedByMe")

	// Prefixes matching every parameter.
	AllFilesKey                      = query.NewKey("files")
	AllFoldersKey                    = query.NewKey("folders")
	AllFolderKey                     = query.NewKey("folder")
	AllPermissionsKey                = query.NewKey("permissions")
	FavouriteFilesNavigationPrefix   = query.NewKey("favouriteFilesNavigation")
	FavouriteFoldersNavigationPrefix = query.NewKey("favouriteFoldersNavigation")
)

func FilesKey(folderID *int) query.Key {
	return query.NewKey("files", folderID)
}

func FoldersKey(parentID *int) query.Key {
	return query.NewKey("folders", parentID)
}

func FolderKey(id int) query.Key {
	return query.NewKey("folder", id)
}

func FavouriteFilesNavigationKey(folderID *int) query.Key {
	return query.NewKey("favouriteFilesNavigation", folderID)
}

func FavouriteFoldersNavigationKey(parentID *int) query.Key {
	return query.NewKey("favouriteFoldersNavigation", parentID)
}

func PermissionsKey(r fileshelf.Resource) query.Key {
	return query.NewKey("permissions", r.ID, r.Type)
}

func SharedResourceKey(token string) query.Key {
	return query.NewKey("sharedResource", token)
}

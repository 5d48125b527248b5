package hooks

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/query"
)

type FoldersAPI interface {
	List(ctx context.Context, parentID *int) ([]fileshelf.Folder, error)
	Root(ctx context.Context) ([]fileshelf.Folder, error)
	Get(ctx context.Context, id int) (fileshelf.Folder, error)
	Tree(ctx context.Context) ([]fileshelf.Folder, error)
	Trash(ctx context.Context) ([]fileshelf.Folder, error)
	Favourites(ctx context.Context) ([]fileshelf.Folder, error)
	FavouritesNavigate(ctx context.Context, parentID *int) ([]fileshelf.Folder, error)

	Create(ctx context.Context, name string, parentID *int) (fileshelf.Folder, error)
	Rename(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
	PermanentDelete(ctx context.Context, id int) error
	ToggleFavourite(ctx context.Context, id int) (bool, error)
	Download(ctx context.Context, id int) (clients.Payload, error)
}

type createFolderRequest struct {
	Name     string
	ParentID *int
}

// Folders are the hooks of the folder hierarchy.
type Folders struct {
	deps Deps
	api  FoldersAPI

	create          endpoint.Endpoint
	rename          endpoint.Endpoint
	remove          endpoint.Endpoint
	restore         endpoint.Endpoint
	permanentDelete endpoint.Endpoint
	toggleFavourite endpoint.Endpoint
	download        endpoint.Endpoint
}

func NewFolders(deps Deps, api FoldersAPI) *Folders {
	deps = deps.withDefaults()
	h := &Folders{deps: deps, api: api}

	h.create = deps.mutation("folders.create", func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(createFolderRequest)
		return api.Create(ctx, req.Name, req.ParentID)
	}, createFolderKeys)

	h.rename = deps.mutation("folders.rename", func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(renameRequest)
		return nil, api.Rename(ctx, req.ID, req.Name)
	}, func(request, _ interface{}) []query.Key {
		return []query.Key{
			AllFoldersKey, RootFoldersKey, FolderTreeKey, FolderKey(request.(renameRequest).ID),
			FavouriteFoldersKey, FavouriteFoldersNavigationPrefix,
		}
	})

	h.remove = deps.mutation("folders.delete", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.Delete(ctx, request.(int))
	}, func(request, _ interface{}) []query.Key {
		return []query.Key{
			AllFoldersKey, RootFoldersKey, FolderTreeKey, FolderKey(request.(int)),
			TrashFoldersKey, FavouriteFoldersKey, FavouriteFoldersNavigationPrefix,
		}
	}, Optimistic(func(request interface{}) func() {
		return removeFolder(deps.Cache, request.(int))
	}))

	h.restore = deps.mutation("folders.restore", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.Restore(ctx, request.(int))
	}, func(request, _ interface{}) []query.Key {
		return []query.Key{
			TrashFoldersKey, AllFoldersKey, RootFoldersKey, FolderTreeKey, FolderKey(request.(int)),
			FavouriteFoldersKey, FavouriteFoldersNavigationPrefix,
		}
	})

	h.permanentDelete = deps.mutation("folders.purge", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.PermanentDelete(ctx, request.(int))
	}, func(request, _ interface{}) []query.Key {
		return []query.Key{TrashFoldersKey, FolderTreeKey, FolderKey(request.(int))}
	}, Optimistic(func(request interface{}) func() {
		return removeFolder(deps.Cache, request.(int))
	}))

	h.toggleFavourite = deps.mutation("folders.favourite", func(ctx context.Context, request interface{}) (interface{}, error) {
		id := request.(int)
		v, err := api.ToggleFavourite(ctx, id)
		if err != nil {
			return nil, err
		}
		setFolderFavourite(deps.Cache, id, v)
		return v, nil
	}, Keys(FavouriteFoldersKey, FavouriteFoldersNavigationPrefix),
		Optimistic(func(request interface{}) func() {
			return flipFolderFavourite(deps.Cache, request.(int))
		}),
	)

	h.download = deps.mutation("folders.download", func(ctx context.Context, request interface{}) (interface{}, error) {
		return api.Download(ctx, request.(int))
	}, nil)

	return h
}

// createFolderKeys only touches the listing of the new folder's parent.
func createFolderKeys(request, _ interface{}) []query.Key {
	parentID := request.(createFolderRequest).ParentID
	keys := []query.Key{FoldersKey(parentID), FolderTreeKey}
	if parentID == nil {
		keys = append(keys, RootFoldersKey)
	}
	return keys
}

// List returns the sub folders of parentID, nil listing every visible folder.
func (h *Folders) List(ctx context.Context, parentID *int) ([]fileshelf.Folder, error) {
	return query.Fetch(ctx, h.deps.Cache, FoldersKey(parentID), h.deps.enabled(), func(ctx context.Context) ([]fileshelf.Folder, error) {
		return h.api.List(ctx, parentID)
	})
}

func (h *Folders) Root(ctx context.Context) ([]fileshelf.Folder, error) {
	return query.Fetch(ctx, h.deps.Cache, RootFoldersKey, h.deps.enabled(), h.api.Root)
}

func (h *Folders) Get(ctx context.Context, id int) (fileshelf.Folder, error) {
	return query.Fetch(ctx, h.deps.Cache, FolderKey(id), h.deps.enabled(), func(ctx context.Context) (fileshelf.Folder, error) {
		return h.api.Get(ctx, id)
	})
}

func (h *Folders) Tree(ctx context.Context) ([]fileshelf.Folder, error) {
	return query.Fetch(ctx, h.deps.Cache, FolderTreeKey, h.deps.enabled(), h.api.Tree)
}

func (h *Folders) Trash(ctx context.Context) ([]fileshelf.Folder, error) {
	return query.Fetch(ctx, h.deps.Cache, TrashFoldersKey, h.deps.enabled(), h.api.Trash)
}

func (h *Folders) Favourites(ctx context.Context) ([]fileshelf.Folder, error) {
	return query.Fetch(ctx, h.deps.Cache, FavouriteFoldersKey, h.deps.enabled(), h.api.Favourites)
}

func (h *Folders) FavouritesNavigation(ctx context.Context, parentID *int) ([]fileshelf.Folder, error) {
	return query.Fetch(ctx, h.deps.Cache, FavouriteFoldersNavigationKey(parentID), h.deps.enabled(), func(ctx context.Context) ([]fileshelf.Folder, error) {
		return h.api.FavouritesNavigate(ctx, parentID)
	})
}

func (h *Folders) Create(ctx context.Context, name string, parentID *int) (fileshelf.Folder, error) {
	res, err := h.create(ctx, createFolderRequest{Name: name, ParentID: parentID})
	if err != nil {
		return fileshelf.Folder{}, err
	}
	return res.(fileshelf.Folder), nil
}

func (h *Folders) Rename(ctx context.Context, id int, name string) error {
	_, err := h.rename(ctx, renameRequest{ID: id, Name: name})
	return err
}

func (h *Folders) Delete(ctx context.Context, id int) error {
	_, err := h.remove(ctx, id)
	return err
}

func (h *Folders) Restore(ctx context.Context, id int) error {
	_, err := h.restore(ctx, id)
	return err
}

func (h *Folders) PermanentDelete(ctx context.Context, id int) error {
	_, err := h.permanentDelete(ctx, id)
	return err
}

func (h *Folders) ToggleFavourite(ctx context.Context, id int) (bool, error) {
	res, err := h.toggleFavourite(ctx, id)
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

func (h *Folders) Download(ctx context.Context, id int) (clients.Payload, error) {
	res, err := h.download(ctx, id)
	if err != nil {
		return clients.Payload{}, err
	}
	return res.(clients.Payload), nil
}

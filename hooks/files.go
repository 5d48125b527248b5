package hooks

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/clients/files"
	"github.com/bobinette/fileshelf/query"
)

type FilesAPI interface {
	List(ctx context.Context, folderID *int) ([]fileshelf.File, error)
	Root(ctx context.Context) ([]fileshelf.File, error)
	Trash(ctx context.Context) ([]fileshelf.File, error)
	Favourites(ctx context.Context) ([]fileshelf.File, error)
	FavouritesNavigate(ctx context.Context, folderID *int) ([]fileshelf.File, error)

	Upload(ctx context.Context, form files.Form) ([]fileshelf.File, error)
	UploadFolder(ctx context.Context, form files.Form) ([]fileshelf.File, error)
	Download(ctx context.Context, id int) (clients.Payload, error)
	Rename(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
	PermanentDelete(ctx context.Context, id int) error
	ToggleFavourite(ctx context.Context, id int) (bool, error)
}

type renameRequest struct {
	ID   int
	Name string
}

// Files are the hooks of the file listings.
type Files struct {
	deps Deps
	api  FilesAPI

	upload          endpoint.Endpoint
	uploadFolder    endpoint.Endpoint
	download        endpoint.Endpoint
	rename          endpoint.Endpoint
	remove          endpoint.Endpoint
	restore         endpoint.Endpoint
	permanentDelete endpoint.Endpoint
	toggleFavourite endpoint.Endpoint
}

func NewFiles(deps Deps, api FilesAPI) *Files {
	deps = deps.withDefaults()
	h := &Files{deps: deps, api: api}

	h.upload = deps.mutation("files.upload", func(ctx context.Context, request interface{}) (interface{}, error) {
		return api.Upload(ctx, request.(files.Form))
	}, uploadKeys)

	h.uploadFolder = deps.mutation("files.upload-folder", func(ctx context.Context, request interface{}) (interface{}, error) {
		return api.UploadFolder(ctx, request.(files.Form))
	}, Keys(AllFilesKey, RootFilesKey, AllFoldersKey, RootFoldersKey, FolderTreeKey))

	h.download = deps.mutation("files.download", func(ctx context.Context, request interface{}) (interface{}, error) {
		return api.Download(ctx, request.(int))
	}, nil)

	h.rename = deps.mutation("files.rename", func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(renameRequest)
		return nil, api.Rename(ctx, req.ID, req.Name)
	}, Keys(AllFilesKey, RootFilesKey, FavouriteFilesKey, FavouriteFilesNavigationPrefix))

	h.remove = deps.mutation("files.delete", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.Delete(ctx, request.(int))
	}, Keys(AllFilesKey, RootFilesKey, TrashFilesKey, FavouriteFilesKey, FavouriteFilesNavigationPrefix),
		Optimistic(func(request interface{}) func() {
			return removeFile(deps.Cache, request.(int))
		}),
	)

	h.restore = deps.mutation("files.restore", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.Restore(ctx, request.(int))
	}, Keys(TrashFilesKey, AllFilesKey, RootFilesKey, FavouriteFilesKey, FavouriteFilesNavigationPrefix))

	h.permanentDelete = deps.mutation("files.purge", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.PermanentDelete(ctx, request.(int))
	}, Keys(TrashFilesKey),
		Optimistic(func(request interface{}) func() {
			return removeFile(deps.Cache, request.(int))
		}),
	)

	h.toggleFavourite = deps.mutation("files.favourite", func(ctx context.Context, request interface{}) (interface{}, error) {
		id := request.(int)
		v, err := api.ToggleFavourite(ctx, id)
		if err != nil {
			return nil, err
		}
		setFileFavourite(deps.Cache, id, v)
		return v, nil
	}, Keys(FavouriteFilesKey, FavouriteFilesNavigationPrefix),
		Optimistic(func(request interface{}) func() {
			return flipFileFavourite(deps.Cache, request.(int))
		}),
	)

	return h
}

// uploadKeys invalidates the target folder listing, the all-files listing
// and the folder tree. The root listing is only touched for root uploads.
func uploadKeys(request, _ interface{}) []query.Key {
	form := request.(files.Form)
	keys := []query.Key{FilesKey(form.FolderID), FolderTreeKey}
	if form.FolderID == nil {
		keys = append(keys, RootFilesKey)
	} else {
		keys = append(keys, FilesKey(nil))
	}
	return keys
}

// List returns the files of folderID, nil listing every visible file.
func (h *Files) List(ctx context.Context, folderID *int) ([]fileshelf.File, error) {
	return query.Fetch(ctx, h.deps.Cache, FilesKey(folderID), h.deps.enabled(), func(ctx context.Context) ([]fileshelf.File, error) {
		return h.api.List(ctx, folderID)
	})
}

func (h *Files) Root(ctx context.Context) ([]fileshelf.File, error) {
	return query.Fetch(ctx, h.deps.Cache, RootFilesKey, h.deps.enabled(), h.api.Root)
}

func (h *Files) Trash(ctx context.Context) ([]fileshelf.File, error) {
	return query.Fetch(ctx, h.deps.Cache, TrashFilesKey, h.deps.enabled(), h.api.Trash)
}

func (h *Files) Favourites(ctx context.Context) ([]fileshelf.File, error) {
	return query.Fetch(ctx, h.deps.Cache, FavouriteFilesKey, h.deps.enabled(), h.api.Favourites)
}

func (h *Files) FavouritesNavigation(ctx context.Context, folderID *int) ([]fileshelf.File, error) {
	return query.Fetch(ctx, h.deps.Cache, FavouriteFilesNavigationKey(folderID), h.deps.enabled(), func(ctx context.Context) ([]fileshelf.File, error) {
		return h.api.FavouritesNavigate(ctx, folderID)
	})
}

func (h *Files) Upload(ctx context.Context, form files.Form) ([]fileshelf.File, error) {
	res, err := h.upload(ctx, form)
	if err != nil {
		return nil, err
	}
	return res.([]fileshelf.File), nil
}

func (h *Files) UploadFolder(ctx context.Context, form files.Form) ([]fileshelf.File, error) {
	res, err := h.uploadFolder(ctx, form)
	if err != nil {
		return nil, err
	}
	return res.([]fileshelf.File), nil
}

func (h *Files) Download(ctx context.Context, id int) (clients.Payload, error) {
	res, err := h.download(ctx, id)
	if err != nil {
		return clients.Payload{}, err
	}
	return res.(clients.Payload), nil
}

func (h *Files) Rename(ctx context.Context, id int, name string) error {
	_, err := h.rename(ctx, renameRequest{ID: id, Name: name})
	return err
}

// Delete moves the file to the trash. It disappears from the cached
// listings right away.
func (h *Files) Delete(ctx context.Context, id int) error {
	_, err := h.remove(ctx, id)
	return err
}

func (h *Files) Restore(ctx context.Context, id int) error {
	_, err := h.restore(ctx, id)
	return err
}

func (h *Files) PermanentDelete(ctx context.Context, id int) error {
	_, err := h.permanentDelete(ctx, id)
	return err
}

// ToggleFavourite flips the favourite flag in every cached listing, then
// aligns it on the value returned by the backend.
func (h *Files) ToggleFavourite(ctx context.Context, id int) (bool, error) {
	res, err := h.toggleFavourite(ctx, id)
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

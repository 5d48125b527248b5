package mock

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

func foldersResponse(folders []fileshelf.Folder) map[string]interface{} {
	return map[string]interface{}{"folders": folders}
}

func (b *Backend) listFolders(c *gin.Context) (interface{}, error) {
	parentID, err := optionalID(c, "parent_id")
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return foldersResponse(b.visibleFolders(currentUser(c), func(f *fileshelf.Folder) bool {
		return !f.IsDeleted && (parentID == nil || fileshelf.SameID(f.ParentID, parentID))
	})), nil
}

func (b *Backend) rootFolders(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return foldersResponse(b.visibleFolders(currentUser(c), func(f *fileshelf.Folder) bool {
		return !f.IsDeleted && f.ParentID == nil
	})), nil
}

func (b *Backend) trashFolders(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	return foldersResponse(b.visibleFolders(user, func(f *fileshelf.Folder) bool {
		return f.IsDeleted && b.canManage(user, f)
	})), nil
}

func (b *Backend) favouriteFolders(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return foldersResponse(b.visibleFolders(currentUser(c), func(f *fileshelf.Folder) bool {
		return !f.IsDeleted && f.IsFavourite
	})), nil
}

func (b *Backend) navigateFavouriteFolders(c *gin.Context) (interface{}, error) {
	parentID, err := optionalID(c, "parent_id")
	if err != nil {
		return nil, err
	}
	if parentID == nil {
		return b.favouriteFolders(c)
	}
	return b.listFolders(c)
}

// folderTree nests the visible folders under their parent. Folders whose
// parent is not visible are shown at the top level.
func (b *Backend) folderTree(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	visible := b.visibleFolders(currentUser(c), func(f *fileshelf.Folder) bool {
		return !f.IsDeleted
	})

	children := make(map[int][]fileshelf.Folder)
	known := make(map[int]bool)
	for _, f := range visible {
		known[f.ID] = true
	}

	var roots []fileshelf.Folder
	for _, f := range visible {
		if f.ParentID != nil && known[*f.ParentID] {
			children[*f.ParentID] = append(children[*f.ParentID], f)
			continue
		}
		roots = append(roots, f)
	}

	var nest func(fileshelf.Folder) fileshelf.Folder
	nest = func(f fileshelf.Folder) fileshelf.Folder {
		for _, child := range children[f.ID] {
			f.Children = append(f.Children, nest(child))
		}
		return f
	}

	tree := make([]fileshelf.Folder, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, nest(root))
	}
	return foldersResponse(tree), nil
}

func (b *Backend) folder(c *gin.Context) (*fileshelf.Folder, error) {
	id, err := idParam(c)
	if err != nil {
		return nil, err
	}
	f, ok := b.folders[id]
	if !ok {
		return nil, errors.New("Folder not found", errors.NotFound())
	}
	return f, nil
}

func (b *Backend) managedFolder(c *gin.Context) (*fileshelf.Folder, error) {
	f, err := b.folder(c)
	if err != nil {
		return nil, err
	}
	if !b.canManage(currentUser(c), f) {
		return nil, errors.New("Permission denied", errors.Forbidden())
	}
	return f, nil
}

func (b *Backend) getFolder(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.folder(c)
	if err != nil {
		return nil, err
	}
	if f.IsDeleted || !b.allowed(currentUser(c), f, canRead) {
		return nil, errors.New("Folder not found", errors.NotFound())
	}
	return *f, nil
}

func (b *Backend) createFolder(c *gin.Context) (interface{}, error) {
	var body struct {
		Name     string `json:"name"`
		ParentID *int   `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return nil, errors.New("Folder name is required", errors.BadRequest())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	if err := b.checkTarget(user, body.ParentID); err != nil {
		return nil, err
	}
	return *b.addFolder(body.Name, body.ParentID, user.ID), nil
}

func (b *Backend) renameFolder(c *gin.Context) (interface{}, error) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return nil, errors.New("Folder name is required", errors.BadRequest())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.managedFolder(c)
	if err != nil {
		return nil, err
	}
	f.Name = body.Name
	return *f, nil
}

func (b *Backend) deleteFolder(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.managedFolder(c)
	if err != nil {
		return nil, err
	}
	if f.IsDeleted {
		return nil, errors.New("Folder not found", errors.NotFound())
	}

	now := b.now()
	f.IsDeleted = true
	f.DeletedAt = &now
	return message("Folder moved to trash"), nil
}

func (b *Backend) restoreFolder(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.managedFolder(c)
	if err != nil {
		return nil, err
	}
	if !f.IsDeleted {
		return nil, errors.New("Folder is not in trash", errors.BadRequest())
	}

	f.IsDeleted = false
	f.DeletedAt = nil
	return message("Folder restored successfully"), nil
}

// purgeFolder removes the folder, its sub folders and every file they hold.
func (b *Backend) purgeFolder(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.managedFolder(c)
	if err != nil {
		return nil, err
	}
	if !f.IsDeleted {
		return nil, errors.New("Folder must be in trash before permanent deletion", errors.BadRequest())
	}

	var drop func(id int)
	drop = func(id int) {
		for _, child := range b.folders {
			if child.ParentID != nil && *child.ParentID == id {
				drop(child.ID)
			}
		}
		for _, file := range b.files {
			if file.FolderID != nil && *file.FolderID == id {
				b.dropFile(file.ID)
			}
		}
		delete(b.folders, id)
		for pid, p := range b.permissions {
			if p.Resource() == fileshelf.FolderResource(id) {
				delete(b.permissions, pid)
			}
		}
	}
	drop(f.ID)
	return message("Folder permanently deleted"), nil
}

func (b *Backend) toggleFolderFavourite(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.folder(c)
	if err != nil {
		return nil, err
	}
	if !b.allowed(currentUser(c), f, canRead) {
		return nil, errors.New("Permission denied", errors.Forbidden())
	}

	f.IsFavourite = !f.IsFavourite
	return map[string]interface{}{
		"id":            f.ID,
		"is_faviourite": f.IsFavourite,
		"message":       "Favourite updated",
	}, nil
}

// downloadFolder zips the live files of the folder and its sub folders.
func (b *Backend) downloadFolder(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	f, err := b.folder(c)
	if err == nil && f.IsDeleted {
		err = errors.New("Folder not found", errors.NotFound())
	}
	if err == nil && !b.allowed(user, f, canDownload) {
		err = errors.New("Permission denied", errors.Forbidden())
	}
	if err != nil {
		c.JSON(errors.Code(err), gin.H{"message": err.Error()})
		return
	}

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	var walk func(id int, prefix string) error
	walk = func(id int, prefix string) error {
		for _, file := range b.files {
			if file.IsDeleted || file.FolderID == nil || *file.FolderID != id {
				continue
			}
			w, err := zw.Create(path.Join(prefix, file.Name))
			if err != nil {
				return err
			}
			if _, err := w.Write(b.blobs[file.ID]); err != nil {
				return err
			}
		}
		for _, child := range b.folders {
			if child.IsDeleted || child.ParentID == nil || *child.ParentID != id {
				continue
			}
			if err := walk(child.ID, path.Join(prefix, child.Name)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(f.ID, f.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := zw.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.zip"`, f.Name))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

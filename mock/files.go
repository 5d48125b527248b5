package mock

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

func filesResponse(files []fileshelf.File) map[string]interface{} {
	return map[string]interface{}{"files": files}
}

func (b *Backend) listFiles(c *gin.Context) (interface{}, error) {
	folderID, err := optionalID(c, "folder_id")
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	return filesResponse(b.visibleFiles(user, func(f *fileshelf.File) bool {
		return !f.IsDeleted && (folderID == nil || fileshelf.SameID(f.FolderID, folderID))
	})), nil
}

func (b *Backend) rootFiles(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return filesResponse(b.visibleFiles(currentUser(c), func(f *fileshelf.File) bool {
		return !f.IsDeleted && f.FolderID == nil
	})), nil
}

func (b *Backend) trashFiles(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	return filesResponse(b.visibleFiles(user, func(f *fileshelf.File) bool {
		return f.IsDeleted && b.canManage(user, f)
	})), nil
}

func (b *Backend) favouriteFiles(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return filesResponse(b.visibleFiles(currentUser(c), func(f *fileshelf.File) bool {
		return !f.IsDeleted && f.IsFavourite
	})), nil
}

// navigateFavouriteFiles lists the favourites at the top level, and the
// content of a folder once the user walked into one.
func (b *Backend) navigateFavouriteFiles(c *gin.Context) (interface{}, error) {
	folderID, err := optionalID(c, "folder_id")
	if err != nil {
		return nil, err
	}
	if folderID == nil {
		return b.favouriteFiles(c)
	}
	return b.listFiles(c)
}

func (b *Backend) file(c *gin.Context) (*fileshelf.File, error) {
	id, err := idParam(c)
	if err != nil {
		return nil, err
	}
	f, ok := b.files[id]
	if !ok {
		return nil, errors.New("File not found", errors.NotFound())
	}
	return f, nil
}

// managedFile returns the file of the :id param if the current user may
// modify it.
func (b *Backend) managedFile(c *gin.Context) (*fileshelf.File, error) {
	f, err := b.file(c)
	if err != nil {
		return nil, err
	}
	if !b.canManage(currentUser(c), f) {
		return nil, errors.New("Permission denied", errors.Forbidden())
	}
	return f, nil
}

func (b *Backend) renameFile(c *gin.Context) (interface{}, error) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return nil, errors.New("name is required", errors.BadRequest())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.managedFile(c)
	if err != nil {
		return nil, err
	}
	f.Name = body.Name
	return *f, nil
}

func (b *Backend) deleteFile(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.managedFile(c)
	if err != nil {
		return nil, err
	}
	if f.IsDeleted {
		return nil, errors.New("File not found", errors.NotFound())
	}

	now := b.now()
	f.IsDeleted = true
	f.DeletedAt = &now
	return message("File moved to trash"), nil
}

func (b *Backend) restoreFile(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.managedFile(c)
	if err != nil {
		return nil, err
	}
	if !f.IsDeleted {
		return nil, errors.New("File is not in trash", errors.BadRequest())
	}

	f.IsDeleted = false
	f.DeletedAt = nil
	return message("File restored successfully"), nil
}

func (b *Backend) purgeFile(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.managedFile(c)
	if err != nil {
		return nil, err
	}
	if !f.IsDeleted {
		return nil, errors.New("File must be in trash before permanent deletion", errors.BadRequest())
	}

	b.dropFile(f.ID)
	return message("File permanently deleted"), nil
}

func (b *Backend) dropFile(id int) {
	delete(b.files, id)
	delete(b.blobs, id)
	for pid, p := range b.permissions {
		if p.Resource() == fileshelf.FileResource(id) {
			delete(b.permissions, pid)
		}
	}
}

func (b *Backend) toggleFileFavourite(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.file(c)
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

func (b *Backend) downloadFile(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.file(c)
	if err == nil && f.IsDeleted {
		err = errors.New("File not found", errors.NotFound())
	}
	if err == nil && !b.allowed(currentUser(c), f, canDownload) {
		err = errors.New("Permission denied", errors.Forbidden())
	}
	if err != nil {
		c.JSON(errors.Code(err), gin.H{"message": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, f.Name))
	c.Data(http.StatusOK, f.MimeType, b.blobs[f.ID])
}

type uploaded struct {
	header *multipart.FileHeader
	path   string
}

// readUpload parses the multipart body: `folder_id`, `files` parts and, for
// folder uploads, one `relative_path` value per file.
func readUpload(c *gin.Context) (*int, []uploaded, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, errors.New("invalid multipart body", errors.BadRequest(), errors.WithCause(err))
	}

	var folderID *int
	if v := form.Value["folder_id"]; len(v) > 0 && v[0] != "" && v[0] != "null" {
		id, err := strconv.Atoi(v[0])
		if err != nil {
			return nil, nil, errors.New("invalid folder_id", errors.BadRequest())
		}
		folderID = &id
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, nil, errors.New("No files uploaded", errors.BadRequest())
	}

	paths := form.Value["relative_path"]
	files := make([]uploaded, len(headers))
	for i, h := range headers {
		files[i] = uploaded{header: h}
		if i < len(paths) {
			files[i].path = paths[i]
		}
	}
	return folderID, files, nil
}

func (b *Backend) storeUpload(user fileshelf.User, u uploaded, folderID *int) (*fileshelf.File, error) {
	r, err := u.header.Open()
	if err != nil {
		return nil, errors.New("could not read upload", errors.WithCause(err))
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("could not read upload", errors.WithCause(err))
	}

	mimeType := u.header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return b.addFile(u.header.Filename, mimeType, content, folderID, user.ID), nil
}

func (b *Backend) checkTarget(user fileshelf.User, folderID *int) error {
	if folderID == nil {
		return nil
	}
	folder, ok := b.folders[*folderID]
	if !ok || folder.IsDeleted {
		return errors.New("Folder not found", errors.NotFound())
	}
	if !b.canManage(user, folder) && !b.allowed(user, folder, canRead) {
		return errors.New("Permission denied", errors.Forbidden())
	}
	return nil
}

func (b *Backend) upload(c *gin.Context) (interface{}, error) {
	folderID, parts, err := readUpload(c)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	if err := b.checkTarget(user, folderID); err != nil {
		return nil, err
	}

	files := make([]fileshelf.File, 0, len(parts))
	for _, part := range parts {
		f, err := b.storeUpload(user, part, folderID)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return map[string]interface{}{
		"files":   files,
		"message": fmt.Sprintf("%d file(s) uploaded successfully", len(files)),
	}, nil
}

// uploadFolder rebuilds the directory hierarchy carried by the relative
// paths under the target folder.
func (b *Backend) uploadFolder(c *gin.Context) (interface{}, error) {
	folderID, parts, err := readUpload(c)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	if err := b.checkTarget(user, folderID); err != nil {
		return nil, err
	}

	created := make(map[string]int)
	files := make([]fileshelf.File, 0, len(parts))
	for _, part := range parts {
		relative := part.path
		if relative == "" {
			relative = part.header.Filename
		}
		segments := strings.Split(strings.Trim(relative, "/"), "/")

		parent := folderID
		for i := range segments[:len(segments)-1] {
			key := strings.Join(segments[:i+1], "/")
			id, ok := created[key]
			if !ok {
				id = b.addFolder(segments[i], parent, user.ID).ID
				created[key] = id
			}
			parent = fileshelf.IntPtr(id)
		}

		f, err := b.storeUpload(user, part, parent)
		if err != nil {
			return nil, err
		}
		f.Name = segments[len(segments)-1]
		files = append(files, *f)
	}
	return map[string]interface{}{
		"files":   files,
		"message": fmt.Sprintf("Folder uploaded with %d file(s)", len(files)),
	}, nil
}

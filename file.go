package fileshelf

import (
	"time"
)

type File struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Size        int64      `json:"size"`
	MimeType    string     `json:"mime_type"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   int        `json:"created_by"`
	FolderID    *int       `json:"folder_id"`
	IsFavourite bool       `json:"is_faviourite"`
	IsDeleted   bool       `json:"is_deleted,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (f File) Resource() Resource { return FileResource(f.ID) }
func (f File) Owner() int         { return f.CreatedBy }
func (f File) Parent() *int       { return f.FolderID }

// Item is implemented by File and Folder.
type Item interface {
	Resource() Resource
	Owner() int
	Parent() *int
}

// IntPtr is a small helper for the nullable ids of the API.
func IntPtr(i int) *int { return &i }

// SameID reports whether two nullable ids designate the same folder, nil
// being the root.
func SameID(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

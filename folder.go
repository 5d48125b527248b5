package fileshelf

import (
	"time"
)

// Folder is a node of the folder hierarchy. A nil ParentID means the folder
// lives at the root.
type Folder struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	ParentID    *int       `json:"parent_id"`
	CreatedBy   int        `json:"created_by"`
	IsFavourite bool       `json:"is_faviourite"`
	IsDeleted   bool       `json:"is_deleted,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Only set by the tree endpoint.
	Children []Folder `json:"children,omitempty"`
}

func (f Folder) Resource() Resource { return FolderResource(f.ID) }
func (f Folder) Owner() int         { return f.CreatedBy }
func (f Folder) Parent() *int       { return f.ParentID }

package fileshelf

import (
	"time"
)

// Capabilities are the flags carried by a permission row. CanRead and
// CanDownload are the current contract; the pointer fields are only sent by
// older backends and are omitted when unset.
type Capabilities struct {
	CanRead     bool `json:"can_read"`
	CanDownload bool `json:"can_download"`

	CanEdit   *bool `json:"can_edit,omitempty"`
	CanCreate *bool `json:"can_create,omitempty"`
	Inherit   *bool `json:"inherit,omitempty"`
}

type Permission struct {
	ID           int          `json:"id"`
	UserID       int          `json:"user_id"`
	ResourceID   int          `json:"resource_id"`
	ResourceType ResourceType `json:"resource_type"`

	Capabilities

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (p Permission) Resource() Resource {
	return Resource{Type: p.ResourceType, ID: p.ResourceID}
}

// Grant is the body of a permission assignment.
type Grant struct {
	UserID       int          `json:"user_id"`
	ResourceID   int          `json:"resource_id"`
	ResourceType ResourceType `json:"resource_type"`

	Capabilities
}

func (g Grant) Resource() Resource {
	return Resource{Type: g.ResourceType, ID: g.ResourceID}
}

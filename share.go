package fileshelf

import (
	"time"
)

// SharedResource is a token-addressable share of a file or folder. Its
// lifecycle is independent of the permission rows.
type SharedResource struct {
	ID              int          `json:"id"`
	ResourceID      int          `json:"resource_id"`
	ResourceType    ResourceType `json:"resource_type"`
	SharedBy        int          `json:"shared_by"`
	SharedWith      *int         `json:"shared_with"`
	ShareToken      string       `json:"share_token"`
	PermissionLevel string       `json:"permission_level"`
	ExpiresAt       *time.Time   `json:"expires_at"`
	CreatedAt       time.Time    `json:"created_at"`
}

func (s SharedResource) Resource() Resource {
	return Resource{Type: s.ResourceType, ID: s.ResourceID}
}

func (s SharedResource) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// ShareRequest is the body sent to create a share.
type ShareRequest struct {
	ResourceID      int          `json:"resource_id"`
	ResourceType    ResourceType `json:"resource_type"`
	SharedWith      *int         `json:"shared_with,omitempty"`
	PermissionLevel string       `json:"permission_level,omitempty"`
	ExpiresAt       *time.Time   `json:"expires_at,omitempty"`
}

// SharePatch holds the editable fields of a share. Nil fields are left untouched.
type SharePatch struct {
	SharedWith      *int       `json:"shared_with,omitempty"`
	PermissionLevel *string    `json:"permission_level,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// ShareCreated is the backend answer to a share creation.
type ShareCreated struct {
	ID         int    `json:"id"`
	ShareToken string `json:"share_token"`
	Message    string `json:"message"`
}

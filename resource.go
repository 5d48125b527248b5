package fileshelf

import (
	"fmt"
	"strconv"

	"github.com/bobinette/fileshelf/errors"
)

// ResourceType tags what a permission, a share or a navigation event points at.
// The zero value is not a valid type.
type ResourceType int

const (
	ResourceFile ResourceType = iota + 1
	ResourceFolder
)

func ParseResourceType(s string) (ResourceType, error) {
	switch s {
	case "file":
		return ResourceFile, nil
	case "folder":
		return ResourceFolder, nil
	}
	return 0, errors.New(fmt.Sprintf("invalid resource type %q", s), errors.BadRequest())
}

func (t ResourceType) String() string {
	switch t {
	case ResourceFile:
		return "file"
	case ResourceFolder:
		return "folder"
	}
	return "ResourceType(" + strconv.Itoa(int(t)) + ")"
}

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceFile, ResourceFolder:
		return true
	}
	return false
}

func (t ResourceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.New(fmt.Sprintf("cannot marshal %s", t))
	}
	return []byte(t.String()), nil
}

func (t *ResourceType) UnmarshalText(data []byte) error {
	parsed, err := ParseResourceType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Resource identifies a single file or folder.
type Resource struct {
	Type ResourceType `json:"resource_type"`
	ID   int          `json:"resource_id"`
}

func FileResource(id int) Resource   { return Resource{Type: ResourceFile, ID: id} }
func FolderResource(id int) Resource { return Resource{Type: ResourceFolder, ID: id} }

func (r Resource) String() string {
	return fmt.Sprintf("%s:%d", r.Type, r.ID)
}

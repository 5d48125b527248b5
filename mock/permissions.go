package mock

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

func (b *Backend) item(r fileshelf.Resource) (fileshelf.Item, bool) {
	switch r.Type {
	case fileshelf.ResourceFile:
		f, ok := b.files[r.ID]
		return f, ok
	case fileshelf.ResourceFolder:
		f, ok := b.folders[r.ID]
		return f, ok
	}
	return nil, false
}

// managedItem returns the resource if it exists and the user may manage its
// permissions and shares.
func (b *Backend) managedItem(user fileshelf.User, r fileshelf.Resource) (fileshelf.Item, error) {
	item, ok := b.item(r)
	if !ok {
		return nil, errors.New("Resource not found", errors.NotFound())
	}
	if !b.canManage(user, item) {
		return nil, errors.New("Permission denied", errors.Forbidden())
	}
	return item, nil
}

func (b *Backend) assignPermission(c *gin.Context) (interface{}, error) {
	var g fileshelf.Grant
	if err := c.ShouldBindJSON(&g); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[g.UserID]; !ok {
		return nil, errors.New("User not found", errors.NotFound())
	}
	if _, err := b.managedItem(currentUser(c), g.Resource()); err != nil {
		return nil, err
	}

	p := b.grant(g)
	return map[string]interface{}{
		"id":      p.ID,
		"message": "Permission assigned successfully",
	}, nil
}

func (b *Backend) resourcePermissions(c *gin.Context) (interface{}, error) {
	id, err := strconv.Atoi(c.Query("resource_id"))
	if err != nil {
		return nil, errors.New("invalid resource_id", errors.BadRequest())
	}
	typ, err := fileshelf.ParseResourceType(c.Query("resource_type"))
	if err != nil {
		return nil, err
	}
	r := fileshelf.Resource{Type: typ, ID: id}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.managedItem(currentUser(c), r); err != nil {
		return nil, err
	}

	perms := make([]fileshelf.Permission, 0)
	for _, p := range b.permissions {
		if p.Resource() == r {
			perms = append(perms, *p)
		}
	}
	sortPermissions(perms)
	return map[string]interface{}{"permissions": perms}, nil
}

func (b *Backend) userPermissions(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	perms := make([]fileshelf.Permission, 0)
	for _, p := range b.permissions {
		if p.UserID == user.ID {
			perms = append(perms, *p)
		}
	}
	sortPermissions(perms)
	return map[string]interface{}{"permissions": perms}, nil
}

func (b *Backend) removePermission(c *gin.Context) (interface{}, error) {
	var body struct {
		PermissionID int `json:"permission_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PermissionID <= 0 {
		return nil, errors.New("permission_id is required", errors.BadRequest())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.permissions[body.PermissionID]
	if !ok {
		return nil, errors.New("Permission not found", errors.NotFound())
	}
	if _, err := b.managedItem(currentUser(c), p.Resource()); err != nil {
		return nil, err
	}

	delete(b.permissions, p.ID)
	return message("Permission removed successfully"), nil
}

package mock

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

func (b *Backend) createShare(c *gin.Context) (interface{}, error) {
	var req fileshelf.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	r := fileshelf.Resource{Type: req.ResourceType, ID: req.ResourceID}
	if _, err := b.managedItem(user, r); err != nil {
		return nil, err
	}
	if req.SharedWith != nil {
		if _, ok := b.users[*req.SharedWith]; !ok {
			return nil, errors.New("User not found", errors.NotFound())
		}
	}

	level := req.PermissionLevel
	if level == "" {
		level = "read"
	}

	share := &fileshelf.SharedResource{
		ID:              b.nextID(),
		ResourceID:      r.ID,
		ResourceType:    r.Type,
		SharedBy:        user.ID,
		SharedWith:      copyID(req.SharedWith),
		ShareToken:      strings.ReplaceAll(uuid.NewString(), "-", ""),
		PermissionLevel: level,
		ExpiresAt:       req.ExpiresAt,
		CreatedAt:       b.now(),
	}
	b.shares[share.ID] = share

	return fileshelf.ShareCreated{
		ID:         share.ID,
		ShareToken: share.ShareToken,
		Message:    "Resource shared successfully",
	}, nil
}

func (b *Backend) collectShares(keep func(*fileshelf.SharedResource) bool) []fileshelf.SharedResource {
	shares := make([]fileshelf.SharedResource, 0)
	for _, s := range b.shares {
		if keep(s) {
			shares = append(shares, *s)
		}
	}
	sortShares(shares)
	return shares
}

func (b *Backend) sharedWithMe(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	now := b.now()
	return b.collectShares(func(s *fileshelf.SharedResource) bool {
		return s.SharedWith != nil && *s.SharedWith == user.ID && !s.Expired(now)
	}), nil
}

func (b *Backend) sharedByMe(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	user := currentUser(c)
	return b.collectShares(func(s *fileshelf.SharedResource) bool {
		return s.SharedBy == user.ID
	}), nil
}

// shareFromToken returns the live share of token.
func (b *Backend) shareFromToken(token string) (*fileshelf.SharedResource, error) {
	for _, s := range b.shares {
		if s.ShareToken != token {
			continue
		}
		if s.Expired(b.now()) {
			return nil, errors.New("Share link has expired", errors.WithCode(http.StatusGone))
		}
		return s, nil
	}
	return nil, errors.New("Shared resource not found", errors.NotFound())
}

func (b *Backend) shareByToken(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.shareFromToken(c.Param("token"))
	if err != nil {
		return nil, err
	}
	return *s, nil
}

func (b *Backend) ownShare(c *gin.Context) (*fileshelf.SharedResource, error) {
	id, err := idParam(c)
	if err != nil {
		return nil, err
	}
	s, ok := b.shares[id]
	if !ok {
		return nil, errors.New("Shared resource not found", errors.NotFound())
	}
	if user := currentUser(c); s.SharedBy != user.ID && !user.IsAdmin() {
		return nil, errors.New("Permission denied", errors.Forbidden())
	}
	return s, nil
}

func (b *Backend) updateShare(c *gin.Context) (interface{}, error) {
	var patch fileshelf.SharePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.ownShare(c)
	if err != nil {
		return nil, err
	}
	if patch.SharedWith != nil {
		s.SharedWith = copyID(patch.SharedWith)
	}
	if patch.PermissionLevel != nil {
		s.PermissionLevel = *patch.PermissionLevel
	}
	if patch.ExpiresAt != nil {
		expires := *patch.ExpiresAt
		s.ExpiresAt = &expires
	}
	return message("Shared resource updated successfully"), nil
}

func (b *Backend) deleteShare(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.ownShare(c)
	if err != nil {
		return nil, err
	}
	delete(b.shares, s.ID)
	return message("Shared resource deleted successfully"), nil
}

// downloadShare serves the shared file without authentication. Folder shares
// cannot be downloaded through a link.
func (b *Backend) downloadShare(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.shareFromToken(c.Param("token"))
	if err == nil && s.ResourceType != fileshelf.ResourceFile {
		err = errors.New("Only files can be downloaded from a share link", errors.BadRequest())
	}
	var f *fileshelf.File
	if err == nil {
		var ok bool
		f, ok = b.files[s.ResourceID]
		if !ok || f.IsDeleted {
			err = errors.New("File not found", errors.NotFound())
		}
	}
	if err != nil {
		c.JSON(errors.Code(err), gin.H{"message": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, f.Name))
	c.Data(http.StatusOK, f.MimeType, b.blobs[f.ID])
}

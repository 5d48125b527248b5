package hooks

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients/permissions"
	"github.com/bobinette/fileshelf/query"
)

type PermissionsAPI interface {
	Assign(ctx context.Context, g fileshelf.Grant) (permissions.Assigned, error)
	ForResource(ctx context.Context, r fileshelf.Resource) ([]fileshelf.Permission, error)
	ForUser(ctx context.Context) ([]fileshelf.Permission, error)
	Remove(ctx context.Context, permissionID int) error
}

type removePermissionRequest struct {
	ID       int
	Resource fileshelf.Resource
}

type Permissions struct {
	deps Deps
	api  PermissionsAPI

	assign endpoint.Endpoint
	remove endpoint.Endpoint
}

func NewPermissions(deps Deps, api PermissionsAPI) *Permissions {
	deps = deps.withDefaults()
	h := &Permissions{deps: deps, api: api}

	h.assign = deps.mutation("permissions.assign", func(ctx context.Context, request interface{}) (interface{}, error) {
		return api.Assign(ctx, request.(fileshelf.Grant))
	}, func(request, _ interface{}) []query.Key {
		return []query.Key{PermissionsKey(request.(fileshelf.Grant).Resource()), UserPermissionsKey}
	})

	h.remove = deps.mutation("permissions.remove", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.Remove(ctx, request.(removePermissionRequest).ID)
	}, func(request, _ interface{}) []query.Key {
		r := request.(removePermissionRequest).Resource
		if !r.Type.Valid() {
			return []query.Key{AllPermissionsKey, UserPermissionsKey}
		}
		return []query.Key{PermissionsKey(r), UserPermissionsKey}
	})

	return h
}

// ForResource lists the rows granted on r. It is disabled for an invalid
// resource.
func (h *Permissions) ForResource(ctx context.Context, r fileshelf.Resource) ([]fileshelf.Permission, error) {
	enabled := h.deps.enabled() && r.Type.Valid() && r.ID > 0
	return query.Fetch(ctx, h.deps.Cache, PermissionsKey(r), enabled, func(ctx context.Context) ([]fileshelf.Permission, error) {
		return h.api.ForResource(ctx, r)
	})
}

// Mine lists the rows of the current user.
func (h *Permissions) Mine(ctx context.Context) ([]fileshelf.Permission, error) {
	return query.Fetch(ctx, h.deps.Cache, UserPermissionsKey, h.deps.enabled(), h.api.ForUser)
}

func (h *Permissions) Assign(ctx context.Context, g fileshelf.Grant) (permissions.Assigned, error) {
	res, err := h.assign(ctx, g)
	if err != nil {
		return permissions.Assigned{}, err
	}
	return res.(permissions.Assigned), nil
}

// Remove deletes a row. r is the resource it was granted on, used to
// invalidate its listing; a zero r invalidates every resource listing.
func (h *Permissions) Remove(ctx context.Context, permissionID int, r fileshelf.Resource) error {
	_, err := h.remove(ctx, removePermissionRequest{ID: permissionID, Resource: r})
	return err
}

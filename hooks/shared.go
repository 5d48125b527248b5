package hooks

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/query"
)

type SharedAPI interface {
	Create(ctx context.Context, r fileshelf.ShareRequest) (fileshelf.ShareCreated, error)
	WithMe(ctx context.Context) ([]fileshelf.SharedResource, error)
	ByMe(ctx context.Context) ([]fileshelf.SharedResource, error)
	ByToken(ctx context.Context, token string) (fileshelf.SharedResource, error)
	Update(ctx context.Context, id int, patch fileshelf.SharePatch) error
	Delete(ctx context.Context, id int) error
	Download(ctx context.Context, token string) (clients.Payload, error)
}

type updateShareRequest struct {
	ID    int
	Patch fileshelf.SharePatch
}

type Shared struct {
	deps Deps
	api  SharedAPI

	create   endpoint.Endpoint
	update   endpoint.Endpoint
	remove   endpoint.Endpoint
	download endpoint.Endpoint
}

func NewShared(deps Deps, api SharedAPI) *Shared {
	deps = deps.withDefaults()
	h := &Shared{deps: deps, api: api}

	h.create = deps.mutation("shares.create", func(ctx context.Context, request interface{}) (interface{}, error) {
		return api.Create(ctx, request.(fileshelf.ShareRequest))
	}, Keys(SharedByMeKey))

	h.update = deps.mutation("shares.update", func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(updateShareRequest)
		return nil, api.Update(ctx, req.ID, req.Patch)
	}, Keys(SharedByMeKey, SharedWithMeKey))

	h.remove = deps.mutation("shares.delete", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.Delete(ctx, request.(int))
	}, Keys(SharedByMeKey, SharedWithMeKey))

	h.download = deps.mutation("shares.download", func(ctx context.Context, request interface{}) (interface{}, error) {
		return api.Download(ctx, request.(string))
	}, nil)

	return h
}

func (h *Shared) WithMe(ctx context.Context) ([]fileshelf.SharedResource, error) {
	return query.Fetch(ctx, h.deps.Cache, SharedWithMeKey, h.deps.enabled(), h.api.WithMe)
}

func (h *Shared) ByMe(ctx context.Context) ([]fileshelf.SharedResource, error) {
	return query.Fetch(ctx, h.deps.Cache, SharedByMeKey, h.deps.enabled(), h.api.ByMe)
}

// ByToken looks a share up. It needs no session, only a token.
func (h *Shared) ByToken(ctx context.Context, token string) (fileshelf.SharedResource, error) {
	return query.Fetch(ctx, h.deps.Cache, SharedResourceKey(token), token != "", func(ctx context.Context) (fileshelf.SharedResource, error) {
		return h.api.ByToken(ctx, token)
	})
}

func (h *Shared) Create(ctx context.Context, r fileshelf.ShareRequest) (fileshelf.ShareCreated, error) {
	res, err := h.create(ctx, r)
	if err != nil {
		return fileshelf.ShareCreated{}, err
	}
	return res.(fileshelf.ShareCreated), nil
}

func (h *Shared) Update(ctx context.Context, id int, patch fileshelf.SharePatch) error {
	_, err := h.update(ctx, updateShareRequest{ID: id, Patch: patch})
	return err
}

func (h *Shared) Delete(ctx context.Context, id int) error {
	_, err := h.remove(ctx, id)
	return err
}

func (h *Shared) Download(ctx context.Context, token string) (clients.Payload, error) {
	res, err := h.download(ctx, token)
	if err != nil {
		return clients.Payload{}, err
	}
	return res.(clients.Payload), nil
}

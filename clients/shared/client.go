package shared

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/errors"
)

type Client struct {
	client *clients.Client
}

func NewClient(c *clients.Client) *Client {
	return &Client{client: c}
}

func (c *Client) Create(ctx context.Context, r fileshelf.ShareRequest) (fileshelf.ShareCreated, error) {
	if !r.ResourceType.Valid() {
		return fileshelf.ShareCreated{}, errors.New("invalid resource type", errors.BadRequest())
	}

	var res fileshelf.ShareCreated
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/shared",
		Body:   r,
	}, &res)
	return res, err
}

func (c *Client) list(ctx context.Context, path string) ([]fileshelf.SharedResource, error) {
	var res []fileshelf.SharedResource
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   path,
	}, &res)
	return res, err
}

func (c *Client) WithMe(ctx context.Context) ([]fileshelf.SharedResource, error) {
	return c.list(ctx, "/shared/with-me")
}

func (c *Client) ByMe(ctx context.Context) ([]fileshelf.SharedResource, error) {
	return c.list(ctx, "/shared/by-me")
}

// ByToken looks a share up without authentication.
func (c *Client) ByToken(ctx context.Context, token string) (fileshelf.SharedResource, error) {
	if token == "" {
		return fileshelf.SharedResource{}, errors.New("empty share token", errors.BadRequest())
	}

	var res fileshelf.SharedResource
	err := c.client.JSON(ctx, clients.Request{
		Method:    http.MethodGet,
		Path:      "/shared/token/" + url.PathEscape(token),
		Anonymous: true,
	}, &res)
	return res, err
}

func (c *Client) Update(ctx context.Context, id int, patch fileshelf.SharePatch) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/shared/%d", id),
		Body:   patch,
	}, nil)
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/shared/%d", id),
	}, nil)
}

// Download fetches the shared file without authentication.
func (c *Client) Download(ctx context.Context, token string) (clients.Payload, error) {
	if token == "" {
		return clients.Payload{}, errors.New("empty share token", errors.BadRequest())
	}

	return c.client.Download(ctx, clients.Request{
		Method:    http.MethodGet,
		Path:      "/shared/download/" + url.PathEscape(token),
		Anonymous: true,
	}, "shared-file-"+token, clients.FileDownloadMessages)
}

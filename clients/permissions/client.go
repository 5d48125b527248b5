package permissions

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/errors"
)

// Assigned is the backend answer to a permission assignment.
type Assigned struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type Client struct {
	client *clients.Client
}

func NewClient(c *clients.Client) *Client {
	return &Client{client: c}
}

// Assign creates or replaces the permission row of g.UserID on g's resource.
func (c *Client) Assign(ctx context.Context, g fileshelf.Grant) (Assigned, error) {
	if !g.ResourceType.Valid() {
		return Assigned{}, errors.New("invalid resource type", errors.BadRequest())
	}

	var res Assigned
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/permissions/assign",
		Body:   g,
	}, &res)
	return res, err
}

type permissionsResponse struct {
	Permissions []fileshelf.Permission `json:"permissions"`
}

// ForResource lists the permission rows granted on r.
func (c *Client) ForResource(ctx context.Context, r fileshelf.Resource) ([]fileshelf.Permission, error) {
	if !r.Type.Valid() {
		return nil, errors.New("invalid resource type", errors.BadRequest())
	}

	query := url.Values{}
	query.Set("resource_id", strconv.Itoa(r.ID))
	query.Set("resource_type", r.Type.String())

	var res permissionsResponse
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   "/permissions/resource",
		Query:  query,
	}, &res)
	return res.Permissions, err
}

// ForUser lists the permission rows of the current user.
func (c *Client) ForUser(ctx context.Context) ([]fileshelf.Permission, error) {
	var res permissionsResponse
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   "/permissions/user",
	}, &res)
	return res.Permissions, err
}

func (c *Client) Remove(ctx context.Context, permissionID int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodDelete,
		Path:   "/permissions/remove",
		Body:   map[string]int{"permission_id": permissionID},
	}, nil)
}

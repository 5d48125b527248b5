package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/errors"
)

// LoginResponse is the answer to a successful login.
type LoginResponse struct {
	Token string         `json:"token"`
	User  fileshelf.User `json:"user"`
}

type Registration struct {
	Username string         `json:"username"`
	Password string         `json:"password"`
	Role     fileshelf.Role `json:"role"`
}

type Client struct {
	client *clients.Client
}

func NewClient(c *clients.Client) *Client {
	return &Client{client: c}
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var res LoginResponse
	err := c.client.JSON(ctx, clients.Request{
		Method:    http.MethodPost,
		Path:      "/auth/login",
		Body:      body,
		Anonymous: true,
	}, &res)
	if err != nil {
		return LoginResponse{}, err
	}

	if res.Token == "" {
		return LoginResponse{}, errors.New("login response carries no token", errors.Unauthorized())
	}
	return res, nil
}

func (c *Client) Register(ctx context.Context, r Registration) (fileshelf.User, error) {
	if !r.Role.Valid() {
		return fileshelf.User{}, errors.New(fmt.Sprintf("invalid role %q", r.Role), errors.BadRequest())
	}

	var user fileshelf.User
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   r,
	}, &user)
	return user, err
}

func (c *Client) Users(ctx context.Context) ([]fileshelf.User, error) {
	var users []fileshelf.User
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   "/auth/users",
	}, &users)
	return users, err
}

func (c *Client) UpdateUser(ctx context.Context, id int, patch fileshelf.UserPatch) error {
	if patch.Role != nil && !patch.Role.Valid() {
		return errors.New(fmt.Sprintf("invalid role %q", *patch.Role), errors.BadRequest())
	}

	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/auth/users/%d", id),
		Body:   patch,
	}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/auth/users/%d", id),
	}, nil)
}

package hooks

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients/auth"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/query"
)

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (auth.LoginResponse, error)
	Register(ctx context.Context, r auth.Registration) (fileshelf.User, error)
	Users(ctx context.Context) ([]fileshelf.User, error)
	UpdateUser(ctx context.Context, id int, patch fileshelf.UserPatch) error
	DeleteUser(ctx context.Context, id int) error
}

// SessionManager is the session lifecycle driven by login and logout.
type SessionManager interface {
	Session
	Init(token string, user fileshelf.User) error
	Teardown() error
	User() (fileshelf.User, bool)
}

type loginRequest struct {
	Username string
	Password string
}

type updateUserRequest struct {
	ID    int
	Patch fileshelf.UserPatch
}

// Users are the hooks of authentication and user management.
type Users struct {
	deps    Deps
	api     AuthAPI
	session SessionManager

	login    endpoint.Endpoint
	register endpoint.Endpoint
	update   endpoint.Endpoint
	remove   endpoint.Endpoint
}

func NewUsers(deps Deps, api AuthAPI, session SessionManager) *Users {
	if deps.Session == nil {
		deps.Session = session
	}
	deps = deps.withDefaults()
	h := &Users{deps: deps, api: api, session: session}

	h.login = deps.mutation("auth.login", func(ctx context.Context, request interface{}) (interface{}, error) {
		creds := request.(loginRequest)
		res, err := api.Login(ctx, creds.Username, creds.Password)
		if err != nil {
			return nil, err
		}
		// Whatever was cached belongs to the previous user.
		deps.Cache.Clear()
		if err := session.Init(res.Token, res.User); err != nil {
			return nil, err
		}
		return res.User, nil
	}, nil)

	h.register = deps.mutation("users.create", func(ctx context.Context, request interface{}) (interface{}, error) {
		return api.Register(ctx, request.(auth.Registration))
	}, Keys(UsersKey))

	h.update = deps.mutation("users.update", func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(updateUserRequest)
		return nil, api.UpdateUser(ctx, req.ID, req.Patch)
	}, Keys(UsersKey))

	h.remove = deps.mutation("users.delete", func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, api.DeleteUser(ctx, request.(int))
	}, Keys(UsersKey))

	return h
}

// Login authenticates against the backend and starts the session.
func (h *Users) Login(ctx context.Context, username, password string) (fileshelf.User, error) {
	if username == "" || password == "" {
		err := errors.New("username and password are required", errors.BadRequest())
		h.deps.Notifier.Notify("auth.login", err)
		return fileshelf.User{}, err
	}

	res, err := h.login(ctx, loginRequest{Username: username, Password: password})
	if err != nil {
		return fileshelf.User{}, err
	}
	return res.(fileshelf.User), nil
}

// Logout ends the session and drops every cached query.
func (h *Users) Logout() error {
	err := h.session.Teardown()
	h.deps.Cache.Clear()
	return err
}

// Me returns the user of the session.
func (h *Users) Me() (fileshelf.User, error) {
	user, ok := h.session.User()
	if !ok {
		return fileshelf.User{}, errors.New("not logged in", errors.Unauthorized())
	}
	return user, nil
}

// List returns every user. Only super admins get an answer from the backend.
func (h *Users) List(ctx context.Context) ([]fileshelf.User, error) {
	return query.Fetch(ctx, h.deps.Cache, UsersKey, h.deps.enabled(), h.api.Users)
}

func (h *Users) Register(ctx context.Context, r auth.Registration) (fileshelf.User, error) {
	res, err := h.register(ctx, r)
	if err != nil {
		return fileshelf.User{}, err
	}
	return res.(fileshelf.User), nil
}

func (h *Users) Update(ctx context.Context, id int, patch fileshelf.UserPatch) error {
	_, err := h.update(ctx, updateUserRequest{ID: id, Patch: patch})
	return err
}

func (h *Users) Delete(ctx context.Context, id int) error {
	_, err := h.remove(ctx, id)
	return err
}

package mock

import (
	"github.com/gin-gonic/gin"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

func (b *Backend) login(c *gin.Context) (interface{}, error) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	password, ok := b.passwords[body.Username]
	if !ok || password != body.Password {
		return nil, errors.New("Invalid credentials", errors.Unauthorized())
	}

	for _, user := range b.users {
		if user.Username != body.Username {
			continue
		}
		token, err := b.encoder.Encode(user)
		if err != nil {
			return nil, errors.New("could not sign token", errors.WithCause(err))
		}
		return map[string]interface{}{
			"token": token,
			"user":  user,
		}, nil
	}
	return nil, errors.New("Invalid credentials", errors.Unauthorized())
}

func (b *Backend) register(c *gin.Context) (interface{}, error) {
	var body struct {
		Username string         `json:"username"`
		Password string         `json:"password"`
		Role     fileshelf.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}
	if body.Username == "" || body.Password == "" || !body.Role.Valid() {
		return nil, errors.New("username, password and role are required", errors.BadRequest())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.passwords[body.Username]; ok {
		return nil, errors.New("Username already exists", errors.Conflict())
	}
	return b.addUser(body.Username, body.Password, body.Role), nil
}

func (b *Backend) listUsers(c *gin.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	users := make([]fileshelf.User, 0, len(b.users))
	for _, user := range b.users {
		users = append(users, user)
	}
	sortUsers(users)
	return users, nil
}

func (b *Backend) updateUser(c *gin.Context) (interface{}, error) {
	id, err := idParam(c)
	if err != nil {
		return nil, err
	}

	var patch fileshelf.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, errors.New("invalid role", errors.BadRequest())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user, ok := b.users[id]
	if !ok {
		return nil, errors.New("User not found", errors.NotFound())
	}

	password := b.passwords[user.Username]
	if patch.Username != nil && *patch.Username != user.Username {
		if _, taken := b.passwords[*patch.Username]; taken {
			return nil, errors.New("Username already exists", errors.Conflict())
		}
		delete(b.passwords, user.Username)
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		password = *patch.Password
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	b.passwords[user.Username] = password
	b.users[id] = user
	return message("User updated successfully"), nil
}

func (b *Backend) deleteUser(c *gin.Context) (interface{}, error) {
	id, err := idParam(c)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user, ok := b.users[id]
	if !ok {
		return nil, errors.New("User not found", errors.NotFound())
	}
	if user.ID == currentUser(c).ID {
		return nil, errors.New("You cannot delete your own account", errors.BadRequest())
	}

	delete(b.users, id)
	delete(b.passwords, user.Username)
	return message("User deleted successfully"), nil
}

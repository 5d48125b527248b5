// Package session holds the authenticated state of the client: the bearer
// token and the snapshot of the user it belongs to.
//
// A Session is created once per process, restored from its Store, set up on
// login with Init and torn down on logout with Teardown. Everything that
// needs the token (API clients, read hooks) is handed the Session explicitly.
package session

import (
	"sync"
	"time"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/jwt"
)

// Store persists the session between processes.
type Store interface {
	Load() (token string, user fileshelf.User, err error)
	Save(token string, user fileshelf.User) error
	Clear() error
}

type Session struct {
	mu    sync.RWMutex
	token string
	user  fileshelf.User

	store Store
	now   func() time.Time

	listeners []func()
}

func New(store Store) *Session {
	return &Session{
		store: store,
		now:   time.Now,
	}
}

// Restore loads the persisted token and user, if any. An expired token is
// dropped from the store.
func (s *Session) Restore() error {
	token, user, err := s.store.Load()
	if err != nil {
		return errors.New("could not restore session", errors.WithCause(err))
	}

	if token != "" && jwt.Expired(token, s.now()) {
		return s.Teardown()
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Init starts a session after a successful login.
func (s *Session) Init(token string, user fileshelf.User) error {
	if token == "" {
		return errors.New("cannot start a session without token", errors.Unauthorized())
	}

	if err := s.store.Save(token, user); err != nil {
		return errors.New("could not save session", errors.WithCause(err))
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Teardown ends the session and notifies the listeners registered with
// OnTeardown.
func (s *Session) Teardown() error {
	s.mu.Lock()
	s.token = ""
	s.user = fileshelf.User{}
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, f := range listeners {
		f()
	}

	if err := s.store.Clear(); err != nil {
		return errors.New("could not clear session", errors.WithCause(err))
	}
	return nil
}

// OnTeardown registers f to be called on logout.
func (s *Session) OnTeardown(f func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, f)
	s.mu.Unlock()
}

// Token returns the bearer token. ok is false when there is none or when it
// has expired.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" || jwt.Expired(token, s.now()) {
		return "", false
	}
	return token, true
}

func (s *Session) User() (fileshelf.User, bool) {
	if _, ok := s.Token(); !ok {
		return fileshelf.User{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

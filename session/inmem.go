package session

import (
	"sync"

	"github.com/bobinette/fileshelf"
)

// InMemStore keeps the session for the lifetime of the process only.
type InMemStore struct {
	mu    sync.Locker
	token string
	user  fileshelf.User
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		mu: &sync.Mutex{},
	}
}

func (s *InMemStore) Load() (string, fileshelf.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token, s.user, nil
}

func (s *InMemStore) Save(token string, user fileshelf.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user
	return nil
}

func (s *InMemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = fileshelf.User{}
	return nil
}

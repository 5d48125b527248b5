package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	"github.com/bobinette/fileshelf"
)

var (
	sessionBucket = []byte("session")

	tokenKey = []byte("token")
	userKey  = []byte("user")
)

// SessionStore persists the token and the user snapshot, the two values the
// browser dashboard kept in local storage.
type SessionStore struct {
	Driver *Driver
}

func (s *SessionStore) Load() (string, fileshelf.User, error) {
	var token string
	var user fileshelf.User

	err := s.Driver.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)

		token = string(bucket.Get(tokenKey))

		data := bucket.Get(userKey)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &user)
	})
	if err != nil {
		return "", fileshelf.User{}, err
	}

	return token, user, nil
}

func (s *SessionStore) Save(token string, user fileshelf.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return s.Driver.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if err := bucket.Put(tokenKey, []byte(token)); err != nil {
			return err
		}
		return bucket.Put(userKey, data)
	})
}

func (s *SessionStore) Clear() error {
	return s.Driver.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if err := bucket.Delete(tokenKey); err != nil {
			return err
		}
		return bucket.Delete(userKey)
	})
}

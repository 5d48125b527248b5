// Package bolt persists the session in a bolt file, where the browser
// dashboard used local storage.
package bolt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bobinette/fileshelf/errors"
)

// lockTimeout bounds the wait on the file lock held by another process.
const lockTimeout = time.Second

// Driver owns the bolt file. Bolt locks it, so only one process at a time
// can hold the session.
type Driver struct {
	db   *bolt.DB
	path string
}

// Open opens the database at path, creating its directory and buckets
// when needed.
func (d *Driver) Open(path string) error {
	if d.db != nil {
		return errors.New(fmt.Sprintf("session store already open at %s", d.path), errors.Conflict())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.New("could not create the session directory", errors.WithCause(err))
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: lockTimeout})
	if err == bolt.ErrTimeout {
		return errors.New(fmt.Sprintf("%s is used by another fileshelf process", path), errors.Conflict(), errors.WithCause(err))
	} else if err != nil {
		return errors.New(fmt.Sprintf("could not open %s", path), errors.WithCause(err))
	}

	if err := db.Update(ensureBuckets(sessionBucket)); err != nil {
		db.Close()
		return errors.New("could not initialise the session store", errors.WithCause(err))
	}

	d.db = db
	d.path = path
	return nil
}

func ensureBuckets(names ...[]byte) func(*bolt.Tx) error {
	return func(tx *bolt.Tx) error {
		for _, name := range names {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}
}

func (d *Driver) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

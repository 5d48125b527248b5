// Package hooks binds the API clients to the query cache. Read hooks serve
// listings from the cache and are disabled without a session; write hooks
// are go-kit endpoints that invalidate a fixed set of keys on success.
package hooks

import (
	"github.com/bobinette/fileshelf/log"
	"github.com/bobinette/fileshelf/query"
)

// Session tells whether read hooks may call the backend.
type Session interface {
	Authenticated() bool
}

// Deps are shared by every hook.
type Deps struct {
	Session  Session
	Cache    *query.Cache
	Notifier Notifier
	Logger   log.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = NotifierFunc(func(string, error) {})
	}
	if d.Logger == nil {
		d.Logger = log.Discard()
	}
	return d
}

func (d Deps) enabled() bool {
	return d.Session != nil && d.Session.Authenticated()
}

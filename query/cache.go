// Package query is the process-wide cache of API reads. Entries are keyed by
// entity and parameters, marked stale by invalidation and refetched on the
// next read.
package query

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/log"
)

// ErrDisabled is returned by Fetch for a disabled query. No call is made.
var ErrDisabled = errors.New("query disabled", errors.Unauthorized())

type EventKind int

const (
	Invalidated EventKind = iota + 1
	Patched
	Removed
	Stored
)

func (k EventKind) String() string {
	switch k {
	case Invalidated:
		return "invalidated"
	case Patched:
		return "patched"
	case Removed:
		return "removed"
	case Stored:
		return "stored"
	}
	return "unknown"
}

type Event struct {
	Key  Key
	Kind EventKind
}

type entry struct {
	key       Key
	data      interface{}
	updatedAt time.Time
	stale     bool
}

// flight tracks a fetch in progress so that an invalidation happening during
// the call marks its result stale.
type flight struct {
	key   Key
	stale bool
}

type subscriber struct {
	prefix Key
	fn     func(Event)
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	flights map[string]*flight

	subscribers map[int]subscriber
	nextSub     int

	group     singleflight.Group
	staleTime time.Duration
	now       func() time.Time
	logger    log.Logger
}

type Option func(*Cache)

// WithStaleTime makes entries stale d after they were fetched. The default,
// 0, keeps them fresh until invalidated.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) { c.staleTime = d }
}

func WithLogger(l log.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries:     make(map[string]*entry),
		flights:     make(map[string]*flight),
		subscribers: make(map[int]subscriber),
		now:         time.Now,
		logger:      log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) fresh(e *entry) bool {
	if e.stale {
		return false
	}
	return c.staleTime <= 0 || c.now().Sub(e.updatedAt) < c.staleTime
}

// Fetch returns the data of key. Fresh data is served from the cache; stale
// or missing entries call fn, concurrent calls for the same key sharing a
// single call. Errors are returned as is and never cached.
//
// The shared call does not stop when ctx is cancelled: the caller gets
// ctx.Err() while the others keep waiting for the result.
func (c *Cache) Fetch(ctx context.Context, key Key, enabled bool, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	if !enabled {
		return nil, ErrDisabled
	}

	id := key.String()
	c.mu.Lock()
	if e, ok := c.entries[id]; ok && c.fresh(e) {
		c.mu.Unlock()
		return e.data, nil
	}
	c.mu.Unlock()

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (interface{}, error) {
		return c.load(shared, key, fn)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) load(ctx context.Context, key Key, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	id := key.String()
	f := &flight{key: key}
	c.mu.Lock()
	c.flights[id] = f
	c.mu.Unlock()

	c.logger.WithField("key", id).Debug("fetching query")
	data, err := fn(ctx)

	c.mu.Lock()
	delete(c.flights, id)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	subs := c.put(key, data, f.stale)
	c.mu.Unlock()

	notify(subs, Event{Key: key, Kind: Stored})
	return data, nil
}

// Get returns the cached data of key, fresh or not.
func (c *Cache) Get(key Key) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// Stale reports whether key is missing or must be refetched.
func (c *Cache) Stale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	return !ok || !c.fresh(e)
}

func (c *Cache) store(key Key, data interface{}, stale bool) {
	c.mu.Lock()
	subs := c.put(key, data, stale)
	c.mu.Unlock()

	notify(subs, Event{Key: key, Kind: Stored})
}

// put must be called with c.mu held.
func (c *Cache) put(key Key, data interface{}, stale bool) []subscriber {
	c.entries[key.String()] = &entry{key: key, data: data, updatedAt: c.now(), stale: stale}
	return c.matching(key)
}

// Replace sets the value of key when it is cached, keeping its freshness. A
// key dropped in the meantime, by Remove or Clear, stays absent.
func (c *Cache) Replace(key Key, data interface{}) bool {
	c.mu.Lock()
	e, ok := c.entries[key.String()]
	if !ok {
		c.mu.Unlock()
		return false
	}
	e.data = data
	subs := c.matching(key)
	c.mu.Unlock()

	notify(subs, Event{Key: key, Kind: Patched})
	return true
}

// SetData replaces the value of key by fn(old). ok is false when the key is
// not cached. The freshness of the entry is kept.
func (c *Cache) SetData(key Key, fn func(old interface{}, ok bool) interface{}) {
	id := key.String()

	c.mu.Lock()
	e, ok := c.entries[id]
	var old interface{}
	if ok {
		old = e.data
	}
	data := fn(old, ok)
	if ok {
		e.data = data
	} else {
		c.entries[id] = &entry{key: key, data: data, updatedAt: c.now()}
	}
	subs := c.matching(key)
	c.mu.Unlock()

	notify(subs, Event{Key: key, Kind: Patched})
}

// Patch replaces the value of every entry matching prefix by fn(key, old).
// It returns the patched keys.
func (c *Cache) Patch(prefix Key, fn func(key Key, old interface{}) interface{}) []Key {
	var events []Event
	var subs [][]subscriber

	c.mu.Lock()
	for _, e := range c.entries {
		if !e.key.HasPrefix(prefix) {
			continue
		}
		e.data = fn(e.key, e.data)
		events = append(events, Event{Key: e.key, Kind: Patched})
		subs = append(subs, c.matching(e.key))
	}
	c.mu.Unlock()

	keys := make([]Key, len(events))
	for i, ev := range events {
		keys[i] = ev.Key
		notify(subs[i], ev)
	}
	return keys
}

// Invalidate marks every entry matching prefix stale, fetches in progress
// included. Other entries are untouched.
func (c *Cache) Invalidate(prefix Key) []Key {
	var keys []Key
	var subs [][]subscriber

	c.mu.Lock()
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
			keys = append(keys, e.key)
			subs = append(subs, c.matching(e.key))
		}
	}
	for _, f := range c.flights {
		if f.key.HasPrefix(prefix) {
			f.stale = true
		}
	}
	c.mu.Unlock()

	c.logger.WithField("prefix", prefix.String()).Debugf("invalidated %d queries", len(keys))
	for i, k := range keys {
		notify(subs[i], Event{Key: k, Kind: Invalidated})
	}
	return keys
}

// Remove drops every entry matching prefix.
func (c *Cache) Remove(prefix Key) []Key {
	var keys []Key
	var subs [][]subscriber

	c.mu.Lock()
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, id)
			keys = append(keys, e.key)
			subs = append(subs, c.matching(e.key))
		}
	}
	for _, f := range c.flights {
		if f.key.HasPrefix(prefix) {
			f.stale = true
		}
	}
	c.mu.Unlock()

	for i, k := range keys {
		notify(subs[i], Event{Key: k, Kind: Removed})
	}
	return keys
}

// Keys lists the cached keys matching prefix.
func (c *Cache) Keys(prefix Key) []Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []Key
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Clear empties the cache, on logout.
func (c *Cache) Clear() {
	c.Remove(nil)
}

// Subscribe calls fn for every event on a key matching prefix. fn is called
// synchronously, outside of the cache lock. The returned func unsubscribes.
func (c *Cache) Subscribe(prefix Key, fn func(Event)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = subscriber{prefix: prefix, fn: fn}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// matching must be called with c.mu held.
func (c *Cache) matching(key Key) []subscriber {
	var subs []subscriber
	for _, s := range c.subscribers {
		if key.HasPrefix(s.prefix) {
			subs = append(subs, s)
		}
	}
	return subs
}

func notify(subs []subscriber, ev Event) {
	for _, s := range subs {
		s.fn(ev)
	}
}

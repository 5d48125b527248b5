package navigation

import (
	"sync"

	"github.com/bobinette/fileshelf"
)

// Event is one of FolderSelected, ViewChanged, PermissionRequested and
// SessionEnded.
type Event interface {
	event()
}

// FolderSelected is published when a view enters a folder or goes back to
// the root (nil FolderID).
type FolderSelected struct {
	View     View
	FolderID *int
}

type ViewChanged struct {
	From View
	To   View
}

// PermissionRequested asks for the permission editor of a resource.
type PermissionRequested struct {
	Resource fileshelf.Resource
}

type SessionEnded struct{}

func (FolderSelected) event()      {}
func (ViewChanged) event()         {}
func (PermissionRequested) event() {}
func (SessionEnded) event()        {}

// Bus delivers events synchronously to its subscribers, in subscription
// order.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]func(Event)
	order       []int
	next        int
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a func removing it.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subscribers[id] = fn
	b.order = append(b.order, id)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
		for i, o := range b.order {
			if o == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	fns := make([]func(Event), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subscribers[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

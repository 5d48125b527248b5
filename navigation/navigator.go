// Package navigation holds the folder navigation of each top-level view and
// the bus carrying cross-view events.
package navigation

import (
	"fmt"
	"sync"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

type View int

const (
	Dashboard View = iota + 1
	Favourites
	Trash
	Users
)

var views = []View{Dashboard, Favourites, Trash, Users}

func ParseView(s string) (View, error) {
	for _, v := range views {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, errors.New(fmt.Sprintf("unknown view %q", s), errors.BadRequest())
}

func (v View) String() string {
	switch v {
	case Dashboard:
		return "dashboard"
	case Favourites:
		return "favourites"
	case Trash:
		return "trash"
	case Users:
		return "users"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// State is the position of a view: the root (nil) or inside a folder.
type State struct {
	FolderID *int
}

func (s State) Root() bool {
	return s.FolderID == nil
}

func (s State) String() string {
	if s.FolderID == nil {
		return "root"
	}
	return fmt.Sprintf("inside(%d)", *s.FolderID)
}

// Navigator tracks the current view and the state of every view. It
// publishes its transitions on the bus.
type Navigator struct {
	mu     sync.Mutex
	view   View
	states map[View]State
	bus    *Bus
}

// NewNavigator starts on the dashboard root. The navigator resets itself
// when a SessionEnded event goes through bus.
func NewNavigator(bus *Bus) *Navigator {
	n := &Navigator{
		view:   Dashboard,
		states: make(map[View]State),
		bus:    bus,
	}
	if bus != nil {
		bus.Subscribe(func(ev Event) {
			if _, ok := ev.(SessionEnded); ok {
				n.Reset()
			}
		})
	}
	return n
}

func (n *Navigator) View() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.view
}

// Current returns the state of the current view.
func (n *Navigator) Current() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.states[n.view]
}

// Select enters folder id. Selecting the folder already selected does
// nothing.
func (n *Navigator) Select(id int) {
	n.move(fileshelf.IntPtr(id))
}

// Back returns to the root of the current view.
func (n *Navigator) Back() {
	n.move(nil)
}

// AllFiles returns to the root of the current view.
func (n *Navigator) AllFiles() {
	n.move(nil)
}

func (n *Navigator) move(folderID *int) {
	n.mu.Lock()
	view := n.view
	if fileshelf.SameID(n.states[view].FolderID, folderID) {
		n.mu.Unlock()
		return
	}
	n.states[view] = State{FolderID: folderID}
	n.mu.Unlock()

	n.publish(FolderSelected{View: view, FolderID: folderID})
}

// SwitchView makes v current, its navigation reset to the root. Switching to
// the current view is a return to its root.
func (n *Navigator) SwitchView(v View) {
	n.mu.Lock()
	from := n.view
	if from == v {
		n.mu.Unlock()
		n.move(nil)
		return
	}
	n.view = v
	n.states[v] = State{}
	n.mu.Unlock()

	n.publish(ViewChanged{From: from, To: v})
}

// Reset puts every view back at the root of the dashboard, on logout.
func (n *Navigator) Reset() {
	n.mu.Lock()
	n.view = Dashboard
	n.states = make(map[View]State)
	n.mu.Unlock()
}

// RequestPermissions publishes a PermissionRequested event for r.
func (n *Navigator) RequestPermissions(r fileshelf.Resource) {
	n.publish(PermissionRequested{Resource: r})
}

func (n *Navigator) publish(ev Event) {
	if n.bus != nil {
		n.bus.Publish(ev)
	}
}

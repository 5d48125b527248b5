package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
)

type events struct {
	received []Event
}

func (e *events) record(ev Event) {
	e.received = append(e.received, ev)
}

func TestNavigator_Transitions(t *testing.T) {
	bus := NewBus()
	rec := &events{}
	bus.Subscribe(rec.record)
	n := NewNavigator(bus)

	assert.Equal(t, Dashboard, n.View())
	assert.True(t, n.Current().Root())

	n.Select(7)
	assert.Equal(t, "inside(7)", n.Current().String())

	n.Select(7)
	assert.Len(t, rec.received, 1, "selecting the current folder is a no-op")

	n.Select(8)
	n.Back()
	assert.True(t, n.Current().Root())

	n.Back()
	n.Select(3)
	n.AllFiles()
	assert.True(t, n.Current().Root())

	require.Len(t, rec.received, 5)
	assert.Equal(t, FolderSelected{View: Dashboard, FolderID: fileshelf.IntPtr(7)}, rec.received[0])
	assert.Equal(t, FolderSelected{View: Dashboard, FolderID: fileshelf.IntPtr(8)}, rec.received[1])
	assert.Equal(t, FolderSelected{View: Dashboard}, rec.received[2])
	assert.Equal(t, FolderSelected{View: Dashboard}, rec.received[4])
}

func TestNavigator_ViewsOwnTheirState(t *testing.T) {
	bus := NewBus()
	rec := &events{}
	bus.Subscribe(rec.record)
	n := NewNavigator(bus)

	n.Select(7)
	n.SwitchView(Favourites)
	assert.True(t, n.Current().Root(), "switching view resets the new view")

	n.Select(4)
	n.SwitchView(Dashboard)
	assert.True(t, n.Current().Root())

	n.SwitchView(Dashboard)

	var changes []ViewChanged
	for _, ev := range rec.received {
		if vc, ok := ev.(ViewChanged); ok {
			changes = append(changes, vc)
		}
	}
	assert.Equal(t, []ViewChanged{{From: Dashboard, To: Favourites}, {From: Favourites, To: Dashboard}}, changes)
}

func TestNavigator_SwitchToCurrentView(t *testing.T) {
	bus := NewBus()
	rec := &events{}
	bus.Subscribe(rec.record)
	n := NewNavigator(bus)

	n.Select(7)
	n.SwitchView(Dashboard)
	assert.Equal(t, Dashboard, n.View())
	assert.True(t, n.Current().Root())

	require.Len(t, rec.received, 2)
	assert.Equal(t, FolderSelected{View: Dashboard}, rec.received[1])

	n.SwitchView(Dashboard)
	assert.Len(t, rec.received, 2, "already at the root")
}

func TestNavigator_SessionEnded(t *testing.T) {
	bus := NewBus()
	n := NewNavigator(bus)

	n.SwitchView(Trash)
	n.Select(2)
	bus.Publish(SessionEnded{})

	assert.Equal(t, Dashboard, n.View())
	assert.True(t, n.Current().Root())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	first, second := &events{}, &events{}
	unsubscribe := bus.Subscribe(first.record)
	bus.Subscribe(second.record)

	bus.Publish(PermissionRequested{Resource: fileshelf.FileResource(1)})
	unsubscribe()
	bus.Publish(SessionEnded{})

	assert.Len(t, first.received, 1)
	assert.Equal(t, []Event{PermissionRequested{Resource: fileshelf.FileResource(1)}, SessionEnded{}}, second.received)
}

func TestParseView(t *testing.T) {
	for _, v := range views {
		parsed, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := ParseView("settings")
	assert.Error(t, err)
}

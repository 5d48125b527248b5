package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/clients/files"
	"github.com/bobinette/fileshelf/log"
	"github.com/bobinette/fileshelf/mock"
	"github.com/bobinette/fileshelf/navigation"
	"github.com/bobinette/fileshelf/session"
)

var prompt = regexp.MustCompile(`[a-z]+:(root|inside\(\d+\))> `)

func setup(t *testing.T) *mock.Backend {
	backend := mock.New()
	baseURL := mock.Start(t, backend)

	logger = log.Discard()
	sess = session.New(session.NewInMemStore())
	bus = navigation.NewBus()
	navigator = navigation.NewNavigator(bus)

	base := clients.NewClient(http.DefaultClient, baseURL, sess)
	wire(base, files.NewClient(base))
	return backend
}

func runShell(t *testing.T, input ...string) string {
	var out bytes.Buffer
	sh := &shell{ctx: context.Background(), out: &out}
	unsubscribe := bus.Subscribe(sh.handle)
	defer unsubscribe()

	require.NoError(t, sh.run(strings.NewReader(strings.Join(input, "\n")+"\n")))
	return out.String()
}

func TestShell_Browse(t *testing.T) {
	backend := setup(t)
	bob := backend.AddUser("bob", "pwd", fileshelf.RoleUser)
	reports := backend.AddFolder("reports", nil, bob.ID)
	backend.AddFile("report.pdf", []byte("%PDF-1.4"), fileshelf.IntPtr(reports.ID), bob.ID)
	backend.AddFile("notes.txt", []byte("hello"), fileshelf.IntPtr(reports.ID), bob.ID)
	backend.AddFile("todo.txt", []byte("milk"), nil, bob.ID)
	require.NoError(t, sess.Init(backend.Token(bob), bob))

	out := runShell(t,
		"ls",
		fmt.Sprintf("cd %d", reports.ID),
		"find REP",
		"back",
		"exit",
		"ls",
	)

	// One section per command, the first one precedes the first prompt.
	sections := prompt.Split(out, -1)
	require.Len(t, sections, 6)

	root := sections[1]
	assert.Contains(t, root, "reports/")
	assert.Contains(t, root, "todo.txt")
	assert.NotContains(t, root, "report.pdf")

	inside := sections[2]
	assert.Contains(t, inside, "report.pdf")
	assert.Contains(t, inside, "notes.txt")
	assert.NotContains(t, inside, "todo.txt")

	filtered := sections[3]
	assert.Contains(t, filtered, "report.pdf")
	assert.NotContains(t, filtered, "notes.txt")

	assert.Contains(t, sections[4], "todo.txt")
	assert.Empty(t, sections[5])

	assert.Equal(t, navigation.Dashboard, navigator.View())
	assert.True(t, navigator.Current().Root())
}

func TestShell_ViewsAndPermissions(t *testing.T) {
	backend := setup(t)
	bob := backend.AddUser("bob", "pwd", fileshelf.RoleUser)
	alice := backend.AddUser("alice", "pwd", fileshelf.RoleUser)
	shared := backend.AddFolder("shared", nil, bob.ID)
	backend.Grant(alice.ID, fileshelf.FolderResource(shared.ID), fileshelf.Capabilities{CanRead: true})
	require.NoError(t, sess.Init(backend.Token(bob), bob))

	out := runShell(t,
		fmt.Sprintf("perms folder %d", shared.ID),
		"view favourites",
		fmt.Sprintf("fav folder %d", shared.ID),
		"ls",
		"view nowhere",
		"dance",
	)

	assert.Contains(t, out, fmt.Sprintf("folder:%d", shared.ID))
	assert.Contains(t, out, "favourites:root> ")
	assert.Contains(t, out, "shared/")
	assert.Contains(t, out, `unknown view "nowhere"`)
	assert.Contains(t, out, `unknown command "dance", try help`)
	assert.Equal(t, navigation.Favourites, navigator.View())
}

func TestShell_SessionEnded(t *testing.T) {
	backend := setup(t)
	bob := backend.AddUser("bob", "pwd", fileshelf.RoleUser)
	require.NoError(t, sess.Init(backend.Token(bob), bob))
	sess.OnTeardown(func() { bus.Publish(navigation.SessionEnded{}) })

	var out bytes.Buffer
	sh := &shell{ctx: context.Background(), out: &out}
	defer bus.Subscribe(sh.handle)()

	navigator.SwitchView(navigation.Trash)
	require.NoError(t, userHooks.Logout())

	assert.Contains(t, out.String(), "Session ended")
	assert.Equal(t, navigation.Dashboard, navigator.View())
}

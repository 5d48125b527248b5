// Package mock is an in-memory fake of the fileshelf backend, served by a gin
// router. Tests start it behind httptest and point real clients at it.
package mock

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/jwt"
)

const signingKey = "fileshelf-mock"

type failure struct {
	status  int
	message string
}

// Backend holds the state of the fake backend. It is safe for concurrent use.
type Backend struct {
	mu sync.Locker

	users     map[int]fileshelf.User
	passwords map[string]string

	files       map[int]*fileshelf.File
	blobs       map[int][]byte
	folders     map[int]*fileshelf.Folder
	permissions map[int]*fileshelf.Permission
	shares      map[int]*fileshelf.SharedResource

	maxID int

	encoder *jwt.EncodeDecoder
	now     func() time.Time

	calls    map[string]int
	failures map[string]failure
}

func New() *Backend {
	return &Backend{
		mu: &sync.Mutex{},

		users:     make(map[int]fileshelf.User),
		passwords: make(map[string]string),

		files:       make(map[int]*fileshelf.File),
		blobs:       make(map[int][]byte),
		folders:     make(map[int]*fileshelf.Folder),
		permissions: make(map[int]*fileshelf.Permission),
		shares:      make(map[int]*fileshelf.SharedResource),

		encoder: jwt.NewEncodeDecoder([]byte(signingKey), 24*time.Hour),
		now:     time.Now,

		calls:    make(map[string]int),
		failures: make(map[string]failure),
	}
}

// nextID is shared by every entity so ids never collide across types,
// which makes test failures easier to read.
func (b *Backend) nextID() int {
	b.maxID++
	return b.maxID
}

// AddUser registers a user that can log in with password.
func (b *Backend) AddUser(username, password string, role fileshelf.Role) fileshelf.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUser(username, password, role)
}

func (b *Backend) addUser(username, password string, role fileshelf.Role) fileshelf.User {
	user := fileshelf.User{ID: b.nextID(), Username: username, Role: role}
	b.users[user.ID] = user
	b.passwords[username] = password
	return user
}

// Token mints a bearer token for user, as a login would.
func (b *Backend) Token(user fileshelf.User) string {
	token, err := b.encoder.Encode(user)
	if err != nil {
		panic(err)
	}
	return token
}

func (b *Backend) AddFolder(name string, parentID *int, owner int) fileshelf.Folder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.addFolder(name, parentID, owner)
}

func (b *Backend) addFolder(name string, parentID *int, owner int) *fileshelf.Folder {
	folder := &fileshelf.Folder{
		ID:        b.nextID(),
		Name:      name,
		ParentID:  copyID(parentID),
		CreatedBy: owner,
		CreatedAt: b.now(),
	}
	b.folders[folder.ID] = folder
	return folder
}

func (b *Backend) AddFile(name string, content []byte, folderID *int, owner int) fileshelf.File {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.addFile(name, "application/octet-stream", content, folderID, owner)
}

func (b *Backend) addFile(name, mimeType string, content []byte, folderID *int, owner int) *fileshelf.File {
	file := &fileshelf.File{
		ID:        b.nextID(),
		Name:      name,
		Size:      int64(len(content)),
		MimeType:  mimeType,
		CreatedAt: b.now(),
		CreatedBy: owner,
		FolderID:  copyID(folderID),
	}
	b.files[file.ID] = file
	b.blobs[file.ID] = content
	return file
}

// Grant sets the permission row of user on r.
func (b *Backend) Grant(user int, r fileshelf.Resource, caps fileshelf.Capabilities) fileshelf.Permission {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.grant(fileshelf.Grant{UserID: user, ResourceID: r.ID, ResourceType: r.Type, Capabilities: caps})
}

func (b *Backend) grant(g fileshelf.Grant) *fileshelf.Permission {
	now := b.now()
	for _, p := range b.permissions {
		if p.UserID == g.UserID && p.Resource() == g.Resource() {
			p.Capabilities = g.Capabilities
			p.UpdatedAt = &now
			return p
		}
	}

	p := &fileshelf.Permission{
		ID:           b.nextID(),
		UserID:       g.UserID,
		ResourceID:   g.ResourceID,
		ResourceType: g.ResourceType,
		Capabilities: g.Capabilities,
		CreatedAt:    &now,
		UpdatedAt:    &now,
	}
	b.permissions[p.ID] = p
	return p
}

// File returns a copy of the stored file.
func (b *Backend) File(id int) (fileshelf.File, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.files[id]
	if !ok {
		return fileshelf.File{}, false
	}
	return *f, true
}

func (b *Backend) Folder(id int) (fileshelf.Folder, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.folders[id]
	if !ok {
		return fileshelf.Folder{}, false
	}
	return *f, true
}

// Fail makes every call to method path answer status with message, until
// Recover is called. path is the full request path, e.g. /api/files/download/42.
func (b *Backend) Fail(method, path string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[callKey(method, path)] = failure{status: status, message: message}
}

func (b *Backend) Recover(method, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, callKey(method, path))
}

// Calls returns the number of requests received, all routes included.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// CallsTo returns the number of requests received for method path.
func (b *Backend) CallsTo(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[callKey(method, path)]
}

func callKey(method, path string) string {
	return fmt.Sprintf("%s %s", strings.ToUpper(method), path)
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

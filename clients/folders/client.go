package folders

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/errors"
)

type Client struct {
	client *clients.Client
}

func NewClient(c *clients.Client) *Client {
	return &Client{client: c}
}

type foldersResponse struct {
	Folders []fileshelf.Folder `json:"folders"`
}

// folderResponse accepts a bare folder as well as `{"folder": {...}}`.
type folderResponse struct {
	Wrapped *fileshelf.Folder `json:"folder"`
	fileshelf.Folder
}

func (r folderResponse) folder() fileshelf.Folder {
	if r.Wrapped != nil {
		return *r.Wrapped
	}
	return r.Folder
}

func (c *Client) list(ctx context.Context, path string, query url.Values) ([]fileshelf.Folder, error) {
	var res foldersResponse
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	}, &res)
	return res.Folders, err
}

// List returns the sub folders of parentID, nil meaning every visible folder.
func (c *Client) List(ctx context.Context, parentID *int) ([]fileshelf.Folder, error) {
	return c.list(ctx, "/folders", parentQuery(parentID))
}

func (c *Client) Root(ctx context.Context) ([]fileshelf.Folder, error) {
	return c.list(ctx, "/folders/root", nil)
}

// Tree returns the root folders with their children nested.
func (c *Client) Tree(ctx context.Context) ([]fileshelf.Folder, error) {
	return c.list(ctx, "/folders/tree/structure", nil)
}

func (c *Client) Trash(ctx context.Context) ([]fileshelf.Folder, error) {
	return c.list(ctx, "/folders/trash", nil)
}

func (c *Client) Favourites(ctx context.Context) ([]fileshelf.Folder, error) {
	return c.list(ctx, "/folders/favourites", nil)
}

func (c *Client) FavouritesNavigate(ctx context.Context, parentID *int) ([]fileshelf.Folder, error) {
	return c.list(ctx, "/folders/favourites/navigate", parentQuery(parentID))
}

func (c *Client) Get(ctx context.Context, id int) (fileshelf.Folder, error) {
	var res folderResponse
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/folders/%d", id),
	}, &res)
	if err != nil {
		return fileshelf.Folder{}, err
	}
	return res.folder(), nil
}

// Create makes a folder named name under parentID. Blank names are refused
// without calling the backend.
func (c *Client) Create(ctx context.Context, name string, parentID *int) (fileshelf.Folder, error) {
	if name == "" {
		return fileshelf.Folder{}, errors.New("folder name cannot be empty", errors.BadRequest())
	}

	body := struct {
		Name     string `json:"name"`
		ParentID *int   `json:"parent_id"`
	}{
		Name:     name,
		ParentID: parentID,
	}

	var res folderResponse
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodPost,
		Path:   "/folders",
		Body:   body,
	}, &res)
	if err != nil {
		return fileshelf.Folder{}, err
	}
	return res.folder(), nil
}

func (c *Client) Rename(ctx context.Context, id int, name string) error {
	if name == "" {
		return errors.New("folder name cannot be empty", errors.BadRequest())
	}

	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/folders/%d", id),
		Body:   map[string]string{"name": name},
	}, nil)
}

// Delete moves the folder to the trash.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/folders/%d", id),
	}, nil)
}

func (c *Client) Restore(ctx context.Context, id int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/folders/%d/restore", id),
	}, nil)
}

func (c *Client) PermanentDelete(ctx context.Context, id int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/folders/%d/permanent", id),
	}, nil)
}

func (c *Client) ToggleFavourite(ctx context.Context, id int) (bool, error) {
	var res struct {
		IsFavourite bool `json:"is_faviourite"`
	}
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/folders/%d/favourite", id),
	}, &res)
	return res.IsFavourite, err
}

// Download fetches the folder as a zip archive.
func (c *Client) Download(ctx context.Context, id int) (clients.Payload, error) {
	return c.client.Download(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/folders/%d/download", id),
	}, fmt.Sprintf("folder-%d.zip", id), clients.FolderDownloadMessages)
}

func parentQuery(id *int) url.Values {
	if id == nil {
		return nil
	}
	return url.Values{"parent_id": []string{strconv.Itoa(*id)}}
}

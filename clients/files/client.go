package files

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
)

const (
	DefaultUploadTimeout       = 2 * time.Minute
	DefaultFolderUploadTimeout = 5 * time.Minute
)

type Client struct {
	client *clients.Client

	uploadTimeout       time.Duration
	folderUploadTimeout time.Duration
}

func NewClient(c *clients.Client) *Client {
	return &Client{
		client: c,

		uploadTimeout:       DefaultUploadTimeout,
		folderUploadTimeout: DefaultFolderUploadTimeout,
	}
}

// WithUploadTimeouts overrides the budgets of file and folder uploads. Zero
// values keep the defaults.
func (c *Client) WithUploadTimeouts(files, folders time.Duration) *Client {
	if files > 0 {
		c.uploadTimeout = files
	}
	if folders > 0 {
		c.folderUploadTimeout = folders
	}
	return c
}

type filesResponse struct {
	Files []fileshelf.File `json:"files"`
}

func (c *Client) list(ctx context.Context, path string, query url.Values) ([]fileshelf.File, error) {
	var res filesResponse
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	}, &res)
	return res.Files, err
}

// List returns the files of a folder, nil meaning every visible file.
func (c *Client) List(ctx context.Context, folderID *int) ([]fileshelf.File, error) {
	return c.list(ctx, "/files", folderQuery("folder_id", folderID))
}

// Root returns the files that are not in any folder.
func (c *Client) Root(ctx context.Context) ([]fileshelf.File, error) {
	return c.list(ctx, "/files/root", nil)
}

func (c *Client) Trash(ctx context.Context) ([]fileshelf.File, error) {
	return c.list(ctx, "/files/trash", nil)
}

func (c *Client) Favourites(ctx context.Context) ([]fileshelf.File, error) {
	return c.list(ctx, "/files/favourites", nil)
}

// FavouritesNavigate lists the files of a folder reached from the
// favourites view.
func (c *Client) FavouritesNavigate(ctx context.Context, folderID *int) ([]fileshelf.File, error) {
	return c.list(ctx, "/files/favourites/navigate", folderQuery("folder_id", folderID))
}

func (c *Client) Rename(ctx context.Context, id int, name string) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/files/%d", id),
		Body:   map[string]string{"name": name},
	}, nil)
}

// Delete moves the file to the trash.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/files/%d", id),
	}, nil)
}

func (c *Client) Restore(ctx context.Context, id int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/files/%d/restore", id),
	}, nil)
}

func (c *Client) PermanentDelete(ctx context.Context, id int) error {
	return c.client.JSON(ctx, clients.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/files/%d/permanent", id),
	}, nil)
}

// ToggleFavourite flips the favourite flag and returns its new value.
func (c *Client) ToggleFavourite(ctx context.Context, id int) (bool, error) {
	var res struct {
		IsFavourite bool `json:"is_faviourite"`
	}
	err := c.client.JSON(ctx, clients.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/files/%d/favourite", id),
	}, &res)
	return res.IsFavourite, err
}

func (c *Client) Download(ctx context.Context, id int) (clients.Payload, error) {
	return c.client.Download(ctx, clients.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/files/download/%d", id),
	}, fmt.Sprintf("file-%d", id), clients.FileDownloadMessages)
}

func folderQuery(name string, id *int) url.Values {
	if id == nil {
		return nil
	}
	return url.Values{name: []string{strconv.Itoa(*id)}}
}

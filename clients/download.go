package clients

import (
	"bufio"
	"context"
	"io"

	"github.com/bobinette/fileshelf/clients/internal"
	"github.com/bobinette/fileshelf/errors"
)

// Payload is a downloaded file. Body must be closed by the caller.
type Payload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// DownloadMessages are the user-facing messages of a download failure, one
// per category.
type DownloadMessages struct {
	NotFound  string
	Forbidden string
	Server    string
	Generic   string
	Empty     string
}

var (
	FileDownloadMessages = DownloadMessages{
		NotFound:  "File not found",
		Forbidden: "Permission denied",
		Server:    "Server error occurred",
		Generic:   "Download failed",
		Empty:     "No file data received",
	}

	FolderDownloadMessages = DownloadMessages{
		NotFound:  "Folder not found or you don't have permission to access it",
		Forbidden: "Permission denied - you don't have download permission for this folder",
		Server:    "Server error occurred",
		Generic:   "Folder download failed",
		Empty:     "No folder data received",
	}
)

// Message returns the message for an HTTP status.
func (m DownloadMessages) Message(status int) string {
	switch errors.KindOfCode(status) {
	case errors.KindNotFound:
		return m.NotFound
	case errors.KindPermissionDenied:
		return m.Forbidden
	case errors.KindServer:
		return m.Server
	}
	return m.Generic
}

// Download sends r and returns the body as a payload. fallback names the
// payload when the response carries no usable Content-Disposition.
func (c *Client) Download(ctx context.Context, r Request, fallback string, msgs DownloadMessages) (Payload, error) {
	res, err := c.send(ctx, r)
	if err != nil {
		if errors.IsUnauthorized(err) {
			return Payload{}, err
		}
		return Payload{}, errors.New(msgs.Generic, errors.WithCause(err))
	}

	if !success(res) {
		defer res.Body.Close()
		cause := internal.ResponseError(res)
		return Payload{}, errors.New(msgs.Message(res.StatusCode), errors.WithCause(cause), errors.WithCode(res.StatusCode))
	}

	body := bufio.NewReader(res.Body)
	if _, err := body.Peek(1); err != nil {
		res.Body.Close()
		if err == io.EOF {
			return Payload{}, errors.New(msgs.Empty)
		}
		return Payload{}, errors.New(msgs.Generic, errors.WithCause(err))
	}

	return Payload{
		Filename:    internal.Filename(res.Header.Get("Content-Disposition"), fallback),
		ContentType: res.Header.Get("Content-Type"),
		Size:        res.ContentLength,
		Body:        readCloser{Reader: body, Closer: res.Body},
	}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

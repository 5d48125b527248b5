package files

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/errors"
)

// Part is one file of an upload form.
type Part struct {
	Name string
	// RelativePath is the path of the file inside the uploaded directory,
	// folder uploads only.
	RelativePath string
	ContentType  string
	// Body is closed once the upload is over when it is an io.Closer.
	Body io.Reader
}

// Form is the multipart body of an upload.
type Form struct {
	FolderID *int
	Parts    []Part
}

func (f Form) validate() error {
	if len(f.Parts) == 0 {
		return errors.New("no file to upload", errors.BadRequest())
	}
	for i, p := range f.Parts {
		if p.Name == "" || p.Body == nil {
			return errors.New(fmt.Sprintf("upload part %d has no name or content", i), errors.BadRequest())
		}
	}
	return nil
}

func (f Form) close() {
	for _, p := range f.Parts {
		if c, ok := p.Body.(io.Closer); ok {
			c.Close()
		}
	}
}

// write streams the form into w. Relative paths are sent as
// `relative_path` fields in the same order as the `files` parts.
func (f Form) write(w *multipart.Writer, withPaths bool) error {
	if f.FolderID != nil {
		if err := w.WriteField("folder_id", strconv.Itoa(*f.FolderID)); err != nil {
			return err
		}
	}

	for _, p := range f.Parts {
		filename := p.Name
		if withPaths && p.RelativePath != "" {
			filename = p.RelativePath
			if err := w.WriteField("relative_path", p.RelativePath); err != nil {
				return err
			}
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(filename)))
		contentType := p.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		pw, err := w.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := io.Copy(pw, p.Body); err != nil {
			return err
		}
	}
	return w.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// Upload sends files into form.FolderID, nil being the root.
func (c *Client) Upload(ctx context.Context, form Form) ([]fileshelf.File, error) {
	return c.upload(ctx, "/files/upload", form, false)
}

// UploadFolder sends a whole directory. Parts carry their path relative to
// the uploaded directory so that the backend rebuilds the hierarchy.
func (c *Client) UploadFolder(ctx context.Context, form Form) ([]fileshelf.File, error) {
	return c.upload(ctx, "/files/upload-folder", form, true)
}

func (c *Client) upload(ctx context.Context, path string, form Form, folder bool) ([]fileshelf.File, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}

	timeout := c.uploadTimeout
	if folder {
		timeout = c.folderUploadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	written := make(chan struct{})
	go func() {
		defer close(written)
		err := form.write(mw, folder)
		form.close()
		pw.CloseWithError(err)
	}()
	// Closing the reader unblocks the writer when the request stopped early.
	defer func() {
		pr.Close()
		<-written
	}()

	res, err := c.client.Do(ctx, clients.Request{
		Method:      http.MethodPost,
		Path:        path,
		Raw:         pr,
		ContentType: mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.New("could not read upload response", errors.WithCause(err))
	}
	return decodeUploaded(data)
}

// decodeUploaded accepts both `{"files": [...]}` and a single file object.
func decodeUploaded(data []byte) ([]fileshelf.File, error) {
	var many struct {
		Files []fileshelf.File `json:"files"`
		File  *fileshelf.File  `json:"file"`
	}
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, errors.New("could not decode upload response", errors.WithCause(err))
	}
	if many.Files != nil {
		return many.Files, nil
	}
	if many.File != nil {
		return []fileshelf.File{*many.File}, nil
	}

	var one fileshelf.File
	if err := json.Unmarshal(data, &one); err == nil && one.ID != 0 {
		return []fileshelf.File{one}, nil
	}
	return nil, nil
}

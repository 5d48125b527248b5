package internal

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/bobinette/fileshelf/errors"
)

// ResponseError turns a non 2xx response into a coded error. The backend
// answers `{"message": ...}` or `{"error": ...}`; anything else falls back to
// the status text.
func ResponseError(res *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))

	var callErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(data, &callErr); err == nil {
		msg = callErr.Message
		if msg == "" {
			msg = callErr.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(res.StatusCode)
	}
	if msg == "" {
		msg = "unexpected status " + res.Status
	}

	return errors.New(msg, errors.WithCode(res.StatusCode))
}

var filenameRe = regexp.MustCompile(`filename="?([^";]+)"?`)

// Filename recovers the file name of a Content-Disposition header, keeping
// only its last path element. fallback is returned when nothing usable is
// found.
func Filename(contentDisposition, fallback string) string {
	if contentDisposition == "" {
		return fallback
	}

	name := ""
	if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
		name = params["filename"]
	}
	if name == "" {
		if m := filenameRe.FindStringSubmatch(contentDisposition); m != nil {
			name = m[1]
		}
	}

	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	switch name {
	case "", ".", "/", "..":
		return fallback
	}
	return name
}

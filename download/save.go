// Package download writes downloaded payloads to disk.
package download

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/errors"
)

// DefaultName is used when the payload carries no usable name.
const DefaultName = "download"

// maxAttempts bounds the " (n)" suffixes tried before giving up.
const maxAttempts = 1000

// Sanitize keeps the last path component of name, whatever the separator.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	switch name {
	case "", ".", "..":
		return DefaultName
	}
	return name
}

// Save writes the payload into dir and closes its body. Existing files are
// never overwritten: "report.pdf" becomes "report (1).pdf", then
// "report (2).pdf". It returns the written path and size.
func Save(p clients.Payload, dir string) (string, int64, error) {
	defer p.Body.Close()

	f, path, err := create(dir, Sanitize(p.Filename))
	if err != nil {
		return "", 0, err
	}

	n, err := io.Copy(f, p.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, errors.New(fmt.Sprintf("could not write %s", path), errors.WithCause(err))
	}
	return path, n, nil
}

func create(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		stem, ext = name, ""
	}

	for i := 0; i < maxAttempts; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}

		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", errors.New(fmt.Sprintf("could not create %s", path), errors.WithCause(err))
		}
	}
	return nil, "", errors.New(fmt.Sprintf("too many copies of %s in %s", name, dir), errors.Conflict())
}

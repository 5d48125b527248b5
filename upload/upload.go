// Package upload turns a local selection, some files or one directory, into
// an upload form and submits it.
package upload

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gabriel-vasile/mimetype"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients/files"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/log"
)

type Mode int

const (
	// Files uploads one or more regular files.
	Files Mode = iota + 1
	// Directory uploads a single directory and everything under it.
	Directory
)

func (m Mode) String() string {
	switch m {
	case Files:
		return "files"
	case Directory:
		return "directory"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Plan is a selection waiting to be sent.
type Plan struct {
	Mode     Mode
	FolderID *int
	Paths    []string
}

// Validate checks the selection against the mode: Files only takes regular
// files, Directory exactly one directory.
func (p Plan) Validate() error {
	if len(p.Paths) == 0 {
		return errors.New("no file selected", errors.BadRequest())
	}

	switch p.Mode {
	case Files:
		for _, path := range p.Paths {
			info, err := stat(path)
			if err != nil {
				return err
			}
			if info.IsDir() {
				return errors.New(fmt.Sprintf("%s is a directory, use the directory mode", path), errors.BadRequest())
			}
		}
	case Directory:
		if len(p.Paths) > 1 {
			return errors.New("only one directory can be uploaded at a time", errors.BadRequest())
		}
		info, err := stat(p.Paths[0])
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errors.New(fmt.Sprintf("%s is not a directory", p.Paths[0]), errors.BadRequest())
		}
	default:
		return errors.New(fmt.Sprintf("unknown upload mode %v", p.Mode), errors.BadRequest())
	}
	return nil
}

func stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.New(fmt.Sprintf("%s does not exist", path), errors.NotFound(), errors.WithCause(err))
	} else if err != nil {
		return nil, errors.New(fmt.Sprintf("could not read %s", path), errors.WithCause(err))
	}
	return info, nil
}

// Form builds the multipart form of the plan. Files are opened lazily while
// the form is streamed, and closed once read.
func (p Plan) Form() (files.Form, error) {
	if err := p.Validate(); err != nil {
		return files.Form{}, err
	}

	form := files.Form{FolderID: p.FolderID}
	if p.Mode == Files {
		for _, path := range p.Paths {
			part, err := newPart(path, "")
			if err != nil {
				return files.Form{}, err
			}
			form.Parts = append(form.Parts, part)
		}
		return form, nil
	}

	root := filepath.Clean(p.Paths[0])
	base := filepath.Base(root)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		part, err := newPart(path, filepath.ToSlash(filepath.Join(base, rel)))
		if err != nil {
			return err
		}
		form.Parts = append(form.Parts, part)
		return nil
	})
	if err != nil {
		return files.Form{}, errors.New(fmt.Sprintf("could not walk %s", root), errors.WithCause(err))
	}
	if len(form.Parts) == 0 {
		return files.Form{}, errors.New(fmt.Sprintf("%s contains no file", root), errors.BadRequest())
	}

	sort.Slice(form.Parts, func(i, j int) bool {
		return form.Parts[i].RelativePath < form.Parts[j].RelativePath
	})
	return form, nil
}

func newPart(path, relative string) (files.Part, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return files.Part{}, errors.New(fmt.Sprintf("could not read %s", path), errors.WithCause(err))
	}
	return files.Part{
		Name:         filepath.Base(path),
		RelativePath: relative,
		ContentType:  mime.String(),
		Body:         &lazyFile{path: path},
	}, nil
}

// lazyFile opens path on the first read and closes it at EOF, so that a
// large directory does not hold every descriptor at once.
type lazyFile struct {
	path string
	f    *os.File
	done bool
}

func (l *lazyFile) Read(p []byte) (int, error) {
	if l.done {
		return 0, io.EOF
	}
	if l.f == nil {
		f, err := os.Open(l.path)
		if err != nil {
			return 0, err
		}
		l.f = f
	}

	n, err := l.f.Read(p)
	if err != nil {
		l.Close()
	}
	return n, err
}

// Close releases the descriptor of a file read partially. Reads after Close
// return io.EOF.
func (l *lazyFile) Close() error {
	l.done = true
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// Target receives the uploads, the files hooks in practice.
type Target interface {
	Upload(ctx context.Context, form files.Form) ([]fileshelf.File, error)
	UploadFolder(ctx context.Context, form files.Form) ([]fileshelf.File, error)
}

type Uploader struct {
	target Target
	logger log.Logger
}

func NewUploader(target Target, logger log.Logger) *Uploader {
	if logger == nil {
		logger = log.Discard()
	}
	return &Uploader{target: target, logger: logger}
}

// Submit validates p and sends it through the matching upload call.
func (u *Uploader) Submit(ctx context.Context, p Plan) ([]fileshelf.File, error) {
	form, err := p.Form()
	if err != nil {
		return nil, err
	}

	u.logger.WithField("mode", p.Mode).Debugf("uploading %d file(s)", len(form.Parts))
	if p.Mode == Directory {
		return u.target.UploadFolder(ctx, form)
	}
	return u.target.Upload(ctx, form)
}

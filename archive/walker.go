// Package archive walks documents stored inside zip archives.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// Entry is a regular file inside an archive.
type Entry struct {
	*zip.File

	// Path is the entry name. For entries not flagged as UTF-8 it is
	// decoded with the walk code page, when one is set.
	Path string
	// NameErr is set when decoding failed, Path is the raw name then.
	NameErr error
}

// ReadAll returns uncompressed entry content. Entries larger than limit are
// refused before decompression, limit 0 means no limit.
func (e Entry) ReadAll(limit uint64) ([]byte, error) {
	if limit > 0 && e.UncompressedSize64 > limit {
		return nil, fmt.Errorf("entry %q is too large: %d bytes", e.Path, e.UncompressedSize64)
	}
	r, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// WalkFunc is called for each entry visited by Walk. The archive argument is
// the path passed to Walk. If an error is returned, processing stops.
type WalkFunc func(archive string, e Entry) error

// Option modifies Walk behavior.
type Option func(*walker)

type walker struct {
	cp encoding.Encoding
}

// WithCodePage decodes names of entries without UTF-8 flag.
func WithCodePage(cp encoding.Encoding) Option {
	return func(w *walker) {
		w.cp = cp
	}
}

// Walk calls walkFn for every regular file whose (decoded) path starts with
// prefix. Archives with absolute entry paths or ".." components are refused
// as a whole. Walk stops when ctx is cancelled.
func Walk(ctx context.Context, archive, prefix string, walkFn WalkFunc, opts ...Option) error {
	var w walker
	for _, opt := range opts {
		opt(&w)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		e := w.entry(f)
		if !isSafePath(e.Path) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", e.Path)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(e.Path, prefix) {
			continue
		}
		if err := walkFn(archive, e); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) entry(f *zip.File) Entry {
	e := Entry{File: f, Path: f.Name}
	if w.cp == nil || !f.NonUTF8 {
		return e
	}
	if n, err := w.cp.NewDecoder().String(f.Name); err == nil {
		e.Path = n
	} else {
		e.NameErr = err
	}
	return e
}

// isSafePath returns false for absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

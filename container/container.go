// Package container resolves document input which may be either a flat byte
// stream or OLE2 compound file bundling several named streams.
package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/richardlehane/mscfb"

	"ldx/cursor"
	"ldx/docerr"
)

var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Input is randomly addressable document source of known size.
type Input struct {
	name string
	r    io.ReaderAt
	size int64

	// lazily loaded directory of structured container
	loaded  bool
	streams map[string][]byte
	order   []string
	cfbErr  error
}

// New wraps r as input of given size.
func New(name string, r io.ReaderAt, size int64) *Input {
	return &Input{name: name, r: r, size: size}
}

// FromBytes wraps data as input.
func FromBytes(name string, data []byte) *Input {
	return New(name, bytes.NewReader(data), int64(len(data)))
}

func (in *Input) Name() string {
	return in.name
}

func (in *Input) Size() int64 {
	return in.size
}

// ReadAt implements io.ReaderAt, so input never has a position to restore.
func (in *Input) ReadAt(p []byte, off int64) (int, error) {
	return in.r.ReadAt(p, off)
}

// Cursor returns new bounds checked cursor over the input.
func (in *Input) Cursor() *cursor.Cursor {
	return cursor.New(in.r, in.size)
}

// Head returns up to n first bytes of input.
func (in *Input) Head(n int) []byte {
	n = int(min(int64(n), in.size))
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	got, _ := in.r.ReadAt(buf, 0)
	return buf[:got]
}

// Structured reports whether input is a compound file with named streams.
func (in *Input) Structured() bool {
	if !bytes.Equal(in.Head(len(cfbSignature)), cfbSignature) {
		return false
	}
	return in.load() == nil
}

// Streams returns names of all streams in structured input, storages are
// separated with slash.
func (in *Input) Streams() ([]string, error) {
	if err := in.load(); err != nil {
		return nil, err
	}
	return slices.Clone(in.order), nil
}

// HasStream reports whether structured input has stream with name.
func (in *Input) HasStream(name string) bool {
	if in.load() != nil {
		return false
	}
	_, ok := in.streams[name]
	return ok
}

// Stream returns named stream as flat input.
func (in *Input) Stream(name string) (*Input, error) {
	if err := in.load(); err != nil {
		return nil, err
	}
	data, ok := in.streams[name]
	if !ok {
		return nil, docerr.New(docerr.KindStructureUnavailable, "open stream", "stream %q not found in %s", name, in.name)
	}
	return FromBytes(in.name+":"+name, data), nil
}

func (in *Input) load() error {
	if in.loaded {
		return in.cfbErr
	}
	in.loaded = true

	if !bytes.Equal(in.Head(len(cfbSignature)), cfbSignature) {
		in.cfbErr = docerr.New(docerr.KindUnsupported, "open container", "%s is not a compound file", in.name)
		return in.cfbErr
	}

	doc, err := mscfb.New(io.NewSectionReader(in.r, 0, in.size))
	if err != nil {
		in.cfbErr = &docerr.Error{Kind: docerr.KindStructureInconsistent, Op: "open container", Err: err}
		return in.cfbErr
	}

	in.streams = make(map[string][]byte)
	for {
		entry, err := doc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			in.cfbErr = &docerr.Error{Kind: docerr.KindStructureInconsistent, Op: "open container", Err: err}
			return in.cfbErr
		}
		if entry.Size == 0 {
			// storages and empty streams
			continue
		}
		data, err := io.ReadAll(entry)
		if err != nil {
			in.cfbErr = &docerr.Error{Kind: docerr.KindTruncated, Op: "open container",
				Err: fmt.Errorf("unable to read stream %q: %w", entry.Name, err)}
			return in.cfbErr
		}
		name := strings.Join(append(slices.Clone(entry.Path), entry.Name), "/")
		if _, dup := in.streams[name]; dup {
			continue
		}
		in.streams[name] = data
		in.order = append(in.order, name)
	}
	return nil
}

// Package cursor provides bounds checked little-endian reading over seekable
// byte sources. Every read declares its length up front and either returns
// exactly that many bytes or fails, offsets taken from untrusted tables are
// checked against the recorded limit before anything is read.
package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"ldx/docerr"
)

var (
	ErrTruncatedRead = errors.New("truncated read")
	ErrOutOfRange    = errors.New("position out of range")
)

// Cursor reads from io.ReaderAt keeping its own position, so several cursors
// may share one source.
type Cursor struct {
	r     io.ReaderAt
	base  int64
	pos   int64
	limit int64
}

// New returns cursor over first size bytes of r.
func New(r io.ReaderAt, size int64) *Cursor {
	return &Cursor{r: r, limit: max(size, 0)}
}

// Window returns independent cursor restricted to [begin, end) of this one,
// positions of the new cursor are relative to begin.
func (c *Cursor) Window(begin, end int64) (*Cursor, error) {
	if begin < 0 || end < begin || end > c.limit {
		return nil, c.rangeErr("window", begin, end)
	}
	return &Cursor{r: c.r, base: c.base + begin, limit: end - begin}, nil
}

// Limit returns hard upper bound of the cursor.
func (c *Cursor) Limit() int64 {
	return c.limit
}

// SetLimit lowers hard upper bound. Raising limit above the physical size is
// not possible.
func (c *Cursor) SetLimit(n int64) error {
	if n < 0 || n > c.limit {
		return c.rangeErr("set limit", n, n)
	}
	c.limit = n
	if c.pos > n {
		c.pos = n
	}
	return nil
}

// Tell returns current position.
func (c *Cursor) Tell() int64 {
	return c.pos
}

// CheckPosition reports whether pos can be sought to. It never fails, callers
// use it to skip broken sub-tables instead of aborting.
func (c *Cursor) CheckPosition(pos int64) bool {
	return pos >= 0 && pos <= c.limit
}

// CheckRange reports whether n bytes could be read at pos.
func (c *Cursor) CheckRange(pos, n int64) bool {
	return n >= 0 && c.CheckPosition(pos) && n <= c.limit-pos
}

// Seek moves to absolute position.
func (c *Cursor) Seek(pos int64) error {
	if !c.CheckPosition(pos) {
		return c.rangeErr("seek", pos, pos)
	}
	c.pos = pos
	return nil
}

// Skip moves n bytes forward.
func (c *Cursor) Skip(n int64) error {
	if n < 0 || !c.CheckRange(c.pos, n) {
		return c.rangeErr("skip", c.pos, c.pos+n)
	}
	c.pos += n
	return nil
}

// Remaining returns number of bytes left before limit.
func (c *Cursor) Remaining() int64 {
	return c.limit - c.pos
}

// Read returns exactly n bytes.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || !c.CheckRange(c.pos, int64(n)) {
		return nil, &docerr.Error{Kind: docerr.KindTruncated, Op: "read",
			Err: fmt.Errorf("%w: %d bytes at %d, limit %d", ErrTruncatedRead, n, c.pos, c.limit)}
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	got, err := c.r.ReadAt(buf, c.base+c.pos)
	if got < n {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &docerr.Error{Kind: docerr.KindTruncated, Op: "read",
			Err: fmt.Errorf("%w: %d of %d bytes at %d: %w", ErrTruncatedRead, got, n, c.pos, err)}
	}
	c.pos += int64(n)
	return buf, nil
}

// ReadAt returns exactly n bytes from pos without moving the cursor.
func (c *Cursor) ReadAt(pos int64, n int) ([]byte, error) {
	save := c.pos
	defer func() { c.pos = save }()

	if err := c.Seek(pos); err != nil {
		return nil, err
	}
	return c.Read(n)
}

func (c *Cursor) U8() (uint8, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) U16() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) U32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

func (c *Cursor) rangeErr(op string, begin, end int64) error {
	return &docerr.Error{Kind: docerr.KindTruncated, Op: op,
		Err: fmt.Errorf("%w: [%d, %d) limit %d", ErrOutOfRange, begin, end, c.limit)}
}

package timeline

import (
	"fmt"

	"ldx/cursor"
	"ldx/docerr"
	"ldx/zone"
)

// Table is raw offset to record table: N+1 offsets delimit N runs, each run
// refers to a record by id.
type Table struct {
	Kind Kind
	Name string
	// Scope is the range table belongs to when it spans more than a single
	// zone, offsets are validated against it.
	Scope   zone.ByteRange
	Offsets []int64
	IDs     []int
}

// Validate checks table against owning range.
func (t *Table) Validate(rng zone.ByteRange) error {
	op := "validate " + t.label()
	if len(t.Offsets) != len(t.IDs)+1 {
		return docerr.New(docerr.KindStructureInconsistent, op,
			"%d offsets for %d records", len(t.Offsets), len(t.IDs))
	}
	for i, off := range t.Offsets {
		if !rng.Contains(off) {
			return docerr.New(docerr.KindStructureInconsistent, op,
				"offset %d (%d) is outside of zone %s", i, off, rng)
		}
		if i > 0 && off < t.Offsets[i-1] {
			return docerr.New(docerr.KindStructureInconsistent, op,
				"offset %d (%d) is smaller than previous (%d)", i, off, t.Offsets[i-1])
		}
	}
	return nil
}

func (t *Table) label() string {
	if len(t.Name) > 0 {
		return t.Name
	}
	return t.Kind.String() + " table"
}

// FromTable converts validated table to timeline. Empty runs are dropped and
// parts of the zone not covered by the table get default record, adjacent
// runs of the same formatting record are joined.
func FromTable(t Table, rng zone.ByteRange) Timeline {
	tl := Timeline{rng: rng}
	add := func(off int64, id int) {
		if n := len(tl.events); n > 0 {
			last := tl.events[n-1]
			if last.Offset == off {
				tl.events[n-1].ID = id
				return
			}
			if t.Kind != KindMarker && last.ID == id {
				return
			}
		}
		tl.events = append(tl.events, Event{Offset: off, Kind: t.Kind, ID: id})
	}

	if len(t.Offsets) == 0 || t.Offsets[0] > rng.Begin {
		add(rng.Begin, DefaultID)
	}
	for i, id := range t.IDs {
		if t.Offsets[i] == t.Offsets[i+1] {
			continue
		}
		add(t.Offsets[i], id)
	}
	if n := len(t.Offsets); n > 0 && t.Offsets[n-1] < rng.End {
		add(t.Offsets[n-1], DefaultID)
	}
	return tl
}

// Clip restricts validated table to rng. Marker runs starting before rng are
// not carried into it.
func (t Table) Clip(rng zone.ByteRange) Table {
	res := Table{Kind: t.Kind, Name: t.Name, Scope: t.Scope}
	for i, id := range t.IDs {
		b, e := max(t.Offsets[i], rng.Begin), min(t.Offsets[i+1], rng.End)
		if b >= e {
			continue
		}
		if t.Kind == KindMarker && t.Offsets[i] < rng.Begin {
			id = DefaultID
		}
		if len(res.Offsets) == 0 {
			res.Offsets = append(res.Offsets, b)
		}
		res.Offsets = append(res.Offsets, e)
		res.IDs = append(res.IDs, id)
	}
	if len(res.Offsets) == 0 {
		res.Offsets = []int64{rng.Begin}
	}
	return res
}

// Resolve validates table and converts it to timeline of zone rng. Table is
// validated against its scope if it has one. Inconsistent table degrades to
// the single default record covering whole zone, returned error is
// recoverable and describes the problem.
func Resolve(t Table, rng zone.ByteRange) (Timeline, error) {
	scope := rng
	if t.Scope.Valid() {
		scope = t.Scope
	}
	if err := t.Validate(scope); err != nil {
		return Fallback(t.Kind, rng), err
	}
	if scope != rng {
		t = t.Clip(rng)
	}
	return FromTable(t, rng), nil
}

// PLC describes on-disk table: Count+1 little-endian u32 offsets followed by
// Count records of RecordSize bytes.
type PLC struct {
	Kind       Kind
	Name       string
	Count      int
	RecordSize int
	// MaxRecordSize is the largest structure known for the kind, longer
	// records are truncated.
	MaxRecordSize int
	// Base is added to every offset read.
	Base int64
}

// ReadPLC reads table at pos. Record ids are indexes into returned payloads.
func ReadPLC(c *cursor.Cursor, pos int64, plc PLC) (Table, [][]byte, error) {
	t := Table{Kind: plc.Kind, Name: plc.Name}
	op := "read " + t.label()

	if plc.Count < 0 || plc.RecordSize < 0 {
		return t, nil, docerr.New(docerr.KindStructureInconsistent, op, "bad table shape %d/%d", plc.Count, plc.RecordSize)
	}
	size := int64(plc.Count+1)*4 + int64(plc.Count)*int64(plc.RecordSize)
	if !c.CheckRange(pos, size) {
		return t, nil, docerr.New(docerr.KindTruncated, op, "%d bytes at %d do not fit into %d", size, pos, c.Limit())
	}
	if err := c.Seek(pos); err != nil {
		return t, nil, docerr.Wrap(docerr.KindTruncated, op, err)
	}

	t.Offsets = make([]int64, 0, plc.Count+1)
	for range plc.Count + 1 {
		v, err := c.U32()
		if err != nil {
			return t, nil, docerr.Wrap(docerr.KindTruncated, op, err)
		}
		t.Offsets = append(t.Offsets, int64(v)+plc.Base)
	}

	maxSize := plc.RecordSize
	if plc.MaxRecordSize > 0 {
		maxSize = plc.MaxRecordSize
	}
	payloads := make([][]byte, 0, plc.Count)
	t.IDs = make([]int, 0, plc.Count)
	for i := range plc.Count {
		b, err := ReadPayload(c, c.Tell(), plc.RecordSize, maxSize)
		if err != nil {
			return t, nil, docerr.Wrap(docerr.KindTruncated, op, err)
		}
		payloads = append(payloads, b)
		t.IDs = append(t.IDs, i)
	}
	return t, payloads, nil
}

// ReadPayload reads record of declared length at pos. When declared length is
// larger than maxSize only maxSize bytes are read. On success cursor is
// positioned at the declared end, or at the limit if declared end is beyond
// it. Nothing past the declared end is ever read.
func ReadPayload(c *cursor.Cursor, pos int64, declared, maxSize int) ([]byte, error) {
	if declared < 0 || maxSize < 0 {
		return nil, fmt.Errorf("bad payload size %d/%d", declared, maxSize)
	}
	n := min(declared, maxSize)
	if err := c.Seek(pos); err != nil {
		return nil, err
	}
	b, err := c.Read(n)
	if err != nil {
		return nil, err
	}
	end := pos + int64(declared)
	if !c.CheckPosition(end) {
		end = c.Limit()
	}
	_ = c.Seek(end)
	return b, nil
}

// Store owns decoded records of one kind.
type Store[T any] struct {
	def   T
	items []T
}

func NewStore[T any](def T) *Store[T] {
	return &Store[T]{def: def}
}

// Add stores record and returns its id.
func (s *Store[T]) Add(v T) int {
	s.items = append(s.items, v)
	return len(s.items) - 1
}

// Get returns record by id. DefaultID and unknown ids return the default
// record, ok is false only for unknown ids.
func (s *Store[T]) Get(id int) (T, bool) {
	if id == DefaultID {
		return s.def, true
	}
	if id < 0 || id >= len(s.items) {
		return s.def, false
	}
	return s.items[id], true
}

func (s *Store[T]) Default() T {
	return s.def
}

func (s *Store[T]) Len() int {
	return len(s.items)
}

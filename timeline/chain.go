package timeline

import (
	"encoding/binary"

	"ldx/cursor"
	"ldx/docerr"
	"ldx/zone"
)

// ChainLayout describes fixed size pages of formatting descriptors: each page
// starts with u32 offset of its first run, carries entries of u32 run limit
// followed by u16 property location, and keeps entry count in a single byte
// at CountOffset.
type ChainLayout struct {
	PageSize    int
	EntryStart  int
	EntrySize   int
	CountOffset int
}

// DefaultChainLayout is the 128 bytes page used by most of the dialects.
var DefaultChainLayout = ChainLayout{PageSize: 128, EntryStart: 4, EntrySize: 6, CountOffset: 127}

// Entry is a single formatting descriptor.
type Entry struct {
	Limit int64
	Prop  uint16
}

// Page is decoded formatting descriptor page.
type Page struct {
	Pos     int64
	First   int64
	Entries []Entry
}

// Last returns limit of the last run on the page.
func (p *Page) Last() int64 {
	if len(p.Entries) == 0 {
		return p.First
	}
	return p.Entries[len(p.Entries)-1].Limit
}

// ReadPage decodes single page at pos. It does not validate offsets.
func ReadPage(c *cursor.Cursor, pos int64, layout ChainLayout) (Page, error) {
	p := Page{Pos: pos}

	raw, err := c.ReadAt(pos, layout.PageSize)
	if err != nil {
		return p, err
	}
	count := int(raw[layout.CountOffset])
	if layout.EntryStart+count*layout.EntrySize > layout.CountOffset {
		return p, docerr.New(docerr.KindStructureInconsistent, "read page",
			"page at %d declares %d entries which do not fit", pos, count)
	}
	p.First = int64(binary.LittleEndian.Uint32(raw[0:]))
	p.Entries = make([]Entry, 0, count)
	for i := range count {
		b := raw[layout.EntryStart+i*layout.EntrySize:]
		p.Entries = append(p.Entries, Entry{Limit: int64(binary.LittleEndian.Uint32(b)), Prop: binary.LittleEndian.Uint16(b[4:])})
	}
	return p, nil
}

// CheckPage validates page against zone: its first offset must continue
// from expected position, entries must make progress and stay inside of rng.
func CheckPage(p *Page, expected int64, rng zone.ByteRange) error {
	if p.First != expected {
		return docerr.New(docerr.KindStructureInconsistent, "check page",
			"page at %d starts at %d, expected %d", p.Pos, p.First, expected)
	}
	if len(p.Entries) == 0 {
		return docerr.New(docerr.KindStructureInconsistent, "check page", "page at %d is empty", p.Pos)
	}
	prev := p.First
	for i, e := range p.Entries {
		if e.Limit <= prev || e.Limit > rng.End {
			return docerr.New(docerr.KindStructureInconsistent, "check page",
				"page at %d entry %d limit %d does not advance from %d inside of %s", p.Pos, i, e.Limit, prev, rng)
		}
		prev = e.Limit
	}
	return nil
}

// RebuildChain reconstructs descriptor pages starting at page position start
// by following forward links: the last limit of every page is where the next
// page starts. Walk ends when the link reaches the end of rng. Every step must
// make monotonic progress inside of rng, otherwise reconstruction fails with
// structure unavailable error.
func RebuildChain(c *cursor.Cursor, start int64, rng zone.ByteRange, layout ChainLayout) ([]Page, error) {
	const op = "rebuild chain"

	var pages []Page
	expected, pos := rng.Begin, start
	for expected < rng.End {
		if !c.CheckRange(pos, int64(layout.PageSize)) {
			return nil, docerr.New(docerr.KindStructureUnavailable, op,
				"chain is broken at %d, reached %d of %s", pos, expected, rng)
		}
		p, err := ReadPage(c, pos, layout)
		if err != nil {
			return nil, &docerr.Error{Kind: docerr.KindStructureUnavailable, Op: op, Err: err}
		}
		if err := CheckPage(&p, expected, rng); err != nil {
			return nil, &docerr.Error{Kind: docerr.KindStructureUnavailable, Op: op, Err: err}
		}
		pages = append(pages, p)
		expected = p.Last()
		pos += int64(layout.PageSize)
	}
	return pages, nil
}

// ChainTable flattens pages into a table, resolve maps page and property
// location to record id.
func ChainTable(kind Kind, name string, pages []Page, resolve func(p *Page, prop uint16) int) Table {
	t := Table{Kind: kind, Name: name}
	for i := range pages {
		p := &pages[i]
		if len(t.Offsets) == 0 {
			t.Offsets = append(t.Offsets, p.First)
		}
		for _, e := range p.Entries {
			t.Offsets = append(t.Offsets, e.Limit)
			t.IDs = append(t.IDs, resolve(p, e.Prop))
		}
	}
	return t
}

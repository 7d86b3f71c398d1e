package timeline

import (
	"bytes"
	"encoding/binary"
	"testing"

	"ldx/cursor"
	"ldx/docerr"
)

type span struct {
	off int64
	n   int
}

// recordingReader remembers every read it served.
type recordingReader struct {
	r     *bytes.Reader
	reads []span
}

func (rr *recordingReader) ReadAt(p []byte, off int64) (int, error) {
	rr.reads = append(rr.reads, span{off, len(p)})
	return rr.r.ReadAt(p, off)
}

func TestReadPayload_TruncatesToMax(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	rr := &recordingReader{r: bytes.NewReader(data)}
	c := cursor.New(rr, int64(len(data)))

	const pos, declared, maxSize = 10, 40, 6
	b, err := ReadPayload(c, pos, declared, maxSize)
	if err != nil {
		t.Fatalf("ReadPayload() error = %v", err)
	}
	if !bytes.Equal(b, data[pos:pos+maxSize]) {
		t.Errorf("ReadPayload() = %v", b)
	}
	read := 0
	for _, s := range rr.reads {
		if s.off < pos || s.off+int64(s.n) > pos+maxSize {
			t.Errorf("read [%d,%d) outside of [%d,%d)", s.off, s.off+int64(s.n), pos, pos+maxSize)
		}
		read += s.n
	}
	if read != maxSize {
		t.Errorf("read %d bytes, want %d", read, maxSize)
	}
	if c.Tell() != pos+declared {
		t.Errorf("cursor at %d, want declared end %d", c.Tell(), pos+declared)
	}
}

func TestReadPayload_DeclaredEndPastLimit(t *testing.T) {
	data := make([]byte, 16)
	rr := &recordingReader{r: bytes.NewReader(data)}
	c := cursor.New(rr, int64(len(data)))

	b, err := ReadPayload(c, 8, 255, 4)
	if err != nil {
		t.Fatalf("ReadPayload() error = %v", err)
	}
	if len(b) != 4 {
		t.Errorf("len = %d, want 4", len(b))
	}
	if c.Tell() != 16 {
		t.Errorf("cursor at %d, want limit", c.Tell())
	}
	if len(rr.reads) != 1 {
		t.Errorf("%d reads, want 1", len(rr.reads))
	}
}

func TestReadPayload_Short(t *testing.T) {
	c := cursor.New(bytes.NewReader(make([]byte, 8)), 8)
	if _, err := ReadPayload(c, 6, 4, 4); !docerr.Is(err, docerr.KindTruncated) {
		t.Errorf("ReadPayload() error = %v, want truncated", err)
	}
	if _, err := ReadPayload(c, 0, -1, 4); err == nil {
		t.Error("negative declared length must fail")
	}
}

func plcBytes(offsets []uint32, records ...[]byte) []byte {
	var buf bytes.Buffer
	for _, o := range offsets {
		_ = binary.Write(&buf, binary.LittleEndian, o)
	}
	for _, r := range records {
		buf.Write(r)
	}
	return buf.Bytes()
}

func TestReadPLC(t *testing.T) {
	prefix := []byte{0xEE, 0xEE}
	raw := append(prefix, plcBytes([]uint32{0, 4, 9}, []byte{1, 2, 3}, []byte{4, 5, 6})...)
	c := cursor.New(bytes.NewReader(raw), int64(len(raw)))

	tbl, payloads, err := ReadPLC(c, 2, PLC{Kind: KindFont, Count: 2, RecordSize: 3, MaxRecordSize: 2, Base: 100})
	if err != nil {
		t.Fatalf("ReadPLC() error = %v", err)
	}
	if got := tbl.Offsets; len(got) != 3 || got[0] != 100 || got[1] != 104 || got[2] != 109 {
		t.Errorf("Offsets = %v", got)
	}
	if len(payloads) != 2 || !bytes.Equal(payloads[0], []byte{1, 2}) || !bytes.Equal(payloads[1], []byte{4, 5}) {
		t.Errorf("payloads = %v", payloads)
	}
	if len(tbl.IDs) != 2 || tbl.IDs[1] != 1 {
		t.Errorf("IDs = %v", tbl.IDs)
	}

	if _, _, err := ReadPLC(c, 2, PLC{Kind: KindFont, Count: 5, RecordSize: 3}); !docerr.Is(err, docerr.KindTruncated) {
		t.Errorf("oversized ReadPLC() error = %v, want truncated", err)
	}
}

// fkpPage builds 128 bytes descriptor page.
func fkpPage(first uint32, entries ...Entry) []byte {
	page := make([]byte, 128)
	binary.LittleEndian.PutUint32(page, first)
	for i, e := range entries {
		b := page[4+i*6:]
		binary.LittleEndian.PutUint32(b, uint32(e.Limit))
		binary.LittleEndian.PutUint16(b[4:], e.Prop)
	}
	page[127] = byte(len(entries))
	return page
}

func TestRebuildChain(t *testing.T) {
	file := make([]byte, 256)
	file = append(file, fkpPage(128, Entry{150, 0xFFFF}, Entry{170, 10})...)
	file = append(file, fkpPage(170, Entry{200, 20})...)
	c := cursor.New(bytes.NewReader(file), int64(len(file)))

	pages, err := RebuildChain(c, 256, rng(128, 200), DefaultChainLayout)
	if err != nil {
		t.Fatalf("RebuildChain() error = %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	tbl := ChainTable(KindFont, "chp", pages, func(p *Page, prop uint16) int {
		if prop == 0xFFFF {
			return DefaultID
		}
		return int(p.Pos) + int(prop)
	})
	if err := tbl.Validate(rng(128, 200)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if want := []int{DefaultID, 266, 404}; len(tbl.IDs) != 3 || tbl.IDs[0] != want[0] || tbl.IDs[1] != want[1] || tbl.IDs[2] != want[2] {
		t.Errorf("IDs = %v, want %v", tbl.IDs, want)
	}
}

func TestRebuildChain_Broken(t *testing.T) {
	tests := []struct {
		name  string
		pages [][]byte
	}{
		{"link goes backwards", [][]byte{fkpPage(128, Entry{150, 0}), fkpPage(150, Entry{140, 0})}},
		{"wrong continuation", [][]byte{fkpPage(128, Entry{150, 0}), fkpPage(151, Entry{200, 0})}},
		{"past zone end", [][]byte{fkpPage(128, Entry{250, 0})}},
		{"empty page", [][]byte{fkpPage(128)}},
		{"runs off file", [][]byte{fkpPage(128, Entry{150, 0})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var file []byte
			for _, p := range tt.pages {
				file = append(file, p...)
			}
			c := cursor.New(bytes.NewReader(file), int64(len(file)))
			if _, err := RebuildChain(c, 0, rng(128, 200), DefaultChainLayout); !docerr.Is(err, docerr.KindStructureUnavailable) {
				t.Errorf("RebuildChain() error = %v, want structure unavailable", err)
			}
		})
	}
}

func TestReadPage_TooManyEntries(t *testing.T) {
	page := fkpPage(0)
	page[127] = 30
	c := cursor.New(bytes.NewReader(page), 128)
	if _, err := ReadPage(c, 0, DefaultChainLayout); err == nil {
		t.Error("ReadPage() must reject overflowing entry count")
	}
}

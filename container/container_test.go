package container

import (
	"bytes"
	"slices"
	"testing"

	"ldx/container/cfbtest"
	"ldx/docerr"
)

func TestFlatInput(t *testing.T) {
	in := FromBytes("plain.wri", []byte{0x31, 0xBE, 0, 0})
	if in.Structured() {
		t.Error("flat input reported as structured")
	}
	if _, err := in.Streams(); !docerr.Is(err, docerr.KindUnsupported) {
		t.Errorf("Streams() error = %v", err)
	}
	if _, err := in.Stream("x"); err == nil {
		t.Error("Stream() on flat input must fail")
	}
	if got := in.Head(16); len(got) != 4 {
		t.Errorf("Head() = %v", got)
	}
	c := in.Cursor()
	if v, err := c.U16(); err != nil || v != 0xBE31 {
		t.Errorf("U16() = %#x, %v", v, err)
	}
}

func TestStructuredInput(t *testing.T) {
	main := []byte("main stream content")
	table := bytes.Repeat([]byte{0xAB}, 5000)
	raw := cfbtest.Build(cfbtest.Stream{Name: "Contents", Data: main}, cfbtest.Stream{Name: "Table", Data: table})

	in := FromBytes("doc.cfb", raw)
	if !in.Structured() {
		t.Fatal("compound file not recognized")
	}
	names, err := in.Streams()
	if err != nil {
		t.Fatalf("Streams() error = %v", err)
	}
	if !slices.Contains(names, "Contents") || !slices.Contains(names, "Table") {
		t.Errorf("Streams() = %v", names)
	}

	s, err := in.Stream("Contents")
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if !bytes.HasPrefix(s.Head(64), main) {
		t.Errorf("stream content = %q", s.Head(32))
	}
	if s.Size() != 4096 {
		t.Errorf("stream size = %d", s.Size())
	}

	tbl, err := in.Stream("Table")
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if tbl.Size() != int64(len(table)) {
		t.Errorf("table size = %d, want %d", tbl.Size(), len(table))
	}
	if !in.HasStream("Table") || in.HasStream("Missing") {
		t.Error("HasStream() is wrong")
	}
	if _, err := in.Stream("Missing"); !docerr.Is(err, docerr.KindStructureUnavailable) {
		t.Errorf("Stream(missing) error = %v", err)
	}
}

func TestBrokenCompoundFile(t *testing.T) {
	raw := cfbtest.Build(cfbtest.Stream{Name: "Contents", Data: []byte("x")})
	raw = raw[:600]

	in := FromBytes("broken.cfb", raw)
	if in.Structured() {
		t.Error("truncated compound file reported as structured")
	}
	if _, err := in.Streams(); err == nil {
		t.Error("Streams() must fail")
	}
}

package timeline

import (
	"math/rand/v2"
	"testing"

	"ldx/docerr"
	"ldx/zone"
)

func rng(b, e int64) zone.ByteRange {
	return zone.ByteRange{Begin: b, End: e}
}

func TestMerge_TieOrder(t *testing.T) {
	fonts := New(rng(0, 10), Event{Offset: 0, Kind: KindFont, ID: 1}, Event{Offset: 5, Kind: KindFont, ID: 2})
	paras := New(rng(0, 10), Event{Offset: 0, Kind: KindParagraph, ID: 7}, Event{Offset: 5, Kind: KindParagraph, ID: 8})
	marks := New(rng(0, 10), Event{Offset: 5, Kind: KindMarker, ID: 3})

	got := MergeAll(fonts, paras, marks).Events()
	want := []Event{
		{0, KindParagraph, 7},
		{0, KindFont, 1},
		{5, KindMarker, 3},
		{5, KindParagraph, 8},
		{5, KindFont, 2},
	}
	if len(got) != len(want) {
		t.Fatalf("MergeAll() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMerge_SameKindCollisionKeepsLeft(t *testing.T) {
	a := New(rng(0, 4), Event{Offset: 2, Kind: KindFont, ID: 1})
	b := New(rng(0, 4), Event{Offset: 2, Kind: KindFont, ID: 9})

	got := Merge(a, b).Events()
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Merge() = %v, want single event with id 1", got)
	}
}

func TestMerge_DefaultMarkerYields(t *testing.T) {
	gaps := New(rng(0, 10), Event{Offset: 0, Kind: KindMarker, ID: DefaultID}, Event{Offset: 4, Kind: KindMarker, ID: 2})
	pages := New(rng(0, 10), Event{Offset: 0, Kind: KindMarker, ID: 7}, Event{Offset: 4, Kind: KindMarker, ID: 8})

	got := Merge(gaps, pages).Events()
	want := []Event{{0, KindMarker, 7}, {4, KindMarker, 2}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Merge() = %v, want %v", got, want)
	}

	tl := New(rng(0, 10), Event{Offset: 3, Kind: KindMarker, ID: DefaultID}, Event{Offset: 3, Kind: KindMarker, ID: 5})
	if got := tl.Events(); len(got) != 1 || got[0].ID != 5 {
		t.Errorf("New() = %v, want single event with id 5", got)
	}
}

func TestMerge_Associative(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	random := func() Timeline {
		var events []Event
		for range r.IntN(12) {
			events = append(events, Event{
				Offset: int64(r.IntN(20)),
				Kind:   Kind(r.IntN(3)),
				ID:     r.IntN(6) - 1,
			})
		}
		b := int64(r.IntN(5))
		return New(rng(b, b+int64(r.IntN(30))), events...)
	}

	for i := range 500 {
		a, b, c := random(), random(), random()
		left := Merge(Merge(a, b), c)
		right := Merge(a, Merge(b, c))
		if !left.Equal(right) {
			t.Fatalf("case %d: merge is not associative\n a=%s\n b=%s\n c=%s\n left=%s\nright=%s", i, a, b, c, left, right)
		}
		checkOrdered(t, left)
	}
}

func checkOrdered(t *testing.T, tl Timeline) {
	t.Helper()
	events := tl.Events()
	for i := 1; i < len(events); i++ {
		if compareEvents(events[i-1], events[i]) >= 0 {
			t.Fatalf("events %v and %v are out of order", events[i-1], events[i])
		}
	}
}

func TestFromTable_Coverage(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		zone  zone.ByteRange
	}{
		{
			name:  "exact",
			table: Table{Kind: KindFont, Offsets: []int64{10, 15, 20}, IDs: []int{0, 1}},
			zone:  rng(10, 20),
		},
		{
			name:  "gaps at both ends",
			table: Table{Kind: KindFont, Offsets: []int64{12, 15, 18}, IDs: []int{0, 1}},
			zone:  rng(10, 20),
		},
		{
			name:  "empty runs",
			table: Table{Kind: KindParagraph, Offsets: []int64{10, 10, 14, 14, 20}, IDs: []int{0, 1, 2, 3}},
			zone:  rng(10, 20),
		},
		{
			name:  "repeated record",
			table: Table{Kind: KindParagraph, Offsets: []int64{10, 12, 16, 20}, IDs: []int{4, 4, 5}},
			zone:  rng(10, 20),
		},
		{
			name:  "no records",
			table: Table{Kind: KindFont, Offsets: []int64{10}},
			zone:  rng(10, 20),
		},
		{
			name:  "single empty run",
			table: Table{Kind: KindFont, Offsets: []int64{15, 15}, IDs: []int{3}},
			zone:  rng(10, 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := Resolve(tt.table, tt.zone)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			checkOrdered(t, tl)

			recs := tl.Records(tt.table.Kind)
			if len(recs) == 0 {
				t.Fatal("no records")
			}
			pos := tt.zone.Begin
			for _, r := range recs {
				if r.Validity.Begin != pos {
					t.Fatalf("record %v leaves gap or overlaps at %d", r, pos)
				}
				if !r.Validity.Valid() {
					t.Fatalf("record %v is empty", r)
				}
				pos = r.Validity.End
			}
			if pos != tt.zone.End {
				t.Errorf("records end at %d, want %d", pos, tt.zone.End)
			}
		})
	}
}

func TestFromTable_RecordIDs(t *testing.T) {
	tl := FromTable(Table{Kind: KindFont, Offsets: []int64{12, 15, 18}, IDs: []int{0, 1}}, rng(10, 20))
	want := []struct {
		off int64
		id  int
	}{{10, DefaultID}, {12, 0}, {14, 0}, {15, 1}, {18, DefaultID}, {19, DefaultID}}
	for _, w := range want {
		if got := tl.At(w.off, KindFont); got != w.id {
			t.Errorf("At(%d) = %d, want %d", w.off, got, w.id)
		}
	}
}

func TestResolve_Inconsistent(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{"count mismatch", Table{Kind: KindFont, Offsets: []int64{0, 5}, IDs: []int{0, 1}}},
		{"not monotonic", Table{Kind: KindMarker, Offsets: []int64{0, 6, 4, 10}, IDs: []int{0, 1, 2}}},
		{"outside of zone", Table{Kind: KindParagraph, Offsets: []int64{0, 5, 11}, IDs: []int{0, 1}}},
		{"before zone", Table{Kind: KindParagraph, Offsets: []int64{-1, 5}, IDs: []int{0}}},
		{"no offsets", Table{Kind: KindParagraph}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := Resolve(tt.table, rng(0, 10))
			if err == nil {
				t.Fatal("Resolve() must fail")
			}
			if !docerr.Is(err, docerr.KindStructureInconsistent) {
				t.Errorf("Resolve() error kind = %v", err)
			}
			if !tl.Equal(Fallback(tt.table.Kind, rng(0, 10))) {
				t.Errorf("Resolve() = %s, want fallback", tl)
			}
		})
	}
}

func TestRecords_SkipsOtherKinds(t *testing.T) {
	tl := New(rng(0, 10),
		Event{Offset: 0, Kind: KindFont, ID: 1},
		Event{Offset: 3, Kind: KindMarker, ID: 0},
		Event{Offset: 6, Kind: KindFont, ID: 2},
	)
	recs := tl.Records(KindFont)
	if len(recs) != 2 || recs[0].Validity != rng(0, 6) || recs[1].Validity != rng(6, 10) {
		t.Errorf("Records() = %v", recs)
	}
}

func TestStore(t *testing.T) {
	s := NewStore("default")
	id := s.Add("bold")
	if v, ok := s.Get(id); !ok || v != "bold" {
		t.Errorf("Get(%d) = %q, %v", id, v, ok)
	}
	if v, ok := s.Get(DefaultID); !ok || v != "default" {
		t.Errorf("Get(DefaultID) = %q, %v", v, ok)
	}
	if v, ok := s.Get(42); ok || v != "default" {
		t.Errorf("Get(42) = %q, %v", v, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d", s.Len())
	}
}

func TestResolve_ScopedTable(t *testing.T) {
	// one table for the whole text, zones are parts of it
	fonts := Table{Kind: KindFont, Scope: rng(100, 200), Offsets: []int64{100, 130, 160, 200}, IDs: []int{0, 1, 2}}

	tl, err := Resolve(fonts, rng(140, 170))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	recs := tl.Records(KindFont)
	if len(recs) != 2 || recs[0] != (Record{KindFont, 1, rng(140, 160)}) || recs[1] != (Record{KindFont, 2, rng(160, 170)}) {
		t.Errorf("Records() = %v", recs)
	}

	marks := Table{Kind: KindMarker, Scope: rng(100, 200), Offsets: []int64{100, 150, 200}, IDs: []int{0, 1}}
	tl, err = Resolve(marks, rng(120, 200))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := tl.Events(); len(got) != 2 || got[0] != (Event{120, KindMarker, DefaultID}) || got[1] != (Event{150, KindMarker, 1}) {
		t.Errorf("marker events = %v", got)
	}

	broken := Table{Kind: KindMarker, Scope: rng(100, 200), Offsets: []int64{100, 180, 150, 200}, IDs: []int{0, 1, 2}}
	tl, err = Resolve(broken, rng(100, 120))
	if !docerr.Is(err, docerr.KindStructureInconsistent) {
		t.Errorf("Resolve() error = %v", err)
	}
	if !tl.Equal(Fallback(KindMarker, rng(100, 120))) {
		t.Errorf("Resolve() = %s, want fallback", tl)
	}
}

package extract

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding"

	"ldx/common"
	"ldx/container"
	"ldx/dialect"
	"ldx/docerr"
	"ldx/document"
	"ldx/timeline"
	"ldx/zone"
)

const fakeMagic = "FAKE"

var (
	mainKey = zone.Key{Kind: zone.KindMain}
	note1   = zone.Key{Kind: zone.KindFootnote, Index: 1}
	note2   = zone.Key{Kind: zone.KindFootnote, Index: 2}
	note10  = zone.Key{Kind: zone.KindFootnote, Index: 10}
)

type fakeZone struct {
	key zone.Key
	rng zone.ByteRange
}

// fakeDoc serves text and tables given verbatim.
type fakeDoc struct {
	text    string
	zones   []fakeZone
	tables  map[zone.Key][]timeline.Table
	fonts   []document.Font
	paras   []dialect.Paragraph
	markers []dialect.Marker
	pages   []document.PageSpan
}

func (d *fakeDoc) Metadata() document.Metadata { return document.Metadata{Creator: "fake"} }
func (d *fakeDoc) Encoding() encoding.Encoding { return nil }
func (d *fakeDoc) PageList() []document.PageSpan { return d.pages }
func (d *fakeDoc) Section() document.Section { return document.Section{Columns: 1} }
func (d *fakeDoc) Recovered() error { return nil }

func (d *fakeDoc) LocateZones(reg *zone.Registry) error {
	for _, z := range d.zones {
		if _, err := reg.Add(z.key, z.rng); err != nil {
			return err
		}
	}
	return nil
}

func (d *fakeDoc) Tables(key zone.Key) []timeline.Table {
	return d.tables[key]
}

func (d *fakeDoc) Text(rng zone.ByteRange) ([]byte, error) {
	if rng.End > int64(len(d.text)) {
		return nil, docerr.New(docerr.KindTruncated, "read text", "range %s", rng)
	}
	return []byte(d.text[rng.Begin:rng.End]), nil
}

func record[T any](records []T, id int, kind string) (T, error) {
	var zero T
	if id == timeline.DefaultID {
		return zero, nil
	}
	if id < 0 || id >= len(records) {
		return zero, docerr.New(docerr.KindStructureInconsistent, "read record", "unknown %s record %d", kind, id)
	}
	return records[id], nil
}

func (d *fakeDoc) ReadFontRecord(id int) (document.Font, error) {
	return record(d.fonts, id, "font")
}

func (d *fakeDoc) ReadParagraphRecord(id int) (dialect.Paragraph, error) {
	return record(d.paras, id, "paragraph")
}

func (d *fakeDoc) ReadAuxiliaryRecord(id int) (dialect.Marker, error) {
	return record(d.markers, id, "marker")
}

type fakeDialect struct {
	doc *fakeDoc
}

func (fakeDialect) Tag() string { return "fake" }

func (fakeDialect) Probe(in *container.Input) dialect.Result {
	if !bytes.Equal(in.Head(len(fakeMagic)), []byte(fakeMagic)) {
		return dialect.Result{Confidence: common.ConfidenceNone}
	}
	return dialect.Result{Confidence: common.ConfidenceSupported, Kind: common.DocumentKindText, Creator: "fake"}
}

func (f fakeDialect) Open(*container.Input, dialect.Options) (dialect.Document, error) {
	return f.doc, nil
}

// table builds raw table from run boundaries.
func table(kind timeline.Kind, name string, offsets []int64, ids ...int) timeline.Table {
	return timeline.Table{Kind: kind, Name: name, Offsets: offsets, IDs: ids}
}

func onePage() []document.PageSpan {
	return []document.PageSpan{{Span: 1}}
}

type result struct {
	doc  *Document
	rec  *document.Recorder
	logs *observer.ObservedLogs
}

func parseFake(t *testing.T, doc *fakeDoc, opts Options) (*result, error) {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	opts.Dialects = dialect.NewRegistry(fakeDialect{doc: doc})
	opts.Log = zap.New(core)
	rec := document.NewRecorder()
	d, err := Parse(context.Background(), container.FromBytes("test.fake", []byte(fakeMagic)), rec, opts)
	return &result{doc: d, rec: rec, logs: logs}, err
}

func mustParseFake(t *testing.T, doc *fakeDoc, opts Options) *result {
	t.Helper()

	res, err := parseFake(t, doc, opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !res.rec.Balanced() {
		t.Fatalf("unbalanced calls: %v, open %v\n%v", res.rec.Violations, res.rec.Open(), res.rec.Calls)
	}
	return res
}

// body returns calls without document level containers.
func body(rec *document.Recorder) []string {
	return rec.Without("OpenDocument", "CloseDocument", "OpenPageSpan", "ClosePageSpan", "OpenSection", "CloseSection")
}

func checkCalls(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("calls mismatch\n got: %v\nwant: %v", got, want)
	}
}

package listener

import (
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"ldx/document"
	"ldx/zone"
)

type renderFunc func(l *Listener) error

type fakeRenderer struct {
	l     *Listener
	zones map[zone.Key]renderFunc
}

func (f *fakeRenderer) Render(key zone.Key) error {
	return f.zones[key](f.l)
}

type fixture struct {
	l    *Listener
	rec  *document.Recorder
	logs *observer.ObservedLogs
}

func onePage() []document.PageSpan {
	return []document.PageSpan{{Span: 1}}
}

func newFixture(t *testing.T, pages []document.PageSpan, zones map[zone.Key]renderFunc) *fixture {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	reg := zone.NewRegistry()
	keys := make([]zone.Key, 0, len(zones))
	for k := range zones {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b zone.Key) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		return a.Index - b.Index
	})
	for i, k := range keys {
		if _, err := reg.Add(k, zone.ByteRange{Begin: int64(i * 10), End: int64(i*10 + 10)}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	rec := document.NewRecorder()
	r := &fakeRenderer{zones: zones}
	l := New(rec, Options{
		Pages:    pages,
		Zones:    reg,
		Renderer: r,
		Log:      zap.New(core),
	})
	r.l = l
	return &fixture{l: l, rec: rec, logs: logs}
}

func (f *fixture) end(t *testing.T) {
	t.Helper()
	if err := f.l.EndDocument(false); err != nil {
		t.Fatalf("EndDocument() error = %v", err)
	}
	if !f.rec.Balanced() {
		t.Fatalf("unbalanced calls: %v, open %v\n%v", f.rec.Violations, f.rec.Open(), f.rec.Calls)
	}
}

// body returns calls without document level containers.
func (f *fixture) body() []string {
	return f.rec.Without("OpenDocument", "CloseDocument", "OpenPageSpan", "ClosePageSpan", "OpenSection", "CloseSection")
}

func checkCalls(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("calls mismatch\n got: %v\nwant: %v", got, want)
	}
}

func count(calls []string, c string) int {
	n := 0
	for _, s := range calls {
		if s == c {
			n++
		}
	}
	return n
}

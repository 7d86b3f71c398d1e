// Package extract is the entry point of the library: it detects document
// dialect, resolves property timelines of every zone and walks them driving
// the content listener, which emits structural events to the sink.
package extract

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ldx/container"
	"ldx/dialect"
	"ldx/document"
	"ldx/listener"
	"ldx/zone"
)

// Options of a single parse.
type Options struct {
	Password string
	// Encoding overrides code page of document text.
	Encoding    string
	Placeholder string
	// FlushUnclaimed renders zones nothing referenced at the end of main
	// text, otherwise they are only reported.
	FlushUnclaimed    bool
	CollapsePageSpans bool
	// Dialects to try, all known dialects when nil.
	Dialects *dialect.Registry
	Log      *zap.Logger
}

// Document describes parsed document.
type Document struct {
	ID       string
	Source   string
	Dialect  string
	Result   dialect.Result
	Encoding string
	Meta     document.Metadata

	Zones     []zone.Key
	Unclaimed []zone.Key
	Pages     []document.PageSpan

	PageMarks int
	Pictures  int
	Notes     int

	// Recovered are problems worked around, output is still complete as far
	// as document allowed.
	Recovered error
}

// Parse extracts document content into sink. On error nothing sink received
// should be used: fatal conditions abort in the middle of the document.
func Parse(ctx context.Context, in *container.Input, sink document.Sink, opts Options) (*Document, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("extract")
	reg := opts.Dialects
	if reg == nil {
		reg = Dialects()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, res, err := open(reg, in, dialect.Options{Password: opts.Password, Log: log}, log)
	if err != nil {
		return nil, err
	}

	enc, err := textEncoding(opts.Encoding, doc.Encoding())
	if err != nil {
		return nil, err
	}
	if res.NeedsEncodingHint && len(opts.Encoding) == 0 {
		log.Debug("Document does not record its code page, assuming default", zap.String("encoding", EncodingName(enc)))
	}

	zones := zone.NewRegistry()
	if err := doc.LocateZones(zones); err != nil {
		return nil, fmt.Errorf("unable to locate document zones: %w", err)
	}

	pages := doc.PageList()
	if opts.CollapsePageSpans {
		pages = document.CollapsePageSpans(pages)
	}

	meta := doc.Metadata()
	if len(meta.ID) == 0 {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("unable to generate document id: %w", err)
		}
		meta.ID = id.String()
	}
	log = log.With(zap.String("id", meta.ID))

	w := &walker{
		doc:   doc,
		zones: zones,
		dec:   enc.NewDecoder(),
		log:   log.Named("walker"),
	}
	l := listener.New(sink, listener.Options{
		Pages:       pages,
		Meta:        meta,
		Zones:       zones,
		Renderer:    w,
		Placeholder: opts.Placeholder,
		Log:         log,
	})
	w.l = l
	l.SetSection(doc.Section())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mainKey := zone.Key{Kind: zone.KindMain}
	if zones.Claim(mainKey) {
		if err := w.Render(mainKey); err != nil {
			if l.Err() == nil {
				// main text is essential
				err = fmt.Errorf("main text: %w", err)
			}
			return nil, err
		}
	} else {
		log.Debug("Document has no main text")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := l.EndDocument(opts.FlushUnclaimed); err != nil {
		return nil, err
	}

	d := &Document{
		ID:        meta.ID,
		Source:    in.Name(),
		Dialect:   res.Creator,
		Result:    res,
		Encoding:  EncodingName(enc),
		Meta:      meta,
		Zones:     zones.Keys(),
		Unclaimed: unclaimed(zones),
		Pages:     pages,
		PageMarks: w.stats.pageMarks,
		Pictures:  w.stats.pictures,
		Notes:     w.stats.notes,
		Recovered: multierr.Combine(doc.Recovered(), w.recovered, l.Recovered()),
	}
	for _, key := range d.Unclaimed {
		log.Info("Zone was never referenced", zap.Stringer("zone", key))
	}
	if d.Recovered != nil {
		log.Warn("Document was damaged, some content may be missing or default formatted",
			zap.Int("problems", len(multierr.Errors(d.Recovered))))
	}
	return d, nil
}

func unclaimed(zones *zone.Registry) []zone.Key {
	var keys []zone.Key
	for _, k := range zones.Unclaimed() {
		if k.Kind != zone.KindMain {
			keys = append(keys, k)
		}
	}
	return keys
}

package extract

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"ldx/dialect"
	"ldx/docerr"
	"ldx/document"
	"ldx/listener"
	"ldx/timeline"
	"ldx/zone"
)

// Control characters of text stream.
const (
	chPageNumber  = 0x01
	chTab         = 0x09
	chLineFeed    = 0x0A
	chLineBreak   = 0x0B
	chPageBreak   = 0x0C
	chReturn      = 0x0D
	chColumnBreak = 0x0E
	chSoftHyphen  = 0x1F
)

// stats counts what walker saw, reported in Document.
type stats struct {
	zones     int
	pageMarks int
	pictures  int
	notes     int
}

// walker walks zone timeline in lockstep with zone text translating records
// into listener calls. It renders zones for the dispatcher too.
type walker struct {
	doc   dialect.Document
	zones *zone.Registry
	dec   *encoding.Decoder
	l     *listener.Listener
	log   *zap.Logger

	stats     stats
	recovered error
}

var _ listener.Renderer = (*walker)(nil)

func (w *walker) keep(err error) {
	w.recovered = multierr.Append(w.recovered, err)
}

// timeline resolves every raw table of the zone. Broken tables degrade to
// defaults, problem is logged and remembered.
func (w *walker) timeline(z *zone.Zone) timeline.Timeline {
	var (
		parts []timeline.Timeline
		seen  = make(map[timeline.Kind]bool)
	)
	for _, t := range w.doc.Tables(z.Key) {
		tl, err := timeline.Resolve(t, z.Range)
		if err != nil {
			w.log.Warn("Property table is damaged, using defaults",
				zap.Stringer("zone", z.Key), zap.String("table", t.Name), zap.Error(err))
			w.keep(fmt.Errorf("zone %s: %w", z.Key, err))
		}
		parts = append(parts, tl)
		seen[t.Kind] = true
	}
	for _, kind := range []timeline.Kind{timeline.KindParagraph, timeline.KindFont} {
		if !seen[kind] {
			parts = append(parts, timeline.Fallback(kind, z.Range))
		}
	}
	return timeline.MergeAll(parts...)
}

// Render sends zone content to the listener.
func (w *walker) Render(key zone.Key) error {
	z, ok := w.zones.Get(key)
	if !ok {
		return docerr.New(docerr.KindStructureUnavailable, "render zone", "zone %s is not registered", key)
	}
	text, err := w.doc.Text(z.Range)
	if err != nil {
		return fmt.Errorf("zone %s: %w", key, err)
	}
	tl := w.timeline(z)

	w.stats.zones++
	w.log.Debug("Rendering zone", zap.Stringer("zone", key), zap.Stringer("range", z.Range), zap.Int("events", tl.Len()))

	var (
		events = tl.Events()
		cur    = z.Range.Begin
		skip   = z.Range.Begin
	)
	emit := func(end int64) {
		begin := max(cur, skip)
		if begin < end {
			w.text(text[begin-z.Range.Begin : end-z.Range.Begin])
		}
		cur = max(cur, end)
	}
	for i := 0; i < len(events); {
		off := events[i].Offset
		n := i + 1
		for n < len(events) && events[n].Offset == off {
			n++
		}
		emit(min(off, z.Range.End))
		if extent := w.applyAt(events[i:n]); extent > 0 {
			skip = max(skip, off+extent)
		}
		if err := w.l.Err(); err != nil {
			return err
		}
		i = n
	}
	emit(z.Range.End)
	return w.l.Err()
}

// applyAt handles events sharing an offset and returns number of text bytes
// they cover. Block pictures open their own paragraph, so they wait until
// formatting starting at the same offset is applied.
func (w *walker) applyAt(events []timeline.Event) int64 {
	var (
		extent int64
		blocks []dialect.Marker
	)
	for _, ev := range events {
		if ev.Kind != timeline.KindMarker {
			w.apply(ev)
			continue
		}
		m, ok := w.readMarker(ev)
		if !ok {
			continue
		}
		extent = max(extent, m.Extent)
		if m.Kind == dialect.MarkerKindPicture && m.Block {
			blocks = append(blocks, m)
			continue
		}
		w.marker(m)
	}
	for _, m := range blocks {
		w.marker(m)
	}
	return extent
}

func (w *walker) readMarker(ev timeline.Event) (dialect.Marker, bool) {
	if ev.ID == timeline.DefaultID {
		return dialect.Marker{}, false
	}
	m, err := w.doc.ReadAuxiliaryRecord(ev.ID)
	if err != nil {
		w.log.Debug("Bad auxiliary record", zap.Int("id", ev.ID), zap.Error(err))
		w.keep(err)
		return dialect.Marker{}, false
	}
	return m, true
}

// apply handles single formatting event.
func (w *walker) apply(ev timeline.Event) {
	switch ev.Kind {
	case timeline.KindFont:
		f, err := w.doc.ReadFontRecord(ev.ID)
		if err != nil {
			w.log.Debug("Bad font record", zap.Int("id", ev.ID), zap.Error(err))
			w.keep(err)
		}
		w.l.SetFont(f)
	case timeline.KindParagraph:
		p, err := w.doc.ReadParagraphRecord(ev.ID)
		if err != nil {
			w.log.Debug("Bad paragraph record", zap.Int("id", ev.ID), zap.Error(err))
			w.keep(err)
		}
		w.paragraph(p)
	}
}

func (w *walker) paragraph(p dialect.Paragraph) {
	switch {
	case p.InTable && !w.l.InTable():
		w.l.OpenTable(p.Table)
	case !p.InTable && w.l.InTable():
		w.l.CloseTable()
	}
	w.l.SetParagraph(p.Paragraph)
}

func (w *walker) marker(m dialect.Marker) {
	switch m.Kind {
	case dialect.MarkerKindPageBreak:
		w.l.InsertBreak(listener.BreakPage)
	case dialect.MarkerKindColumnBreak:
		w.l.InsertBreak(listener.BreakColumn)
	case dialect.MarkerKindFootnote, dialect.MarkerKindEndnote:
		w.stats.notes++
		w.l.InsertNote(m.Zone, m.Note)
	case dialect.MarkerKindField:
		w.l.InsertField(m.Field)
	case dialect.MarkerKindPicture:
		w.stats.pictures++
		w.l.InsertPicture(m.Picture)
		if m.Block {
			w.l.CloseParagraph()
		}
	case dialect.MarkerKindCellEnd:
		w.l.CloseTableCell()
	case dialect.MarkerKindRowEnd:
		w.l.CloseTableRow()
	case dialect.MarkerKindPage:
		// pagination is advisory, hard breaks come from text
		w.stats.pageMarks++
	case dialect.MarkerKindBookmark:
	}
}

// text decodes runs of printable bytes and translates control characters.
func (w *walker) text(b []byte) {
	start := 0
	flush := func(end int) {
		if end > start {
			w.l.InsertText(w.decode(b[start:end]))
		}
	}
	for i, ch := range b {
		if ch >= 0x20 {
			continue
		}
		flush(i)
		start = i + 1

		switch ch {
		case chLineFeed:
			// empty lines are paragraphs too
			w.l.OpenParagraph()
			w.l.CloseParagraph()
		case chLineBreak:
			w.l.InsertLineBreak()
		case chPageBreak:
			w.l.InsertBreak(listener.BreakPage)
		case chColumnBreak:
			w.l.InsertBreak(listener.BreakColumn)
		case chTab:
			w.l.InsertTab()
		case chPageNumber:
			w.l.InsertField(document.Field{Kind: document.FieldKindPageNumber})
		case chReturn, chSoftHyphen:
		}
	}
	flush(len(b))
}

func (w *walker) decode(b []byte) string {
	s, err := w.dec.Bytes(b)
	if err != nil {
		w.log.Debug("Unable to decode text", zap.Error(err))
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(s)
}

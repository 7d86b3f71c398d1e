// Package listener drives document sink through strict open/close protocol.
//
// Callers only insert content and change properties, listener opens missing
// containers lazily (span, paragraph, section, page span, document) and
// closes them in order, defers page breaks until the paragraph is done and
// keeps list numbering, table nesting and out of line notes consistent.
package listener

import (
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ldx/docerr"
	"ldx/document"
	"ldx/zone"
)

// Break requested in text flow.
type Break int

const (
	BreakPage Break = iota
	BreakColumn
)

// Renderer sends content of a zone to the listener.
type Renderer interface {
	Render(key zone.Key) error
}

// Options for the new listener.
type Options struct {
	// Pages is the page list, every hard page break moves to the next page.
	Pages []document.PageSpan
	Meta  document.Metadata
	// Zones and Renderer serve out of line content, both may be nil when
	// document has none.
	Zones    *zone.Registry
	Renderer Renderer
	// Placeholder replaces content which could not be rendered.
	Placeholder string
	Log         *zap.Logger
}

type tableState struct {
	rowOpen       bool
	cellOpen      bool
	justification document.Justification
}

type listState struct {
	id      int
	ordered bool
}

// state is everything which has to be saved when rendering nested content.
type state struct {
	pageSpanOpen    bool
	sectionOpen     bool
	paragraphOpen   bool
	listElementOpen bool
	spanOpen        bool

	subDocument bool
	inNote      bool

	font          document.Font
	para          document.Paragraph
	pendingPage   bool
	pendingColumn bool

	tables []tableState
	lists  []listState
}

func (s *state) clone() state {
	c := *s
	c.tables = slices.Clone(s.tables)
	c.lists = slices.Clone(s.lists)
	return c
}

// Listener is content listener state machine. It is not safe for concurrent
// use.
type Listener struct {
	sink document.Sink
	log  *zap.Logger
	meta document.Metadata

	pages     []document.PageSpan
	pageIndex int
	remaining int
	section   document.Section

	documentOpen bool
	st           state
	text         strings.Builder

	lists      *listRegistry
	dispatcher *Dispatcher

	err       error
	recovered error
}

// New returns listener which will drive sink.
func New(sink document.Sink, opts Options) *Listener {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	l := &Listener{
		sink:  sink,
		log:   log.Named("listener"),
		meta:  opts.Meta,
		pages: opts.Pages,
		lists: newListRegistry(),
	}
	l.dispatcher = newDispatcher(opts.Zones, opts.Renderer, opts.Placeholder, l.log)
	return l
}

// Err returns fatal error if one happened. After fatal error all calls are
// ignored.
func (l *Listener) Err() error {
	return l.err
}

// Recovered returns errors which were worked around while rendering.
func (l *Listener) Recovered() error {
	return l.recovered
}

func (l *Listener) fail(err error) {
	if l.err != nil {
		return
	}
	l.err = err
	l.log.Error("Unable to continue", zap.Error(err))
}

func (l *Listener) keepRecovered(err error) {
	l.recovered = multierr.Append(l.recovered, err)
}

func (l *Listener) failed() bool {
	return l.err != nil
}

// Justification returns justification next paragraph will be opened with.
func (l *Listener) Justification() document.Justification {
	return l.st.para.Justification
}

// SetFont changes character formatting. Open span is closed if font differs.
func (l *Listener) SetFont(f document.Font) {
	if l.failed() || f == l.st.font {
		return
	}
	l.closeSpan()
	l.st.font = f
}

// SetParagraph changes formatting of paragraphs opened from now on.
func (l *Listener) SetParagraph(p document.Paragraph) {
	if l.failed() {
		return
	}
	l.st.para = p
}

// SetJustification changes justification of paragraphs opened from now on.
func (l *Listener) SetJustification(j document.Justification) {
	if l.failed() {
		return
	}
	l.st.para.Justification = j
}

// SetSection changes properties of sections opened from now on.
func (l *Listener) SetSection(s document.Section) {
	if l.failed() {
		return
	}
	l.section = s
}

func (l *Listener) OpenDocument() {
	if l.failed() || l.documentOpen {
		return
	}
	l.sink.OpenDocument(l.meta)
	l.documentOpen = true
}

func (l *Listener) openPageSpan() {
	if l.failed() || l.st.subDocument || l.st.pageSpanOpen {
		return
	}
	l.OpenDocument()
	if l.pageIndex >= len(l.pages) {
		l.fail(docerr.New(docerr.KindPageListExhausted, "open page span",
			"page span %d requested, page list has %d", l.pageIndex+1, len(l.pages)))
		return
	}
	span := l.pages[l.pageIndex]
	l.remaining = max(span.Span, 1)
	l.sink.OpenPageSpan(span)
	l.st.pageSpanOpen = true

	if span.Header != nil {
		l.subDocument(*span.Header, l.sink.OpenHeader, l.sink.CloseHeader)
	}
	if span.Footer != nil {
		l.subDocument(*span.Footer, l.sink.OpenFooter, l.sink.CloseFooter)
	}
}

func (l *Listener) closePageSpan() {
	if !l.st.pageSpanOpen {
		return
	}
	// page ends here anyway
	l.st.pendingPage = false
	l.closeSection()
	l.sink.ClosePageSpan()
	l.st.pageSpanOpen = false
	l.pageIndex++
}

// OpenSection opens section if none is open.
func (l *Listener) OpenSection() {
	if l.failed() || l.st.subDocument || l.st.sectionOpen {
		return
	}
	l.openPageSpan()
	if l.failed() {
		return
	}
	l.sink.OpenSection(l.section)
	l.st.sectionOpen = true
}

// CloseSection closes section and everything inside of it.
func (l *Listener) CloseSection() {
	if l.failed() {
		return
	}
	l.closeSection()
}

// closeSection holds deferred page break back until section is closed, so
// page span is never closed under an open section.
func (l *Listener) closeSection() {
	if !l.st.sectionOpen {
		return
	}
	pending := l.st.pendingPage
	l.st.pendingPage = false
	l.closeTables()
	l.closeParagraph()
	l.closeLists()
	l.sink.CloseSection()
	l.st.sectionOpen = false
	if pending && !l.failed() {
		l.breakPage()
	}
}

// OpenParagraph opens paragraph or list element if none is open.
func (l *Listener) OpenParagraph() {
	if l.failed() {
		return
	}
	l.openParagraph()
}

func (l *Listener) openParagraph() {
	if l.st.paragraphOpen || l.st.listElementOpen {
		return
	}
	if n := len(l.st.tables); n > 0 {
		if !l.st.tables[n-1].cellOpen {
			l.OpenTableCell(document.Cell{})
		}
	} else {
		l.OpenSection()
	}
	if l.failed() {
		return
	}

	p := l.st.para
	if l.st.pendingColumn {
		p.ColumnBreak = true
		l.st.pendingColumn = false
	}
	if p.List == nil {
		l.closeLists()
		l.sink.OpenParagraph(p)
		l.st.paragraphOpen = true
		return
	}
	value := l.enterList(*p.List)
	l.sink.OpenListElement(p, value)
	l.st.listElementOpen = true
}

// CloseParagraph closes paragraph or list element. Deferred page break is
// materialized afterwards.
func (l *Listener) CloseParagraph() {
	if l.failed() {
		return
	}
	l.closeParagraph()
}

func (l *Listener) closeParagraph() {
	if !l.st.paragraphOpen && !l.st.listElementOpen {
		return
	}
	l.closeSpan()
	if l.st.listElementOpen {
		l.sink.CloseListElement()
		l.st.listElementOpen = false
	} else {
		l.sink.CloseParagraph()
		l.st.paragraphOpen = false
	}
	if l.st.pendingPage && len(l.st.tables) == 0 {
		l.st.pendingPage = false
		l.breakPage()
	}
}

// OpenSpan opens span with current font if none is open.
func (l *Listener) OpenSpan() {
	if l.failed() {
		return
	}
	l.openSpan()
}

func (l *Listener) openSpan() {
	if l.st.spanOpen {
		return
	}
	l.openParagraph()
	if l.failed() {
		return
	}
	l.sink.OpenSpan(l.st.font)
	l.st.spanOpen = true
}

// CloseSpan flushes buffered text and closes span if one is open.
func (l *Listener) CloseSpan() {
	if l.failed() {
		return
	}
	l.closeSpan()
}

func (l *Listener) closeSpan() {
	if !l.st.spanOpen {
		return
	}
	l.flushText()
	l.sink.CloseSpan()
	l.st.spanOpen = false
}

func (l *Listener) flushText() {
	if l.text.Len() == 0 {
		return
	}
	l.sink.InsertText(l.text.String())
	l.text.Reset()
}

// InsertText buffers text, adjacent inserts reach the sink as one call.
func (l *Listener) InsertText(s string) {
	if l.failed() || len(s) == 0 {
		return
	}
	l.openSpan()
	if l.failed() {
		return
	}
	l.text.WriteString(s)
}

func (l *Listener) inline() bool {
	l.openSpan()
	if l.failed() {
		return false
	}
	l.flushText()
	return true
}

func (l *Listener) InsertTab() {
	if !l.failed() && l.inline() {
		l.sink.InsertTab()
	}
}

func (l *Listener) InsertLineBreak() {
	if !l.failed() && l.inline() {
		l.sink.InsertLineBreak()
	}
}

func (l *Listener) InsertField(f document.Field) {
	if !l.failed() && l.inline() {
		l.sink.InsertField(f)
	}
}

func (l *Listener) InsertPicture(p document.Picture) {
	if !l.failed() && l.inline() {
		l.sink.InsertPicture(p)
	}
}

// InsertBreak requests page or column break. Page break inside of open
// paragraph or table is deferred until it is closed, column break is applied
// to the next paragraph.
func (l *Listener) InsertBreak(kind Break) {
	if l.failed() {
		return
	}
	switch kind {
	case BreakColumn:
		l.st.pendingColumn = true
	case BreakPage:
		if l.st.subDocument {
			l.log.Debug("Page break in out of line content ignored")
			return
		}
		if l.st.paragraphOpen || l.st.listElementOpen || len(l.st.tables) > 0 {
			l.st.pendingPage = true
			return
		}
		l.breakPage()
	}
}

// breakPage finishes current page: when page span runs out of pages it is
// closed and the next one will be opened on demand.
func (l *Listener) breakPage() {
	if !l.st.pageSpanOpen {
		l.openPageSpan()
		if l.failed() {
			return
		}
	}
	l.remaining--
	if l.remaining > 0 {
		return
	}
	l.closePageSpan()
}

// EndDocument closes everything and returns fatal error, if any. Unclaimed
// zones are rendered at the end of main text when flush is set.
func (l *Listener) EndDocument(flush bool) error {
	if l.failed() {
		return l.err
	}
	if flush {
		l.closeTables()
		for _, key := range l.dispatcher.unclaimed() {
			l.log.Debug("Flushing unclaimed zone", zap.Stringer("zone", key))
			l.closeParagraph()
			l.dispatch(key)
			if l.failed() {
				return l.err
			}
		}
	}
	l.closeTables()
	l.closeParagraph()
	l.closeLists()
	l.closeSection()
	l.closePageSpan()
	if l.failed() {
		return l.err
	}
	l.OpenDocument()
	l.sink.CloseDocument()
	l.documentOpen = false
	return l.err
}

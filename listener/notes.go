package listener

import (
	"go.uber.org/zap"

	"ldx/document"
	"ldx/zone"
)

// InsertNote renders footnote or endnote (depending on key kind) in place.
// Enclosing span is suspended and resumed with the same font afterwards.
func (l *Listener) InsertNote(key zone.Key, n document.Note) {
	if l.failed() {
		return
	}
	if l.st.inNote {
		l.log.Debug("Note reference inside of note", zap.Stringer("zone", key))
		l.InsertText(l.dispatcher.placeholder)
		return
	}

	openNote, closeNote := l.sink.OpenFootnote, l.sink.CloseFootnote
	if key.Kind == zone.KindEndnote {
		openNote, closeNote = l.sink.OpenEndnote, l.sink.CloseEndnote
	}

	l.openParagraph()
	if l.failed() {
		return
	}
	spanOpen := l.st.spanOpen
	l.closeSpan()

	l.subDocument(key, func() { openNote(n) }, closeNote)

	if spanOpen && !l.failed() {
		l.openSpan()
	}
}

// subDocument renders zone as independent content between open and close.
// Listener state of enclosing context is saved and restored verbatim.
func (l *Listener) subDocument(key zone.Key, openFn, closeFn func()) {
	saved := l.st.clone()

	l.st = state{subDocument: true, inNote: key.Kind == zone.KindFootnote || key.Kind == zone.KindEndnote}
	openFn()
	l.dispatch(key)
	if l.failed() {
		return
	}
	l.closeTables()
	l.closeParagraph()
	l.closeLists()
	closeFn()

	l.st = saved
}

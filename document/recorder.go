package document

import (
	"fmt"
	"slices"
	"strings"
)

// Recorder remembers every call it receives and verifies element nesting.
type Recorder struct {
	Calls      []string
	Violations []string

	Fonts      []Font
	Paragraphs []Paragraph
	PageSpans  []PageSpan
	Pictures   []Picture

	stack []string
}

var _ Sink = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) call(name string, args ...any) {
	if len(args) == 0 {
		r.Calls = append(r.Calls, name)
		return
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	r.Calls = append(r.Calls, name+"("+strings.Join(parts, ",")+")")
}

func (r *Recorder) open(elem, name string, args ...any) {
	r.call(name, args...)
	r.stack = append(r.stack, elem)
}

func (r *Recorder) close(elem, name string) {
	r.call(name)
	if len(r.stack) == 0 {
		r.Violations = append(r.Violations, fmt.Sprintf("call %d: %s without open element", len(r.Calls)-1, name))
		return
	}
	if top := r.stack[len(r.stack)-1]; top != elem {
		r.Violations = append(r.Violations, fmt.Sprintf("call %d: %s while %s is open", len(r.Calls)-1, name, top))
		return
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Balanced reports whether every opened element was closed in order.
func (r *Recorder) Balanced() bool {
	return len(r.stack) == 0 && len(r.Violations) == 0
}

// Open returns names of currently open elements, outermost first.
func (r *Recorder) Open() []string {
	return slices.Clone(r.stack)
}

// Without returns calls excluding those with listed method names.
func (r *Recorder) Without(names ...string) []string {
	var res []string
	for _, c := range r.Calls {
		name, _, _ := strings.Cut(c, "(")
		if !slices.Contains(names, name) {
			res = append(res, c)
		}
	}
	return res
}

// Index returns position of the first call equal to c at or after from, or -1.
func (r *Recorder) Index(c string, from int) int {
	for i := max(from, 0); i < len(r.Calls); i++ {
		if r.Calls[i] == c {
			return i
		}
	}
	return -1
}

func (r *Recorder) OpenDocument(Metadata) { r.open("Document", "OpenDocument") }
func (r *Recorder) CloseDocument() { r.close("Document", "CloseDocument") }

func (r *Recorder) OpenPageSpan(span PageSpan) {
	r.PageSpans = append(r.PageSpans, span)
	r.open("PageSpan", "OpenPageSpan")
}
func (r *Recorder) ClosePageSpan() { r.close("PageSpan", "ClosePageSpan") }

func (r *Recorder) OpenHeader() { r.open("Header", "OpenHeader") }
func (r *Recorder) CloseHeader() { r.close("Header", "CloseHeader") }
func (r *Recorder) OpenFooter() { r.open("Footer", "OpenFooter") }
func (r *Recorder) CloseFooter() { r.close("Footer", "CloseFooter") }

func (r *Recorder) OpenSection(Section) { r.open("Section", "OpenSection") }
func (r *Recorder) CloseSection() { r.close("Section", "CloseSection") }

func (r *Recorder) OpenParagraph(p Paragraph) {
	r.Paragraphs = append(r.Paragraphs, p)
	r.open("Paragraph", "OpenParagraph")
}
func (r *Recorder) CloseParagraph() { r.close("Paragraph", "CloseParagraph") }

func (r *Recorder) OpenSpan(f Font) {
	r.Fonts = append(r.Fonts, f)
	r.open("Span", "OpenSpan")
}
func (r *Recorder) CloseSpan() { r.close("Span", "CloseSpan") }

func (r *Recorder) InsertText(text string) { r.call("InsertText", text) }
func (r *Recorder) InsertTab() { r.call("InsertTab") }
func (r *Recorder) InsertLineBreak() { r.call("InsertLineBreak") }

func (r *Recorder) DefineOrderedListLevel(id int, _ ListLevel) {
	r.call("DefineOrderedListLevel", id)
}

func (r *Recorder) DefineUnorderedListLevel(id int, _ ListLevel) {
	r.call("DefineUnorderedListLevel", id)
}

func (r *Recorder) OpenOrderedListLevel(id int) { r.open("OrderedList", "OpenOrderedListLevel", id) }
func (r *Recorder) CloseOrderedListLevel() { r.close("OrderedList", "CloseOrderedListLevel") }
func (r *Recorder) OpenUnorderedListLevel(id int) {
	r.open("UnorderedList", "OpenUnorderedListLevel", id)
}
func (r *Recorder) CloseUnorderedListLevel() { r.close("UnorderedList", "CloseUnorderedListLevel") }

func (r *Recorder) OpenListElement(p Paragraph, value int) {
	r.Paragraphs = append(r.Paragraphs, p)
	r.open("ListElement", "OpenListElement", value)
}
func (r *Recorder) CloseListElement() { r.close("ListElement", "CloseListElement") }

func (r *Recorder) OpenFootnote(n Note) { r.open("Footnote", "OpenFootnote", n.Number) }
func (r *Recorder) CloseFootnote() { r.close("Footnote", "CloseFootnote") }
func (r *Recorder) OpenEndnote(n Note) { r.open("Endnote", "OpenEndnote", n.Number) }
func (r *Recorder) CloseEndnote() { r.close("Endnote", "CloseEndnote") }

func (r *Recorder) OpenTable(Table) { r.open("Table", "OpenTable") }
func (r *Recorder) OpenTableRow(Row) { r.open("Row", "OpenTableRow") }
func (r *Recorder) OpenTableCell(Cell) { r.open("Cell", "OpenTableCell") }
func (r *Recorder) InsertCoveredCell(Cell) { r.call("InsertCoveredCell") }
func (r *Recorder) CloseTableCell() { r.close("Cell", "CloseTableCell") }
func (r *Recorder) CloseTableRow() { r.close("Row", "CloseTableRow") }
func (r *Recorder) CloseTable() { r.close("Table", "CloseTable") }

func (r *Recorder) InsertPicture(p Picture) {
	r.Pictures = append(r.Pictures, p)
	r.call("InsertPicture")
}

func (r *Recorder) InsertField(f Field) { r.call("InsertField", f.Kind) }

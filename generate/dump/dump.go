// Package dump renders indented trace of sink calls, it exists for
// inspecting how documents are interpreted.
package dump

import (
	"fmt"
	"io"

	"ldx/document"
	"ldx/utils/debug"
	"ldx/zone"
)

// Generator is tracing sink.
type Generator struct {
	tw *debug.TreeWriter
}

var _ document.Sink = (*Generator)(nil)

func New() *Generator {
	return &Generator{tw: debug.NewTreeWriter()}
}

func (g *Generator) open(format string, args ...any) { g.tw.Open(format, args...) }
func (g *Generator) close() { g.tw.Close() }
func (g *Generator) line(format string, args ...any) { g.tw.Add(format, args...) }

func (g *Generator) OpenDocument(m document.Metadata) {
	g.open("Document id[%s] creator[%s]", m.ID, m.Creator)
}

func (g *Generator) CloseDocument() { g.close() }

func (g *Generator) OpenPageSpan(s document.PageSpan) {
	geo := s.Geometry
	g.open("PageSpan pages[%d] size[%gx%g] margins[%g %g %g %g] header[%s] footer[%s]",
		s.Span, geo.Width, geo.Height, geo.MarginTop, geo.MarginRight, geo.MarginBottom, geo.MarginLeft,
		keyName(s.Header), keyName(s.Footer))
}

func (g *Generator) ClosePageSpan() { g.close() }
func (g *Generator) OpenHeader() { g.open("Header") }
func (g *Generator) CloseHeader() { g.close() }
func (g *Generator) OpenFooter() { g.open("Footer") }
func (g *Generator) CloseFooter() { g.close() }

func (g *Generator) OpenSection(s document.Section) {
	g.open("Section columns[%d]", s.Columns)
}

func (g *Generator) CloseSection() { g.close() }

func (g *Generator) OpenParagraph(p document.Paragraph) {
	g.open("Paragraph %s", paragraph(p))
}

func (g *Generator) CloseParagraph() { g.close() }

func (g *Generator) OpenSpan(f document.Font) {
	g.open("Span font[%q] size[%g] bold[%t] italic[%t] underline[%t]", f.Name, f.Size, f.Bold, f.Italic, f.Underline)
}

func (g *Generator) CloseSpan() { g.close() }

func (g *Generator) InsertText(s string) { g.tw.AddText("Text", s) }
func (g *Generator) InsertTab() { g.line("Tab") }
func (g *Generator) InsertLineBreak() { g.line("LineBreak") }

func (g *Generator) DefineOrderedListLevel(id int, l document.ListLevel) {
	g.line("DefineOrderedList id[%d] level[%d] type[%s] start[%d]", id, l.Level, l.NumberingType, l.StartValue)
}

func (g *Generator) DefineUnorderedListLevel(id int, l document.ListLevel) {
	g.line("DefineUnorderedList id[%d] level[%d] bullet[%q]", id, l.Level, l.Prefix)
}

func (g *Generator) OpenOrderedListLevel(id int) { g.open("OrderedList id[%d]", id) }
func (g *Generator) CloseOrderedListLevel() { g.close() }
func (g *Generator) OpenUnorderedListLevel(id int) { g.open("UnorderedList id[%d]", id) }
func (g *Generator) CloseUnorderedListLevel() { g.close() }

func (g *Generator) OpenListElement(p document.Paragraph, value int) {
	g.open("ListElement value[%d] %s", value, paragraph(p))
}

func (g *Generator) CloseListElement() { g.close() }

func (g *Generator) OpenFootnote(n document.Note) { g.open("Footnote number[%d] label[%q]", n.Number, n.Label) }
func (g *Generator) CloseFootnote() { g.close() }
func (g *Generator) OpenEndnote(n document.Note) { g.open("Endnote number[%d] label[%q]", n.Number, n.Label) }
func (g *Generator) CloseEndnote() { g.close() }

func (g *Generator) OpenTable(t document.Table) { g.open("Table columns%v", t.Columns) }
func (g *Generator) OpenTableRow(r document.Row) { g.open("Row height[%g] header[%t]", r.Height, r.Header) }

func (g *Generator) OpenTableCell(c document.Cell) {
	g.open("Cell column[%d] span[%dx%d]", c.Column, max(c.ColSpan, 1), max(c.RowSpan, 1))
}

func (g *Generator) InsertCoveredCell(c document.Cell) { g.line("CoveredCell column[%d]", c.Column) }
func (g *Generator) CloseTableCell() { g.close() }
func (g *Generator) CloseTableRow() { g.close() }
func (g *Generator) CloseTable() { g.close() }

func (g *Generator) InsertPicture(p document.Picture) {
	g.line("Picture mime[%s] size[%d] extent[%gx%g]", p.MIME, len(p.Data), p.Width, p.Height)
}

func (g *Generator) InsertField(f document.Field) {
	g.line("Field kind[%s] value[%q]", f.Kind, f.Value)
}

func (g *Generator) String() string {
	return g.tw.String()
}

func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	return g.tw.WriteTo(w)
}

func paragraph(p document.Paragraph) string {
	s := fmt.Sprintf("align[%s] indent[%g %g %g]", p.Justification, p.IndentLeft, p.IndentFirst, p.IndentRight)
	if len(p.Tabs) > 0 {
		s += fmt.Sprintf(" tabs[%d]", len(p.Tabs))
	}
	if p.ColumnBreak {
		s += " column-break"
	}
	return s
}

func keyName(k *zone.Key) string {
	if k == nil {
		return "-"
	}
	return k.String()
}

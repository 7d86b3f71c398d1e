package text

import (
	"bytes"
	"testing"

	"ldx/document"
)

func paragraph(g *Generator, s string) {
	g.OpenParagraph(document.Paragraph{})
	g.OpenSpan(document.Font{})
	g.InsertText(s)
	g.CloseSpan()
	g.CloseParagraph()
}

func TestGenerator(t *testing.T) {
	g := New()

	g.OpenDocument(document.Metadata{})
	g.OpenPageSpan(document.PageSpan{Span: 1})
	g.OpenHeader()
	paragraph(g, "running head")
	g.CloseHeader()
	g.OpenSection(document.Section{})

	g.OpenParagraph(document.Paragraph{})
	g.OpenSpan(document.Font{})
	g.InsertText("Hello")
	g.InsertTab()
	g.InsertText("world")
	g.CloseSpan()
	g.OpenFootnote(document.Note{Number: 1})
	paragraph(g, "first")
	paragraph(g, "second")
	g.CloseFootnote()
	g.CloseParagraph()

	g.DefineOrderedListLevel(1, document.ListLevel{Suffix: ")"})
	g.OpenOrderedListLevel(1)
	for i, s := range []string{"one", "two"} {
		g.OpenListElement(document.Paragraph{}, i+1)
		g.InsertText(s)
		g.CloseListElement()
	}
	g.CloseOrderedListLevel()

	g.OpenTable(document.Table{})
	g.OpenTableRow(document.Row{})
	for _, s := range []string{"a", "b"} {
		g.OpenTableCell(document.Cell{})
		paragraph(g, s)
		g.CloseTableCell()
	}
	g.InsertCoveredCell(document.Cell{})
	g.CloseTableRow()
	g.CloseTable()

	g.OpenEndnote(document.Note{Label: "*"})
	paragraph(g, "end")
	g.CloseEndnote()

	g.CloseSection()
	g.ClosePageSpan()
	g.CloseDocument()

	want := "Hello\tworld[1]\n" +
		"1) one\n2) two\n" +
		"a\tb\t\n" +
		"[*]\n" +
		"[1] first second\n" +
		"[*] end\n"
	var buf bytes.Buffer
	if _, err := g.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestNestedLists(t *testing.T) {
	g := New()
	g.DefineUnorderedListLevel(1, document.ListLevel{Prefix: "-"})
	g.DefineOrderedListLevel(2, document.ListLevel{Level: 1})
	g.OpenUnorderedListLevel(1)
	g.OpenListElement(document.Paragraph{}, 0)
	g.InsertText("outer")
	g.CloseListElement()
	g.OpenOrderedListLevel(2)
	g.OpenListElement(document.Paragraph{}, 3)
	g.InsertText("inner")
	g.CloseListElement()
	g.CloseOrderedListLevel()
	g.CloseUnorderedListLevel()

	if got, want := g.String(), "- outer\n  3. inner\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

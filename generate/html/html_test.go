package html

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap/zaptest"
	"golang.org/x/image/bmp"

	"ldx/config"
	"ldx/document"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func render(t *testing.T, g *Generator) *etree.Document {
	t.Helper()

	var buf bytes.Buffer
	if _, err := g.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		t.Fatalf("generated document does not parse: %v\n%s", err, buf.String())
	}
	return doc
}

func TestGenerator(t *testing.T) {
	g := New(&config.HTMLConfig{EmbedPictures: true, Stylesheet: "p { margin: 0; }"}, zaptest.NewLogger(t))

	g.OpenDocument(document.Metadata{ID: "doc-1", Creator: "Write", Title: "Letter"})
	g.OpenPageSpan(document.PageSpan{Span: 1})
	g.OpenSection(document.Section{Columns: 2})

	g.OpenParagraph(document.Paragraph{Justification: document.JustificationCenter, IndentLeft: 36})
	g.OpenSpan(document.Font{Name: "Arial", Size: 12, Bold: true})
	g.InsertText("Hello")
	g.CloseSpan()
	g.InsertTab()
	g.InsertText("world")
	g.OpenFootnote(document.Note{Number: 1})
	g.OpenParagraph(document.Paragraph{})
	g.InsertText("note")
	g.CloseParagraph()
	g.CloseFootnote()
	g.InsertText(" tail")
	g.CloseParagraph()

	g.OpenParagraph(document.Paragraph{})
	g.InsertPicture(document.Picture{Data: pngHeader, MIME: "image/wmf", Width: 10, Height: 20})
	g.InsertPicture(document.Picture{Data: []byte("opaque"), MIME: "application/x-ole-object"})
	g.InsertPicture(document.Picture{})
	g.InsertField(document.Field{Kind: document.FieldKindPageNumber, Value: "1"})
	g.CloseParagraph()

	g.OpenTable(document.Table{})
	g.OpenTableRow(document.Row{Header: true})
	g.OpenTableCell(document.Cell{ColSpan: 2})
	g.InsertText("wide")
	g.CloseTableCell()
	g.CloseTableRow()
	g.CloseTable()

	g.CloseSection()
	g.ClosePageSpan()
	g.CloseDocument()

	doc := render(t, g)

	if got := doc.FindElement("//head/title").Text(); got != "Letter" {
		t.Errorf("title = %q, want %q", got, "Letter")
	}
	if e := doc.FindElement("//head/meta[@name='document-id']"); e == nil || e.SelectAttrValue("content", "") != "doc-1" {
		t.Errorf("document-id meta missing")
	}
	if e := doc.FindElement("//head/style"); e == nil || e.Text() != "p { margin: 0; }" {
		t.Errorf("stylesheet missing")
	}
	sec := doc.FindElement("//body/div[@class='section']")
	if sec == nil {
		t.Fatalf("section missing")
	}
	if got := sec.SelectAttrValue("style", ""); got != "column-count: 2" {
		t.Errorf("section style = %q", got)
	}

	paras := sec.SelectElements("p")
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	p := paras[0]
	if got, want := p.SelectAttrValue("style", ""), "text-align: center; margin-left: 36pt"; got != want {
		t.Errorf("paragraph style = %q, want %q", got, want)
	}
	span := p.SelectElement("span")
	if got, want := span.SelectAttrValue("style", ""), "font-family: 'Arial'; font-size: 12pt; font-weight: bold"; got != want {
		t.Errorf("span style = %q, want %q", got, want)
	}
	if got, want := span.Text(), "Hello"; got != want {
		t.Errorf("span text = %q, want %q", got, want)
	}
	if got, want := span.Tail(), "\u2003world"; got != want {
		t.Errorf("span tail = %q, want %q", got, want)
	}
	ref := p.SelectElement("a")
	if ref == nil || ref.SelectAttrValue("href", "") != "#footnote-1" {
		t.Fatalf("note reference missing")
	}
	if got := ref.SelectElement("sup").Text(); got != "1" {
		t.Errorf("note label = %q, want 1", got)
	}
	if got, want := ref.Tail(), " tail"; got != want {
		t.Errorf("text after reference = %q, want %q", got, want)
	}

	img := paras[1].SelectElement("img")
	if img == nil {
		t.Fatalf("picture missing")
	}
	if src := img.SelectAttrValue("src", ""); !strings.HasPrefix(src, "data:image/png;base64,") {
		t.Errorf("picture src = %q, sniffed type expected", src)
	}
	if got, want := img.SelectAttrValue("style", ""), "width: 10pt; height: 20pt"; got != want {
		t.Errorf("picture style = %q, want %q", got, want)
	}
	if e := paras[1].FindElement("span[@class='object']"); e == nil {
		t.Errorf("object placeholder missing")
	}
	if e := paras[1].FindElement("span[@class='field-pageNumber']"); e == nil || e.Text() != "1" {
		t.Errorf("page number field missing")
	}

	td := sec.FindElement("table/tr[@class='header']/td")
	if td == nil || td.SelectAttrValue("colspan", "") != "2" || td.Text() != "wide" {
		t.Errorf("table cell not rendered as expected")
	}

	aside := doc.FindElement("//body/section[@class='notes']/aside")
	if aside == nil {
		t.Fatalf("notes section missing")
	}
	if got := aside.SelectAttrValue("id", ""); got != "footnote-1" {
		t.Errorf("aside id = %q", got)
	}
	if got := aside.SelectElement("p").Text(); got != "note" {
		t.Errorf("note text = %q", got)
	}
}

func TestLists(t *testing.T) {
	g := New(nil, nil)
	g.OpenDocument(document.Metadata{ID: "x"})
	g.OpenOrderedListLevel(1)
	g.OpenListElement(document.Paragraph{}, 3)
	g.InsertText("three")
	g.CloseListElement()
	g.CloseOrderedListLevel()
	g.OpenUnorderedListLevel(2)
	g.OpenListElement(document.Paragraph{Justification: document.JustificationRight}, 0)
	g.InsertText("dot")
	g.CloseListElement()
	g.CloseUnorderedListLevel()
	g.CloseDocument()

	doc := render(t, g)
	li := doc.FindElement("//body/ol/li")
	if li == nil || li.SelectAttrValue("value", "") != "3" || li.Text() != "three" {
		t.Errorf("ordered list element not rendered as expected")
	}
	li = doc.FindElement("//body/ul/li")
	if li == nil {
		t.Fatalf("unordered list element missing")
	}
	if li.SelectAttr("value") != nil {
		t.Errorf("bullet element must not carry value")
	}
	if got := li.SelectAttrValue("style", ""); got != "text-align: right" {
		t.Errorf("style = %q", got)
	}
}

func TestWriteWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(nil, nil).WriteTo(&buf); err == nil {
		t.Errorf("expected error")
	}
}

func TestPicturesNotEmbedded(t *testing.T) {
	g := New(&config.HTMLConfig{}, nil)
	g.OpenDocument(document.Metadata{ID: "x"})
	g.OpenParagraph(document.Paragraph{})
	g.InsertPicture(document.Picture{Data: pngHeader})
	g.CloseParagraph()
	g.CloseDocument()

	doc := render(t, g)
	if doc.FindElement("//img") != nil {
		t.Errorf("picture must not be embedded")
	}
	e := doc.FindElement("//p/span[@class='picture']")
	if e == nil || e.SelectAttrValue("title", "") != "image/png" {
		t.Errorf("picture placeholder missing")
	}
	if doc.FindElement("//head/style") != nil {
		t.Errorf("unexpected stylesheet")
	}
}

func TestBitmapConvertedToPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 10))
	for y := range 10 {
		for x := range 40 {
			src.Set(x, y, color.NRGBA{R: uint8(x * 6), G: 10, B: 200, A: 255})
		}
	}
	var raw bytes.Buffer
	if err := bmp.Encode(&raw, src); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}

	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"as is", 0, 40},
		{"scaled", 20, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(&config.HTMLConfig{EmbedPictures: true, MaxPictureWidth: tt.width}, zaptest.NewLogger(t))
			g.OpenDocument(document.Metadata{ID: "x"})
			g.OpenParagraph(document.Paragraph{})
			g.InsertPicture(document.Picture{MIME: "image/bmp", Data: raw.Bytes()})
			g.CloseParagraph()
			g.CloseDocument()

			img := render(t, g).FindElement("//img")
			if img == nil {
				t.Fatalf("img missing")
			}
			src := img.SelectAttrValue("src", "")
			const prefix = "data:image/png;base64,"
			if !strings.HasPrefix(src, prefix) {
				t.Fatalf("src = %.40q, want png data", src)
			}
			data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(src, prefix))
			if err != nil {
				t.Fatalf("base64: %v", err)
			}
			out, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode: %v", err)
			}
			if got := out.Bounds().Dx(); got != tt.want {
				t.Errorf("width = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStylesheetSanitized(t *testing.T) {
	g := New(&config.HTMLConfig{Stylesheet: `@import url("remote.css"); p { margin: 0; background: url(paper.png); }`}, zaptest.NewLogger(t))
	g.OpenDocument(document.Metadata{ID: "x"})
	g.CloseDocument()

	e := render(t, g).FindElement("//head/style")
	if e == nil {
		t.Fatalf("style missing")
	}
	if got, want := e.Text(), "p { margin: 0; }"; got != want {
		t.Errorf("style = %q, want %q", got, want)
	}
}

// Package html renders XHTML document. Notes are collected into asides at
// the end of the body, pictures are embedded as data URIs.
package html

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"ldx/config"
	"ldx/css"
	"ldx/document"
	"ldx/utils/images"
)

// Generator is XHTML sink.
type Generator struct {
	document.NopSink

	log   *zap.Logger
	cfg   *config.HTMLConfig
	style string
	doc   *etree.Document
	body  *etree.Element
	stack []*etree.Element
	notes []*etree.Element
}

func New(cfg *config.HTMLConfig, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg == nil {
		cfg = &config.HTMLConfig{EmbedPictures: true}
	}
	g := &Generator{log: log.Named("html"), cfg: cfg}
	if len(cfg.Stylesheet) > 0 {
		sheet := css.NewParser(g.log).Parse([]byte(cfg.Stylesheet))
		for _, w := range sheet.Warnings {
			g.log.Warn("Stylesheet problem", zap.String("warning", w))
		}
		g.style = sheet.String()
	}
	return g
}

func (g *Generator) cur() *etree.Element {
	return g.stack[len(g.stack)-1]
}

func (g *Generator) push(tag string) *etree.Element {
	e := g.cur().CreateElement(tag)
	g.stack = append(g.stack, e)
	return e
}

func (g *Generator) pop() {
	g.stack = g.stack[:len(g.stack)-1]
}

// appendText adds text after the last child of parent.
func appendText(parent *etree.Element, s string) {
	children := parent.ChildElements()
	if len(children) == 0 {
		parent.SetText(parent.Text() + s)
		return
	}
	last := children[len(children)-1]
	last.SetTail(last.Tail() + s)
}

func (g *Generator) OpenDocument(meta document.Metadata) {
	g.doc = etree.NewDocument()
	g.doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := g.doc.CreateElement("html")
	root.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	head := root.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	title := meta.Title
	if len(title) == 0 {
		title = meta.ID
	}
	head.CreateElement("title").SetText(title)
	for _, m := range []struct{ name, value string }{
		{"generator", meta.Creator},
		{"author", meta.Author},
		{"document-id", meta.ID},
	} {
		if len(m.value) == 0 {
			continue
		}
		e := head.CreateElement("meta")
		e.CreateAttr("name", m.name)
		e.CreateAttr("content", m.value)
	}
	if len(g.style) > 0 {
		style := head.CreateElement("style")
		style.CreateAttr("type", "text/css")
		style.SetText(g.style)
	}
	g.body = root.CreateElement("body")
	g.stack = []*etree.Element{g.body}
}

func (g *Generator) CloseDocument() {
	if len(g.notes) > 0 {
		sec := g.body.CreateElement("section")
		sec.CreateAttr("class", "notes")
		for _, n := range g.notes {
			sec.AddChild(n)
		}
	}
	g.stack = nil
}

func (g *Generator) OpenHeader() { g.push("header") }
func (g *Generator) CloseHeader() { g.pop() }
func (g *Generator) OpenFooter() { g.push("footer") }
func (g *Generator) CloseFooter() { g.pop() }

func (g *Generator) OpenSection(s document.Section) {
	e := g.push("div")
	e.CreateAttr("class", "section")
	if s.Columns > 1 {
		e.CreateAttr("style", fmt.Sprintf("column-count: %d", s.Columns))
	}
}

func (g *Generator) CloseSection() { g.pop() }

var alignments = map[document.Justification]string{
	document.JustificationCenter: "center",
	document.JustificationRight:  "right",
	document.JustificationFull:   "justify",
}

func pt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}

func paragraphStyle(p document.Paragraph) string {
	var s []string
	if a, ok := alignments[p.Justification]; ok {
		s = append(s, "text-align: "+a)
	}
	if p.IndentLeft != 0 {
		s = append(s, "margin-left: "+pt(p.IndentLeft))
	}
	if p.IndentRight != 0 {
		s = append(s, "margin-right: "+pt(p.IndentRight))
	}
	if p.IndentFirst != 0 {
		s = append(s, "text-indent: "+pt(p.IndentFirst))
	}
	if p.SpaceBefore != 0 {
		s = append(s, "margin-top: "+pt(p.SpaceBefore))
	}
	if p.SpaceAfter != 0 {
		s = append(s, "margin-bottom: "+pt(p.SpaceAfter))
	}
	if p.LineSpacing != 0 {
		s = append(s, "line-height: "+strconv.FormatFloat(p.LineSpacing, 'f', -1, 64))
	}
	if p.ColumnBreak {
		s = append(s, "break-before: column")
	}
	return strings.Join(s, "; ")
}

func fontStyle(f document.Font) string {
	var s []string
	if len(f.Name) > 0 {
		s = append(s, fmt.Sprintf("font-family: '%s'", f.Name))
	}
	if f.Size > 0 {
		s = append(s, "font-size: "+pt(f.Size))
	}
	if f.Bold {
		s = append(s, "font-weight: bold")
	}
	if f.Italic {
		s = append(s, "font-style: italic")
	}
	switch {
	case f.Underline && f.Strikeout:
		s = append(s, "text-decoration: underline line-through")
	case f.Underline:
		s = append(s, "text-decoration: underline")
	case f.Strikeout:
		s = append(s, "text-decoration: line-through")
	}
	switch {
	case f.Superscript:
		s = append(s, "vertical-align: super")
	case f.Subscript:
		s = append(s, "vertical-align: sub")
	}
	return strings.Join(s, "; ")
}

func styled(e *etree.Element, style string) {
	if len(style) > 0 {
		e.CreateAttr("style", style)
	}
}

func (g *Generator) OpenParagraph(p document.Paragraph) {
	styled(g.push("p"), paragraphStyle(p))
}

func (g *Generator) CloseParagraph() { g.pop() }

func (g *Generator) OpenSpan(f document.Font) {
	styled(g.push("span"), fontStyle(f))
}

func (g *Generator) CloseSpan() { g.pop() }

func (g *Generator) InsertText(s string) { appendText(g.cur(), s) }
func (g *Generator) InsertTab() { appendText(g.cur(), "\u2003") }
func (g *Generator) InsertLineBreak() { g.cur().CreateElement("br") }

func (g *Generator) OpenOrderedListLevel(int) { g.push("ol") }
func (g *Generator) CloseOrderedListLevel() { g.pop() }
func (g *Generator) OpenUnorderedListLevel(int) { g.push("ul") }
func (g *Generator) CloseUnorderedListLevel() { g.pop() }

func (g *Generator) OpenListElement(p document.Paragraph, value int) {
	li := g.push("li")
	if value > 0 {
		li.CreateAttr("value", strconv.Itoa(value))
	}
	styled(li, paragraphStyle(p))
}

func (g *Generator) CloseListElement() { g.pop() }

func (g *Generator) openNote(n document.Note, class string) {
	label := n.Label
	if len(label) == 0 {
		label = strconv.Itoa(n.Number)
	}
	id := fmt.Sprintf("%s-%d", class, len(g.notes)+1)

	ref := g.cur().CreateElement("a")
	ref.CreateAttr("class", "noteref")
	ref.CreateAttr("id", "ref-"+id)
	ref.CreateAttr("href", "#"+id)
	ref.CreateElement("sup").SetText(label)

	aside := etree.NewElement("aside")
	aside.CreateAttr("id", id)
	aside.CreateAttr("class", class)
	back := aside.CreateElement("a")
	back.CreateAttr("href", "#ref-"+id)
	back.SetText(label)
	g.notes = append(g.notes, aside)
	g.stack = append(g.stack, aside)
}

func (g *Generator) OpenFootnote(n document.Note) { g.openNote(n, "footnote") }
func (g *Generator) CloseFootnote() { g.pop() }
func (g *Generator) OpenEndnote(n document.Note) { g.openNote(n, "endnote") }
func (g *Generator) CloseEndnote() { g.pop() }

func (g *Generator) OpenTable(document.Table) { g.push("table") }
func (g *Generator) CloseTable() { g.pop() }

func (g *Generator) OpenTableRow(r document.Row) {
	tr := g.push("tr")
	if r.Header {
		tr.CreateAttr("class", "header")
	}
}

func (g *Generator) CloseTableRow() { g.pop() }

func (g *Generator) OpenTableCell(c document.Cell) {
	td := g.push("td")
	if c.ColSpan > 1 {
		td.CreateAttr("colspan", strconv.Itoa(c.ColSpan))
	}
	if c.RowSpan > 1 {
		td.CreateAttr("rowspan", strconv.Itoa(c.RowSpan))
	}
}

func (g *Generator) CloseTableCell() { g.pop() }

// pictureMIME prefers content sniffing over what dialect reported.
func pictureMIME(p document.Picture) string {
	if kind, err := filetype.Match(p.Data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if len(p.MIME) > 0 {
		return p.MIME
	}
	return "application/octet-stream"
}

func (g *Generator) InsertPicture(p document.Picture) {
	if len(p.Data) == 0 {
		g.log.Debug("Picture without data skipped")
		return
	}
	mime := pictureMIME(p)
	if !strings.HasPrefix(mime, "image/") {
		g.log.Debug("Embedded object is not an image, skipped", zap.String("mime", mime))
		obj := g.cur().CreateElement("span")
		obj.CreateAttr("class", "object")
		obj.SetText("[object]")
		return
	}
	if !g.cfg.EmbedPictures {
		e := g.cur().CreateElement("span")
		e.CreateAttr("class", "picture")
		e.CreateAttr("title", mime)
		e.SetText("[picture]")
		return
	}
	data := p.Data
	if mime == "image/bmp" || g.cfg.MaxPictureWidth > 0 {
		if out, err := images.ToPNG(data, g.cfg.MaxPictureWidth); err == nil {
			data, mime = out, "image/png"
		} else {
			g.log.Debug("Picture embedded as is", zap.String("mime", mime), zap.Error(err))
		}
	}
	img := g.cur().CreateElement("img")
	img.CreateAttr("src", "data:"+mime+";base64,"+base64.StdEncoding.EncodeToString(data))
	img.CreateAttr("alt", "")
	if p.Width > 0 && p.Height > 0 {
		img.CreateAttr("style", fmt.Sprintf("width: %s; height: %s", pt(p.Width), pt(p.Height)))
	}
}

func (g *Generator) InsertField(f document.Field) {
	e := g.cur().CreateElement("span")
	e.CreateAttr("class", "field-"+f.Kind.String())
	e.SetText(f.Value)
}

func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	if g.doc == nil {
		return 0, fmt.Errorf("document was not generated")
	}
	return g.doc.WriteTo(w)
}

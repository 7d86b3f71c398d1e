// Package text renders plain text: a line per paragraph, table rows as tab
// separated cells and notes collected at the end of the document.
package text

import (
	"io"
	"strconv"
	"strings"

	"ldx/document"
)

type note struct {
	label string
	text  string
}

type listLevel struct {
	ordered bool
	level   document.ListLevel
}

// Generator is plain text sink.
type Generator struct {
	document.NopSink

	out strings.Builder
	// destinations of open notes and cells
	stack  []*strings.Builder
	skip   int
	rows   [][]string
	levels map[int]document.ListLevel
	lists  []listLevel
	notes  []note
	open   []int
}

func New() *Generator {
	return &Generator{levels: make(map[int]document.ListLevel)}
}

func (g *Generator) cur() *strings.Builder {
	if n := len(g.stack); n > 0 {
		return g.stack[n-1]
	}
	return &g.out
}

func (g *Generator) push() {
	g.stack = append(g.stack, &strings.Builder{})
}

func (g *Generator) pop() string {
	n := len(g.stack)
	b := g.stack[n-1]
	g.stack = g.stack[:n-1]
	return strings.TrimSpace(b.String())
}

func (g *Generator) write(s string) {
	if g.skip == 0 {
		g.cur().WriteString(s)
	}
}

// running heads repeat on every page, they are left out
func (g *Generator) OpenHeader() { g.skip++ }
func (g *Generator) CloseHeader() { g.skip-- }
func (g *Generator) OpenFooter() { g.skip++ }
func (g *Generator) CloseFooter() { g.skip-- }

func (g *Generator) startParagraph() {
	if len(g.stack) > 0 && g.cur().Len() > 0 {
		g.write(" ")
	}
}

func (g *Generator) endParagraph() {
	if len(g.stack) == 0 {
		g.write("\n")
	}
}

func (g *Generator) OpenParagraph(document.Paragraph) { g.startParagraph() }
func (g *Generator) CloseParagraph() { g.endParagraph() }

func (g *Generator) InsertText(s string) { g.write(s) }
func (g *Generator) InsertTab() { g.write("\t") }
func (g *Generator) InsertLineBreak() { g.write("\n") }

func (g *Generator) InsertField(f document.Field) {
	g.write(f.Value)
}

func (g *Generator) InsertPicture(document.Picture) {
	g.write("[picture]")
}

func (g *Generator) DefineOrderedListLevel(id int, level document.ListLevel) {
	g.levels[id] = level
}

func (g *Generator) DefineUnorderedListLevel(id int, level document.ListLevel) {
	g.levels[id] = level
}

func (g *Generator) OpenOrderedListLevel(id int) {
	g.lists = append(g.lists, listLevel{ordered: true, level: g.levels[id]})
}

func (g *Generator) OpenUnorderedListLevel(id int) {
	g.lists = append(g.lists, listLevel{level: g.levels[id]})
}

func (g *Generator) CloseOrderedListLevel() { g.lists = g.lists[:len(g.lists)-1] }
func (g *Generator) CloseUnorderedListLevel() { g.lists = g.lists[:len(g.lists)-1] }

func (g *Generator) OpenListElement(_ document.Paragraph, value int) {
	g.startParagraph()
	if len(g.lists) == 0 {
		return
	}
	l := g.lists[len(g.lists)-1]
	if len(g.stack) == 0 {
		g.write(strings.Repeat("  ", len(g.lists)-1))
	}
	if !l.ordered {
		bullet := l.level.Prefix
		if len(bullet) == 0 {
			bullet = "•"
		}
		g.write(bullet + " ")
		return
	}
	suffix := l.level.Suffix
	if len(suffix) == 0 {
		suffix = "."
	}
	g.write(l.level.Prefix + strconv.Itoa(value) + suffix + " ")
}

func (g *Generator) CloseListElement() { g.endParagraph() }

func (g *Generator) openNote(n document.Note) {
	label := n.Label
	if len(label) == 0 {
		label = strconv.Itoa(n.Number)
	}
	g.write("[" + label + "]")
	g.open = append(g.open, len(g.notes))
	g.notes = append(g.notes, note{label: label})
	g.push()
}

func (g *Generator) closeNote() {
	i := g.open[len(g.open)-1]
	g.open = g.open[:len(g.open)-1]
	g.notes[i].text = g.pop()
}

func (g *Generator) OpenFootnote(n document.Note) { g.openNote(n) }
func (g *Generator) CloseFootnote() { g.closeNote() }
func (g *Generator) OpenEndnote(n document.Note) { g.openNote(n) }
func (g *Generator) CloseEndnote() { g.closeNote() }

func (g *Generator) OpenTableRow(document.Row) {
	g.rows = append(g.rows, nil)
}

func (g *Generator) OpenTableCell(document.Cell) { g.push() }

func (g *Generator) CloseTableCell() {
	text := g.pop()
	g.rows[len(g.rows)-1] = append(g.rows[len(g.rows)-1], text)
}

func (g *Generator) InsertCoveredCell(document.Cell) {
	g.rows[len(g.rows)-1] = append(g.rows[len(g.rows)-1], "")
}

func (g *Generator) CloseTableRow() {
	cells := g.rows[len(g.rows)-1]
	g.rows = g.rows[:len(g.rows)-1]
	g.startParagraph()
	g.write(strings.Join(cells, "\t"))
	g.endParagraph()
}

// String returns text produced so far.
func (g *Generator) String() string {
	var b strings.Builder
	b.WriteString(g.out.String())
	if len(g.notes) > 0 {
		b.WriteString("\n")
		for _, n := range g.notes {
			b.WriteString("[" + n.label + "] " + n.text + "\n")
		}
	}
	return b.String()
}

func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}

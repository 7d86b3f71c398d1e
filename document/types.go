// Package document defines the protocol between content extraction and output
// generators together with value types passed over it.
package document

import (
	"fmt"

	"ldx/zone"
)

// Paragraph alignment.
// ENUM(left, center, right, full)
type Justification int

// List numbering.
// ENUM(bullet, arabic, lowerRoman, upperRoman, lowerAlpha, upperAlpha)
type NumberingType int

// Ordered lists are numbered, bullet lists are not.
func (n NumberingType) Ordered() bool {
	return n != NumberingTypeBullet
}

// Kind of dynamic field inserted in text.
// ENUM(pageNumber, pageCount, date, time, title, unknown)
type FieldKind int

// Tab alignment.
// ENUM(left, center, right, decimal)
type TabAlign int

// All measurements are in points.

// Font is character formatting. It is comparable, equal fonts do not cause
// span change.
type Font struct {
	Name        string
	Size        float64
	Bold        bool
	Italic      bool
	Underline   bool
	Strikeout   bool
	Superscript bool
	Subscript   bool
}

type Tab struct {
	Position float64
	Align    TabAlign
	Leader   rune
}

// ListLevel is a single level of list definition. Prefix, Suffix and
// NumberingType form its identity, StartValue is where numbering begins.
type ListLevel struct {
	Level         int
	NumberingType NumberingType
	Prefix        string
	Suffix        string
	StartValue    int
}

// Signature returns structural identity of the level.
func (l ListLevel) Signature() string {
	return fmt.Sprintf("%d|%s|%q|%q", l.Level, l.NumberingType, l.Prefix, l.Suffix)
}

type Paragraph struct {
	Justification Justification
	IndentLeft    float64
	IndentRight   float64
	IndentFirst   float64
	SpaceBefore   float64
	SpaceAfter    float64
	// LineSpacing is multiple of single line, 0 means single.
	LineSpacing float64
	Tabs        []Tab
	// List is set when paragraph is a list element.
	List *ListLevel
	// ColumnBreak is set when paragraph starts new column.
	ColumnBreak bool
}

// Geometry of a page.
type Geometry struct {
	Width        float64
	Height       float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
}

// PageSpan is a run of Span consecutive pages sharing geometry and running
// heads.
type PageSpan struct {
	Geometry Geometry
	Header   *zone.Key
	Footer   *zone.Key
	Span     int
}

// SameLayout reports whether two spans describe identical pages.
func (p PageSpan) SameLayout(other PageSpan) bool {
	return p.Geometry == other.Geometry && sameKey(p.Header, other.Header) && sameKey(p.Footer, other.Footer)
}

func sameKey(a, b *zone.Key) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// CollapsePageSpans merges adjacent spans with identical layout summing their
// repeat counts. Spans with non positive count are treated as single page.
func CollapsePageSpans(spans []PageSpan) []PageSpan {
	var res []PageSpan
	for _, s := range spans {
		s.Span = max(s.Span, 1)
		if n := len(res); n > 0 && res[n-1].SameLayout(s) {
			res[n-1].Span += s.Span
			continue
		}
		res = append(res, s)
	}
	return res
}

type Section struct {
	Columns       int
	ColumnSpacing float64
}

type Table struct {
	Columns []float64
}

type Row struct {
	Height float64
	Header bool
}

type Cell struct {
	Column  int
	ColSpan int
	RowSpan int
}

// Note describes footnote or endnote being opened.
type Note struct {
	Number int
	Label  string
}

// Picture carries raw image data. MIME may be empty when dialect does not
// know the format.
type Picture struct {
	Data   []byte
	MIME   string
	Width  float64
	Height float64
}

type Field struct {
	Kind  FieldKind
	Value string
}

// Metadata describes document being extracted.
type Metadata struct {
	ID      string
	Creator string
	Title   string
	Author  string
}

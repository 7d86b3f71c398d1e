// Package dialect defines capabilities format specific drivers provide to
// the extraction engine.
package dialect

import (
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"ldx/common"
	"ldx/container"
	"ldx/document"
	"ldx/timeline"
	"ldx/zone"
)

// Kind of auxiliary marker.
// ENUM(pageBreak, columnBreak, footnote, endnote, field, picture, bookmark, cellEnd, rowEnd, page)
type MarkerKind int

// Marker is decoded auxiliary record.
type Marker struct {
	Kind MarkerKind
	// Extent is number of text stream bytes the marker occupies, they are not
	// treated as text.
	Extent int64
	// Block is set when marker replaces whole paragraph.
	Block bool

	Zone    zone.Key
	Note    document.Note
	Field   document.Field
	Picture document.Picture
	Name    string
	Page    int
}

// Paragraph is decoded paragraph record.
type Paragraph struct {
	document.Paragraph
	// InTable is set for paragraphs inside of table cells, Table describes
	// table opened by the first such paragraph.
	InTable bool
	Table   document.Table
}

// Result of format probe.
type Result struct {
	Confidence        common.Confidence
	Kind              common.DocumentKind
	Creator           string
	NeedsEncodingHint bool
}

// Options for opening document.
type Options struct {
	Password string
	Log      *zap.Logger
}

// Document is opened document of particular dialect. Record ids are those
// found in tables the document returns.
type Document interface {
	Metadata() document.Metadata
	// Encoding is code page of the text, when dialect does not know it
	// returns nil.
	Encoding() encoding.Encoding
	// LocateZones registers every logical region of the text stream.
	LocateZones(reg *zone.Registry) error
	// PageList is raw page list, one entry per page or run of pages.
	PageList() []document.PageSpan
	Section() document.Section
	// Tables returns raw property tables for zone in priority order, earlier
	// table wins when two markers share an offset.
	Tables(key zone.Key) []timeline.Table
	// Text returns raw bytes of text stream range.
	Text(rng zone.ByteRange) ([]byte, error)

	ReadFontRecord(id int) (document.Font, error)
	ReadParagraphRecord(id int) (Paragraph, error)
	ReadAuxiliaryRecord(id int) (Marker, error)

	// Recovered returns problems document worked around while opening.
	Recovered() error
}

// Dialect is a format driver.
type Dialect interface {
	Tag() string
	// Probe must not fail and must not change input.
	Probe(in *container.Input) Result
	Open(in *container.Input, opts Options) (Document, error)
}

// Registry keeps known dialects in order of preference.
type Registry struct {
	dialects []Dialect
}

func NewRegistry(dialects ...Dialect) *Registry {
	return &Registry{dialects: dialects}
}

// Probe returns the most confident dialect for input, nil if none
// recognizes it.
func (r *Registry) Probe(in *container.Input) (Dialect, Result) {
	var (
		best Dialect
		res  = Result{Confidence: common.ConfidenceNone}
	)
	for _, d := range r.dialects {
		got := d.Probe(in)
		if got.Confidence > res.Confidence {
			best, res = d, got
		}
	}
	return best, res
}

// Tags returns tags of all registered dialects.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.dialects))
	for _, d := range r.dialects {
		tags = append(tags, d.Tag())
	}
	return tags
}

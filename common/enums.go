// Package common keeps enums shared between configuration, command line and
// extraction packages so that none of them has to import the other.
package common

// Specification of requested output type.
// ENUM(text, html, dump)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtText:
		return ".txt"
	case OutputFmtHtml:
		return ".html"
	case OutputFmtDump:
		return ".dump.txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// How sure format probe is about the input.
// ENUM(none, supported, supportedEncrypted)
type Confidence int

// Kind of document dialect produces.
// ENUM(text, spreadsheet, database)
type DocumentKind int

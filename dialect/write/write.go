// Package write reads Microsoft Write 3.x documents.
//
// File is a sequence of 128 bytes pages: header, text starting at byte 128,
// character and paragraph formatting descriptor pages, section properties,
// page table and font name table. Header keeps page numbers of each part.
package write

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"ldx/common"
	"ldx/container"
	"ldx/dialect"
	"ldx/docerr"
)

// Tag identifies documents produced by this dialect.
const Tag = "write3"

const (
	pageSize = 128

	identPlain = 0xBE31
	identOLE   = 0xBE32
	toolWord   = 0xAB00
)

// header is the first page of the file.
type header struct {
	ident   uint16
	fcMac   int64
	pnPara  int64
	pnFntb  int64
	pnSep   int64
	pnSetb  int64
	pnPgtb  int64
	pnFfntb int64
	pnMac   int64
}

func parseHeader(b []byte) (*header, error) {
	if len(b) < pageSize {
		return nil, fmt.Errorf("header is %d bytes long", len(b))
	}
	le := binary.LittleEndian
	ident := le.Uint16(b[0:])
	if ident != identPlain && ident != identOLE {
		return nil, fmt.Errorf("unexpected identifier %#04x", ident)
	}
	if dty := le.Uint16(b[2:]); dty != 0 {
		return nil, fmt.Errorf("unexpected document type %#04x", dty)
	}
	if tool := le.Uint16(b[4:]); tool != toolWord {
		return nil, fmt.Errorf("unexpected tool %#04x", tool)
	}
	for off := 6; off < 14; off += 2 {
		if le.Uint16(b[off:]) != 0 {
			return nil, fmt.Errorf("reserved header word at %d is not zero", off)
		}
	}
	h := &header{
		ident:   ident,
		fcMac:   int64(le.Uint32(b[14:])),
		pnPara:  int64(le.Uint16(b[18:])),
		pnFntb:  int64(le.Uint16(b[20:])),
		pnSep:   int64(le.Uint16(b[22:])),
		pnSetb:  int64(le.Uint16(b[24:])),
		pnPgtb:  int64(le.Uint16(b[26:])),
		pnFfntb: int64(le.Uint16(b[28:])),
		pnMac:   int64(le.Uint16(b[96:])),
	}
	if h.fcMac < pageSize {
		return nil, fmt.Errorf("text end %d is inside of header", h.fcMac)
	}
	return h, nil
}

// pnChar is the first page of character formatting descriptors, it
// immediately follows text.
func (h *header) pnChar() int64 {
	return (h.fcMac + pageSize - 1) / pageSize
}

// Dialect is Microsoft Write 3.x driver.
type Dialect struct{}

var _ dialect.Dialect = Dialect{}

func New() Dialect {
	return Dialect{}
}

func (Dialect) Tag() string {
	return Tag
}

func (Dialect) Probe(in *container.Input) dialect.Result {
	none := dialect.Result{Confidence: common.ConfidenceNone}
	if in.Structured() {
		return none
	}
	h, err := parseHeader(in.Head(pageSize))
	if err != nil || h.fcMac > in.Size() {
		return none
	}
	return dialect.Result{
		Confidence:        common.ConfidenceSupported,
		Kind:              common.DocumentKindText,
		Creator:           Tag,
		NeedsEncodingHint: true,
	}
}

func (Dialect) Open(in *container.Input, opts dialect.Options) (dialect.Document, error) {
	b := in.Head(pageSize)
	h, err := parseHeader(b)
	if err != nil {
		if len(b) < pageSize {
			return nil, &docerr.Error{Kind: docerr.KindTruncated, Op: "read write header", Err: err}
		}
		return nil, &docerr.Error{Kind: docerr.KindUnsupported, Op: "read write header", Err: err}
	}
	if h.fcMac > in.Size() {
		return nil, docerr.New(docerr.KindTruncated, "read write header",
			"text ends at %d, file is %d bytes long", h.fcMac, in.Size())
	}
	return open(in, h, opts)
}

// codePage of Write documents is not recorded in file, Windows ANSI is the
// common case.
func codePage() encoding.Encoding {
	return charmap.Windows1252
}

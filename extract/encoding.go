package extract

import (
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"ldx/docerr"
)

// LookupEncoding resolves encoding name. IANA names are tried first, then
// labels web browsers accept (e.g. "latin1", "cp1251").
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if e, err := ianaindex.IANA.Encoding(name); err == nil && e != nil {
		return e, nil
	}
	if e, _ := charset.Lookup(name); e != nil {
		return e, nil
	}
	return nil, docerr.New(docerr.KindUnsupported, "lookup encoding", "unknown encoding %q", name)
}

// EncodingName returns IANA name of encoding if it has one.
func EncodingName(e encoding.Encoding) string {
	if n, err := ianaindex.IANA.Name(e); err == nil {
		return n
	}
	return "unknown"
}

// textEncoding picks encoding for document text: explicit hint wins over
// dialect knowledge, Windows-1252 is the last resort.
func textEncoding(hint string, native encoding.Encoding) (encoding.Encoding, error) {
	if len(hint) > 0 {
		return LookupEncoding(hint)
	}
	if native != nil {
		return native, nil
	}
	return charmap.Windows1252, nil
}

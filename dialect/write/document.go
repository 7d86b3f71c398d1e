package write

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"ldx/container"
	"ldx/cursor"
	"ldx/dialect"
	"ldx/docerr"
	"ldx/document"
	"ldx/timeline"
	"ldx/zone"
)

const noProp = 0xFFFF

// picture header
const (
	pictHeaderSize = 40

	mmBitmap = 0xE3
	mmOLE    = 0xE4
)

var (
	mainKey   = zone.Key{Kind: zone.KindMain}
	headerKey = zone.Key{Kind: zone.KindHeader}
	footerKey = zone.Key{Kind: zone.KindFooter}
)

type runningHead struct {
	rng       zone.ByteRange
	firstPage bool
}

// extend grows head by paragraph adjacent to it.
func (r *runningHead) extend(para zone.ByteRange, firstPage bool) bool {
	if !r.rng.Valid() {
		r.rng, r.firstPage = para, firstPage
		return true
	}
	if r.rng.End != para.Begin {
		return false
	}
	r.rng.End = para.End
	return true
}

type doc struct {
	c   *cursor.Cursor
	h   *header
	log *zap.Logger

	text  zone.ByteRange
	fonts []string

	chps    *timeline.Store[chp]
	paps    *timeline.Store[pap]
	markers *timeline.Store[dialect.Marker]
	props   map[int64]int

	chars    *timeline.Table
	paras    *timeline.Table
	pictures *timeline.Table
	pages    *timeline.Table

	geometry document.Geometry
	header   runningHead
	footer   runningHead
	main     zone.ByteRange
	graphics []zone.ByteRange
	breaks   int

	recovered error
}

var _ dialect.Document = (*doc)(nil)

func open(in *container.Input, h *header, opts dialect.Options) (dialect.Document, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	d := &doc{
		c:        in.Cursor(),
		h:        h,
		log:      log.Named(Tag),
		text:     zone.ByteRange{Begin: pageSize, End: h.fcMac},
		chps:     timeline.NewStore(chp(defaultCHP)),
		paps:     timeline.NewStore(pap(defaultPAP)),
		markers:  timeline.NewStore(dialect.Marker{Kind: dialect.MarkerKindBookmark}),
		props:    make(map[int64]int),
		geometry: defaultSEP.geometry(),
	}
	if len(opts.Password) > 0 {
		d.log.Debug("Password ignored, format does not support encryption")
	}

	fonts, err := d.readFonts()
	d.fonts = fonts
	d.keep(err)

	geometry, err := d.readSection()
	d.geometry = geometry
	d.keep(err)

	if !d.text.Valid() {
		d.log.Debug("Document has no text")
		return d, nil
	}

	charPages, err := d.readChain("character", h.pnChar(), h.pnPara)
	if err != nil {
		d.keep(err)
	} else {
		t := timeline.ChainTable(timeline.KindFont, "character runs", charPages, d.charID)
		t.Scope = d.text
		d.chars = &t
	}

	// paragraph pages normally follow character pages, declared start inside
	// of character pages is certainly wrong
	starts := []int64{h.pnPara}
	if next := h.pnChar() + int64(len(charPages)); len(charPages) > 0 && next != h.pnPara {
		if h.pnPara < next {
			starts = []int64{next}
		} else {
			starts = append(starts, next)
		}
	}
	var paraPages []timeline.Page
	for _, start := range starts {
		if paraPages, err = d.readChain("paragraph", start, h.pnFntb); err == nil {
			break
		}
	}
	if err != nil {
		d.keep(err)
	} else {
		t := timeline.ChainTable(timeline.KindParagraph, "paragraph runs", paraPages, d.paraID)
		t.Scope = d.text
		d.paras = &t
	}

	d.locate()

	pages, err := d.readPageTable()
	d.pages = pages
	d.keep(err)

	if d.breaks, err = d.countBreaks(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *doc) keep(err error) {
	if err == nil {
		return
	}
	d.log.Warn("Document structure problem", zap.Error(err))
	d.recovered = multierr.Append(d.recovered, err)
}

// readChain reads formatting descriptor pages [first, last) declared by
// header. When declared pages do not form consistent chain over the text it
// is rebuilt starting from the first page by following run limits.
func (d *doc) readChain(name string, first, last int64) ([]timeline.Page, error) {
	pages, err := d.declaredChain(first, last)
	if err == nil {
		return pages, nil
	}
	d.log.Debug("Declared formatting pages are inconsistent, rebuilding",
		zap.String("kind", name), zap.Int64("page", first), zap.Error(err))

	pages, err = timeline.RebuildChain(d.c, first*pageSize, d.text, timeline.DefaultChainLayout)
	if err != nil {
		return nil, fmt.Errorf("%s formatting: %w", name, err)
	}
	d.log.Info("Formatting pages rebuilt", zap.String("kind", name), zap.Int("pages", len(pages)))
	return pages, nil
}

func (d *doc) declaredChain(first, last int64) ([]timeline.Page, error) {
	const op = "read formatting pages"

	if first <= 0 || last <= first || !d.c.CheckRange(first*pageSize, (last-first)*pageSize) {
		return nil, docerr.New(docerr.KindStructureInconsistent, op, "bad page range [%d, %d)", first, last)
	}
	var pages []timeline.Page
	expected := d.text.Begin
	for pn := first; pn < last && expected < d.text.End; pn++ {
		p, err := timeline.ReadPage(d.c, pn*pageSize, timeline.DefaultChainLayout)
		if err != nil {
			return nil, err
		}
		if err := timeline.CheckPage(&p, expected, d.text); err != nil {
			return nil, err
		}
		pages = append(pages, p)
		expected = p.Last()
	}
	if expected != d.text.End {
		return nil, docerr.New(docerr.KindStructureInconsistent, op,
			"pages [%d, %d) cover text up to %d, text ends at %d", first, last, expected, d.text.End)
	}
	return pages, nil
}

// prop reads FPROP referenced from page, payload never goes past the page
// nor past the structure size.
func (d *doc) prop(p *timeline.Page, bfprop uint16, size int) ([]byte, error) {
	layout := timeline.DefaultChainLayout
	pos := p.Pos + int64(layout.EntryStart) + int64(bfprop)
	end := p.Pos + int64(layout.CountOffset)
	if pos >= end {
		return nil, docerr.New(docerr.KindStructureInconsistent, "read property",
			"property offset %d is outside of page at %d", bfprop, p.Pos)
	}
	cch, err := d.c.ReadAt(pos, 1)
	if err != nil {
		return nil, err
	}
	return timeline.ReadPayload(d.c, pos+1, int(cch[0]), min(size-1, int(end-pos-1)))
}

// propID returns record id of property, identical locations share records.
func (d *doc) propID(p *timeline.Page, bfprop uint16, size int, add func([]byte) int) int {
	if bfprop == noProp {
		return timeline.DefaultID
	}
	key := p.Pos*pageSize + int64(bfprop)
	if id, ok := d.props[key]; ok {
		return id
	}
	b, err := d.prop(p, bfprop, size)
	if err != nil {
		d.keep(err)
		return timeline.DefaultID
	}
	id := add(b)
	d.props[key] = id
	return id
}

func (d *doc) charID(p *timeline.Page, bfprop uint16) int {
	return d.propID(p, bfprop, chpSize, func(b []byte) int {
		return d.chps.Add(newCHP(b))
	})
}

func (d *doc) paraID(p *timeline.Page, bfprop uint16) int {
	return d.propID(p, bfprop, papSize, func(b []byte) int {
		return d.paps.Add(newPAP(b))
	})
}

func (d *doc) readFonts() ([]string, error) {
	const op = "read font table"

	if d.h.pnFfntb == 0 || d.h.pnFfntb >= d.h.pnMac {
		return nil, nil
	}
	pos := d.h.pnFfntb * pageSize
	cffn, err := d.c.ReadAt(pos, 2)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindTruncated, op, err)
	}
	count := int(binary.LittleEndian.Uint16(cffn))
	pos += 2

	dec := codePage().NewDecoder()
	names := make([]string, 0, count)
	for len(names) < count {
		b, err := d.c.ReadAt(pos, 2)
		if err != nil {
			return names, docerr.Wrap(docerr.KindTruncated, op, err)
		}
		cb := binary.LittleEndian.Uint16(b)
		if cb == 0 {
			break
		}
		if cb == 0xFFFF {
			// continues on the next page
			pos = (pos/pageSize + 1) * pageSize
			continue
		}
		entry, err := d.c.ReadAt(pos+2, int(cb))
		if err != nil {
			return names, docerr.Wrap(docerr.KindTruncated, op, err)
		}
		name := entry[1:]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		decoded, err := dec.Bytes(name)
		if err != nil {
			decoded = name
		}
		names = append(names, string(decoded))
		pos += 2 + int64(cb)
	}
	d.log.Debug("Font table", zap.Strings("fonts", names))
	return names, nil
}

func (d *doc) readSection() (document.Geometry, error) {
	if d.h.pnSep == 0 || d.h.pnSep >= d.h.pnSetb {
		return defaultSEP.geometry(), nil
	}
	pos := d.h.pnSep * pageSize
	cch, err := d.c.ReadAt(pos, 1)
	if err != nil {
		return defaultSEP.geometry(), docerr.Wrap(docerr.KindTruncated, "read section properties", err)
	}
	b, err := timeline.ReadPayload(d.c, pos+1, int(cch[0]), sepSize-1)
	if err != nil {
		return defaultSEP.geometry(), docerr.Wrap(docerr.KindTruncated, "read section properties", err)
	}
	return newSEP(b).geometry(), nil
}

// locate splits text into running heads, which are leading paragraphs
// flagged as such, and main text. Picture paragraphs are collected on the
// way.
func (d *doc) locate() {
	d.main = d.text
	if d.paras == nil {
		return
	}
	t := d.paras
	heads := true
	for i, id := range t.IDs {
		para := zone.ByteRange{Begin: t.Offsets[i], End: t.Offsets[i+1]}
		if !para.Valid() {
			continue
		}
		p, _ := d.paps.Get(id)
		if heads && p.runningHead() {
			head, name := &d.header, "header"
			if p.footer() {
				head, name = &d.footer, "footer"
			}
			if !head.extend(para, p.rhc()&rhcFirstPage != 0) {
				d.log.Debug("Running head paragraph is not adjacent, ignored",
					zap.String("kind", name), zap.Stringer("range", para))
			}
			d.main.Begin = para.End
			continue
		}
		heads = false
		if p.graphics() {
			d.graphics = append(d.graphics, para)
		}
	}
	d.pictures = d.pictureTable()
}

func (d *doc) pictureTable() *timeline.Table {
	if len(d.graphics) == 0 {
		return nil
	}
	t := &timeline.Table{Kind: timeline.KindMarker, Name: "pictures", Scope: d.text}
	last := d.text.Begin
	for _, rng := range d.graphics {
		if rng.Begin > last {
			t.Offsets = append(t.Offsets, last)
			t.IDs = append(t.IDs, timeline.DefaultID)
		}
		pict, err := d.readPicture(rng)
		if err != nil {
			d.keep(fmt.Errorf("picture at %d: %w", rng.Begin, err))
		}
		t.Offsets = append(t.Offsets, rng.Begin)
		t.IDs = append(t.IDs, d.markers.Add(dialect.Marker{
			Kind:    dialect.MarkerKindPicture,
			Extent:  rng.Len(),
			Block:   true,
			Picture: pict,
		}))
		last = rng.End
	}
	if last < d.text.End {
		t.Offsets = append(t.Offsets, last)
		t.IDs = append(t.IDs, timeline.DefaultID)
	}
	t.Offsets = append(t.Offsets, d.text.End)
	return t
}

func (d *doc) readPicture(rng zone.ByteRange) (document.Picture, error) {
	const op = "read picture"

	b, err := d.c.ReadAt(rng.Begin, int(rng.Len()))
	if err != nil {
		return document.Picture{}, docerr.Wrap(docerr.KindTruncated, op, err)
	}
	if len(b) < pictHeaderSize {
		return document.Picture{}, docerr.New(docerr.KindTruncated, op, "picture header is %d bytes long", len(b))
	}
	le := binary.LittleEndian
	mm := le.Uint16(b[0:])
	start := int(le.Uint16(b[30:]))
	if start < pictHeaderSize || start > len(b) {
		start = pictHeaderSize
	}
	size := int(le.Uint32(b[32:]))
	if size <= 0 || start+size > len(b) {
		return document.Picture{}, docerr.New(docerr.KindStructureInconsistent, op,
			"picture data [%d, %d) is outside of paragraph of %d bytes", start, start+size, len(b))
	}
	p := document.Picture{
		Data:   b[start : start+size],
		Width:  float64(le.Uint16(b[10:])) / twipsPerPoint,
		Height: float64(le.Uint16(b[12:])) / twipsPerPoint,
	}
	switch mm {
	case mmBitmap:
		p.MIME = "image/x-ddb"
		data, err := parseBitmap(b[16:30]).file(p.Data)
		if err != nil {
			d.log.Debug("Bitmap kept in device format", zap.Int64("pos", rng.Begin), zap.Error(err))
			break
		}
		p.Data, p.MIME = data, "image/bmp"
	case mmOLE:
		p.MIME = "application/x-ole-object"
	default:
		p.MIME = "image/wmf"
	}
	return p, nil
}

// readPageTable reads page boundaries computed by application when the
// document was last paginated. Table is returned as is, it is validated
// later like any other table.
func (d *doc) readPageTable() (*timeline.Table, error) {
	const op = "read page table"

	if d.h.pnPgtb == 0 || d.h.pnPgtb >= d.h.pnFfntb {
		return nil, nil
	}
	pos := d.h.pnPgtb * pageSize
	b, err := d.c.ReadAt(pos, 4)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindTruncated, op, err)
	}
	count := int(binary.LittleEndian.Uint16(b))
	if count == 0 {
		return nil, nil
	}
	entries, err := d.c.ReadAt(pos+4, count*6)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindTruncated, op, err)
	}
	t := &timeline.Table{Kind: timeline.KindMarker, Name: "pages", Scope: d.text}
	for i := range count {
		e := entries[i*6:]
		pgn := int(binary.LittleEndian.Uint16(e))
		cp := int64(binary.LittleEndian.Uint32(e[2:]))
		t.Offsets = append(t.Offsets, d.text.Begin+cp)
		t.IDs = append(t.IDs, d.markers.Add(dialect.Marker{Kind: dialect.MarkerKindPage, Page: pgn}))
	}
	t.Offsets = append(t.Offsets, d.text.End)
	return t, nil
}

// countBreaks counts hard page breaks in main text, picture data is skipped.
func (d *doc) countBreaks() (int, error) {
	if !d.main.Valid() {
		return 0, nil
	}
	b, err := d.Text(d.main)
	if err != nil {
		return 0, err
	}
	var n int
	for i, ch := range b {
		if ch != '\f' {
			continue
		}
		off := d.main.Begin + int64(i)
		inPicture := false
		for _, rng := range d.graphics {
			if off >= rng.Begin && off < rng.End {
				inPicture = true
				break
			}
		}
		if !inPicture {
			n++
		}
	}
	return n, nil
}

func (d *doc) Metadata() document.Metadata {
	return document.Metadata{Creator: Tag}
}

func (d *doc) Encoding() encoding.Encoding {
	return codePage()
}

func (d *doc) LocateZones(reg *zone.Registry) error {
	for _, z := range []struct {
		key zone.Key
		rng zone.ByteRange
	}{
		{mainKey, d.main},
		{headerKey, d.header.rng},
		{footerKey, d.footer.rng},
	} {
		if !z.rng.Valid() {
			continue
		}
		if _, err := reg.Add(z.key, z.rng); err != nil {
			return err
		}
	}
	return nil
}

// PageList has a page for main text and one for each hard page break. First
// page shows running heads only when they are flagged for it.
func (d *doc) PageList() []document.PageSpan {
	n := 1 + d.breaks
	spans := make([]document.PageSpan, 0, n)
	for i := range n {
		ps := document.PageSpan{Geometry: d.geometry, Span: 1}
		if d.header.rng.Valid() && (i > 0 || d.header.firstPage) {
			k := headerKey
			ps.Header = &k
		}
		if d.footer.rng.Valid() && (i > 0 || d.footer.firstPage) {
			k := footerKey
			ps.Footer = &k
		}
		spans = append(spans, ps)
	}
	return spans
}

func (d *doc) Section() document.Section {
	return document.Section{Columns: 1}
}

// Tables puts pictures before pages: when a picture paragraph starts where a
// page does, picture marker wins and the page mark is not counted.
func (d *doc) Tables(zone.Key) []timeline.Table {
	var tables []timeline.Table
	for _, t := range []*timeline.Table{d.pictures, d.pages, d.paras, d.chars} {
		if t != nil {
			tables = append(tables, *t)
		}
	}
	return tables
}

func (d *doc) Text(rng zone.ByteRange) ([]byte, error) {
	if !d.text.Covers(rng) {
		return nil, docerr.New(docerr.KindStructureInconsistent, "read text",
			"range %s is outside of text %s", rng, d.text)
	}
	return d.c.ReadAt(rng.Begin, int(rng.Len()))
}

func (d *doc) ReadFontRecord(id int) (document.Font, error) {
	c, ok := d.chps.Get(id)
	if !ok {
		return c.font(d.fonts), docerr.New(docerr.KindStructureInconsistent, "read font record", "unknown record %d", id)
	}
	return c.font(d.fonts), nil
}

func (d *doc) ReadParagraphRecord(id int) (dialect.Paragraph, error) {
	p, ok := d.paps.Get(id)
	if !ok {
		return p.paragraph(), docerr.New(docerr.KindStructureInconsistent, "read paragraph record", "unknown record %d", id)
	}
	return p.paragraph(), nil
}

func (d *doc) ReadAuxiliaryRecord(id int) (dialect.Marker, error) {
	m, ok := d.markers.Get(id)
	if !ok {
		return m, docerr.New(docerr.KindStructureInconsistent, "read auxiliary record", "unknown record %d", id)
	}
	return m, nil
}

func (d *doc) Recovered() error {
	return d.recovered
}

// Package writetest builds small Write 3.x files for tests.
package writetest

import (
	"encoding/binary"
)

const pageSize = 128

// Header field offsets.
const (
	OffFcMac   = 14
	OffPnPara  = 18
	OffPnFntb  = 20
	OffPnSep   = 22
	OffPnSetb  = 24
	OffPnPgtb  = 26
	OffPnFfntb = 28
	OffPnMac   = 96
)

// CHP is character formatting, Size is in half points, zero means default.
type CHP struct {
	Font      int
	Bold      bool
	Italic    bool
	Underline bool
	Size      byte
	Position  int8
}

func (c CHP) bytes() []byte {
	b := make([]byte, 5)
	b[0] = byte(c.Font&0x3F) << 2
	if c.Bold {
		b[0] |= 0x01
	}
	if c.Italic {
		b[0] |= 0x02
	}
	b[1] = 24
	if c.Size != 0 {
		b[1] = c.Size
	}
	if c.Underline {
		b[2] = 0x01
	}
	b[3] = byte(c.Font>>6) & 0x07
	b[4] = byte(c.Position)
	return b
}

// PAP is paragraph formatting, distances are in twips.
type PAP struct {
	Justification byte
	Left          int16
	Right         int16
	First         int16
	RunningHead   byte
	Tabs          []uint16
}

func (p PAP) bytes() []byte {
	full := make([]byte, 78)
	le := binary.LittleEndian
	full[0] = 61
	full[1] = p.Justification
	le.PutUint16(full[4:], uint16(p.Right))
	le.PutUint16(full[6:], uint16(p.Left))
	le.PutUint16(full[8:], uint16(p.First))
	le.PutUint16(full[10:], 240)
	full[16] = p.RunningHead
	for i, tab := range p.Tabs {
		le.PutUint16(full[22+i*4:], tab)
	}
	return full[1:]
}

// SEP is page geometry in twips.
type SEP struct {
	Width, Height   uint16
	Top, TextHeight uint16
	Left, TextWidth uint16
}

func (s SEP) bytes() []byte {
	full := make([]byte, 23)
	le := binary.LittleEndian
	le.PutUint16(full[3:], s.Height)
	le.PutUint16(full[5:], s.Width)
	le.PutUint16(full[7:], 1)
	le.PutUint16(full[9:], s.Top)
	le.PutUint16(full[11:], s.TextHeight)
	le.PutUint16(full[13:], s.Left)
	le.PutUint16(full[15:], s.TextWidth)
	return full[1:]
}

// Run is text sharing character formatting, nil CHP means default.
type Run struct {
	Text string
	CHP  *CHP
}

// Para is a paragraph: either text runs terminated by CR LF or raw bytes
// kept as is.
type Para struct {
	Runs []Run
	PAP  *PAP
	Raw  []byte
}

// Text is a single run paragraph with default formatting.
func Text(s string) Para {
	return Para{Runs: []Run{{Text: s}}}
}

// PageEntry is a page table entry, CP is relative to text start.
type PageEntry struct {
	Number uint16
	CP     uint32
}

// File describes document to build.
type File struct {
	Paras   []Para
	Fonts   []string
	Section *SEP
	Pages   []PageEntry
}

// Picture builds picture paragraph bytes.
func Picture(mm, width, height uint16, data []byte) []byte {
	b := make([]byte, 40, 40+len(data))
	le := binary.LittleEndian
	le.PutUint16(b[0:], mm)
	le.PutUint16(b[10:], width)
	le.PutUint16(b[12:], height)
	le.PutUint16(b[30:], 40)
	le.PutUint32(b[32:], uint32(len(data)))
	return append(b, data...)
}

// MonoBitmap is Picture carrying device dependent monochrome bitmap of
// pxWidth x pxHeight pixels, rows go top down and are padded to 16 bits.
func MonoBitmap(width, height uint16, pxWidth, pxHeight int, rows []byte) []byte {
	b := Picture(0xE3, width, height, rows)
	le := binary.LittleEndian
	le.PutUint16(b[18:], uint16(pxWidth))
	le.PutUint16(b[20:], uint16(pxHeight))
	le.PutUint16(b[22:], uint16((pxWidth+15)/16*2))
	b[24], b[25] = 1, 1
	return b
}

type entry struct {
	limit uint32
	prop  []byte
}

// Build returns file image. Page numbers are stored in header, tests may
// overwrite them using Off* offsets.
func Build(f File) []byte {
	var (
		text         []byte
		chars, paras []entry
	)
	for _, p := range f.Paras {
		if p.Raw != nil {
			text = append(text, p.Raw...)
			chars = append(chars, entry{limit: uint32(pageSize + len(text))})
		} else {
			for i, r := range p.Runs {
				text = append(text, r.Text...)
				if i == len(p.Runs)-1 {
					text = append(text, '\r', '\n')
				}
				e := entry{limit: uint32(pageSize + len(text))}
				if r.CHP != nil {
					e.prop = r.CHP.bytes()
				}
				chars = append(chars, e)
			}
		}
		e := entry{limit: uint32(pageSize + len(text))}
		if p.PAP != nil {
			e.prop = p.PAP.bytes()
		}
		paras = append(paras, e)
	}

	fcMac := pageSize + len(text)
	out := make([]byte, pageSize, pageSize+len(text)+pageSize*8)
	out = append(out, text...)
	pad(&out)

	for _, page := range fkpPages(pageSize, chars) {
		out = append(out, page...)
	}
	pnPara := len(out) / pageSize
	for _, page := range fkpPages(pageSize, paras) {
		out = append(out, page...)
	}

	pnFntb := len(out) / pageSize
	pnSep := pnFntb
	if f.Section != nil {
		b := f.Section.bytes()
		out = append(out, byte(len(b)))
		out = append(out, b...)
		pad(&out)
	}
	pnSetb := len(out) / pageSize
	pnPgtb := pnSetb
	if len(f.Pages) > 0 {
		b := make([]byte, 4, 4+6*len(f.Pages))
		binary.LittleEndian.PutUint16(b, uint16(len(f.Pages)))
		for _, pe := range f.Pages {
			b = binary.LittleEndian.AppendUint16(b, pe.Number)
			b = binary.LittleEndian.AppendUint32(b, pe.CP)
		}
		out = append(out, b...)
		pad(&out)
	}
	pnFfntb := len(out) / pageSize
	if len(f.Fonts) > 0 {
		b := binary.LittleEndian.AppendUint16(nil, uint16(len(f.Fonts)))
		for _, name := range f.Fonts {
			b = binary.LittleEndian.AppendUint16(b, uint16(len(name)+2))
			b = append(b, 0)
			b = append(b, name...)
			b = append(b, 0)
		}
		b = append(b, 0, 0)
		out = append(out, b...)
		pad(&out)
	}
	pnMac := len(out) / pageSize

	le := binary.LittleEndian
	le.PutUint16(out[0:], 0xBE31)
	le.PutUint16(out[4:], 0xAB00)
	le.PutUint32(out[OffFcMac:], uint32(fcMac))
	le.PutUint16(out[OffPnPara:], uint16(pnPara))
	le.PutUint16(out[OffPnFntb:], uint16(pnFntb))
	le.PutUint16(out[OffPnSep:], uint16(pnSep))
	le.PutUint16(out[OffPnSetb:], uint16(pnSetb))
	le.PutUint16(out[OffPnPgtb:], uint16(pnPgtb))
	le.PutUint16(out[OffPnFfntb:], uint16(pnFfntb))
	le.PutUint16(out[OffPnMac:], uint16(pnMac))
	return out
}

// SetWord overwrites u16 at offset.
func SetWord(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:], v)
}

// Word reads u16 at offset.
func Word(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

func pad(b *[]byte) {
	if n := len(*b) % pageSize; n != 0 {
		*b = append(*b, make([]byte, pageSize-n)...)
	}
}

// fkpPages packs entries into descriptor pages, properties are stored from
// the end of each page downwards and shared when identical.
func fkpPages(first uint32, entries []entry) [][]byte {
	var pages [][]byte
	for len(entries) > 0 {
		page := make([]byte, pageSize)
		binary.LittleEndian.PutUint32(page, first)
		top := pageSize - 1
		seen := make(map[string]int)
		n := 0
		for n < len(entries) {
			e := entries[n]
			need := 6
			_, dup := seen[string(e.prop)]
			if e.prop != nil && !dup {
				need += 1 + len(e.prop)
			}
			if 4+n*6+need > top {
				break
			}
			bfprop := 0xFFFF
			if e.prop != nil {
				if off, ok := seen[string(e.prop)]; ok {
					bfprop = off
				} else {
					top -= 1 + len(e.prop)
					page[top] = byte(len(e.prop))
					copy(page[top+1:], e.prop)
					bfprop = top - 4
					seen[string(e.prop)] = bfprop
				}
			}
			b := page[4+n*6:]
			binary.LittleEndian.PutUint32(b, e.limit)
			binary.LittleEndian.PutUint16(b[4:], uint16(bfprop))
			n++
		}
		page[pageSize-1] = byte(n)
		first = entries[n-1].limit
		entries = entries[n:]
		pages = append(pages, page)
	}
	return pages
}

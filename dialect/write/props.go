package write

import (
	"encoding/binary"

	"ldx/dialect"
	"ldx/document"
)

// Property structures are stored as prefixes, FPROP keeps bytes starting
// from offset 1, missing bytes keep default values.
const (
	chpSize = 6
	papSize = 78
	sepSize = 23

	twipsPerPoint = 20
)

var (
	defaultCHP = [chpSize]byte{1, 0, 24, 0, 0, 0}
	defaultPAP = func() (p [papSize]byte) {
		p[0] = 61
		binary.LittleEndian.PutUint16(p[10:], 240)
		return p
	}()
)

// running head codes
const (
	rhcFooter    = 0x01
	rhcOddEven   = 0x06
	rhcFirstPage = 0x08
	rhcGraphics  = 0x10
)

type chp [chpSize]byte

func newCHP(prefix []byte) chp {
	c := chp(defaultCHP)
	copy(c[1:], prefix)
	return c
}

func (c chp) fontCode() int {
	return int(c[1]>>2) | int(c[4]&0x07)<<6
}

func (c chp) font(names []string) document.Font {
	f := document.Font{
		Size:      float64(c[2]) / 2,
		Bold:      c[1]&0x01 != 0,
		Italic:    c[1]&0x02 != 0,
		Underline: c[3]&0x01 != 0,
	}
	switch pos := int8(c[5]); {
	case pos > 0:
		f.Superscript = true
	case pos < 0:
		f.Subscript = true
	}
	if ftc := c.fontCode(); ftc < len(names) {
		f.Name = names[ftc]
	}
	return f
}

type pap [papSize]byte

func newPAP(prefix []byte) pap {
	p := pap(defaultPAP)
	copy(p[1:], prefix)
	return p
}

func (p pap) i16(off int) float64 {
	return float64(int16(binary.LittleEndian.Uint16(p[off:])))
}

func (p pap) rhc() byte {
	return p[16]
}

func (p pap) runningHead() bool {
	return p.rhc()&rhcOddEven != 0
}

func (p pap) footer() bool {
	return p.rhc()&rhcFooter != 0
}

func (p pap) graphics() bool {
	return p.rhc()&rhcGraphics != 0
}

func (p pap) paragraph() dialect.Paragraph {
	var para document.Paragraph

	para.Justification = document.Justification(p[1] & 0x03)
	para.IndentRight = p.i16(4) / twipsPerPoint
	para.IndentLeft = p.i16(6) / twipsPerPoint
	para.IndentFirst = p.i16(8) / twipsPerPoint
	if line := p.i16(10); line > 0 && line != 240 {
		para.LineSpacing = line / 240
	}
	for i := range 14 {
		off := 22 + i*4
		pos := binary.LittleEndian.Uint16(p[off:])
		if pos == 0 {
			break
		}
		tab := document.Tab{Position: float64(pos) / twipsPerPoint, Align: document.TabAlignLeft}
		if p[off+2]&0x07 == 3 {
			tab.Align = document.TabAlignDecimal
		}
		para.Tabs = append(para.Tabs, tab)
	}
	return dialect.Paragraph{Paragraph: para}
}

type sep [sepSize]byte

var defaultSEP = func() (s sep) {
	le := binary.LittleEndian
	le.PutUint16(s[3:], 15840) // page height
	le.PutUint16(s[5:], 12240) // page width
	le.PutUint16(s[7:], 1)     // first page number
	le.PutUint16(s[9:], 1440)  // top margin
	le.PutUint16(s[11:], 12960)
	le.PutUint16(s[13:], 1800) // left margin
	le.PutUint16(s[15:], 8640)
	return s
}()

func newSEP(prefix []byte) sep {
	s := defaultSEP
	copy(s[1:], prefix)
	return s
}

func (s sep) u16(off int) float64 {
	return float64(binary.LittleEndian.Uint16(s[off:]))
}

func (s sep) geometry() document.Geometry {
	height, width := s.u16(3), s.u16(5)
	top, textHeight := s.u16(9), s.u16(11)
	left, textWidth := s.u16(13), s.u16(15)
	g := document.Geometry{
		Width:      width / twipsPerPoint,
		Height:     height / twipsPerPoint,
		MarginTop:  top / twipsPerPoint,
		MarginLeft: left / twipsPerPoint,
	}
	if r := width - left - textWidth; r > 0 {
		g.MarginRight = r / twipsPerPoint
	}
	if b := height - top - textHeight; b > 0 {
		g.MarginBottom = b / twipsPerPoint
	}
	return g
}

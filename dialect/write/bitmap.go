package write

import (
	"encoding/binary"

	"ldx/docerr"
)

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
)

// bitmap is device dependent bitmap description stored in picture header.
type bitmap struct {
	width      int
	height     int
	widthBytes int
	planes     int
	bitsPixel  int
}

func parseBitmap(b []byte) bitmap {
	le := binary.LittleEndian
	return bitmap{
		width:      int(le.Uint16(b[2:])),
		height:     int(le.Uint16(b[4:])),
		widthBytes: int(le.Uint16(b[6:])),
		planes:     int(b[8]),
		bitsPixel:  int(b[9]),
	}
}

// file wraps bitmap bits into BMP file with 24 bit pixels. Rows of device
// bitmap go top down, BMP rows go bottom up and are padded to 4 bytes.
func (bm bitmap) file(bits []byte) ([]byte, error) {
	const op = "convert bitmap"

	if bm.width == 0 || bm.height == 0 {
		return nil, docerr.New(docerr.KindStructureUnavailable, op, "bitmap has no size")
	}
	if bm.planes != 1 || (bm.bitsPixel != 1 && bm.bitsPixel != 24) {
		return nil, docerr.New(docerr.KindUnsupported, op, "%d planes with %d bits per pixel", bm.planes, bm.bitsPixel)
	}
	if bm.widthBytes*8 < bm.width*bm.bitsPixel || bm.widthBytes*bm.height > len(bits) {
		return nil, docerr.New(docerr.KindStructureInconsistent, op,
			"%dx%d bitmap does not fit %d bytes with rows of %d", bm.width, bm.height, len(bits), bm.widthBytes)
	}

	stride := (bm.width*3 + 3) &^ 3
	size := bmpFileHeaderSize + bmpInfoHeaderSize + stride*bm.height
	out := make([]byte, size)
	le := binary.LittleEndian

	out[0], out[1] = 'B', 'M'
	le.PutUint32(out[2:], uint32(size))
	le.PutUint32(out[10:], bmpFileHeaderSize+bmpInfoHeaderSize)

	info := out[bmpFileHeaderSize:]
	le.PutUint32(info[0:], bmpInfoHeaderSize)
	le.PutUint32(info[4:], uint32(bm.width))
	le.PutUint32(info[8:], uint32(bm.height))
	le.PutUint16(info[12:], 1)
	le.PutUint16(info[14:], 24)
	le.PutUint32(info[20:], uint32(stride*bm.height))

	pixels := out[bmpFileHeaderSize+bmpInfoHeaderSize:]
	for y := range bm.height {
		src := bits[y*bm.widthBytes : (y+1)*bm.widthBytes]
		dst := pixels[(bm.height-1-y)*stride:]
		for x := range bm.width {
			p := dst[x*3 : x*3+3]
			if bm.bitsPixel == 24 {
				copy(p, src[x*3:x*3+3])
				continue
			}
			// set bit is white
			if src[x/8]&(0x80>>(x%8)) != 0 {
				p[0], p[1], p[2] = 0xFF, 0xFF, 0xFF
			}
		}
	}
	return out, nil
}

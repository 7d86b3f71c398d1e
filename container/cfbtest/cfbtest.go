// Package cfbtest builds minimal compound files for tests.
package cfbtest

import (
	"bytes"
	"encoding/binary"
	"slices"
	"strings"
	"unicode/utf16"
)

const (
	sectorSize = 512
	endOfChain = 0xFFFFFFFE
	freeSect   = 0xFFFFFFFF
	fatSect    = 0xFFFFFFFD
	noStream   = 0xFFFFFFFF

	// MinStreamSize keeps streams out of the mini stream.
	MinStreamSize = 4096
)

var signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Stream is a named stream to put into compound file. Streams shorter than
// MinStreamSize are padded with zeroes.
type Stream struct {
	Name string
	Data []byte
}

// Build produces version 3 compound file with one FAT sector and one
// directory sector, so it holds up to 3 streams totalling under 62 KiB.
func Build(streams ...Stream) []byte {
	if len(streams) > 3 {
		panic("cfbtest: too many streams")
	}
	streams = slices.Clone(streams)

	// directory tree is a chain of right siblings, keep it ordered
	slices.SortFunc(streams, func(a, b Stream) int {
		if len(a.Name) != len(b.Name) {
			return len(a.Name) - len(b.Name)
		}
		return strings.Compare(strings.ToUpper(a.Name), strings.ToUpper(b.Name))
	})

	le := binary.LittleEndian
	header := make([]byte, sectorSize)
	copy(header, signature)
	le.PutUint16(header[24:], 0x003E)
	le.PutUint16(header[26:], 0x0003)
	le.PutUint16(header[28:], 0xFFFE)
	le.PutUint16(header[30:], 9)
	le.PutUint16(header[32:], 6)
	le.PutUint32(header[44:], 1)          // FAT sectors
	le.PutUint32(header[48:], 1)          // first directory sector
	le.PutUint32(header[56:], 4096)       // mini stream cutoff
	le.PutUint32(header[60:], endOfChain) // mini FAT
	le.PutUint32(header[68:], endOfChain) // DIFAT
	le.PutUint32(header[76:], 0)          // FAT lives in sector 0
	for i := 1; i < 109; i++ {
		le.PutUint32(header[76+i*4:], freeSect)
	}

	fat := make([]byte, sectorSize)
	for i := range sectorSize / 4 {
		le.PutUint32(fat[i*4:], freeSect)
	}
	le.PutUint32(fat[0:], fatSect)
	le.PutUint32(fat[4:], endOfChain)

	var data []byte
	starts := make([]uint32, len(streams))
	sizes := make([]int, len(streams))
	next := uint32(2)
	for i, s := range streams {
		sizes[i] = max(len(s.Data), MinStreamSize)
		payload := make([]byte, sizes[i])
		copy(payload, s.Data)
		if rem := len(payload) % sectorSize; rem != 0 {
			payload = append(payload, make([]byte, sectorSize-rem)...)
		}
		n := uint32(len(payload) / sectorSize)
		if next+n > sectorSize/4 {
			panic("cfbtest: streams do not fit into single FAT sector")
		}
		starts[i] = next
		for j := range n {
			link := next + j + 1
			if j == n-1 {
				link = endOfChain
			}
			le.PutUint32(fat[(next+j)*4:], link)
		}
		next += n
		data = append(data, payload...)
	}

	dir := make([]byte, sectorSize)
	entry := func(i int, name string, typ byte, child, right, start uint32, size int) {
		e := dir[i*128:]
		u := utf16.Encode([]rune(name))
		for j, c := range u {
			le.PutUint16(e[j*2:], c)
		}
		le.PutUint16(e[64:], uint16((len(u)+1)*2))
		e[66] = typ
		e[67] = 1
		le.PutUint32(e[68:], noStream)
		le.PutUint32(e[72:], right)
		le.PutUint32(e[76:], child)
		le.PutUint32(e[116:], start)
		le.PutUint32(e[120:], uint32(size))
	}
	child := uint32(noStream)
	if len(streams) > 0 {
		child = 1
	}
	entry(0, "Root Entry", 5, child, noStream, endOfChain, 0)
	for i, s := range streams {
		right := uint32(noStream)
		if i+1 < len(streams) {
			right = uint32(i + 2)
		}
		entry(i+1, s.Name, 2, noStream, right, starts[i], sizes[i])
	}
	for i := len(streams) + 1; i < 4; i++ {
		e := dir[i*128:]
		le.PutUint32(e[68:], noStream)
		le.PutUint32(e[72:], noStream)
		le.PutUint32(e[76:], noStream)
	}

	var file bytes.Buffer
	file.Write(header)
	file.Write(fat)
	file.Write(dir)
	file.Write(data)
	return file.Bytes()
}

package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// filetype needs this much to recognize any of its types
const headSize = 262

var (
	typeWrite    = filetype.NewType("wri", "application/x-mswrite")
	typeCompound = filetype.NewType("cfb", "application/x-cfb")

	cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

func init() {
	filetype.AddMatcher(typeWrite, func(buf []byte) bool {
		return len(buf) > 1 && (buf[0] == 0x31 || buf[0] == 0x32) && buf[1] == 0xBE
	})
	filetype.AddMatcher(typeCompound, func(buf []byte) bool {
		return bytes.HasPrefix(buf, cfbSignature)
	})
}

// isDocumentHead only looks at signatures, dialects make final decision when
// document is opened.
func isDocumentHead(head []byte) bool {
	return filetype.Is(head, typeWrite.Extension) || filetype.Is(head, typeCompound.Extension)
}

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, headSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

func isDocumentFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return false, err
	}
	return isDocumentHead(head), nil
}

func isDocumentInArchive(f *zip.File) (bool, error) {
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	head, err := readHead(r)
	if err != nil {
		return false, err
	}
	return isDocumentHead(head), nil
}

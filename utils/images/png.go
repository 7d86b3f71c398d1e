// Package images prepares pictures extracted from documents for embedding.
package images

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

// ToPNG decodes picture (BMP, PNG, GIF or JPEG) and encodes it as PNG. Pictures
// wider than maxWidth pixels are scaled down keeping aspect ratio, zero
// maxWidth keeps original size. Grayscale pictures are stored with single
// channel, legacy documents are mostly monochrome.
func ToPNG(data []byte, maxWidth int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode picture: %w", err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	if IsGrayscale(img) {
		img = toGray(img)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("unable to encode picture: %w", err)
	}
	return buf.Bytes(), nil
}

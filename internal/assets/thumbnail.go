package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png" // register PNG decoder

	"github.com/nfnt/resize"
)

// DefaultQuality is used when the configured JPEG quality is out of range
const DefaultQuality = 85

// Thumbnail scales an image down to at most width pixels wide, keeping the
// aspect ratio, and encodes it as JPEG. Narrower images are only re-encoded.
func Thumbnail(data []byte, width, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	bounds := img.Bounds()
	if width > 0 && bounds.Dx() > width {
		height := uint(float64(width) * float64(bounds.Dy()) / float64(bounds.Dx()))
		if height == 0 {
			height = 1
		}
		img = resize.Resize(uint(width), height, img, resize.Lanczos3)
	}

	// JPEG has no alpha; flatten transparent logos onto white
	b := img.Bounds()
	canvas := image.NewRGBA(b)
	draw.Draw(canvas, b, image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, b, img, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

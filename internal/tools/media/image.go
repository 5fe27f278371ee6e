package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"
)

// ResizeImg scales data down to fit maxWidth x maxHeight, preserving aspect
// ratio. Images already within bounds are returned untouched.
func ResizeImg(data []byte, maxWidth int, maxHeight int) ([]byte, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("bounds must be positive")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("Error decoding image: %w", err)
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	if width <= maxWidth && height <= maxHeight {
		return data, nil
	}

	scale := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	resized := image.NewRGBA(image.Rect(0, 0, int(float64(width)*scale), int(float64(height)*scale)))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("Error encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

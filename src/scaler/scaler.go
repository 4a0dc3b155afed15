// Package scaler downscales cover images before they are written to disk.
// Everything is synchronous, one image at a time, which is all a single
// threaded directory walk ever needs.
package scaler

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// The following are all image formats supported for converting
	// to other image sizes.
	_ "image/gif"
	_ "image/png"

	// Additional image formats from the x repository.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// jpegQuality is used when encoding scaled images.
const jpegQuality = 90

// Scale returns imgData downscaled so that its width does not exceed
// toWidth. The aspect ratio is preserved and the result is encoded as JPEG.
// Images which are already narrow enough are returned untouched, whatever
// their format, so scaling is idempotent for already processed covers.
func Scale(imgData []byte, toWidth int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= toWidth {
		return imgData, nil
	}

	ratio := float64(toWidth) / float64(bounds.Dx())
	toHeight := int(float64(bounds.Dy()) * ratio)
	if toHeight < 1 {
		toHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, toWidth, toHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding scaled image: %w", err)
	}

	return buf.Bytes(), nil
}

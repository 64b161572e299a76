// decode.go - Turn uploaded bytes into drawable images.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// WebP uploads come from Android share sheets; imaging registers the rest.
	_ "golang.org/x/image/webp"
)

// MaxPixels bounds decoded uploads so a tiny compressed file cannot expand
// into an enormous bitmap.
const MaxPixels = 40_000_000

// Decoder turns raw upload bytes into an image.
type Decoder func(ctx context.Context, data []byte) (image.Image, error)

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data and applies the
// EXIF orientation of camera photos.
func DecodeImage(ctx context.Context, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%s image has no pixels", format)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("%s image is %dx%d, larger than %d pixels", format, cfg.Width, cfg.Height, MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return img, nil
}

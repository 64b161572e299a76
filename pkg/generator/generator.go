// Package generator encodes rendered posters for download and publishing.
//
// Every output follows the same pipeline: a finished image.Image is encoded in
// a format chosen by file extension. PNG is the lossless export format; JPEG
// exists for publish targets that refuse PNG.
package generator

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when Options.Quality is zero.
const DefaultJPEGQuality = 92

// Options tunes lossy encoders. PNG ignores it.
type Options struct {
	Quality int // JPEG quality 1-100
}

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (imaging.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return imaging.PNG, nil
	case ".jpg", ".jpeg":
		return imaging.JPEG, nil
	default:
		return 0, fmt.Errorf("unsupported format %q: use .png, .jpg or .jpeg", ext)
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format imaging.Format, opts Options) error {
	var encOpts []imaging.EncodeOption
	if format == imaging.JPEG {
		q := opts.Quality
		if q <= 0 || q > 100 {
			q = DefaultJPEGQuality
		}
		encOpts = append(encOpts, imaging.JPEGQuality(q))
	}

	if err := imaging.Encode(w, img, format, encOpts...); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, imaging.PNG, Options{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeToWriter writes img in the format named by ext (".png", ".jpg").
// It serves in-memory callers such as the WASM bridge.
func EncodeToWriter(w io.Writer, ext string, img image.Image, opts Options) error {
	format, err := FormatFromPath("out" + ext)
	if err != nil {
		return err
	}
	return Encode(w, img, format, opts)
}

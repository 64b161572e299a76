// png.go - File output for encoded posters.
package generator

import (
	"fmt"
	"image"
	"os"
)

// WriteFile encodes img to output, choosing the format from its extension.
// A partially written file is removed on failure.
func WriteFile(output string, img image.Image, opts Options) error {
	format, err := FormatFromPath(output)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}

	if err := Encode(f, img, format, opts); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}
	return nil
}

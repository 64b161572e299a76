// fonts.go - Font management with custom TTF support and embedded fallback fonts.
// Uses golang.org/x/image/font/opentype for parsing. Defaults to Go Regular and
// Go Bold when no custom font is configured or when loading it fails.
package canvas

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager holds the parsed regular and bold fonts. Parsed fonts are safe
// for concurrent use; faces are not, so every Raster creates its own.
type FontManager struct {
	regular *opentype.Font
	bold    *opentype.Font
}

// NewFontManager loads the fonts at regularPath and boldPath. An empty or
// unreadable path falls back to the embedded Go font of that weight.
func NewFontManager(regularPath, boldPath string) (*FontManager, error) {
	regular, err := loadFont(regularPath, goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := loadFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &FontManager{regular: regular, bold: bold}, nil
}

// NewFontManagerFromBytes parses in-memory font files. Nil data selects the
// embedded Go font of that weight.
func NewFontManagerFromBytes(regularData, boldData []byte) (*FontManager, error) {
	regular, err := opentype.Parse(orFallback(regularData, goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(orFallback(boldData, gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &FontManager{regular: regular, bold: bold}, nil
}

func orFallback(data, fallback []byte) []byte {
	if len(data) == 0 {
		return fallback
	}
	return data
}

// DefaultFonts returns a manager backed by the embedded Go fonts only.
func DefaultFonts() *FontManager {
	fm, err := NewFontManager("", "")
	if err != nil {
		// The embedded fonts always parse.
		panic(err)
	}
	return fm
}

func loadFont(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		custom, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not load custom font, using embedded default")
		} else {
			data = custom
		}
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", path, err)
	}
	return parsed, nil
}

// NewFace returns a face for f. Sizes are in canonical units at 72 DPI, so one
// point equals one canonical pixel.
func (fm *FontManager) NewFace(f Font) (font.Face, error) {
	parsed := fm.regular
	if f.Bold {
		parsed = fm.bold
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

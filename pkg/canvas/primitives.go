// primitives.go - Shared poster drawing routines: paths, photo slots, wrapped
// text, party backgrounds and footers. None of them validate numeric input;
// degenerate values draw degenerate shapes.
package canvas

import (
	"image"
	"image/color"
	"math"
	"strings"
)

// Party palette.
var (
	PartyNavy  = Hex("#1a237e")
	PartyBlue  = Hex("#283593")
	PartyRed   = Hex("#c62828")
	Gold       = Hex("#f9a825")
	BrandWhite = Hex("#ffffff")
)

// Brand captions used in footers.
const (
	PartyNameTamil = "விடுதலை சிறுத்தைகள் கட்சி"
	BrandCaption   = PartyNameTamil + " | VCK"
	BrandCaptionLR = "VCK | " + PartyNameTamil
)

const (
	// DotPitch is the grid spacing of the background dot texture.
	DotPitch = 30
	// BrandBarHeight is the height of the footer drawn by BrandBar.
	BrandBarHeight = 60
)

// RoundRect replaces the current path with a closed rounded rectangle. Each
// corner is a quadratic curve of radius r; radii larger than half a side
// produce overlapping corners but the path still closes.
func RoundRect(s Surface, x, y, w, h, r float64) {
	s.BeginPath()
	s.MoveTo(x+r, y)
	s.LineTo(x+w-r, y)
	s.QuadTo(x+w, y, x+w, y+r)
	s.LineTo(x+w, y+h-r)
	s.QuadTo(x+w, y+h, x+w-r, y+h)
	s.LineTo(x+r, y+h)
	s.QuadTo(x, y+h, x, y+h-r)
	s.LineTo(x, y+r)
	s.QuadTo(x, y, x+r, y)
	s.ClosePath()
}

// Circle replaces the current path with a full circle.
func Circle(s Surface, cx, cy, r float64) {
	s.BeginPath()
	s.MoveTo(cx+r, cy)
	s.Arc(cx, cy, r, 0, 2*math.Pi)
	s.ClosePath()
}

// Ring strokes a circle outline with the current stroke style.
func Ring(s Surface, cx, cy, r float64) {
	Circle(s, cx, cy, r)
	s.Stroke()
}

// HLine strokes a horizontal segment from x0 to x1 at y.
func HLine(s Surface, x0, x1, y float64) {
	s.BeginPath()
	s.MoveTo(x0, y)
	s.LineTo(x1, y)
	s.Stroke()
}

// CircularImage draws img stretched over the square at (x, y) with side 2r,
// clipped to the inscribed circle.
func CircularImage(s Surface, img image.Image, x, y, r float64) {
	s.Save()
	Circle(s, x+r, y+r, r)
	s.Clip()
	s.DrawImage(img, x, y, 2*r, 2*r)
	s.Restore()
}

// RoundedImage draws img into the rectangle, clipped to a rounded corner path.
func RoundedImage(s Surface, img image.Image, x, y, w, h, r float64) {
	s.Save()
	RoundRect(s, x, y, w, h, r)
	s.Clip()
	s.DrawImage(img, x, y, w, h)
	s.Restore()
}

// WrapLines greedily packs the words of text into lines no wider than
// maxWidth, measured with the surface's current font. Words are never split;
// a word wider than maxWidth occupies a line of its own.
func WrapLines(s Surface, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if s.MeasureText(candidate) > maxWidth {
			lines = append(lines, line)
			line = word
		} else {
			line = candidate
		}
	}
	return append(lines, line)
}

// WrapText draws text wrapped to maxWidth, the first baseline at y and each
// following one lineHeight lower. It returns the number of lines drawn.
func WrapText(s Surface, text string, x, y, maxWidth, lineHeight float64) int {
	lines := WrapLines(s, text, maxWidth)
	for i, line := range lines {
		s.FillText(line, x, y+float64(i)*lineHeight)
	}
	return len(lines)
}

// GradientAxis returns the endpoints of a gradient axis through the centre
// of a w×h area at angle degrees, 0 pointing left to right.
func GradientAxis(w, h, angle float64) (x0, y0, x1, y1 float64) {
	rad := angle * math.Pi / 180
	dx, dy := math.Cos(rad)*w, math.Sin(rad)*h
	return w/2 - dx, h/2 - dy, w/2 + dx, h/2 + dy
}

// FillGradient covers the w×h area with a linear gradient between two points.
func FillGradient(s Surface, w, h float64, g LinearGradient) {
	s.SetFillGradient(g)
	s.FillRect(0, 0, w, h)
}

// DiagonalGradient covers the area with stops running from the top-left to
// the bottom-right corner.
func DiagonalGradient(s Surface, w, h float64, stops ...Stop) {
	FillGradient(s, w, h, LinearGradient{X1: w, Y1: h, Stops: stops})
}

// PartyGradient covers the area with the navy, blue and red party gradient
// along the given angle.
func PartyGradient(s Surface, w, h, angle float64) {
	x0, y0, x1, y1 := GradientAxis(w, h, angle)
	FillGradient(s, w, h, LinearGradient{
		X0: x0, Y0: y0, X1: x1, Y1: y1,
		Stops: []Stop{
			{Offset: 0, Color: PartyNavy},
			{Offset: 0.6, Color: PartyBlue},
			{Offset: 1, Color: PartyRed},
		},
	})
}

// Dots paints a faint dot at every DotPitch grid intersection.
func Dots(s Surface, w, h float64) {
	s.SetFillColor(White(0.05))
	s.BeginPath()
	for x := 0.0; x < w; x += DotPitch {
		for y := 0.0; y < h; y += DotPitch {
			s.MoveTo(x+2, y)
			s.Arc(x, y, 2, 0, 2*math.Pi)
			s.ClosePath()
		}
	}
	s.Fill()
}

// Stripes paints one-unit horizontal rules every pitch units.
func Stripes(s Surface, w, h, pitch float64) {
	s.SetFillColor(White(0.03))
	for y := 0.0; y < h; y += pitch {
		s.FillRect(0, y, w, 1)
	}
}

// FooterStyle describes a full-width caption band at the bottom of a poster.
type FooterStyle struct {
	Height     float64
	Baseline   float64 // distance from the bottom edge to the caption baseline
	Background color.Color
	Caption    string
	Font       Font
	Text       color.Color
}

// Footer draws the band and its centred caption.
func Footer(s Surface, w, h float64, f FooterStyle) {
	s.SetFillColor(f.Background)
	s.FillRect(0, h-f.Height, w, f.Height)
	s.SetFillColor(f.Text)
	s.SetFont(f.Font)
	s.SetTextAlign(AlignCenter)
	s.FillText(f.Caption, w/2, h-f.Baseline)
}

// BrandBar draws the standard party footer and the gold accent line along
// the top edge. Templates call it last so nothing covers it.
func BrandBar(s Surface, w, h float64) {
	Footer(s, w, h, FooterStyle{
		Height:     BrandBarHeight,
		Baseline:   28,
		Background: Black(0.3),
		Caption:    BrandCaption,
		Font:       Font{Size: 14, Bold: true},
		Text:       BrandWhite,
	})
	s.SetFillColor(Gold)
	s.FillRect(0, 0, w, 4)
}

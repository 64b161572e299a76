// Package canvas provides an immediate-mode drawing surface and the shared
// poster primitives built on top of it.
//
// Templates draw exclusively through the Surface interface, in their own
// canonical coordinate space. The caller sets a uniform scale before drawing,
// so the same instructions produce a preview or a full-size export.
package canvas

import (
	"image"
	"image/color"
)

// Align controls horizontal text anchoring relative to the x passed to FillText.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// anchor returns the fraction of the text width to shift left.
func (a Align) anchor() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1
	default:
		return 0
	}
}

// Font selects a face by size (canonical units) and weight.
type Font struct {
	Size float64
	Bold bool
}

// Stop is a single colour stop of a gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  color.Color
}

// LinearGradient describes a gradient axis in canonical coordinates.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

// Surface is the drawing API templates are written against. Path semantics
// follow the HTML canvas: BeginPath discards the current path, Fill/Stroke/Clip
// use it without consuming it, and Arc connects from the current point.
type Surface interface {
	// Save pushes transform, clip, colours, line width, font and alignment.
	Save()
	// Restore pops the state pushed by the matching Save.
	Restore()
	// SetScale replaces the current transform with a uniform scale.
	SetScale(s float64)
	// ClearRect makes the region fully transparent.
	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	// Arc adds a circular arc from angle a0 to a1 (radians, clockwise in
	// screen space).
	Arc(cx, cy, r, a0, a1 float64)
	ClosePath()

	Fill()
	Stroke()
	Clip()
	// FillRect paints a rectangle with the fill style. The current path is
	// discarded.
	FillRect(x, y, w, h float64)

	SetFillColor(c color.Color)
	SetFillGradient(g LinearGradient)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)

	SetFont(f Font)
	SetTextAlign(a Align)
	// FillText draws s with its baseline at y, anchored at x per the alignment.
	FillText(s string, x, y float64)
	// MeasureText returns the advance width of s in canonical units.
	MeasureText(s string) float64

	// DrawImage draws img stretched into the rectangle.
	DrawImage(img image.Image, x, y, w, h float64)
}

// raster.go - Software raster backend for Surface built on fogleman/gg.
// gg transforms path points by its matrix, but not stroke widths, gradient
// axes, glyph sizes or pre-sized images; those are mapped to device space
// here so drawing stays consistent at every scale. gg's Pop keeps the current
// clip, so the clip mask is tracked in rasterState and reinstated on Restore.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

type rasterState struct {
	fill      gg.Pattern
	textColor color.Color
	stroke    gg.Pattern
	lineWidth float64
	scale     float64
	font      Font
	align     Align
	clip      *image.Alpha
}

// pathOp replays one path segment in device coordinates.
type pathOp func(dc *gg.Context)

// Raster is a Surface that paints into an *image.RGBA. It is not safe for
// concurrent use.
type Raster struct {
	img   *image.RGBA
	dc    *gg.Context
	fonts *FontManager
	faces map[Font]font.Face
	st    rasterState
	stack []rasterState
	path  []pathOp
	err   error
}

// NewRaster allocates a transparent w×h surface.
func NewRaster(fonts *FontManager, w, h int) *Raster {
	if fonts == nil {
		fonts = DefaultFonts()
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r := &Raster{
		img:   img,
		dc:    gg.NewContextForRGBA(img),
		fonts: fonts,
		faces: make(map[Font]font.Face),
		st: rasterState{
			fill:      gg.NewSolidPattern(color.Black),
			textColor: color.Black,
			stroke:    gg.NewSolidPattern(color.Black),
			lineWidth: 1,
			scale:     1,
			font:      Font{Size: 10},
		},
	}
	return r
}

// Image returns the backing image. It is live: later drawing mutates it.
func (r *Raster) Image() *image.RGBA { return r.img }

// Err reports the first face construction failure, if any.
func (r *Raster) Err() error { return r.err }

func (r *Raster) Save() {
	r.dc.Push()
	r.stack = append(r.stack, r.st)
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.dc.Pop()
	r.st = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if r.st.clip == nil {
		r.dc.ResetClip()
	} else {
		_ = r.dc.SetMask(r.st.clip)
	}
}

func (r *Raster) SetScale(s float64) {
	r.dc.Identity()
	r.dc.Scale(s, s)
	r.st.scale = s
}

// deviceRect maps a canonical rectangle to the pixel rectangle it covers.
func (r *Raster) deviceRect(x, y, w, h float64) image.Rectangle {
	x0, y0 := r.dc.TransformPoint(x, y)
	x1, y1 := r.dc.TransformPoint(x+w, y+h)
	return image.Rect(
		int(math.Floor(math.Min(x0, x1))), int(math.Floor(math.Min(y0, y1))),
		int(math.Ceil(math.Max(x0, x1))), int(math.Ceil(math.Max(y0, y1))),
	).Intersect(r.img.Bounds())
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	draw.Draw(r.img, r.deviceRect(x, y, w, h), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) BeginPath() {
	r.dc.ClearPath()
	r.path = r.path[:0]
}

func (r *Raster) MoveTo(x, y float64) {
	r.dc.MoveTo(x, y)
	dx, dy := r.dc.TransformPoint(x, y)
	r.path = append(r.path, func(dc *gg.Context) { dc.MoveTo(dx, dy) })
}

func (r *Raster) LineTo(x, y float64) {
	r.dc.LineTo(x, y)
	dx, dy := r.dc.TransformPoint(x, y)
	r.path = append(r.path, func(dc *gg.Context) { dc.LineTo(dx, dy) })
}

func (r *Raster) QuadTo(cx, cy, x, y float64) {
	r.dc.QuadraticTo(cx, cy, x, y)
	dcx, dcy := r.dc.TransformPoint(cx, cy)
	dx, dy := r.dc.TransformPoint(x, y)
	r.path = append(r.path, func(dc *gg.Context) { dc.QuadraticTo(dcx, dcy, dx, dy) })
}

func (r *Raster) ClosePath() {
	r.dc.ClosePath()
	r.path = append(r.path, func(dc *gg.Context) { dc.ClosePath() })
}

func (r *Raster) Arc(cx, cy, radius, a0, a1 float64) {
	r.dc.DrawArc(cx, cy, radius, a0, a1)
	dcx, dcy := r.dc.TransformPoint(cx, cy)
	dr := radius * r.st.scale
	r.path = append(r.path, func(dc *gg.Context) { dc.DrawArc(dcx, dcy, dr, a0, a1) })
}

func (r *Raster) Fill() {
	r.dc.SetFillStyle(r.st.fill)
	r.dc.FillPreserve()
}

func (r *Raster) Stroke() {
	r.dc.SetStrokeStyle(r.st.stroke)
	r.dc.SetLineWidth(r.st.lineWidth * r.st.scale)
	r.dc.StrokePreserve()
}

// Clip intersects the clip with the current path. Masks are never modified
// once installed, so saved states can share them.
func (r *Raster) Clip() {
	mask := r.pathMask()
	if r.st.clip != nil {
		both := image.NewAlpha(mask.Bounds())
		draw.DrawMask(both, both.Bounds(), mask, image.Point{}, r.st.clip, image.Point{}, draw.Over)
		mask = both
	}
	r.st.clip = mask
	_ = r.dc.SetMask(mask)
}

// pathMask rasterizes the current path into a fresh coverage mask.
func (r *Raster) pathMask() *image.Alpha {
	b := r.img.Bounds()
	scratch := gg.NewContext(b.Dx(), b.Dy())
	for _, op := range r.path {
		op(scratch)
	}
	scratch.SetColor(color.White)
	scratch.Fill()
	return scratch.AsMask()
}

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.ClearPath()
	r.path = r.path[:0]
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.SetFillStyle(r.st.fill)
	r.dc.Fill()
}

func (r *Raster) SetFillColor(c color.Color) {
	r.st.fill = gg.NewSolidPattern(c)
	r.st.textColor = c
}

func (r *Raster) SetFillGradient(g LinearGradient) {
	x0, y0 := r.dc.TransformPoint(g.X0, g.Y0)
	x1, y1 := r.dc.TransformPoint(g.X1, g.Y1)
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
	r.st.fill = grad
	if len(g.Stops) > 0 {
		r.st.textColor = g.Stops[0].Color
	}
}

func (r *Raster) SetStrokeColor(c color.Color) { r.st.stroke = gg.NewSolidPattern(c) }
func (r *Raster) SetLineWidth(w float64)       { r.st.lineWidth = w }
func (r *Raster) SetTextAlign(a Align)         { r.st.align = a }

func (r *Raster) face(f Font) (font.Face, bool) {
	face, ok := r.faces[f]
	if ok {
		return face, true
	}
	face, err := r.fonts.NewFace(f)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return nil, false
	}
	r.faces[f] = face
	return face, true
}

// SetFont selects the canonical-size face used for measuring.
func (r *Raster) SetFont(f Font) {
	face, ok := r.face(f)
	if !ok {
		return
	}
	r.dc.SetFontFace(face)
	r.st.font = f
}

// FillText rasterizes glyphs from a face built at device size and places them
// at the transformed anchor, so text stays sharp when scaled up.
func (r *Raster) FillText(s string, x, y float64) {
	if s == "" {
		return
	}
	face, ok := r.face(Font{Size: r.st.font.Size * r.st.scale, Bold: r.st.font.Bold})
	if !ok {
		return
	}
	dx, dy := r.dc.TransformPoint(x, y)
	r.dc.Push()
	r.dc.Identity()
	r.dc.SetFontFace(face)
	r.dc.SetColor(r.st.textColor)
	r.dc.DrawStringAnchored(s, dx, dy, r.st.align.anchor(), 0)
	r.dc.Pop()
}

// MeasureText reports the advance of s in canonical units.
func (r *Raster) MeasureText(s string) float64 {
	w, _ := r.dc.MeasureString(s)
	return w
}

// DrawImage resamples img to the device-pixel size of the target rectangle
// before compositing, so photos stay sharp at export scale.
func (r *Raster) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	x0, y0 := r.dc.TransformPoint(x, y)
	x1, y1 := r.dc.TransformPoint(x+w, y+h)
	dw := int(math.Round(x1 - x0))
	dh := int(math.Round(y1 - y0))
	if dw <= 0 || dh <= 0 {
		return
	}

	scaled := imaging.Resize(img, dw, dh, imaging.Lanczos)
	r.dc.Push()
	r.dc.Identity()
	r.dc.DrawImage(scaled, int(math.Round(x0)), int(math.Round(y0)))
	r.dc.Pop()
}

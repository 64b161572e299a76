package canvas

import (
	"image"
	"image/color"
	"unicode/utf8"
)

// Op is one recorded Surface call.
type Op struct {
	Name  string
	Args  []float64
	Text  string
	Color color.Color
	Font  Font
	Align Align
}

// Recorder is a Surface that draws nothing and records every call. It backs
// definition validation and layout tests.
type Recorder struct {
	Ops []Op

	// Measure overrides text measurement. The default approximates an
	// average glyph as 0.55 of the font size.
	Measure func(f Font, s string) float64

	font  Font
	align Align
	fill  color.Color
	stack []recorderState
}

type recorderState struct {
	font  Font
	align Align
	fill  color.Color
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{font: Font{Size: 10}, fill: color.Black}
}

func (r *Recorder) rec(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

// Texts returns the recorded FillText calls in order.
func (r *Recorder) Texts() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == "FillText" {
			out = append(out, op)
		}
	}
	return out
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset drops recorded calls and state.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.stack = nil
	r.font = Font{Size: 10}
	r.align = AlignLeft
	r.fill = color.Black
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, recorderState{font: r.font, align: r.align, fill: r.fill})
	r.rec("Save")
}

func (r *Recorder) Restore() {
	r.rec("Restore")
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.font, r.align, r.fill = top.font, top.align, top.fill
}

func (r *Recorder) SetScale(s float64)           { r.rec("SetScale", s) }
func (r *Recorder) ClearRect(x, y, w, h float64) { r.rec("ClearRect", x, y, w, h) }
func (r *Recorder) BeginPath()                   { r.rec("BeginPath") }
func (r *Recorder) MoveTo(x, y float64)          { r.rec("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)          { r.rec("LineTo", x, y) }
func (r *Recorder) QuadTo(cx, cy, x, y float64)  { r.rec("QuadTo", cx, cy, x, y) }
func (r *Recorder) Arc(cx, cy, rad, a0, a1 float64) {
	r.rec("Arc", cx, cy, rad, a0, a1)
}
func (r *Recorder) ClosePath()                  { r.rec("ClosePath") }
func (r *Recorder) Fill()                       { r.rec("Fill") }
func (r *Recorder) Stroke()                     { r.rec("Stroke") }
func (r *Recorder) Clip()                       { r.rec("Clip") }
func (r *Recorder) FillRect(x, y, w, h float64) { r.rec("FillRect", x, y, w, h) }
func (r *Recorder) SetLineWidth(w float64)      { r.rec("SetLineWidth", w) }

func (r *Recorder) SetFillColor(c color.Color) {
	r.fill = c
	r.Ops = append(r.Ops, Op{Name: "SetFillColor", Color: c})
}

func (r *Recorder) SetFillGradient(g LinearGradient) {
	if len(g.Stops) > 0 {
		r.fill = g.Stops[0].Color
	}
	r.rec("SetFillGradient", g.X0, g.Y0, g.X1, g.Y1)
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.Ops = append(r.Ops, Op{Name: "SetStrokeColor", Color: c})
}

func (r *Recorder) SetFont(f Font) {
	r.font = f
	r.Ops = append(r.Ops, Op{Name: "SetFont", Font: f})
}

func (r *Recorder) SetTextAlign(a Align) {
	r.align = a
	r.Ops = append(r.Ops, Op{Name: "SetTextAlign", Align: a})
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.Ops = append(r.Ops, Op{
		Name:  "FillText",
		Args:  []float64{x, y},
		Text:  s,
		Color: r.fill,
		Font:  r.font,
		Align: r.align,
	})
}

func (r *Recorder) MeasureText(s string) float64 {
	if r.Measure != nil {
		return r.Measure(r.font, s)
	}
	return float64(utf8.RuneCountInString(s)) * r.font.Size * 0.55
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	r.rec("DrawImage", x, y, w, h)
}

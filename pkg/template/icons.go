// icons.go - Small vector glyphs drawn in place of emoji, which the bundled
// fonts cannot render. Each icon sits on a text baseline like the glyph it
// replaces and leaves the surface state as it found it.
package template

import (
	"image"
	"image/color"
	"math"

	"github.com/vck-social/postergen/pkg/canvas"
)

var (
	flameColor = canvas.Hex("#ff9800")
	cakePink   = canvas.Hex("#f48fb1")
	waxColor   = canvas.Hex("#f5f5f5")
	pinRed     = canvas.Hex("#e53935")
)

func bold(size float64) canvas.Font    { return canvas.Font{Size: size, Bold: true} }
func regular(size float64) canvas.Font { return canvas.Font{Size: size} }

// framedPortrait draws a circular photo with an outline ring gap units
// outside it. A nil image draws nothing.
func framedPortrait(s canvas.Surface, img image.Image, x, y, r, gap, width float64, ring color.Color) {
	if img == nil {
		return
	}
	canvas.CircularImage(s, img, x, y, r)
	s.SetStrokeColor(ring)
	s.SetLineWidth(width)
	canvas.Ring(s, x+r, y+r, r+gap)
}

func drawFlame(s canvas.Surface, cx, bottom, u float64) {
	s.SetFillColor(flameColor)
	s.BeginPath()
	s.MoveTo(cx, bottom-1.8*u)
	s.QuadTo(cx+0.8*u, bottom-0.6*u, cx, bottom)
	s.QuadTo(cx-0.8*u, bottom-0.6*u, cx, bottom-1.8*u)
	s.ClosePath()
	s.Fill()
}

// drawCake is a two-tier cake with one candle, size units tall above baseline.
func drawCake(s canvas.Surface, cx, baseline, size float64) {
	u := size / 10
	top := baseline - 8*u

	s.Save()
	drawFlame(s, cx, top+1.8*u, u)
	s.SetFillColor(waxColor)
	s.FillRect(cx-0.3*u, top+1.8*u, 0.6*u, 1.7*u)

	s.SetFillColor(cakePink)
	canvas.RoundRect(s, cx-2.6*u, top+3.5*u, 5.2*u, 1.8*u, 0.4*u)
	s.Fill()

	s.SetFillColor(canvas.Gold)
	canvas.RoundRect(s, cx-4*u, top+5.3*u, 8*u, 2.7*u, 0.5*u)
	s.Fill()

	s.SetFillColor(canvas.BrandWhite)
	s.FillRect(cx-4*u, top+5.3*u, 8*u, 0.5*u)
	s.Restore()
}

// drawTrophy is a gold cup with handles on a stepped base.
func drawTrophy(s canvas.Surface, cx, baseline, size float64) {
	u := size / 10
	top := baseline - 8*u

	s.Save()
	s.SetStrokeColor(canvas.Gold)
	s.SetLineWidth(0.6 * u)
	canvas.Ring(s, cx-3*u, top+1.8*u, 1.2*u)
	canvas.Ring(s, cx+3*u, top+1.8*u, 1.2*u)

	s.SetFillColor(canvas.Gold)
	s.BeginPath()
	s.MoveTo(cx-3*u, top)
	s.LineTo(cx+3*u, top)
	s.QuadTo(cx+3*u, top+4.5*u, cx, top+5*u)
	s.QuadTo(cx-3*u, top+4.5*u, cx-3*u, top)
	s.ClosePath()
	s.Fill()
	s.FillRect(cx-0.5*u, top+5*u, u, 1.5*u)
	s.FillRect(cx-2.2*u, top+6.5*u, 4.4*u, 1.5*u)
	s.Restore()
}

// drawCandle is a lit memorial candle.
func drawCandle(s canvas.Surface, cx, baseline, size float64) {
	u := size / 10
	top := baseline - 9*u

	s.Save()
	drawFlame(s, cx, top+2.4*u, 1.3*u)
	s.SetFillColor(waxColor)
	canvas.RoundRect(s, cx-1.4*u, top+3*u, 2.8*u, 6*u, 0.4*u)
	s.Fill()
	s.SetFillColor(canvas.Black(0.7))
	s.FillRect(cx-0.1*u, top+2.2*u, 0.2*u, 0.8*u)
	s.Restore()
}

// drawMegaphone points right from its left edge at x.
func drawMegaphone(s canvas.Surface, x, baseline, size float64) {
	u := size / 10
	top := baseline - 8*u

	s.Save()
	s.SetFillColor(pinRed)
	s.FillRect(x, top+3*u, 2*u, 2*u)

	s.SetFillColor(canvas.Gold)
	s.BeginPath()
	s.MoveTo(x+2*u, top+3*u)
	s.LineTo(x+7*u, top+0.5*u)
	s.LineTo(x+7*u, top+7.5*u)
	s.LineTo(x+2*u, top+5*u)
	s.ClosePath()
	s.Fill()
	s.FillRect(x+2.6*u, top+5*u, 0.9*u, 2.6*u)

	s.SetStrokeColor(canvas.BrandWhite)
	s.SetLineWidth(0.5 * u)
	s.BeginPath()
	s.MoveTo(x+8*u, top+2.3*u)
	s.QuadTo(x+9.3*u, top+4*u, x+8*u, top+5.7*u)
	s.Stroke()
	s.Restore()
}

// drawCalendar is a page-a-day calendar, size units square above baseline.
func drawCalendar(s canvas.Surface, x, baseline, size float64) {
	u := size / 10
	top := baseline - 8*u

	s.Save()
	s.SetFillColor(canvas.BrandWhite)
	canvas.RoundRect(s, x, top+u, 8*u, 7*u, 0.8*u)
	s.Fill()
	s.SetFillColor(pinRed)
	s.FillRect(x, top+u, 8*u, 2*u)
	s.SetFillColor(canvas.PartyNavy)
	for _, dx := range []float64{2, 4, 6} {
		s.FillRect(x+(dx-0.5)*u, top+4*u, u, u)
		s.FillRect(x+(dx-0.5)*u, top+6*u, u, u)
	}
	s.Restore()
}

// drawPin is a map location marker.
func drawPin(s canvas.Surface, x, baseline, size float64) {
	u := size / 10
	cx := x + 4*u
	cy := baseline - 5.5*u

	s.Save()
	s.SetFillColor(pinRed)
	s.BeginPath()
	s.MoveTo(cx-2.6*u, cy)
	s.Arc(cx, cy, 2.6*u, math.Pi, 2*math.Pi)
	s.QuadTo(cx+2.4*u, cy+2.5*u, cx, baseline)
	s.QuadTo(cx-2.4*u, cy+2.5*u, cx-2.6*u, cy)
	s.ClosePath()
	s.Fill()
	s.SetFillColor(canvas.BrandWhite)
	canvas.Circle(s, cx, cy, u)
	s.Fill()
	s.Restore()
}

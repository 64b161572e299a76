package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{R: 255, A: 255}

func alphaAt(img *image.RGBA, x, y int) uint8 {
	return img.RGBAAt(x, y).A
}

func TestRaster_FillRectHonoursScale(t *testing.T) {
	r := NewRaster(nil, 50, 50)
	r.SetScale(0.5)
	r.SetFillColor(red)
	r.FillRect(0, 0, 40, 40)

	img := r.Image()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(10, 10))
	assert.Equal(t, uint8(0), alphaAt(img, 30, 30))
}

func TestRaster_ClearRect(t *testing.T) {
	r := NewRaster(nil, 100, 100)
	r.SetFillColor(red)
	r.FillRect(0, 0, 100, 100)
	r.ClearRect(0, 0, 50, 50)

	img := r.Image()
	assert.Equal(t, uint8(0), alphaAt(img, 10, 10))
	assert.Equal(t, uint8(255), alphaAt(img, 75, 75))
}

func TestRaster_CircularImageStaysInsideClip(t *testing.T) {
	r := NewRaster(nil, 100, 100)
	photo := imaging.New(10, 10, red)
	CircularImage(r, photo, 0, 0, 50)

	img := r.Image()
	center := img.RGBAAt(50, 50)
	assert.Greater(t, center.R, uint8(250))
	assert.Greater(t, center.A, uint8(250))
	for _, p := range []image.Point{{2, 2}, {97, 2}, {2, 97}, {97, 97}} {
		assert.Equal(t, uint8(0), alphaAt(img, p.X, p.Y), "corner %v", p)
	}

	// The clip is released by Restore.
	r.SetFillColor(red)
	r.FillRect(0, 0, 100, 100)
	assert.Equal(t, uint8(255), alphaAt(img, 2, 2))
}

func TestRaster_StrokeWidthScales(t *testing.T) {
	r := NewRaster(nil, 200, 200)
	r.SetScale(2)
	r.SetStrokeColor(red)
	r.SetLineWidth(4)
	HLine(r, 0, 100, 50)

	img := r.Image()
	assert.Greater(t, alphaAt(img, 100, 97), uint8(200))
	assert.Greater(t, alphaAt(img, 100, 102), uint8(200))
	assert.Equal(t, uint8(0), alphaAt(img, 100, 90))
	assert.Equal(t, uint8(0), alphaAt(img, 100, 110))
}

func TestRaster_GradientFollowsScale(t *testing.T) {
	blue := color.NRGBA{B: 255, A: 255}
	g := LinearGradient{X1: 100, Stops: []Stop{{Offset: 0, Color: red}, {Offset: 1, Color: blue}}}

	small := NewRaster(nil, 100, 10)
	FillGradient(small, 100, 10, g)

	big := NewRaster(nil, 200, 20)
	big.SetScale(2)
	FillGradient(big, 100, 10, g)

	for _, x := range []int{5, 50, 95} {
		s := small.Image().RGBAAt(x, 5)
		b := big.Image().RGBAAt(2*x, 10)
		assert.InDelta(t, int(s.R), int(b.R), 6, "x=%d", x)
		assert.InDelta(t, int(s.B), int(b.B), 6, "x=%d", x)
	}
	assert.Greater(t, small.Image().RGBAAt(5, 5).R, uint8(200))
	assert.Greater(t, small.Image().RGBAAt(95, 5).B, uint8(200))
}

func TestRaster_FillTextPaints(t *testing.T) {
	r := NewRaster(nil, 300, 100)
	r.SetFont(Font{Size: 40, Bold: true})
	r.SetFillColor(color.White)
	r.FillText("Hello", 10, 60)
	require.NoError(t, r.Err())

	painted := 0
	img := r.Image()
	for y := 20; y < 70; y++ {
		for x := 10; x < 200; x++ {
			if alphaAt(img, x, y) > 0 {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 100)
}

func TestRaster_MeasureTextIsCanonical(t *testing.T) {
	fonts := DefaultFonts()
	a := NewRaster(fonts, 100, 100)
	b := NewRaster(fonts, 400, 400)
	b.SetScale(4)

	a.SetFont(Font{Size: 32})
	b.SetFont(Font{Size: 32})
	wa, wb := a.MeasureText("Your Name"), b.MeasureText("Your Name")
	assert.Greater(t, wa, 0.0)
	assert.Equal(t, wa, wb)

	a.SetFont(Font{Size: 32, Bold: true})
	assert.NotEqual(t, wa, a.MeasureText("Your Name"))
}

func TestRaster_RestoreWithoutSaveIsNoop(t *testing.T) {
	r := NewRaster(nil, 10, 10)
	assert.NotPanics(t, r.Restore)
}

func TestRaster_RestoreReinstatesOuterClip(t *testing.T) {
	r := NewRaster(nil, 100, 100)
	r.Save()
	RoundRect(r, 0, 0, 60, 100, 0)
	r.Clip()

	r.Save()
	RoundRect(r, 40, 0, 60, 100, 0)
	r.Clip()
	r.SetFillColor(red)
	r.FillRect(0, 0, 100, 100)
	img := r.Image()
	assert.Equal(t, uint8(0), alphaAt(img, 20, 50), "outside the inner clip")
	assert.Equal(t, uint8(255), alphaAt(img, 50, 50), "inside both clips")
	assert.Equal(t, uint8(0), alphaAt(img, 80, 50), "outside the outer clip")
	r.Restore()

	r.FillRect(0, 0, 100, 100)
	assert.Equal(t, uint8(255), alphaAt(img, 20, 50))
	assert.Equal(t, uint8(0), alphaAt(img, 80, 50))
	r.Restore()

	r.FillRect(0, 0, 100, 100)
	assert.Equal(t, uint8(255), alphaAt(img, 80, 50))
}

func TestRaster_ClipFollowsScale(t *testing.T) {
	r := NewRaster(nil, 100, 100)
	r.SetScale(2)
	photo := imaging.New(4, 4, red)
	CircularImage(r, photo, 0, 0, 25)

	img := r.Image()
	assert.Greater(t, alphaAt(img, 50, 50), uint8(250))
	assert.Equal(t, uint8(0), alphaAt(img, 3, 3))
	assert.Equal(t, uint8(0), alphaAt(img, 96, 96))
}

func TestRaster_TextUsesDeviceSizeFaces(t *testing.T) {
	fonts := DefaultFonts()
	scaled := NewRaster(fonts, 300, 100)
	scaled.SetScale(2)
	scaled.SetFont(Font{Size: 20, Bold: true})
	scaled.SetFillColor(color.White)
	scaled.FillText("Your Name", 5, 30)

	full := NewRaster(fonts, 300, 100)
	full.SetFont(Font{Size: 40, Bold: true})
	full.SetFillColor(color.White)
	full.FillText("Your Name", 10, 60)

	require.NoError(t, scaled.Err())
	assert.Equal(t, full.Image().Pix, scaled.Image().Pix)
}

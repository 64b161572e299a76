package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vck-social/postergen/pkg/canvas"
	"github.com/vck-social/postergen/pkg/generator"
	"github.com/vck-social/postergen/pkg/template"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// cardRegistry holds a tiny template with fields
// {name, designation, unrelated, photo, logo}.
func cardRegistry(t *testing.T) *template.Registry {
	t.Helper()
	def := &template.Definition{
		ID:       "card",
		Name:     "Card",
		Category: template.CategoryGeneral,
		Aspect:   template.AspectSquare,
		Width:    40,
		Height:   40,
		Fields: []template.Field{
			{Key: "name", Label: "Name", Kind: template.FieldText},
			{Key: "designation", Label: "Designation", Kind: template.FieldText},
			{Key: "unrelated", Label: "Other", Kind: template.FieldText, Default: "own default"},
			{Key: "photo", Label: "Photo", Kind: template.FieldImage},
			{Key: "logo", Label: "Logo", Kind: template.FieldImage},
		},
		Render: func(s canvas.Surface, v template.Values) {
			s.SetFillColor(color.White)
			s.FillRect(0, 0, v.W(), v.H())
			s.SetFillColor(color.Black)
			s.SetFont(canvas.Font{Size: 6})
			s.FillText(v.Text("name"), 2, 6)
			s.FillText(v.Text("designation"), 2, 12)
			s.FillText(v.Text("unrelated"), 2, 18)
			if img := v.Image("photo"); img != nil {
				s.DrawImage(img, 0, 20, 20, 20)
			}
			if img := v.Image("logo"); img != nil {
				s.DrawImage(img, 20, 20, 20, 20)
			}
		},
	}
	reg, err := template.NewRegistry(def)
	require.NoError(t, err)
	return reg
}

func openCard(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := Open(cardRegistry(t), "card", Profile{}, opts...)
	require.NoError(t, err)
	return s
}

func pngBytes(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	data, err := generator.EncodePNG(imaging.New(4, 4, c))
	require.NoError(t, err)
	return data
}

// meanDiff is the mean absolute per-channel difference of two equally sized images.
func meanDiff(a, b image.Image) float64 {
	bounds := a.Bounds()
	var sum, n float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r1, g1, b1, a1 := a.At(x, y).RGBA()
			r2, g2, b2, a2 := b.At(x, y).RGBA()
			for _, d := range []int64{
				int64(r1>>8) - int64(r2>>8),
				int64(g1>>8) - int64(g2>>8),
				int64(b1>>8) - int64(b2>>8),
				int64(a1>>8) - int64(a2>>8),
			} {
				if d < 0 {
					d = -d
				}
				sum += float64(d)
				n++
			}
		}
	}
	return sum / n
}

func TestSession_Uninitialized(t *testing.T) {
	s := New()
	assert.Equal(t, StateUninitialized, s.State())
	assert.ErrorIs(t, s.SetField("name", "x"), ErrNotInitialized)
	assert.ErrorIs(t, s.Reset(), ErrNotInitialized)
	assert.ErrorIs(t, s.Render(canvas.NewRecorder(), 1), ErrNotInitialized)

	_, err := s.LoadImage(context.Background(), "photo", nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = s.Export()
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.ErrorIs(t, s.Initialize(nil, Profile{}), template.ErrNotFound)
	assert.Equal(t, StateUninitialized, s.State())
}

func TestOpen_UnknownTemplate(t *testing.T) {
	_, err := Open(template.Default(), "no-such-template", Profile{})
	assert.ErrorIs(t, err, template.ErrNotFound)
}

func TestSession_ProfileSeeding(t *testing.T) {
	s, err := Open(cardRegistry(t), "card", Profile{Name: "Asha", Designation: "Secretary"})
	require.NoError(t, err)

	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, map[string]string{
		"name":        "Asha",
		"designation": "Secretary",
		"unrelated":   "own default",
	}, s.Values())
}

func TestSession_ProfileSeedingSkipsEmptyAttributes(t *testing.T) {
	def, _ := template.Default().FindByID("festival-greeting")
	s := New()
	require.NoError(t, s.Initialize(def, Profile{Name: "Asha", Constituency: "Chidambaram"}))

	values := s.Values()
	assert.Equal(t, "Asha", values["name"])
	assert.Equal(t, "", values["designation"])
	assert.NotContains(t, values, "constituency")
	assert.Equal(t, "பொங்கல் நல்வாழ்த்துகள்", values["festival"])
}

func TestSession_SetField(t *testing.T) {
	s := openCard(t)

	require.NoError(t, s.SetField("name", "Ravi"))
	assert.Equal(t, "Ravi", s.Values()["name"])

	err := s.SetField("constituency", "x")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), "constituency")

	assert.ErrorIs(t, s.SetField("photo", "x"), ErrUnknownField)
	assert.NotContains(t, s.Values(), "photo")
}

func TestSession_SetFieldsAllOrNothing(t *testing.T) {
	s := openCard(t)

	err := s.SetFields(map[string]string{"name": "Ravi", "bogus": "x"})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, "", s.Values()["name"])

	require.NoError(t, s.SetFields(map[string]string{"name": "Ravi", "designation": "MLA"}))
	assert.Equal(t, "Ravi", s.Values()["name"])
	assert.Equal(t, "MLA", s.Values()["designation"])
}

func TestSession_ResetKeepsImages(t *testing.T) {
	s, err := Open(cardRegistry(t), "card", Profile{Name: "Asha"})
	require.NoError(t, err)

	require.NoError(t, s.SetField("name", "Ravi"))
	_, err = s.LoadImage(context.Background(), "photo", pngBytes(t, red))
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	assert.Equal(t, "Asha", s.Values()["name"])
	assert.Equal(t, []string{"photo"}, s.ImageKeys())
}

func TestSession_LoadImage(t *testing.T) {
	s := openCard(t)

	img, err := s.LoadImage(context.Background(), "photo", pngBytes(t, red))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	stored, ok := s.Image("photo")
	require.True(t, ok)
	assert.Same(t, img, stored)

	_, err = s.LoadImage(context.Background(), "name", pngBytes(t, red))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSession_DecodeFailureKeepsPreviousImage(t *testing.T) {
	s := openCard(t)

	first, err := s.LoadImage(context.Background(), "photo", pngBytes(t, red))
	require.NoError(t, err)

	_, err = s.LoadImage(context.Background(), "photo", []byte("definitely not an image"))
	require.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, StateReady, s.State())

	stored, ok := s.Image("photo")
	require.True(t, ok)
	assert.Same(t, first, stored)

	_, err = s.LoadImage(context.Background(), "logo", nil)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, []string{"photo"}, s.ImageKeys())
}

func TestSession_LoadImageCancelled(t *testing.T) {
	s := openCard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.LoadImage(ctx, "photo", pngBytes(t, red))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.ImageKeys())
}

// gatedDecoder blocks decoding of payloads listed in gates until the gate is
// closed, and reports on started when such a decode begins.
type gatedDecoder struct {
	gates   map[string]chan struct{}
	started chan string
}

func (g *gatedDecoder) decode(ctx context.Context, data []byte) (image.Image, error) {
	key := string(data)
	if gate, ok := g.gates[key]; ok {
		g.started <- key
		<-gate
	}
	if key == "bad" {
		return nil, errors.New("unsupported format")
	}
	c := red
	if key == "new" {
		c = blue
	}
	return imaging.New(1, 1, c), nil
}

func TestSession_StaleLoadIsDiscarded(t *testing.T) {
	g := &gatedDecoder{
		gates:   map[string]chan struct{}{"old": make(chan struct{})},
		started: make(chan string, 1),
	}
	s := openCard(t, WithDecoder(g.decode))

	var (
		wg     sync.WaitGroup
		oldErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, oldErr = s.LoadImage(context.Background(), "photo", []byte("old"))
	}()
	require.Equal(t, "old", <-g.started)

	newer, err := s.LoadImage(context.Background(), "photo", []byte("new"))
	require.NoError(t, err)

	close(g.gates["old"])
	wg.Wait()
	assert.ErrorIs(t, oldErr, ErrSuperseded)

	stored, _ := s.Image("photo")
	assert.Same(t, newer, stored)
}

func TestSession_FailedNewerLoadSupersedesOlder(t *testing.T) {
	g := &gatedDecoder{
		gates:   map[string]chan struct{}{"old": make(chan struct{})},
		started: make(chan string, 1),
	}
	s := openCard(t, WithDecoder(g.decode))

	var (
		wg     sync.WaitGroup
		oldErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, oldErr = s.LoadImage(context.Background(), "photo", []byte("old"))
	}()
	require.Equal(t, "old", <-g.started)

	_, err := s.LoadImage(context.Background(), "photo", []byte("bad"))
	require.ErrorIs(t, err, ErrDecode)

	close(g.gates["old"])
	wg.Wait()
	assert.ErrorIs(t, oldErr, ErrSuperseded)
	_, ok := s.Image("photo")
	assert.False(t, ok, "the slot keeps its state from before the failed upload")

	// A fresh upload after the failure still lands.
	latest, err := s.LoadImage(context.Background(), "photo", []byte("new"))
	require.NoError(t, err)
	stored, _ := s.Image("photo")
	assert.Same(t, latest, stored)
}

func TestSession_InOrderLoadsBothApply(t *testing.T) {
	g := &gatedDecoder{gates: map[string]chan struct{}{}, started: make(chan string, 1)}
	s := openCard(t, WithDecoder(g.decode))

	_, err := s.LoadImage(context.Background(), "photo", []byte("old"))
	require.NoError(t, err)
	latest, err := s.LoadImage(context.Background(), "photo", []byte("new"))
	require.NoError(t, err)

	stored, _ := s.Image("photo")
	assert.Same(t, latest, stored)
}

func TestSession_KeysLoadIndependently(t *testing.T) {
	g := &gatedDecoder{
		gates:   map[string]chan struct{}{"old": make(chan struct{})},
		started: make(chan string, 1),
	}
	s := openCard(t, WithDecoder(g.decode))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.LoadImage(context.Background(), "photo", []byte("old"))
		assert.NoError(t, err)
	}()
	<-g.started

	_, err := s.LoadImage(context.Background(), "logo", []byte("new"))
	require.NoError(t, err)

	close(g.gates["old"])
	wg.Wait()
	assert.Equal(t, []string{"logo", "photo"}, s.ImageKeys())
}

func TestSession_RemoveImageBeatsInFlightLoad(t *testing.T) {
	g := &gatedDecoder{
		gates:   map[string]chan struct{}{"old": make(chan struct{})},
		started: make(chan string, 1),
	}
	s := openCard(t, WithDecoder(g.decode))

	var (
		wg     sync.WaitGroup
		oldErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, oldErr = s.LoadImage(context.Background(), "photo", []byte("old"))
	}()
	<-g.started

	require.NoError(t, s.RemoveImage("photo"))
	close(g.gates["old"])
	wg.Wait()

	assert.ErrorIs(t, oldErr, ErrSuperseded)
	assert.Empty(t, s.ImageKeys())
}

func TestSession_ReinitializeDropsInFlightLoad(t *testing.T) {
	g := &gatedDecoder{
		gates:   map[string]chan struct{}{"old": make(chan struct{})},
		started: make(chan string, 1),
	}
	reg := cardRegistry(t)
	s, err := Open(reg, "card", Profile{}, WithDecoder(g.decode))
	require.NoError(t, err)

	var (
		wg     sync.WaitGroup
		oldErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, oldErr = s.LoadImage(context.Background(), "photo", []byte("old"))
	}()
	<-g.started

	def, _ := reg.FindByID("card")
	require.NoError(t, s.Initialize(def, Profile{}))
	close(g.gates["old"])
	wg.Wait()

	assert.ErrorIs(t, oldErr, ErrSuperseded)
	assert.Empty(t, s.ImageKeys())
}

func TestSession_RenderRejectsBadScale(t *testing.T) {
	s := openCard(t)
	for _, scale := range []float64{0, -1} {
		assert.ErrorIs(t, s.Render(canvas.NewRecorder(), scale), ErrInvalidScale)
	}
	_, err := s.Preview(-0.5)
	assert.ErrorIs(t, err, ErrInvalidScale)
}

func TestSession_RenderAppliesScaleAndClears(t *testing.T) {
	s := openCard(t)
	rec := canvas.NewRecorder()
	require.NoError(t, s.Render(rec, 0.25))

	require.GreaterOrEqual(t, len(rec.Ops), 4)
	assert.Equal(t, "Save", rec.Ops[0].Name)
	assert.Equal(t, canvas.Op{Name: "SetScale", Args: []float64{0.25}}, rec.Ops[1])
	assert.Equal(t, canvas.Op{Name: "ClearRect", Args: []float64{0, 0, 40, 40}}, rec.Ops[2])
	assert.Equal(t, "Restore", rec.Ops[len(rec.Ops)-1].Name)
}

func TestSession_RenderOverwritesPriorContent(t *testing.T) {
	s := openCard(t)
	r := canvas.NewRaster(nil, 40, 40)
	require.NoError(t, s.Render(r, 1))
	first := append([]uint8(nil), r.Image().Pix...)

	// Paint garbage, then render again over it.
	r.SetFillColor(red)
	r.FillRect(0, 0, 40, 40)
	require.NoError(t, s.Render(r, 1))
	assert.Equal(t, first, r.Image().Pix)
}

func TestSession_ExportEqualsFullScaleRender(t *testing.T) {
	def, _ := template.Default().FindByID("festival-greeting")
	s := New()
	require.NoError(t, s.Initialize(def, Profile{Name: "Asha"}))
	_, err := s.LoadImage(context.Background(), "photo", pngBytes(t, red))
	require.NoError(t, err)

	// A preview at another scale must not influence the export.
	_, err = s.Preview(0.3)
	require.NoError(t, err)

	exported, err := s.ExportImage()
	require.NoError(t, err)

	r := canvas.NewRaster(nil, def.Width, def.Height)
	require.NoError(t, s.Render(r, 1))

	assert.Equal(t, def.Bounds(), exported.Bounds())
	assert.True(t, bytes.Equal(r.Image().Pix, exported.Pix), "export differs from a scale-1 render")
	assert.Equal(t, StateReady, s.State())
}

func TestSession_Idempotent(t *testing.T) {
	def, _ := template.Default().FindByID("condolence-message")
	s := New()
	require.NoError(t, s.Initialize(def, Profile{}))

	a, err := s.ExportImage()
	require.NoError(t, err)
	b, err := s.ExportImage()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestSession_ScaleInvariance(t *testing.T) {
	def, _ := template.Default().FindByID("festival-greeting")
	s := New()
	require.NoError(t, s.Initialize(def, Profile{Name: "Asha", Designation: "Secretary"}))
	_, err := s.LoadImage(context.Background(), "photo", pngBytes(t, red))
	require.NoError(t, err)

	full, err := s.ExportImage()
	require.NoError(t, err)

	double, err := s.Preview(2)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2160, 2160), double.Bounds())
	down := imaging.Resize(double, def.Width, def.Height, imaging.Box)
	assert.Less(t, meanDiff(full, down), 4.0)

	half, err := s.Preview(0.5)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 540, 540), half.Bounds())
	fullDown := imaging.Resize(full, 540, 540, imaging.Box)
	assert.Less(t, meanDiff(fullDown, half), 6.0)
}

func TestSession_DefaultFallbackPixels(t *testing.T) {
	def, _ := template.Default().FindByID("festival-greeting")
	reg, err := template.NewRegistry(def)
	require.NoError(t, err)

	implicit, err := Open(reg, def.ID, Profile{})
	require.NoError(t, err)

	explicit, err := Open(reg, def.ID, Profile{})
	require.NoError(t, err)
	require.NoError(t, explicit.SetField("message", "இனிய திருநாள் வாழ்த்துகள்!"))

	a, err := implicit.ExportImage()
	require.NoError(t, err)
	b, err := explicit.ExportImage()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestSession_MissingImagesRenderEveryTemplate(t *testing.T) {
	for _, def := range template.Default().All() {
		t.Run(def.ID, func(t *testing.T) {
			s := New()
			require.NoError(t, s.Initialize(def, Profile{}))
			r := canvas.NewRaster(nil, def.Width/4, def.Height/4)
			require.NotPanics(t, func() { require.NoError(t, s.Render(r, 0.25)) })
		})
	}
}

// photoBox returns the pixel rectangle covering the photo def draws, with its
// frame and anti-aliased edges.
func photoBox(t *testing.T, def *template.Definition, photo image.Image) image.Rectangle {
	t.Helper()
	rec := canvas.NewRecorder()
	def.Render(rec, template.NewValues(def, nil, map[string]image.Image{"photo": photo}))
	for _, op := range rec.Ops {
		if op.Name != "DrawImage" {
			continue
		}
		x, y, w, h := op.Args[0], op.Args[1], op.Args[2], op.Args[3]
		const margin = 8
		return image.Rect(
			int(math.Floor(x))-margin, int(math.Floor(y))-margin,
			int(math.Ceil(x+w))+margin, int(math.Ceil(y+h))+margin,
		)
	}
	t.Fatalf("%s draws no photo", def.ID)
	return image.Rectangle{}
}

func TestExport_PhotoLeavesRestOfPosterUntouched(t *testing.T) {
	photoData := pngBytes(t, red)
	photo, err := DecodeImage(context.Background(), photoData)
	require.NoError(t, err)

	for _, def := range template.Default().All() {
		t.Run(def.ID, func(t *testing.T) {
			s := New()
			require.NoError(t, s.Initialize(def, Profile{Name: "Asha", Designation: "Secretary"}))
			without, err := s.ExportImage()
			require.NoError(t, err)

			_, err = s.LoadImage(context.Background(), "photo", photoData)
			require.NoError(t, err)
			with, err := s.ExportImage()
			require.NoError(t, err)

			box := photoBox(t, def, photo)
			center := with.RGBAAt((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
			assert.Greater(t, center.R, uint8(200), "photo drawn at %v", box)
			assert.Less(t, center.G, uint8(60), "photo drawn at %v", box)

			changed := 0
			bounds := with.Bounds()
			for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					if image.Pt(x, y).In(box) {
						continue
					}
					if with.RGBAAt(x, y) != without.RGBAAt(x, y) {
						changed++
					}
				}
			}
			assert.Zero(t, changed, "pixels outside the photo box %v differ", box)
		})
	}
}

func TestSession_ReusedSurfaceMatchesFreshRender(t *testing.T) {
	def, _ := template.Default().FindByID("festival-greeting")
	s := New()
	require.NoError(t, s.Initialize(def, Profile{Name: "Asha"}))
	_, err := s.LoadImage(context.Background(), "photo", pngBytes(t, red))
	require.NoError(t, err)

	fonts := canvas.DefaultFonts()
	reused := canvas.NewRaster(fonts, 270, 270)
	require.NoError(t, s.Render(reused, 0.25))
	require.NoError(t, s.RemoveImage("photo"))
	require.NoError(t, s.Render(reused, 0.25))

	fresh := canvas.NewRaster(fonts, 270, 270)
	require.NoError(t, s.Render(fresh, 0.25))
	assert.True(t, bytes.Equal(fresh.Image().Pix, reused.Image().Pix))
}

func TestExportFile_NamesTheRenderedTemplate(t *testing.T) {
	s := New()
	other := &template.Definition{ID: "other", Width: 10, Height: 10, Render: func(canvas.Surface, template.Values) {}}
	var once sync.Once
	card := &template.Definition{
		ID: "card", Width: 10, Height: 10,
		Render: func(canvas.Surface, template.Values) {
			// Another editor switches template while this export renders.
			once.Do(func() { require.NoError(t, s.Initialize(other, Profile{})) })
		},
	}
	require.NoError(t, s.Initialize(card, Profile{}))

	name, _, err := s.ExportFile(time.UnixMilli(7))
	require.NoError(t, err)
	assert.Equal(t, "vck-card-7.png", name)
	assert.Equal(t, "other", s.Template().ID)
}

func TestExport_FestivalGreetingEndToEnd(t *testing.T) {
	s, err := Open(template.Default(), "festival-greeting", Profile{})
	require.NoError(t, err)

	name, data, err := s.ExportFile(time.UnixMilli(1700000000123))
	require.NoError(t, err)
	assert.Equal(t, "vck-festival-greeting-1700000000123.png", name)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1080, 1080), decoded.Bounds())

	// "Your Name" is drawn centred on (540, 720) in bold white.
	textPixels := 0
	for y := 690; y <= 722; y++ {
		for x := 440; x <= 640; x++ {
			r, g, b, _ := decoded.At(x, y).RGBA()
			if r>>8 > 200 && g>>8 > 200 && b>>8 > 200 {
				textPixels++
			}
		}
	}
	assert.Greater(t, textPixels, 20, "name text should be painted around its baseline")

	// The brand bar darkens the gradient by 30%. Pairs share a gradient
	// position since the 135 degree gradient is constant along x == y shifts.
	pairs := []struct{ bar, above image.Point }{
		{bar: image.Pt(100, 1040), above: image.Pt(50, 990)},
		{bar: image.Pt(150, 1070), above: image.Pt(80, 1000)},
		{bar: image.Pt(1000, 1030), above: image.Pt(965, 995)},
	}
	for _, p := range pairs {
		above := color.NRGBAModel.Convert(decoded.At(p.above.X, p.above.Y)).(color.NRGBA)
		bar := color.NRGBAModel.Convert(decoded.At(p.bar.X, p.bar.Y)).(color.NRGBA)
		assert.InDelta(t, 0.7*float64(above.R), float64(bar.R), 6, "at %v", p.bar)
		assert.InDelta(t, 0.7*float64(above.G), float64(bar.G), 6, "at %v", p.bar)
		assert.InDelta(t, 0.7*float64(above.B), float64(bar.B), 6, "at %v", p.bar)
		assert.Equal(t, uint8(255), bar.A)
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "vck-story-template-42.png", Filename("story-template", time.UnixMilli(42)))
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage(context.Background(), pngBytes(t, blue))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = DecodeImage(context.Background(), nil)
	assert.Error(t, err)

	_, err = DecodeImage(context.Background(), []byte("GIF89a"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DecodeImage(ctx, pngBytes(t, blue))
	assert.True(t, errors.Is(err, context.Canceled))
}

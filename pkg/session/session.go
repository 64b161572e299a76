// Package session binds a template, live field values and uploaded photos to a
// drawing surface. A Session is safe for concurrent use: edits are serialized
// by a mutex, image decoding runs outside it, and renders draw from a
// snapshot so they never observe a half-applied edit.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vck-social/postergen/pkg/canvas"
	"github.com/vck-social/postergen/pkg/generator"
	"github.com/vck-social/postergen/pkg/template"
)

var (
	ErrNotInitialized = errors.New("session not initialized")
	ErrUnknownField   = errors.New("unknown field")
	ErrDecode         = errors.New("image decode failed")
	ErrSuperseded     = errors.New("image load superseded by a newer upload")
	ErrInvalidScale   = errors.New("scale must be a positive finite number")
)

// State is the session lifecycle stage.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateExporting
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateExporting:
		return "exporting"
	default:
		return "uninitialized"
	}
}

// Option configures a Session.
type Option func(*Session)

// WithDecoder replaces DecodeImage.
func WithDecoder(d Decoder) Option {
	return func(s *Session) { s.decode = d }
}

// WithFonts sets the fonts used by Preview and Export.
func WithFonts(fm *canvas.FontManager) Option {
	return func(s *Session) { s.fonts = fm }
}

// Session is the live editing state for one poster.
type Session struct {
	mu        sync.Mutex
	def       *template.Definition
	profile   Profile
	values    map[string]string
	images    map[string]image.Image
	issued    map[string]uint64
	applied   map[string]uint64
	gen       uint64
	exporting int

	decode Decoder
	fonts  *canvas.FontManager
}

// New returns an uninitialized session.
func New(opts ...Option) *Session {
	s := &Session{decode: DecodeImage}
	for _, opt := range opts {
		opt(s)
	}
	if s.fonts == nil {
		s.fonts = canvas.DefaultFonts()
	}
	return s
}

// Open looks up id in reg and returns an initialized session.
func Open(reg *template.Registry, id string, profile Profile, opts ...Option) (*Session, error) {
	def, err := reg.Lookup(id)
	if err != nil {
		return nil, err
	}
	s := New(opts...)
	if err := s.Initialize(def, profile); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize selects def, seeds field values from its defaults overlaid with
// matching profile attributes, and drops any previous images. In-flight
// image loads from before the call are discarded when they finish.
func (s *Session) Initialize(def *template.Definition, profile Profile) error {
	if def == nil {
		return fmt.Errorf("initialize: %w", template.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.def = def
	s.profile = profile
	s.values = template.Merge(def, profile.Values())
	s.images = make(map[string]image.Image)
	s.issued = make(map[string]uint64)
	s.applied = make(map[string]uint64)
	s.gen++
	return nil
}

// State reports the lifecycle stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.def == nil:
		return StateUninitialized
	case s.exporting > 0:
		return StateExporting
	default:
		return StateReady
	}
}

// Template returns the selected definition, or nil before Initialize.
func (s *Session) Template() *template.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.def
}

// Values returns a copy of the current field values.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}

// ImageKeys returns the sorted keys of loaded images.
func (s *Session) ImageKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.images))
}

// Image returns the loaded image for key.
func (s *Session) Image(key string) (image.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[key]
	return img, ok
}

// checkField reports whether key names a field of kind image (wantImage) or a
// non-image field. Callers hold mu.
func (s *Session) checkField(key string, wantImage bool) error {
	if s.def == nil {
		return ErrNotInitialized
	}
	f, ok := s.def.Field(key)
	if !ok || (f.Kind == template.FieldImage) != wantImage {
		return fmt.Errorf("%w %q for template %s", ErrUnknownField, key, s.def.ID)
	}
	return nil
}

// SetField updates one text, multiline or colour value. Image keys and keys
// the template does not declare return ErrUnknownField.
func (s *Session) SetField(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkField(key, false); err != nil {
		return err
	}
	s.values[key] = value
	return nil
}

// SetFields applies several values at once. If any key is rejected, nothing
// is applied.
func (s *Session) SetFields(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if err := s.checkField(key, false); err != nil {
			return err
		}
	}
	maps.Copy(s.values, values)
	return nil
}

// Reset restores field values to the seeded state. Loaded images are kept.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.def == nil {
		return ErrNotInitialized
	}
	s.values = template.Merge(s.def, s.profile.Values())
	return nil
}

// LoadImage decodes data and stores it under key. Decoding happens without
// holding the session lock. When several loads for one key overlap, the most
// recently started one wins; an older load that finishes later returns
// ErrSuperseded and stores nothing. On decode failure the previous image, if
// any, is kept, older loads still in flight are superseded, and the error
// wraps ErrDecode.
func (s *Session) LoadImage(ctx context.Context, key string, data []byte) (image.Image, error) {
	s.mu.Lock()
	if err := s.checkField(key, true); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.issued[key]++
	seq, gen := s.issued[key], s.gen
	decode := s.decode
	s.mu.Unlock()

	img, err := decode(ctx, data)
	if err == nil && img == nil {
		err = errors.New("decoder returned no image")
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn().Err(err).Str("field", key).Int("bytes", len(data)).Msg("image decode failed")
		s.mu.Lock()
		if gen == s.gen {
			s.applied[key] = max(s.applied[key], seq)
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: field %q: %w", ErrDecode, key, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || seq <= s.applied[key] {
		log.Debug().Str("field", key).Uint64("seq", seq).Msg("discarding stale image")
		return nil, ErrSuperseded
	}
	s.images[key] = img
	s.applied[key] = seq
	return img, nil
}

// RemoveImage clears the image slot for key.
func (s *Session) RemoveImage(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkField(key, true); err != nil {
		return err
	}
	delete(s.images, key)
	// Loads already in flight lose to the removal.
	s.applied[key] = s.issued[key]
	return nil
}

type snapshot struct {
	def    *template.Definition
	values map[string]string
	images map[string]image.Image
}

func (s *Session) snapshot() (snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.def == nil {
		return snapshot{}, ErrNotInitialized
	}
	return snapshot{def: s.def, values: maps.Clone(s.values), images: maps.Clone(s.images)}, nil
}

func validScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0) && !math.IsNaN(scale)
}

// Render scales surf uniformly by scale, clears the canonical area and draws
// the poster. The surface is left with the transform it had before the call.
func (s *Session) Render(surf canvas.Surface, scale float64) error {
	if !validScale(scale) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	snap, err := s.snapshot()
	if err != nil {
		return err
	}
	draw(surf, snap, scale)
	return nil
}

func draw(surf canvas.Surface, snap snapshot, scale float64) {
	surf.Save()
	surf.SetScale(scale)
	surf.ClearRect(0, 0, float64(snap.def.Width), float64(snap.def.Height))
	snap.def.Render(surf, template.NewValues(snap.def, snap.values, snap.images))
	surf.Restore()
}

func (s *Session) rasterize(snap snapshot, scale float64) (*image.RGBA, error) {
	w, h := scaledSize(snap.def.Width, scale), scaledSize(snap.def.Height, scale)
	r := canvas.NewRaster(s.fonts, w, h)
	draw(r, snap, scale)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("render %s: %w", snap.def.ID, err)
	}
	return r.Image(), nil
}

// scaledSize rounds n*scale up, ignoring float noise so 1080*0.1 is 108.
func scaledSize(n int, scale float64) int {
	return max(1, int(math.Ceil(float64(n)*scale-1e-9)))
}

// Preview renders onto a new surface sized to the scaled poster.
func (s *Session) Preview(scale float64) (*image.RGBA, error) {
	if !validScale(scale) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return s.rasterize(snap, scale)
}

// ExportImage renders at canonical size onto a fresh surface, independent of
// any preview.
func (s *Session) ExportImage() (*image.RGBA, error) {
	img, _, err := s.export()
	return img, err
}

// export renders the canonical poster and reports the definition it was
// rendered from.
func (s *Session) export() (*image.RGBA, *template.Definition, error) {
	s.mu.Lock()
	if s.def == nil {
		s.mu.Unlock()
		return nil, nil, ErrNotInitialized
	}
	s.exporting++
	snap := snapshot{def: s.def, values: maps.Clone(s.values), images: maps.Clone(s.images)}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exporting--
		s.mu.Unlock()
	}()
	img, err := s.rasterize(snap, 1)
	return img, snap.def, err
}

// Export returns the canonical-size poster as PNG bytes.
func (s *Session) Export() ([]byte, error) {
	img, err := s.ExportImage()
	if err != nil {
		return nil, err
	}
	return generator.EncodePNG(img)
}

// ExportFile is Export plus the download name vck-<template id>-<unix ms>.png.
// The name always matches the template the bytes were rendered from.
func (s *Session) ExportFile(now time.Time) (string, []byte, error) {
	img, def, err := s.export()
	if err != nil {
		return "", nil, err
	}
	data, err := generator.EncodePNG(img)
	if err != nil {
		return "", nil, err
	}
	return Filename(def.ID, now), data, nil
}

// Filename builds the download name for a poster exported at now.
func Filename(templateID string, now time.Time) string {
	return fmt.Sprintf("vck-%s-%d.png", templateID, now.UnixMilli())
}

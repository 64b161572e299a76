// validator.go - Structural checks on definitions, including a dry-run render
// that records which fields the drawing routine actually reads.
package template

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/vck-social/postergen/pkg/canvas"
)

// DefinitionError reports a structural problem with one template definition.
type DefinitionError struct {
	TemplateID string
	Reason     string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("template %q: %s", e.TemplateID, e.Reason)
}

// probe watches Values reads during a dry run.
type probe struct {
	read       map[string]bool
	undeclared []string
	mismatched []string
}

func newProbe() *probe {
	return &probe{read: make(map[string]bool)}
}

func (p *probe) record(key string, f Field, declared bool, kinds []FieldKind) {
	if !declared {
		if !slices.Contains(p.undeclared, key) {
			p.undeclared = append(p.undeclared, key)
		}
		return
	}
	p.read[key] = true
	if !slices.Contains(kinds, f.Kind) {
		msg := fmt.Sprintf("field %q is %s but is read as %s", key, f.Kind, kinds[0])
		if !slices.Contains(p.mismatched, msg) {
			p.mismatched = append(p.mismatched, msg)
		}
	}
}

// Validate checks def and returns every problem found, joined. A nil result
// means the definition is safe to register.
func Validate(def *Definition) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, &DefinitionError{TemplateID: def.ID, Reason: fmt.Sprintf(format, args...)})
	}

	if def.ID == "" {
		fail("missing id")
	}
	if def.Width <= 0 || def.Height <= 0 {
		fail("invalid canvas size %dx%d", def.Width, def.Height)
	}
	if !def.Category.Valid() {
		fail("unsupported category %q", def.Category)
	}
	if !slices.Contains(aspects, def.Aspect) {
		fail("unsupported aspect ratio %q", def.Aspect)
	}

	seen := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		switch {
		case f.Key == "":
			fail("field with empty key")
		case seen[f.Key]:
			fail("duplicate field key %q", f.Key)
		}
		seen[f.Key] = true

		if !f.Kind.Valid() {
			fail("field %q has unknown kind %s", f.Key, f.Kind)
		}
		if f.Kind == FieldImage && f.Default != "" {
			fail("image field %q cannot have a default", f.Key)
		}
		if f.Kind == FieldColor {
			if _, err := canvas.ParseColor(f.Default); err != nil {
				fail("color field %q has invalid default: %v", f.Key, err)
			}
		}
	}

	if def.Render == nil {
		fail("missing render function")
		return errors.Join(errs...)
	}

	p, rec, err := dryRun(def)
	if err != nil {
		fail("render failed: %v", err)
		return errors.Join(errs...)
	}
	for _, key := range p.undeclared {
		fail("render reads undeclared field %q", key)
	}
	for _, msg := range p.mismatched {
		fail("%s", msg)
	}
	for _, f := range def.Fields {
		if seen[f.Key] && !p.read[f.Key] {
			fail("field %q is never drawn", f.Key)
		}
	}
	if saves, restores := rec.Count("Save"), rec.Count("Restore"); saves != restores {
		fail("unbalanced Save/Restore (%d/%d)", saves, restores)
	}

	return errors.Join(errs...)
}

// dryRun renders def onto a recorder with a stand-in image in every image
// slot so conditional photo branches are exercised too.
func dryRun(def *Definition) (p *probe, rec *canvas.Recorder, err error) {
	images := make(map[string]image.Image)
	stub := image.NewRGBA(image.Rect(0, 0, 1, 1))
	for _, f := range def.Fields {
		if f.Kind == FieldImage {
			images[f.Key] = stub
		}
	}

	p = newProbe()
	rec = canvas.NewRecorder()
	v := NewValues(def, nil, images)
	v.probe = p

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	def.Render(rec, v)
	return p, rec, nil
}

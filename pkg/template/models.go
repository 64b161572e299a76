// Package template defines the poster catalogue: typed input fields, the
// drawing routine of every design, and read-only lookup over them.
package template

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/vck-social/postergen/pkg/canvas"
)

// ── Field types ──

// FieldKind is the closed set of input kinds a template can declare.
type FieldKind uint8

const (
	FieldText FieldKind = iota + 1
	FieldMultiline
	FieldColor
	FieldImage
)

var fieldKindNames = map[FieldKind]string{
	FieldText:      "text",
	FieldMultiline: "multiline",
	FieldColor:     "color",
	FieldImage:     "image",
}

func (k FieldKind) String() string {
	if s, ok := fieldKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("FieldKind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k FieldKind) Valid() bool {
	_, ok := fieldKindNames[k]
	return ok
}

// ParseFieldKind maps a kind name to its value. "textarea" is accepted as an
// alias of multiline.
func ParseFieldKind(s string) (FieldKind, error) {
	if s == "textarea" {
		return FieldMultiline, nil
	}
	for k, name := range fieldKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown field kind %q", s)
}

func (k FieldKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", k)
	}
	return []byte(k.String()), nil
}

func (k *FieldKind) UnmarshalText(b []byte) error {
	parsed, err := ParseFieldKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Field is one customizable input on a template. Image fields have no default.
type Field struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Default     string    `json:"default" yaml:"default,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// ── Categories ──

// Category groups templates in the gallery.
type Category string

const (
	// CategoryAll is the lookup sentinel that disables filtering. It is not a
	// valid category for a definition.
	CategoryAll Category = "all"

	CategoryFestival     Category = "festival"
	CategoryBirthday     Category = "birthday"
	CategoryCampaign     Category = "campaign"
	CategoryEvent        Category = "event"
	CategoryAchievement  Category = "achievement"
	CategoryCondolence   Category = "condolence"
	CategoryAnnouncement Category = "announcement"
	CategoryGeneral      Category = "general"
)

// Categories lists every valid definition category in gallery order.
var Categories = []Category{
	CategoryFestival,
	CategoryBirthday,
	CategoryCampaign,
	CategoryEvent,
	CategoryAchievement,
	CategoryCondolence,
	CategoryAnnouncement,
	CategoryGeneral,
}

// Valid reports whether c may be assigned to a definition.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// ParseCategory accepts any valid category, "all", or "" (meaning all).
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if s == "" || c == CategoryAll {
		return CategoryAll, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Aspect is the ratio label shown in the gallery.
type Aspect string

const (
	AspectSquare    Aspect = "1:1"
	AspectPortrait  Aspect = "4:5"
	AspectStory     Aspect = "9:16"
	AspectLandscape Aspect = "16:9"
)

var aspects = []Aspect{AspectSquare, AspectPortrait, AspectStory, AspectLandscape}

// ── Definitions ──

// RenderFunc paints a full poster in the definition's canonical coordinate
// space. It must read inputs only through v and must not retain them.
type RenderFunc func(s canvas.Surface, v Values)

// Definition describes one poster design. Definitions are built once and
// shared; callers must not modify them.
type Definition struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	NameTamil string     `json:"nameTa" yaml:"name_ta"`
	Category  Category   `json:"category" yaml:"category"`
	Aspect    Aspect     `json:"aspectRatio" yaml:"aspect_ratio"`
	Width     int        `json:"width" yaml:"width"`
	Height    int        `json:"height" yaml:"height"`
	Premium   bool       `json:"isPremium" yaml:"is_premium"`
	Language  string     `json:"language" yaml:"language"`
	Fields    []Field    `json:"fields" yaml:"fields"`
	Render    RenderFunc `json:"-" yaml:"-"`
}

// Field returns the field declared under key.
func (d *Definition) Field(key string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults returns a fresh map of every non-image field's default value.
func (d *Definition) Defaults() map[string]string {
	out := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		if f.Kind != FieldImage {
			out[f.Key] = f.Default
		}
	}
	return out
}

// Bounds returns the canonical pixel rectangle.
func (d *Definition) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// ── Values ──

// Values is the read-only view a RenderFunc draws from. Text that is absent
// falls back to the field default; absent images read as nil.
type Values struct {
	def    *Definition
	text   map[string]string
	images map[string]image.Image
	probe  *probe
}

// NewValues binds field values and decoded images to def. The maps are read,
// never written.
func NewValues(def *Definition, text map[string]string, images map[string]image.Image) Values {
	return Values{def: def, text: text, images: images}
}

// W is the canonical width.
func (v Values) W() float64 { return float64(v.def.Width) }

// H is the canonical height.
func (v Values) H() float64 { return float64(v.def.Height) }

func (v Values) field(key string, kinds ...FieldKind) (Field, bool) {
	f, ok := v.def.Field(key)
	if v.probe != nil {
		v.probe.record(key, f, ok, kinds)
	}
	if !ok || !slices.Contains(kinds, f.Kind) {
		return Field{}, false
	}
	return f, true
}

// Text returns the value of a text or multiline field.
func (v Values) Text(key string) string {
	f, ok := v.field(key, FieldText, FieldMultiline)
	if !ok {
		return ""
	}
	if s, ok := v.text[key]; ok {
		return s
	}
	return f.Default
}

// Color returns the value of a colour field. Unparsable input falls back to
// the field default.
func (v Values) Color(key string) color.Color {
	f, ok := v.field(key, FieldColor)
	if !ok {
		return color.Transparent
	}
	if s, ok := v.text[key]; ok {
		if c, err := canvas.ParseColor(s); err == nil {
			return c
		}
	}
	c, err := canvas.ParseColor(f.Default)
	if err != nil {
		return color.Transparent
	}
	return c
}

// Image returns the decoded image for an image field, or nil.
func (v Values) Image(key string) image.Image {
	if _, ok := v.field(key, FieldImage); !ok {
		return nil
	}
	return v.images[key]
}

// or returns s, or fallback when s is empty.
func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

package template

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNotFound is returned by Lookup for an unknown template id.
var ErrNotFound = errors.New("template not found")

// Registry is an immutable, ordered index over validated definitions. It is
// safe for concurrent use.
type Registry struct {
	defs []*Definition
	byID map[string]*Definition
}

// NewRegistry validates every definition and indexes them in the given order.
// All definition errors are reported together.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Definition, len(defs))}

	var errs []error
	for _, def := range defs {
		if err := Validate(def); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := r.byID[def.ID]; dup {
			errs = append(errs, &DefinitionError{TemplateID: def.ID, Reason: "duplicate id"})
			continue
		}
		r.byID[def.ID] = def
		r.defs = append(r.defs, def)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid template catalogue: %w", errors.Join(errs...))
	}
	return r, nil
}

var builtin = sync.OnceValues(func() (*Registry, error) {
	return NewRegistry(Catalogue()...)
})

// Default returns the registry of built-in templates. It panics if the
// catalogue fails validation.
func Default() *Registry {
	r, err := builtin()
	if err != nil {
		panic(err)
	}
	return r
}

// FindByID returns the definition with the given id.
func (r *Registry) FindByID(id string) (*Definition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// Lookup is FindByID returning ErrNotFound for unknown ids.
func (r *Registry) Lookup(id string) (*Definition, error) {
	def, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return def, nil
}

// FindByCategory returns definitions in catalogue order whose category is c.
// CategoryAll and the empty category return everything.
func (r *Registry) FindByCategory(c Category) []*Definition {
	if c == CategoryAll || c == "" {
		return r.All()
	}
	out := []*Definition{}
	for _, def := range r.defs {
		if def.Category == c {
			out = append(out, def)
		}
	}
	return out
}

// All returns every definition in catalogue order.
func (r *Registry) All() []*Definition {
	return slices.Clone(r.defs)
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }

// merge.go - Layer value overrides onto template defaults.
package template

// Merge starts from def's defaults and applies each layer in order. Within a
// layer, only keys naming a declared non-image field with a non-empty value
// are applied; everything else is ignored.
func Merge(def *Definition, layers ...map[string]string) map[string]string {
	values := def.Defaults()
	for _, layer := range layers {
		for key, val := range layer {
			if val == "" {
				continue
			}
			if _, ok := values[key]; ok {
				values[key] = val
			}
		}
	}
	return values
}

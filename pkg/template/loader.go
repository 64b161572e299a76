// loader.go - Read field values from a JSON or YAML file and produce starter
// value files for a template.
package template

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadValuesFile reads a flat key → value mapping. YAML is a superset of JSON,
// so both formats parse the same way.
func LoadValuesFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

// SampleValues returns an indented JSON object with every non-image field of
// def, filled with its default or, failing that, its placeholder.
func SampleValues(def *Definition) ([]byte, error) {
	sample := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		if f.Kind == FieldImage {
			continue
		}
		sample[f.Key] = or(f.Default, f.Placeholder)
	}

	out, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sample values: %w", err)
	}
	return append(out, '\n'), nil
}

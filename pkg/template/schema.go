// schema.go - Self-documenting field schemas for the CLI and HTTP API.
package template

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatSchema returns a human-readable description of def's inputs.
func FormatSchema(def *Definition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s (%s)\n", def.Name, def.NameTamil)
	fmt.Fprintf(&b, "ID: %s  Category: %s  Size: %dx%d (%s)", def.ID, def.Category, def.Width, def.Height, def.Aspect)
	if def.Premium {
		b.WriteString("  [premium]")
	}
	b.WriteString("\n\nFields:\n")

	for _, f := range def.Fields {
		fmt.Fprintf(&b, "  %-16s %-10s %s", f.Key+":", f.Kind, f.Label)
		if f.Default != "" {
			fmt.Fprintf(&b, " (default %q)", f.Default)
		} else if f.Placeholder != "" {
			fmt.Fprintf(&b, " (e.g. %s)", f.Placeholder)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SchemaYAML renders def's metadata and fields as YAML.
func SchemaYAML(def *Definition) ([]byte, error) {
	out, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", def.ID, err)
	}
	return out, nil
}

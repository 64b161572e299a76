package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_LayersInOrder(t *testing.T) {
	def := testDefinition("merge")

	got := Merge(def,
		map[string]string{"name": "Asha", "designation": "Secretary", "constituency": "ignored"},
		map[string]string{"designation": "Treasurer", "name": "", "photo": "ignored"},
	)

	assert.Equal(t, map[string]string{
		"name":        "Asha",
		"designation": "Treasurer",
		"unrelated":   "keep me",
	}, got)
}

func TestMerge_DefaultsAreFresh(t *testing.T) {
	def := testDefinition("fresh")
	a := Merge(def)
	a["unrelated"] = "changed"
	assert.Equal(t, "keep me", Merge(def)["unrelated"])
}

func TestLoadValuesFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "values.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name": "Asha", "message": "வணக்கம்"}`), 0o644))
	got, err := LoadValuesFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Asha", "message": "வணக்கம்"}, got)

	yamlPath := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: Asha\ndesignation: Secretary\n"), 0o644))
	got, err = LoadValuesFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Secretary", got["designation"])

	emptyPath := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, nil, 0o644))
	got, err = LoadValuesFile(emptyPath)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = LoadValuesFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("- a\n- b\n"), 0o644))
	_, err = LoadValuesFile(badPath)
	assert.Error(t, err)
}

func TestSampleValues(t *testing.T) {
	def, _ := Default().FindByID("festival-greeting")
	out, err := SampleValues(def)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"name": "Enter your name"`)
	assert.Contains(t, s, `"festival": "பொங்கல் நல்வாழ்த்துகள்"`)
	assert.NotContains(t, s, "photo")
	assert.True(t, strings.HasSuffix(s, "}\n"))
}

func TestFormatSchema(t *testing.T) {
	def, _ := Default().FindByID("achievement-post")
	s := FormatSchema(def)

	assert.Contains(t, s, "Template: Achievement Post")
	assert.Contains(t, s, "[premium]")
	assert.Contains(t, s, "achievement:")
	assert.Contains(t, s, "multiline")
}

func TestSchemaYAML(t *testing.T) {
	def, _ := Default().FindByID("story-template")
	out, err := SchemaYAML(def)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "id: story-template")
	assert.Contains(t, s, "kind: color")
	assert.Contains(t, s, "9:16")
	assert.NotContains(t, s, "render")
}

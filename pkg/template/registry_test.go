package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(defs []*Definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.ID
	}
	return out
}

func TestDefault_CatalogueOrder(t *testing.T) {
	reg := Default()
	assert.Equal(t, []string{
		"festival-greeting",
		"birthday-greeting",
		"campaign-poster",
		"event-announcement",
		"story-template",
		"achievement-post",
		"condolence-message",
		"announcement-banner",
	}, ids(reg.All()))
	assert.Equal(t, 8, reg.Len())
}

func TestRegistry_FindByID(t *testing.T) {
	reg := Default()

	def, ok := reg.FindByID("festival-greeting")
	require.True(t, ok)
	assert.Equal(t, "festival-greeting", def.ID)
	assert.Equal(t, 1080, def.Width)
	assert.Equal(t, 1080, def.Height)

	def, ok = reg.FindByID("no-such-template")
	assert.False(t, ok)
	assert.Nil(t, def)
}

func TestRegistry_Lookup(t *testing.T) {
	reg := Default()

	def, err := reg.Lookup("campaign-poster")
	require.NoError(t, err)
	assert.Equal(t, 1350, def.Height)

	_, err = reg.Lookup("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestRegistry_FindByCategory(t *testing.T) {
	reg := Default()

	assert.Equal(t, []string{"festival-greeting"}, ids(reg.FindByCategory(CategoryFestival)))
	assert.Equal(t, []string{"story-template"}, ids(reg.FindByCategory(CategoryGeneral)))
	assert.Equal(t, ids(reg.All()), ids(reg.FindByCategory(CategoryAll)))
	assert.Equal(t, ids(reg.All()), ids(reg.FindByCategory("")))
	assert.Empty(t, reg.FindByCategory("sports"))

	for _, c := range Categories {
		for _, def := range reg.FindByCategory(c) {
			assert.Equal(t, c, def.Category)
		}
	}
}

func TestRegistry_FindByCategoryPreservesOrder(t *testing.T) {
	a := testDefinition("a")
	b := testDefinition("b")
	b.Category = CategoryEvent
	c := testDefinition("c")

	reg, err := NewRegistry(a, b, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(reg.FindByCategory(CategoryFestival)))
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	reg := Default()
	all := reg.All()
	all[0] = nil
	assert.NotNil(t, reg.All()[0])
}

func TestNewRegistry_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry(testDefinition("dup"), testDefinition("dup"))
	require.Error(t, err)

	var defErr *DefinitionError
	require.True(t, errors.As(err, &defErr))
	assert.Equal(t, "dup", defErr.TemplateID)
	assert.Equal(t, "duplicate id", defErr.Reason)
}

func TestNewRegistry_ReportsEveryInvalidDefinition(t *testing.T) {
	bad1 := testDefinition("bad1")
	bad1.Category = "sports"
	bad2 := testDefinition("bad2")
	bad2.Width = 0

	_, err := NewRegistry(bad1, testDefinition("ok"), bad2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad1"`)
	assert.Contains(t, err.Error(), `"bad2"`)
	assert.NotContains(t, err.Error(), `"ok"`)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	c, err = ParseCategory("condolence")
	require.NoError(t, err)
	assert.Equal(t, CategoryCondolence, c)

	_, err = ParseCategory("sports")
	assert.Error(t, err)
}

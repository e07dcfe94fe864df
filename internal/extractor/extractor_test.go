package extractor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protodex/protodex/internal/models"
)

func TestExtract_SingleCall(t *testing.T) {
	source := `
data:extend({
  {
    type = "item",
    name = "cube-basic-matter-unit",
    stack_size = 100,
  },
})
`
	ex := New("data:extend")
	records := ex.Extract(source)

	require.Len(t, records, 1)
	assert.Equal(t, "item", records[0].GetString("type"))
	assert.Equal(t, "cube-basic-matter-unit", records[0].GetString("name"))
	stack, ok := records[0].Get("stack_size")
	require.True(t, ok)
	assert.Equal(t, models.IntValue(100), stack)
}

func TestExtract_MultipleCallsInAppearanceOrder(t *testing.T) {
	source := `
data:extend({
  {type = "item", name = "first"},
  {type = "item", name = "second"},
})

local filler = "not a prototype"

data:extend({
  {type = "recipe", name = "third"},
})
`
	ex := New("data:extend")
	records := ex.Extract(source)

	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].GetString("name"))
	assert.Equal(t, "second", records[1].GetString("name"))
	assert.Equal(t, "third", records[2].GetString("name"))
	assert.Equal(t, "recipe", records[2].GetString("type"))
}

func TestExtract_SkipsEntriesWithoutTypeKey(t *testing.T) {
	source := `
data:extend({
  {type = "item", name = "keep-me"},
  {name = "no-type-here"},
  {type = "fluid", name = "keep-me-too"},
})
`
	var diag bytes.Buffer
	ex := New("data:extend")
	ex.SetDebug(&diag)
	records := ex.Extract(source)

	require.Len(t, records, 2)
	assert.Equal(t, "keep-me", records[0].GetString("name"))
	assert.Equal(t, "keep-me-too", records[1].GetString("name"))
	assert.Contains(t, diag.String(), "skipping entry without type key")
}

func TestExtract_WhitespaceAroundCall(t *testing.T) {
	source := "data:extend  (\n  {\n  {type = \"item\", name = \"spaced\"}\n}\n)"
	ex := New("data:extend")
	records := ex.Extract(source)

	require.Len(t, records, 1)
	assert.Equal(t, "spaced", records[0].GetString("name"))
}

func TestExtract_CustomCallName(t *testing.T) {
	source := `registry.add({ {type = "widget", name = "gear"} })`

	records := New("registry.add").Extract(source)
	require.Len(t, records, 1)
	assert.Equal(t, "widget", records[0].GetString("type"))

	// The pattern is literal: the default extractor must not match it.
	assert.Empty(t, New("data:extend").Extract(source))
}

func TestExtract_NestedTablesStayWithinOneRecord(t *testing.T) {
	source := `
data:extend({
  {
    type = "recipe",
    name = "cube-fusion",
    ingredients = {{name = "cube", amount = 1}, {name = "iron-plate", amount = 8}},
  },
})
`
	records := New("data:extend").Extract(source)
	require.Len(t, records, 1)

	ingredients, ok := records[0].Get("ingredients")
	require.True(t, ok)
	require.Equal(t, models.KindTable, ingredients.Kind)
	require.Len(t, ingredients.Table.Items(), 2)
	assert.Equal(t, "iron-plate", ingredients.Table.Items()[1].Table.GetString("name"))
}

func TestExtract_UnbalancedCallIsSkipped(t *testing.T) {
	source := `
data:extend({
  {type = "item", name = "never-closed"
`
	var diag bytes.Buffer
	ex := New("data:extend")
	ex.SetDebug(&diag)

	assert.Empty(t, ex.Extract(source))
	assert.Contains(t, diag.String(), "unbalanced")
}

func TestStripComments_PlainComment(t *testing.T) {
	got := StripComments("stack_size = 100 -- per belt\nname = \"x\"")
	assert.Equal(t, "stack_size = 100 \nname = \"x\"", got)
}

func TestStripComments_MarkerInsideString(t *testing.T) {
	// The first "--" sits inside the string (odd quote count before it), so
	// the scan moves on and strips at the real trailing comment.
	got := StripComments(`name = "a--b", -- comment`)
	assert.Equal(t, `name = "a--b", `, got)
}

func TestStripComments_OddQuotesSuppressStripping(t *testing.T) {
	// An unterminated string before the marker leaves the line alone: the
	// heuristic is quote-counting only, not a full lexer.
	line := `name = "a--b`
	assert.Equal(t, line, StripComments(line))
}

func TestStripComments_CommentedOutPrototypeIsIgnored(t *testing.T) {
	source := `
-- data:extend({
--   {type = "item", name = "disabled"},
-- })
data:extend({ {type = "item", name = "enabled"} })
`
	records := New("data:extend").Extract(source)
	require.Len(t, records, 1)
	assert.Equal(t, "enabled", records[0].GetString("name"))
}

func TestSplitTopTables_SkipsSeparatorsAndJunk(t *testing.T) {
	got := splitTopTables(` {type="a"}, junk, {type="b"} trailing`)
	require.Len(t, got, 2)
	assert.Equal(t, `{type="a"}`, got[0])
	assert.Equal(t, `{type="b"}`, got[1])
}

func TestSplitTopTables_BracesInsideStrings(t *testing.T) {
	got := splitTopTables(`{name = "open{brace", order = "a"}, {name = "close}brace"}`)
	require.Len(t, got, 2)
	assert.Equal(t, `{name = "open{brace", order = "a"}`, got[0])
	assert.Equal(t, `{name = "close}brace"}`, got[1])
}

func TestSplitTopTables_EscapedQuote(t *testing.T) {
	got := splitTopTables(`{desc = "he said \"hi, {friend}\""}, {type = "x"}`)
	require.Len(t, got, 2)
	assert.Equal(t, `{desc = "he said \"hi, {friend}\""}`, got[0])
}

package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupKeys(groups []LeafGroup) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = g.UsageKeys()
	}
	return out
}

func mustScale(t *testing.T, th *Theme, name string) *Scale {
	t.Helper()
	s, ok := th.Scale(name)
	require.True(t, ok, "scale %s missing", name)
	return s
}

func TestParseYAMLKeepsOrder(t *testing.T) {
	doc := `
breakpoints:
  sm: 30em
  md: 48em
  lg: 1024
space: [0, 4, 8]
colors:
  text: "#000"
  background: "#fff"
  gray:
    "50": "#fafafa"
    "100": "#f4f4f5"
components:
  Card:
    as: section
    p: 4
    bg: [primary, secondary]
`
	th, err := Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"space", "colors"}, th.ScaleNames())
	assert.Equal(t, Breakpoints{
		{Name: "sm", MinWidth: "30em"},
		{Name: "md", MinWidth: "48em"},
		{Name: "lg", MinWidth: "1024px"},
	}, th.Breakpoints)

	colors := mustScale(t, th, "colors")
	require.Len(t, colors.Entries, 3)
	assert.Equal(t, "text", colors.Entries[0].Key)
	assert.Equal(t, "gray", colors.Entries[2].Key)
	assert.Equal(t, []string{"50", "100"}, []string{
		colors.Entries[2].Nested.Entries[0].Key,
		colors.Entries[2].Nested.Entries[1].Key,
	})

	card, ok := th.Component("Card")
	require.True(t, ok)
	assert.Equal(t, "section", card.As)
	require.Len(t, card.Props, 2)
	assert.Equal(t, "p", card.Props[0].Name)
	assert.Equal(t, NumberNode, card.Props[0].Value.Kind)
	assert.Equal(t, ListNode, card.Props[1].Value.Kind)
}

func TestParseJSON(t *testing.T) {
	doc := `{"space": {"px": "1px", "0": 0, "0.5": "0.125rem"}, "breakpoints": {"sm": "40em"}}`
	th, err := Parse([]byte(doc), FormatJSON)
	require.NoError(t, err)

	space := mustScale(t, th, "space")
	assert.Equal(t, KindObject, space.Kind)
	assert.Equal(t, [][]string{{"px"}, {"0"}, {"0.5"}}, groupKeys(Resolve(space)))
	assert.Equal(t, "sm", th.Breakpoints[0].Name)
}

func TestParseTOMLKeepsOrder(t *testing.T) {
	doc := `
space = [0, 4, 8]
fontWeights = { body = 400, bold = 700 }

[breakpoints]
sm = "30em"
md = "48em"

[colors]
text = "#000"
primary = "#07c"

[colors.modes.dark]
text = "#fff"
`
	th, err := Parse([]byte(doc), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, []string{"space", "fontWeights", "colors"}, th.ScaleNames())
	assert.Equal(t, []string{"sm", "md"}, th.Breakpoints.Names())

	groups := Resolve(mustScale(t, th, "colors"))
	assert.Equal(t, [][]string{{"modes.dark.text"}, {"text"}, {"primary"}}, groupKeys(groups))

	weights := mustScale(t, th, "fontWeights")
	assert.Equal(t, Value{Raw: "400", Numeric: true}, weights.Entries[0].Value)
}

func TestParseTOMLRejectsArrayTables(t *testing.T) {
	_, err := Parse([]byte("[[space]]\na = 1\n"), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array tables")
}

func TestArrayScaleAliases(t *testing.T) {
	doc := `
gaps:
  $values: [0, 4, 8]
  $aliases:
    none: 0
    sm: 1
`
	th, err := Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)

	gaps := mustScale(t, th, "gaps")
	assert.Equal(t, KindArray, gaps.Kind)
	assert.Equal(t, [][]string{{"0", "none"}, {"1", "sm"}, {"2"}}, groupKeys(Resolve(gaps)))

	v, ok := gaps.Lookup("sm")
	require.True(t, ok)
	assert.Equal(t, "4", v.Raw)
}

func TestArrayScaleAliasOutOfRange(t *testing.T) {
	doc := `
gaps:
  $values: [0, 4]
  $aliases:
    xl: 5
`
	_, err := Parse([]byte(doc), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `alias "xl"`)
}

func TestTombstones(t *testing.T) {
	doc := `
space:
  a: 1
  b: false
  c: null
  d: 2
sizes: [0, false, 8]
`
	th, err := Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"a"}, {"d"}}, groupKeys(Resolve(mustScale(t, th, "space"))))
	assert.Equal(t, [][]string{{"0"}, {"2"}}, groupKeys(Resolve(mustScale(t, th, "sizes"))))
}

func TestMalformedScaleData(t *testing.T) {
	t.Run("boolean true fails schema validation", func(t *testing.T) {
		_, err := Parse([]byte("space: [true]\n"), FormatYAML)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Problems)
	})

	t.Run("timestamp is a shape error", func(t *testing.T) {
		_, err := Parse([]byte("space:\n  launch: 2001-12-14\n"), FormatYAML)
		var serr *ShapeError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "space", serr.Scale)
		assert.Equal(t, "launch", serr.Path)
	})

	t.Run("boolean true is a shape error without the schema", func(t *testing.T) {
		root, err := Decode([]byte("radii:\n  sm: true\n"), FormatYAML)
		require.NoError(t, err)
		_, err = FromNode(root)
		var serr *ShapeError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, BoolNode, serr.Kind)
	})

	t.Run("breakpoints must be a mapping", func(t *testing.T) {
		_, err := Parse([]byte("breakpoints: [30em]\n"), FormatYAML)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unknown extends target", func(t *testing.T) {
		_, err := Parse([]byte("components:\n  Card:\n    extends: Grid\n"), FormatYAML)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want [][]string
	}{
		{
			name: "array scale",
			doc:  "s: [0, 1]",
			want: [][]string{{"0"}, {"1"}},
		},
		{
			name: "shared values merge into one group",
			doc:  "s: {none: 0, sm: 2, zero: 0, '0': '0'}",
			want: [][]string{{"none", "zero", "0"}, {"sm"}},
		},
		{
			name: "nested depth one",
			doc:  "s: {gray: {'50': '#fafafa'}}",
			want: [][]string{{"gray.50"}},
		},
		{
			name: "nested depth two",
			doc:  "s: {modes: {light: {text: '#000', bg: '#fff'}}}",
			want: [][]string{{"modes.light.text"}, {"modes.light.bg"}},
		},
		{
			name: "nested depth three with array leaf",
			doc:  "s: {modes: {light: {gray: ['#000', '#111']}}}",
			want: [][]string{{"modes.light.gray.0"}, {"modes.light.gray.1"}},
		},
		{
			name: "nested groups precede the enclosing level",
			doc:  "s: {text: '#000', gray: {'0': '#111'}}",
			want: [][]string{{"gray.0"}, {"text"}},
		},
		{
			name: "empty scale",
			doc:  "s: {}",
			want: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := Parse([]byte(tt.doc), FormatYAML)
			require.NoError(t, err)
			got := groupKeys(Resolve(mustScale(t, th, "s")))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	th, err := Default()
	require.NoError(t, err)
	space := mustScale(t, th, "space")
	assert.Equal(t, Resolve(space), Resolve(space))
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		policy TransformPolicy
		want   string
	}{
		{"zero number", Value{Raw: "0", Numeric: true}, "", "0"},
		{"zero number pixels", Value{Raw: "0", Numeric: true}, TransformPixels, "0"},
		{"number gets px", Value{Raw: "4", Numeric: true}, "", "4px"},
		{"unit passthrough", Value{Raw: "1.5rem"}, "", "1.5rem"},
		{"string policy", Value{Raw: "400", Numeric: true}, TransformString, "400"},
		{"numeric string gets px", Value{Raw: "12"}, "", "12px"},
		{"zero string", Value{Raw: "0"}, "", "0"},
		{"zero float string", Value{Raw: "0.0"}, "", "0"},
		{"percent unchanged", Value{Raw: "10%"}, "", "10%"},
		{"hex unchanged", Value{Raw: "#000"}, "", "#000"},
		{"keyword unchanged", Value{Raw: "auto"}, "", "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transform(tt.value, tt.policy))
		})
	}
}

func TestNaming(t *testing.T) {
	kebab := map[string]string{
		"gap-0":                  "gap-0",
		"gap-0.5":                "gap-0-5",
		"mt-2xl":                 "mt-2-xl",
		"borderTopLeftRadius":    "border-top-left-radius",
		"bgColor-primary":        "bg-color-primary",
		"color-modes-light-text": "color-modes-light-text",
		"align-space-between":    "align-space-between",
		"XLarge":                 "x-large",
	}
	for in, want := range kebab {
		assert.Equal(t, want, KebabCase(in), in)
	}

	camel := map[string]string{
		"space":      "Space",
		"fontSizes":  "FontSizes",
		"zIndices":   "ZIndices",
		"alignItems": "AlignItems",
		"z-indices":  "ZIndices",
	}
	for in, want := range camel {
		assert.Equal(t, want, UpperCamelCase(in), in)
	}
}

func TestWithDefaults(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	th, err := Parse([]byte("space: [0, 2]\nbreakpoints: {sm: 30em}\n"), FormatYAML)
	require.NoError(t, err)

	merged := th.WithDefaults(def)

	space := mustScale(t, merged, "space")
	assert.Equal(t, KindArray, space.Kind)

	_, ok := merged.Scale("colors")
	assert.True(t, ok)
	assert.Equal(t, "space", merged.ScaleNames()[0])
	assert.Equal(t, []string{"sm"}, merged.Breakpoints.Names())
}

func TestLoadAndParseSection(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "theme.toml")
	require.NoError(t, os.WriteFile(path, []byte("space = [0, 4]\n"), 0o644))
	th, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"space"}, th.ScaleNames())

	_, err = Load(filepath.Join(dir, "theme.ini"))
	require.Error(t, err)

	config := []byte("components-path: src/components\ntheme:\n  space: [0, 1]\n")
	th, found, err := ParseSection(config, FormatYAML, "theme")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"space"}, th.ScaleNames())

	_, found, err = ParseSection([]byte("verbose: true\n"), FormatYAML, "theme")
	require.NoError(t, err)
	assert.False(t, found)
}

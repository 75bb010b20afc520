package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/sysgen/internal/props"
	"github.com/yacobolo/sysgen/internal/usage"
)

func declMap(decls []TypeDecl) map[string]string {
	out := make(map[string]string, len(decls))
	for _, d := range decls {
		out[d.Name] = d.String()
	}
	return out
}

func TestResponsiveHelper(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "no breakpoints",
			doc:  "space: [0]",
			want: "export type Responsive<T> = T;",
		},
		{
			name: "named breakpoints",
			doc:  "breakpoints: {sm: 30em, md: 48em}",
			want: "export type Responsive<T> = T | T[] | Partial<Record<'sm' | 'md', T>>;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := New(parseTheme(t, tt.doc), false, nil).Types()
			assert.True(t, strings.HasPrefix(types, tt.want+"\n\n"), types)
		})
	}
}

func TestScaleUnions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "array scale",
			doc:  "space: [0, 1]",
			want: "export type SpaceValues = 0 | 1 | '0' | '1';",
		},
		{
			name: "numbers before strings",
			doc:  "space: {px: 1px, '0': 0}",
			want: "export type SpaceValues = 0 | '0' | 'px';",
		},
		{
			name: "fractional keys",
			doc:  "space: {'0.5': 2px}",
			want: "export type SpaceValues = 0.5 | '0.5';",
		},
		{
			name: "nested keys are dotted",
			doc:  "colors: {gray: {'100': '#eee'}, text: '#111'}",
			want: "export type ColorsValues = 'gray.100' | 'text';",
		},
		{
			name: "aliases",
			doc:  "space: {$values: [0, 4], $aliases: {sm: 1}}",
			want: "export type SpaceValues = 0 | 1 | '0' | '1' | 'sm';",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := declMap(New(parseTheme(t, tt.doc), false, nil).TypeDecls())
			name := strings.TrimPrefix(strings.SplitN(tt.want, " =", 2)[0], "export type ")
			assert.Equal(t, tt.want, decls[name])
		})
	}
}

func TestNestedNumericPathsAreStrings(t *testing.T) {
	e := New(parseTheme(t, "space: {'0': {'5': 3px}, '1': 4px}"), false, nil)

	decls := declMap(e.TypeDecls())
	assert.Equal(t, "export type SpaceValues = 1 | '0.5' | '1';", decls["SpaceValues"])

	gap, ok := props.ByName("gap")
	require.True(t, ok)
	exprs := map[string]string{}
	for _, c := range e.ClassConditions(gap) {
		exprs[c.ClassName] = c.Expr
	}
	assert.Equal(t, "gap === '0.5'", exprs["gap-0-5"])
	assert.Equal(t, "String(gap) === '1'", exprs["gap-1"])
}

func TestKeywordUnions(t *testing.T) {
	decls := New(parseTheme(t, "space: [0]"), false, nil).TypeDecls()

	// keyword unions come first, in catalog order
	first := -1
	for i, d := range decls {
		if d.Name == "SpaceValues" {
			first = i
		}
	}
	require.Equal(t, len(decls)-1, first)

	m := declMap(decls)
	assert.Equal(t, "export type PositionValues = 'absolute' | 'fixed' | 'relative' | 'static' | 'sticky';", m["PositionValues"])
	assert.Contains(t, m, "DisplayValues")
	assert.NotContains(t, m, "ColorsValues")
}

func TestUnreferencedScalesHaveNoUnion(t *testing.T) {
	decls := declMap(New(parseTheme(t, "shadows: {sm: 1px}\nspace: [0]"), false, nil).TypeDecls())

	assert.NotContains(t, decls, "ShadowsValues")
	assert.Contains(t, decls, "SpaceValues")
}

func TestOptimizedUnions(t *testing.T) {
	th := parseTheme(t, "space: [0, 1, 2]\ncolors: {text: '#111'}")
	cache := seeded(
		[4]string{"mt", "Box", usage.BreakpointAll, "2"},
		[4]string{"gap", "Box", "sm", "0"},
		[4]string{"d", "Box", usage.BreakpointAll, "grid"},
	)

	decls := declMap(New(th, true, cache).TypeDecls())

	assert.Equal(t, "export type SpaceValues = 0 | 2 | '0' | '2';", decls["SpaceValues"])
	assert.Equal(t, "export type DisplayValues = 'grid';", decls["DisplayValues"])
	assert.NotContains(t, decls, "ColorsValues")
	assert.NotContains(t, decls, "PositionValues")
}

func TestPropTypeName(t *testing.T) {
	e := New(parseTheme(t, "sizes: [0]"), false, nil)

	basis, ok := props.ByName("flexBasis")
	require.True(t, ok)
	assert.Equal(t, "SizesValues", e.PropTypeName(basis))

	e = New(parseTheme(t, "space: [0]"), false, nil)
	assert.Equal(t, "FlexBasisValues", e.PropTypeName(basis))
	assert.Equal(t, "ZIndexValues", e.PropTypeName(props.Prop{Name: "zIndex", Scale: "zIndices"}))
}

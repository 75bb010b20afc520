package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		identifier string
		wantName   string
		wantOK     bool
	}{
		{identifier: "marginTop", wantName: "marginTop", wantOK: true},
		{identifier: "mt", wantName: "marginTop", wantOK: true},
		{identifier: "d", wantName: "display", wantOK: true},
		{identifier: "gap", wantName: "gap", wantOK: true},
		{identifier: "glow", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			p, ok := Lookup(tt.identifier)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, p.Name)
		})
	}
}

func TestPropHelpers(t *testing.T) {
	mt, ok := ByName("marginTop")
	require.True(t, ok)
	assert.Equal(t, []string{"margin-top"}, mt.CSSProperties())
	assert.Equal(t, "mt", mt.ClassPrefix())
	assert.Equal(t, []string{"marginTop", "mt"}, mt.Identifiers())
	assert.Equal(t, "4px", mt.FormatValue("4px"))

	px, ok := ByAlias("px")
	require.True(t, ok)
	assert.Equal(t, []string{"padding-left", "padding-right"}, px.CSSProperties())

	span, ok := ByName("gridColumnSpan")
	require.True(t, ok)
	assert.Equal(t, "span 2", span.FormatValue("2"))

	gap, ok := ByName("gap")
	require.True(t, ok)
	assert.Equal(t, "gap", gap.ClassPrefix())
	assert.Equal(t, []string{"gap"}, gap.Identifiers())
	assert.True(t, gap.HasData())
	assert.False(t, Prop{Name: "bare"}.HasData())
}

func TestCatalogIsConsistent(t *testing.T) {
	seen := make(map[string]string)
	for _, p := range All() {
		require.NotEmpty(t, p.Name)
		require.NotEmpty(t, p.Category, p.Name)
		assert.True(t, p.HasData(), p.Name)

		for _, id := range p.Identifiers() {
			if other, dup := seen[id]; dup {
				t.Errorf("identifier %q used by both %s and %s", id, other, p.Name)
			}
			seen[id] = p.Name
		}
	}
	assert.Len(t, Names(), len(seen))
}

func TestScalesAndCategories(t *testing.T) {
	scales := Scales()
	assert.Contains(t, scales, "space")
	assert.Contains(t, scales, "colors")

	for _, p := range ForScale("space") {
		assert.Equal(t, "space", p.Scale)
	}

	cats := Categories()
	assert.IsIncreasing(t, cats)
	for _, c := range cats {
		assert.NotEmpty(t, ByCategory(c), c)
	}

	got := InCategories([]Category{CategoryColors, CategorySpace})
	require.NotEmpty(t, got)
	assert.Equal(t, CategoryColors, got[0].Category)
	assert.Equal(t, CategorySpace, got[len(got)-1].Category)
}

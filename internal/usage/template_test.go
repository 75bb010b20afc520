package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTemplate(t *testing.T) {
	src := `<script lang="ts">
  const markup = '<Fake p={1} />'
  if (a < b) {}
</script>
<!-- <Commented p="x" /> -->
<style>
  .x { color: red; }
</style>
{#if count < 10}
  <Box p="2" mt={size} {...rest} {gap} bind:this={el} hidden on:click|preventDefault={go}>
    <Icons.Check />
  </Box>
{/if}
<div class="plain {x}"><Text as='span'/></div>`

	invs, err := ScanTemplate(src)
	require.NoError(t, err)

	names := make([]string, len(invs))
	for i, inv := range invs {
		names[i] = inv.Component
	}
	assert.Equal(t, []string{"Box", "Icons.Check", "Text"}, names)

	box := invs[0]
	assert.Equal(t, 10, box.Line)
	assert.Equal(t, 3, box.Column)

	kinds := map[string]AttrKind{}
	for _, a := range box.Attributes {
		kinds[a.Name] = a.Kind
	}
	assert.Equal(t, AttrText, kinds["p"])
	assert.Equal(t, AttrExpression, kinds["mt"])
	assert.Equal(t, AttrOther, kinds["...rest"])
	assert.Equal(t, AttrExpression, kinds["gap"])
	assert.Equal(t, AttrOther, kinds["bind:this"])
	assert.Equal(t, AttrOther, kinds["hidden"])
	assert.Equal(t, AttrEvent, kinds["click"])

	text := invs[2]
	require.Len(t, text.Attributes, 1)
	assert.Equal(t, Attribute{Kind: AttrText, Name: "as", Value: "span", Line: 14, Column: 30}, text.Attributes[0])
}

func TestScanTemplateQuotedExpressions(t *testing.T) {
	invs, err := ScanTemplate(`<Box p="{2}" m="a {b}" bg=primary/>`)
	require.NoError(t, err)
	require.Len(t, invs, 1)

	attrs := invs[0].Attributes
	require.Len(t, attrs, 3)
	assert.Equal(t, AttrExpression, attrs[0].Kind)
	assert.Equal(t, "2", attrs[0].Value)
	assert.Equal(t, AttrOther, attrs[1].Kind)
	assert.Equal(t, AttrText, attrs[2].Kind)
	assert.Equal(t, "primary", attrs[2].Value)
}

func TestScanTemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unterminated tag", "<Box p=1", "unterminated tag"},
		{"unterminated expression", "<Box p={{sm: 1}", "unterminated expression"},
		{"unterminated string", "<Box p={'a} />", "unterminated string"},
		{"unterminated comment", "<!-- <Box />", "unterminated comment"},
		{"unterminated script", "<script>let a", "unterminated <script> block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScanTemplate(tt.src)
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Contains(t, serr.Msg, tt.msg)
		})
	}
}

func TestObserve(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []Observation
	}{
		{"string", `'a'`, []Observation{Scalar("a")}},
		{"double quoted", `"md"`, []Observation{Scalar("md")}},
		{"number", `1`, []Observation{Scalar("1")}},
		{"float normalized", `1.50`, []Observation{Scalar("1.5")}},
		{"negative", `-2`, []Observation{Scalar("-2")}},
		{"template literal", "`lg`", []Observation{Scalar("lg")}},
		{"template with substitution", "`${a}px`", nil},
		{"identifier", `size`, nil},
		{"call", `pick(1)`, nil},
		{"grouped conditional", `(a ? 'x' : ('y'))`, []Observation{Scalar("x"), Scalar("y")}},
		{"nested conditional", `a ? (b ? 1 : 2) : 3`, []Observation{Scalar("1"), Scalar("2"), Scalar("3")}},
		{
			"array with hole",
			`[1, size, '3']`,
			[]Observation{{Shape: ShapeList, Items: []string{"1", "", "3"}}},
		},
		{
			"object",
			`{ sm: 'a', 'md': 2, [k]: 'c', ...rest }`,
			[]Observation{{Shape: ShapeMap, Keys: []string{"sm", "md"}, Values: []string{"a", "2"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parseExpression(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, observe(expr))
		})
	}
}

package usage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/sysgen/internal/theme"
)

const fixtureTemplate = `
<script>
  import ComponentA from './ComponentA.svelte'
  let cond = true
</script>

<ComponentA
  propA="a"
  propB={1}
  propC={[1, '2']}
  propG={cond ? 'a' : 'b'}
  propH={condA ? 'a' : condB ? 'c' : undefined}
  propI={{ sm: 'a', md: 'b' }}
  on:click={() => {}}
>
  <ComponentB propC={3} propD={['a', 'b']} on:focus={() => {}} />
</ComponentA>
`

const fixtureTheme = `
breakpoints:
  sm: 30em
  md: 48em
components:
  ComponentA:
    propC: [1, 2]
    propI: { sm: c, md: d }
  ComponentB:
    propC: 4
    propD: c
    propE: "2"
    propF: a
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fixtureDetector(t *testing.T, mode ArrayMode) *Detector {
	t.Helper()
	th, err := theme.Parse([]byte(fixtureTheme), theme.FormatYAML)
	require.NoError(t, err)
	d, err := NewDetector(Config{
		Breakpoints: th.Breakpoints,
		Components:  th.Components,
		ArrayValues: mode,
	})
	require.NoError(t, err)
	return d
}

func values(t *testing.T, c *Cache, prop, component, bp string) []string {
	t.Helper()
	entry, ok := c.Get(prop)
	require.True(t, ok, "no usage for %s", prop)
	return entry[component][bp].Sorted()
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "src/App.svelte", fixtureTemplate)

	cache := NewCache()
	events := NewEventCache()
	d := fixtureDetector(t, ArrayPositional)
	require.NoError(t, d.Detect(context.Background(), []string{file}, cache, events))

	t.Run("catalogs props from templates and theme components", func(t *testing.T) {
		assert.Subset(t, cache.Keys(), []string{"propA", "propB", "propC", "propD", "propE", "propF", "propG", "propH", "propI"})
	})

	t.Run("normalizes values per component", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, values(t, cache, "propA", "ComponentA", BreakpointAll))
		assert.Equal(t, []string{"1"}, values(t, cache, "propB", "ComponentA", BreakpointAll))
		assert.Equal(t, []string{"3", "4"}, values(t, cache, "propC", "ComponentB", BreakpointAll))
		assert.Equal(t, []string{"c"}, values(t, cache, "propD", "ComponentB", BreakpointAll))
		assert.Equal(t, []string{"2"}, values(t, cache, "propE", "ComponentB", BreakpointAll))
		assert.Equal(t, []string{"a"}, values(t, cache, "propF", "ComponentB", BreakpointAll))
		assert.Equal(t, []string{"a", "b"}, values(t, cache, "propG", "ComponentA", BreakpointAll))
		assert.Equal(t, []string{"a", "c"}, values(t, cache, "propH", "ComponentA", BreakpointAll))
	})

	t.Run("spreads responsive values over breakpoints", func(t *testing.T) {
		assert.Equal(t, []string{"1"}, values(t, cache, "propC", "ComponentA", "sm"))
		assert.Equal(t, []string{"2"}, values(t, cache, "propC", "ComponentA", "md"))
		assert.Equal(t, []string{"a"}, values(t, cache, "propD", "ComponentB", "sm"))
		assert.Equal(t, []string{"b"}, values(t, cache, "propD", "ComponentB", "md"))
		assert.Equal(t, []string{"a", "c"}, values(t, cache, "propI", "ComponentA", "sm"))
		assert.Equal(t, []string{"b", "d"}, values(t, cache, "propI", "ComponentA", "md"))
	})

	t.Run("catalogs event handlers per component", func(t *testing.T) {
		assert.Equal(t, []string{"click"}, events.Get("ComponentA"))
		assert.Equal(t, []string{"focus"}, events.Get("ComponentB"))
		assert.True(t, events.Has("ComponentA", "click"))
		assert.False(t, events.Has("ComponentA", "focus"))
	})

	t.Run("aggregates values across components", func(t *testing.T) {
		got := cache.Values("propC")
		assert.True(t, got["1"].Has("sm"))
		assert.True(t, got["3"].Has(BreakpointAll))
		assert.True(t, cache.Used("propC", "2", "md"))
		assert.False(t, cache.Used("propC", "2", BreakpointAll))
	})
}

func TestDetectArrayModeAll(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "App.svelte", fixtureTemplate)

	cache := NewCache()
	d := fixtureDetector(t, ArrayAll)
	require.NoError(t, d.Detect(context.Background(), []string{file}, cache, NewEventCache()))

	assert.Equal(t, []string{"a", "b", "c"}, values(t, cache, "propD", "ComponentB", BreakpointAll))
	// theme defaults are always positional
	assert.Equal(t, []string{"1"}, values(t, cache, "propC", "ComponentA", "sm"))
}

func TestDetectParseErrorFailsThePass(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "Good.svelte", `<Box p={2} />`)
	bad := writeFile(t, dir, "Bad.svelte", "<Box\n  p={2\n")

	d := fixtureDetector(t, ArrayPositional)
	err := d.Detect(context.Background(), []string{good, bad}, NewCache(), NewEventCache())
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, bad, perr.File)
	assert.Contains(t, err.Error(), "Bad.svelte:2:")
}

func TestDetectBadExpression(t *testing.T) {
	_, err := AnalyzeSource("x.svelte", `<Box p={1 +} />`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 6, perr.Column)
}

func TestDetectMissingFile(t *testing.T) {
	d := fixtureDetector(t, ArrayPositional)
	err := d.Detect(context.Background(), []string{filepath.Join(t.TempDir(), "nope.svelte")}, NewCache(), NewEventCache())
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestScanFileReusesUnchangedResults(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "App.svelte", `<Box p={2} />`)

	d := fixtureDetector(t, ArrayPositional)
	first, err := d.ScanFile(file)
	require.NoError(t, err)
	second, err := d.ScanFile(file)
	require.NoError(t, err)
	assert.Same(t, first, second)

	d.Purge()
	third, err := d.ScanFile(file)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first, third)
}

func TestScanFileSeesSameSizeEdits(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "App.svelte", `<Box gap={1} />`)
	info, err := os.Stat(file)
	require.NoError(t, err)

	d := fixtureDetector(t, ArrayPositional)
	first, err := d.ScanFile(file)
	require.NoError(t, err)
	require.Len(t, first.Props, 1)
	assert.Equal(t, "1", first.Props[0].Value.Value)

	// same size, same mtime
	writeFile(t, dir, "App.svelte", `<Box gap={2} />`)
	require.NoError(t, os.Chtimes(file, info.ModTime(), info.ModTime()))

	second, err := d.ScanFile(file)
	require.NoError(t, err)
	require.Len(t, second.Props, 1)
	assert.Equal(t, "2", second.Props[0].Value.Value)
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	c.Merge(Catalog{"gap": {"Box": {BreakpointAll: Set{"1": {}}}}})
	assert.True(t, c.HasUsage("gap"))

	c.Clear()
	assert.False(t, c.HasUsage("gap"))
	assert.Empty(t, c.Keys())

	var nilCache *Cache
	assert.False(t, nilCache.Used("gap", "1", BreakpointAll))
}

func TestAccumulate(t *testing.T) {
	bps := []string{"sm", "md"}

	tests := []struct {
		name string
		obs  Observation
		mode ArrayMode
		want Breakpoints
	}{
		{
			name: "scalar goes to all",
			obs:  Scalar("1"),
			want: Breakpoints{BreakpointAll: Set{"1": {}}},
		},
		{
			name: "list is positional",
			obs:  Observation{Shape: ShapeList, Items: []string{"1", "2", "3"}},
			want: Breakpoints{"sm": Set{"1": {}}, "md": Set{"2": {}}},
		},
		{
			name: "holes keep positions",
			obs:  Observation{Shape: ShapeList, Items: []string{"", "2"}},
			want: Breakpoints{"md": Set{"2": {}}},
		},
		{
			name: "list in all mode",
			obs:  Observation{Shape: ShapeList, Items: []string{"1", "2"}},
			mode: ArrayAll,
			want: Breakpoints{BreakpointAll: Set{"1": {}, "2": {}}},
		},
		{
			name: "map by breakpoint key",
			obs:  Observation{Shape: ShapeMap, Keys: []string{"md", "xl"}, Values: []string{"2", "9"}},
			want: Breakpoints{"md": Set{"2": {}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := make(Catalog)
			cat.Accumulate("Box", "p", tt.obs, bps, tt.mode)
			assert.Equal(t, tt.want, cat["p"]["Box"])
		})
	}
}

func TestParseArrayMode(t *testing.T) {
	m, err := ParseArrayMode("")
	require.NoError(t, err)
	assert.Equal(t, ArrayPositional, m)

	m, err = ParseArrayMode("all")
	require.NoError(t, err)
	assert.Equal(t, ArrayAll, m)

	_, err = ParseArrayMode("sideways")
	assert.Error(t, err)
}

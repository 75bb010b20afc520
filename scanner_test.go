package sysgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverTemplates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "App.svelte"), "<Box />")
	writeFile(t, filepath.Join(root, "src", "lib", "Card.svelte"), "<Box />")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "<Box />")
	writeFile(t, filepath.Join(root, "src", "components", "Box.svelte"), "<svelte:element />")
	writeFile(t, filepath.Join(root, "node_modules", "ui", "Button.svelte"), "<Box />")
	writeFile(t, filepath.Join(root, "scratch", "Draft.svelte"), "<Box />")
	writeFile(t, filepath.Join(root, ".gitignore"), "scratch\n")

	files, stats, err := DiscoverTemplates(root, filepath.Join(root, "src", "components"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "App.svelte"),
		filepath.Join(root, "src", "lib", "Card.svelte"),
	}, files)
	assert.Equal(t, ScanStats{FilesDiscovered: 5, FilesScanned: 2, FilesSkipped: 3}, stats)
}

func TestDiscoverTemplatesIgnoresOutsideExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "App.svelte"), "<Box />")

	files, _, err := DiscoverTemplates(root, "", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "App.svelte")}, files)
}

func TestDiscoverTemplatesErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "App.svelte")
	writeFile(t, file, "<Box />")

	tests := []struct {
		name string
		root string
		want string
	}{
		{name: "missing", root: filepath.Join(root, "missing"), want: "project path"},
		{name: "file", root: file, want: "is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DiscoverTemplates(tt.root)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestShouldSkipFile(t *testing.T) {
	tests := []struct {
		name     string
		rel      string
		excluded []string
		want     bool
	}{
		{name: "plain", rel: "src/App.svelte", want: false},
		{name: "vendored", rel: "node_modules/x/A.svelte", want: true},
		{name: "svelte-kit output", rel: ".svelte-kit/generated/root.svelte", want: true},
		{name: "excluded dir", rel: "src/components/Box.svelte", excluded: []string{"src/components"}, want: true},
		{name: "excluded prefix only", rel: "src/components2/Box.svelte", excluded: []string{"src/components"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldSkipFile(tt.rel, tt.excluded, nil))
		})
	}
}

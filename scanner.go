package sysgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// TemplatePattern matches the templates scanned for usage.
const TemplatePattern = "**/*.svelte"

// ScanStats tracks template discovery.
type ScanStats struct {
	FilesDiscovered int // templates matched by TemplatePattern
	FilesScanned    int // templates kept after filtering
	FilesSkipped    int // excluded, vendored or gitignored templates
}

// skippedDirs never contain project templates.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".svelte-kit":  true,
	".git":         true,
}

// loadGitIgnore compiles root/.gitignore. A missing file means nothing is
// ignored.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile reports whether a template under root is left out of
// scanning. rel is slash-separated and relative to root.
func shouldSkipFile(rel string, excluded []string, gi *ignore.GitIgnore) bool {
	for _, part := range strings.Split(rel, "/") {
		if skippedDirs[part] {
			return true
		}
	}
	for _, ex := range excluded {
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return true
		}
	}
	return gi != nil && gi.MatchesPath(rel)
}

// DiscoverTemplates returns the sorted .svelte files under root, leaving out
// the exclude directories (the generated components), vendored directories
// and paths ignored by root/.gitignore.
func DiscoverTemplates(root string, exclude ...string) ([]string, ScanStats, error) {
	var stats ScanStats

	info, err := os.Stat(root)
	if err != nil {
		return nil, stats, fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return nil, stats, fmt.Errorf("project path %s is not a directory", root)
	}

	var excluded []string
	for _, ex := range exclude {
		if ex == "" {
			continue
		}
		rel, err := relativeTo(root, ex)
		if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
			continue
		}
		excluded = append(excluded, rel)
	}

	matches, err := doublestar.Glob(os.DirFS(root), TemplatePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, stats, fmt.Errorf("glob %s: %w", TemplatePattern, err)
	}

	gi := loadGitIgnore(root)
	var files []string
	for _, rel := range matches {
		stats.FilesDiscovered++
		if shouldSkipFile(rel, excluded, gi) {
			stats.FilesSkipped++
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
		stats.FilesScanned++
	}
	sort.Strings(files)
	return files, stats, nil
}

// relativeTo returns path relative to root, slash-separated.
func relativeTo(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// GetRelativePath returns path relative to the working directory when that
// is shorter, for display.
func GetRelativePath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

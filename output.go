package sysgen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// StaleFile is a generated file whose content on disk differs from what
// would be generated.
type StaleFile struct {
	Path    string
	Missing bool
	Diff    string // changed lines, "-" for disk and "+" for generated
}

// CheckError is returned in check mode when any file is stale.
type CheckError struct {
	Stale []StaleFile
}

func (e *CheckError) Error() string {
	paths := make([]string, len(e.Stale))
	for i, s := range e.Stale {
		paths[i] = s.Path
	}
	if len(paths) == 1 {
		return fmt.Sprintf("generated file is out of date: %s", paths[0])
	}
	return fmt.Sprintf("%d generated files are out of date: %s", len(paths), strings.Join(paths, ", "))
}

// outputWriter writes generated files, skipping unchanged ones, or in check
// mode only compares them.
type outputWriter struct {
	check  bool
	result *GenerateResult
	stale  []StaleFile
}

func newOutputWriter(check bool, result *GenerateResult) *outputWriter {
	return &outputWriter{check: check, result: result}
}

func (w *outputWriter) write(path, content string) error {
	// #nosec G304 - path comes from trusted configuration
	existing, err := os.ReadFile(path)
	missing := errors.Is(err, os.ErrNotExist)
	if err != nil && !missing {
		return fmt.Errorf("read %s: %w", path, err)
	}

	changed := missing || !bytes.Equal(existing, []byte(content))
	w.result.Files = append(w.result.Files, WrittenFile{Path: path, Bytes: len(content), Changed: changed})
	if !changed {
		return nil
	}

	if w.check {
		w.stale = append(w.stale, StaleFile{Path: path, Missing: missing, Diff: lineDiff(string(existing), content)})
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// err returns the *CheckError of a check run, if any file was stale.
func (w *outputWriter) err() error {
	if len(w.stale) == 0 {
		return nil
	}
	return &CheckError{Stale: w.stale}
}

// lineDiff renders the changed lines between two texts.
func lineDiff(from, to string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
	return sb.String()
}

package sysgen

import (
	"log/slog"
	"time"

	"github.com/yacobolo/sysgen/internal/emit"
	"github.com/yacobolo/sysgen/internal/theme"
	"github.com/yacobolo/sysgen/internal/usage"
)

// Options configures a generation run.
type Options struct {
	Theme          *theme.Theme // nil means the built-in theme; missing scales fall back to it
	Optimize       bool
	ProjectPath    string // root scanned for .svelte templates in optimize mode
	ComponentsPath string // output directory of the components
	StylesheetPath string
	TypesPath      string          // optional standalone types.d.ts
	ArrayValues    usage.ArrayMode // how template array literals map to breakpoints
	Check          bool            // compare with disk instead of writing
	Detector       *usage.Detector // reused between runs when set, see NewDetector
	Logger         *slog.Logger
}

// WrittenFile is one generated file.
type WrittenFile struct {
	Path    string `json:"path"`
	Bytes   int    `json:"bytes"`
	Changed bool   `json:"changed"`
}

// GenerateResult contains generation stats.
type GenerateResult struct {
	Manifest     []emit.ManifestEntry
	Files        []WrittenFile
	Classes      int // distinct classes in the stylesheet
	Rules        int // class rules, media blocks included
	MediaBlocks  int
	TypeUnions   int
	FilesScanned int
	Warnings     []string
	Duration     time.Duration
}

// Changed reports whether any file was (or, in check mode, would be)
// rewritten.
func (r *GenerateResult) Changed() bool {
	for _, f := range r.Files {
		if f.Changed {
			return true
		}
	}
	return false
}

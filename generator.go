package sysgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/yacobolo/sysgen/internal/emit"
	"github.com/yacobolo/sysgen/internal/logging"
	"github.com/yacobolo/sysgen/internal/props"
	"github.com/yacobolo/sysgen/internal/stylesheet"
	"github.com/yacobolo/sysgen/internal/theme"
	"github.com/yacobolo/sysgen/internal/usage"
)

// Validation errors.
var (
	ErrNoComponentsPath = errors.New("required components output path is not specified")
	ErrNoStylesheetPath = errors.New("required stylesheet output path is not specified")
	ErrNoTypesPath      = errors.New("required types output path is not specified")
	ErrNoProjectPath    = errors.New("optimize mode requires the project path to be specified")
	ErrOptimizeNeedsDir = errors.New("optimize mode requires the components path to be specified")
)

// artifact selects what a run generates.
type artifact int

const (
	artifactComponents artifact = 1 << iota
	artifactStylesheet
	artifactTypes
)

// GenerateComponents writes the component sources, their declarations,
// index.js and types.d.ts into ComponentsPath.
func GenerateComponents(ctx context.Context, opts Options) (*GenerateResult, error) {
	return run(ctx, opts, artifactComponents)
}

// GenerateStylesheet writes the utility stylesheet to StylesheetPath.
func GenerateStylesheet(ctx context.Context, opts Options) (*GenerateResult, error) {
	return run(ctx, opts, artifactStylesheet)
}

// GenerateTypes writes the standalone type declarations to TypesPath.
func GenerateTypes(ctx context.Context, opts Options) (*GenerateResult, error) {
	return run(ctx, opts, artifactTypes)
}

// Generate writes the components and the stylesheet, plus the standalone
// types when TypesPath is set, from a single usage pass.
func Generate(ctx context.Context, opts Options) (*GenerateResult, error) {
	which := artifactComponents | artifactStylesheet
	if opts.TypesPath != "" {
		which |= artifactTypes
	}
	return run(ctx, opts, which)
}

// DetectUsage scans the templates under ProjectPath, skipping
// ComponentsPath, and returns the recorded prop values and events.
// Component defaults of the theme are recorded as usage too.
func DetectUsage(ctx context.Context, opts Options) (*usage.Cache, *usage.EventCache, error) {
	th, err := prepareTheme(opts.Theme)
	if err != nil {
		return nil, nil, err
	}
	cache, events, _, err := detect(ctx, opts, th, emit.Specs(th), logging.OrDiscard(opts.Logger))
	return cache, events, err
}

func validate(opts Options, which artifact) error {
	if which&artifactComponents != 0 && opts.ComponentsPath == "" {
		return ErrNoComponentsPath
	}
	if which&artifactStylesheet != 0 && opts.StylesheetPath == "" {
		return ErrNoStylesheetPath
	}
	if which&artifactTypes != 0 && opts.TypesPath == "" {
		return ErrNoTypesPath
	}
	if opts.Optimize {
		if which&artifactStylesheet != 0 && opts.ComponentsPath == "" {
			return ErrOptimizeNeedsDir
		}
		if opts.ProjectPath == "" {
			return ErrNoProjectPath
		}
	}
	return nil
}

// prepareTheme fills the scales th leaves out from the built-in theme.
func prepareTheme(th *theme.Theme) (*theme.Theme, error) {
	def, err := theme.Default()
	if err != nil {
		return nil, fmt.Errorf("load default theme: %w", err)
	}
	if th == nil {
		th = theme.New()
	}
	return th.WithDefaults(def), nil
}

func run(ctx context.Context, opts Options, which artifact) (*GenerateResult, error) {
	start := time.Now()
	log := logging.OrDiscard(opts.Logger)

	if err := validate(opts, which); err != nil {
		return nil, err
	}
	th, err := prepareTheme(opts.Theme)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Warnings: componentWarnings(th)}
	specs := emit.Specs(th)

	var cache *usage.Cache
	var events *usage.EventCache
	if opts.Optimize {
		var scanned int
		cache, events, scanned, err = detect(ctx, opts, th, specs, log)
		if err != nil {
			return nil, err
		}
		result.FilesScanned = scanned
		if scanned == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("no templates found under %s", opts.ProjectPath))
		}
	}

	e := emit.New(th, opts.Optimize, cache)
	out := newOutputWriter(opts.Check, result)

	if which&artifactComponents != 0 {
		bundle, err := e.Components(specs, events)
		if err != nil {
			return nil, fmt.Errorf("generate components: %w", err)
		}
		for _, f := range bundle.Files {
			if err := out.write(filepath.Join(opts.ComponentsPath, f.Name), f.Content); err != nil {
				return nil, err
			}
		}
		result.Manifest = bundle.Manifest
		log.Debug("components generated", "count", len(bundle.Manifest), "dir", opts.ComponentsPath)
	}

	if which&artifactStylesheet != 0 {
		css, err := e.Stylesheet(props.Categories())
		if err != nil {
			return nil, fmt.Errorf("generate stylesheet: %w", err)
		}
		inv, err := stylesheet.Inspect(css)
		if err != nil {
			return nil, fmt.Errorf("generate stylesheet: %w", err)
		}
		result.Classes = len(inv.Classes())
		result.Rules = inv.ClassRules()
		result.MediaBlocks = len(inv.Media)
		if err := out.write(opts.StylesheetPath, css); err != nil {
			return nil, err
		}
		log.Debug("stylesheet generated", "rules", result.Rules, "path", opts.StylesheetPath)
	}

	if which&(artifactComponents|artifactTypes) != 0 {
		result.TypeUnions = len(e.TypeDecls())
	}
	if which&artifactTypes != 0 {
		if err := out.write(opts.TypesPath, e.Types()); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	return result, out.err()
}

// detect runs the usage detector over the project templates.
func detect(ctx context.Context, opts Options, th *theme.Theme, specs []emit.ComponentSpec, log *slog.Logger) (*usage.Cache, *usage.EventCache, int, error) {
	if opts.ProjectPath == "" {
		return nil, nil, 0, ErrNoProjectPath
	}

	files, stats, err := DiscoverTemplates(opts.ProjectPath, opts.ComponentsPath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("discover templates: %w", err)
	}
	log.Debug("templates discovered", "scanned", stats.FilesScanned, "skipped", stats.FilesSkipped)

	detector := opts.Detector
	if detector == nil {
		detector, err = newDetector(opts, th, specs, log)
		if err != nil {
			return nil, nil, 0, err
		}
	}

	cache := usage.NewCache()
	events := usage.NewEventCache()
	if err := detector.Detect(ctx, files, cache, events); err != nil {
		return nil, nil, 0, fmt.Errorf("detect usage: %w", err)
	}
	return cache, events, len(files), nil
}

// NewDetector returns a usage detector for opts. Passing it back through
// Options.Detector keeps the analysis of unchanged templates between runs;
// it has to be rebuilt when the theme changes.
func NewDetector(opts Options) (*usage.Detector, error) {
	th, err := prepareTheme(opts.Theme)
	if err != nil {
		return nil, err
	}
	return newDetector(opts, th, emit.Specs(th), logging.OrDiscard(opts.Logger))
}

func newDetector(opts Options, th *theme.Theme, specs []emit.ComponentSpec, log *slog.Logger) (*usage.Detector, error) {
	return usage.NewDetector(usage.Config{
		Breakpoints: th.Breakpoints,
		Components:  emit.SeedComponents(specs),
		ArrayValues: opts.ArrayValues,
		Logger:      log,
	})
}

// componentWarnings flags theme component defaults naming no catalog prop.
func componentWarnings(th *theme.Theme) []string {
	var out []string
	for _, c := range th.Components {
		for _, d := range c.Props {
			if _, ok := props.Lookup(d.Name); !ok {
				out = append(out, fmt.Sprintf("component %s: default for unknown prop %s", c.Name, d.Name))
			}
		}
	}
	return out
}

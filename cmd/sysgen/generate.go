package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yacobolo/sysgen"
	"github.com/yacobolo/sysgen/internal/report"
	"github.com/yacobolo/sysgen/internal/watch"
)

// generation is what one of the generate commands produces.
type generation struct {
	run        func(context.Context, sysgen.Options) (*sysgen.GenerateResult, error)
	components bool
	stylesheet bool
	types      bool                          // standalone types; generateAll writes them when a path is set
	output     func(*sysgen.Options, string) // applies -o/--output
}

var (
	generateAll = generation{run: sysgen.Generate, components: true, stylesheet: true, types: true}

	generateComponentsOnly = generation{
		run:        sysgen.GenerateComponents,
		components: true,
		output:     func(o *sysgen.Options, p string) { o.ComponentsPath = p },
	}

	generateStylesheetOnly = generation{
		run:        sysgen.GenerateStylesheet,
		stylesheet: true,
		output:     func(o *sysgen.Options, p string) { o.StylesheetPath = p },
	}

	generateTypesOnly = generation{
		run:    sysgen.GenerateTypes,
		types:  true,
		output: func(o *sysgen.Options, p string) { o.TypesPath = p },
	}
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the components and the stylesheet",
	Long: `Generate the style-prop components, their declarations and the utility
stylesheet from the theme. The standalone type declarations are written too
when a types path is configured.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGeneration(cmd, generateAll)
	},
}

var generateComponentsCmd = &cobra.Command{
	Use:   "generate-components",
	Short: "Generate the components, index.js and types.d.ts",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGeneration(cmd, generateComponentsOnly)
	},
}

var generateStylesheetCmd = &cobra.Command{
	Use:   "generate-stylesheet",
	Short: "Generate the utility stylesheet",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGeneration(cmd, generateStylesheetOnly)
	},
}

var generateTypesCmd = &cobra.Command{
	Use:   "generate-types",
	Short: "Generate the standalone type declarations",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGeneration(cmd, generateTypesOnly)
	},
}

// addGenerateFlags registers the flags every generate command shares.
func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("optimize", false, "Omit unused props and prop values")
	f.String("project-path", "", "Root path to the project's Svelte files for usage detection")
	f.String("array-values", "positional", "How template arrays map to breakpoints: positional|all")
	f.Bool("check", false, "Fail if generated files are out of date instead of writing them")
	f.Bool("watch", false, "Watch the config, theme and templates and regenerate on changes")
	f.Duration("debounce", watch.DefaultDebounce, "Quiet period before a watch run")
	f.Bool("json", false, "Print the generation result as JSON")
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, generateComponentsCmd, generateStylesheetCmd, generateTypesCmd} {
		addGenerateFlags(cmd)
	}

	addOutputPathFlags(generateCmd)

	generateComponentsCmd.Flags().StringP("output", "o", "", "Path to output generated components")
	generateStylesheetCmd.Flags().StringP("output", "o", "", "Path to output generated stylesheet")
	generateStylesheetCmd.Flags().String("components-path", "", "Path to output generated components")
	generateTypesCmd.Flags().StringP("output", "o", "", "Path to output type declarations")
}

// addOutputPathFlags registers the output paths of the full generation.
func addOutputPathFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("components-path", "", "Path to output generated components")
	f.String("stylesheet-path", "", "Path to output generated stylesheet")
	f.String("types-path", "", "Path to output standalone type declarations")
}

func (g generation) options(cmd *cobra.Command) (sysgen.Options, error) {
	opts, err := buildOptions(cmd)
	if err != nil {
		return opts, err
	}
	if g.output != nil {
		if out := k.String("output"); out != "" {
			g.output(&opts, out)
		}
	}
	return opts, nil
}

func runGeneration(cmd *cobra.Command, gen generation) error {
	opts, err := gen.options(cmd)
	if err != nil {
		return err
	}
	if getBoolWithFallback("watch", "generate.watch", false) {
		return watchGeneration(cmd, gen, opts)
	}
	return generateOnce(cmd.Context(), gen, opts)
}

func generateOnce(ctx context.Context, gen generation, opts sysgen.Options) error {
	result, err := gen.run(ctx, opts)

	var checkErr *sysgen.CheckError
	if errors.As(err, &checkErr) {
		printResult(gen, opts, result)
		reportStale(checkErr)
		return &exitError{code: 1}
	}
	if err != nil {
		return err
	}
	printResult(gen, opts, result)
	return nil
}

func printResult(gen generation, opts sysgen.Options, result *sysgen.GenerateResult) {
	if getBoolWithFallback("json", "json", false) {
		if err := sysgen.WriteJSON(os.Stdout, result); err != nil {
			console.Error(fmt.Errorf("write json: %w", err))
		}
		return
	}

	if getBoolWithFallback("verbose", "verbose", false) && !console.quiet {
		vr := report.NewVerboseReporter(os.Stdout, report.ShouldUseColors(getBoolWithFallback("color", "color", false)))
		vr.PrintStatistics(report.Stats{
			Optimize:     opts.Optimize,
			FilesScanned: result.FilesScanned,
			Components:   len(result.Manifest),
			Classes:      result.Classes,
			Rules:        result.Rules,
			MediaBlocks:  result.MediaBlocks,
			TypeUnions:   result.TypeUnions,
			Duration:     result.Duration,
		})
		vr.PrintFiles(fileRows(opts.Check, result.Files))
		vr.PrintWarnings(result.Warnings)
		return
	}

	for _, w := range result.Warnings {
		console.Warn("%s", w)
	}
	if opts.Check {
		if !result.Changed() {
			console.Success("generated files are up to date")
		}
		return
	}
	if gen.components {
		console.Success("components generated and saved to %s", displayPath(opts.ComponentsPath))
	}
	if gen.stylesheet {
		console.Success("stylesheet generated and saved to %s", displayPath(opts.StylesheetPath))
	}
	if gen.types && opts.TypesPath != "" {
		console.Success("types generated and saved to %s", displayPath(opts.TypesPath))
	}
}

func fileRows(check bool, files []sysgen.WrittenFile) []report.FileRow {
	rows := make([]report.FileRow, len(files))
	for i, f := range files {
		status := report.StatusUnchanged
		switch {
		case check && f.Changed:
			status = report.StatusStale
		case check:
			status = report.StatusUpToDate
		case f.Changed:
			status = report.StatusWritten
		}
		rows[i] = report.FileRow{Path: displayPath(f.Path), Bytes: f.Bytes, Status: status}
	}
	return rows
}

// reportStale prints the stale files of a check run, with their diff in
// verbose mode.
func reportStale(checkErr *sysgen.CheckError) {
	console.Error(checkErr)
	if !getBoolWithFallback("verbose", "verbose", false) {
		return
	}
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	for _, s := range checkErr.Stale {
		if s.Missing {
			fmt.Fprintf(os.Stderr, "\n%s (missing)\n", displayPath(s.Path))
			continue
		}
		fmt.Fprintf(os.Stderr, "\n%s\n", displayPath(s.Path))
		for _, line := range strings.SplitAfter(s.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "-"):
				fmt.Fprint(os.Stderr, removed.Sprint(line))
			case strings.HasPrefix(line, "+"):
				fmt.Fprint(os.Stderr, added.Sprint(line))
			}
		}
	}
}

func displayPath(path string) string {
	return sysgen.GetRelativePath(path)
}

// watchGeneration regenerates whenever the config, the theme file or, in
// optimize mode, a project template changes. Config changes reload every
// setting.
func watchGeneration(cmd *cobra.Command, gen generation, opts sysgen.Options) error {
	ctx := cmd.Context()

	var exit *exitError
	show := func(err error) {
		if err != nil && !errors.As(err, &exit) {
			console.Error(err)
		}
	}

	if opts.Optimize {
		detector, err := sysgen.NewDetector(opts)
		if err != nil {
			return err
		}
		opts.Detector = detector
	}
	show(generateOnce(ctx, gen, opts))

	configs := absPaths(themeFiles(cmd))
	isConfig := func(p string) bool { return slices.Contains(configs, p) }

	var exclude []string
	if opts.ComponentsPath != "" {
		exclude = append(exclude, opts.ComponentsPath)
	}
	w, err := watch.New(watch.Options{
		Debounce: watchDebounce(),
		Match: func(p string) bool {
			return isConfig(p) || (opts.Optimize && strings.HasSuffix(p, ".svelte"))
		},
		Exclude: exclude,
		Logger:  opts.Logger,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, f := range configs {
		if err := w.Add(f); err != nil {
			return err
		}
	}
	if opts.Optimize {
		root, err := filepath.Abs(opts.ProjectPath)
		if err != nil {
			return err
		}
		if err := w.Add(root); err != nil {
			return err
		}
	} else if len(configs) == 0 {
		return errors.New("watch mode needs a config file, a theme file or optimize mode")
	}

	console.Wait("watching for changes")
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		if slices.ContainsFunc(changed, isConfig) {
			resetConfig()
			if err := loadConfig(cmd); err != nil {
				console.Error(err)
				return nil
			}
			next, err := gen.options(cmd)
			if err != nil {
				console.Error(err)
				return nil
			}
			if next.Optimize {
				if next.Detector, err = sysgen.NewDetector(next); err != nil {
					console.Error(err)
					return nil
				}
			}
			opts = next
			console.Info("config reloaded")
		}
		show(generateOnce(ctx, gen, opts))
		return ctx.Err()
	})
}

func absPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		out = append(out, p)
	}
	return out
}

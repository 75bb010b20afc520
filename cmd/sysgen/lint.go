package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/sysgen"
	"github.com/yacobolo/sysgen/internal/report"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check prop values in Svelte templates against the theme",
	Long: `Scan the project's Svelte templates and report prop values of the generated
components that no class exists for, and responsive objects keyed by unknown
breakpoints. Issues print in golangci-lint format.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := buildLintConfig(cmd)
		if err != nil {
			return err
		}
		return runLint(cmd, cfg)
	},
}

func init() {
	f := lintCmd.Flags()
	f.String("project-path", ".", "Root path to the project's Svelte files")
	f.String("components-path", "", "Generated components directory, never linted")
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (sysgen) suffix on issues")
}

func runLint(cmd *cobra.Command, cfg sysgen.LintConfig) error {
	result, err := sysgen.Lint(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	format := sysgen.DetermineOutputFormat(getStringWithFallback("output-format", "lint.output-format", ""), quiet)

	if !quiet {
		opts := report.Options{
			UseColors:        getBoolWithFallback("color", "color", false),
			PrintIssuedLines: getBoolWithFallback("print-lines", "lint.print-lines", true),
			PrintLinterName:  getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		}
		if err := sysgen.WriteLintOutput(os.Stdout, result, format, opts); err != nil {
			return err
		}
	}

	// Exit code logic - "Soft Gate" approach
	if getBoolWithFallback("strict", "lint.strict", false) {
		if len(result.Issues) > 0 {
			return &exitError{code: 1}
		}
	} else if result.ErrorCount() > 0 {
		return &exitError{code: 1}
	}
	return nil
}

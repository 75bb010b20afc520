package sysgen

import (
	"fmt"
	"io"

	"github.com/yacobolo/sysgen/internal/report"
)

// OutputFormat is the lint output format.
type OutputFormat string

const (
	// OutputIssues shows only errors and warnings in golangci-lint format
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows the statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues and statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the flag value.
// Quiet and unknown values fall back to issues.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues
	}
	switch OutputFormat(formatFlag) {
	case OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	}
	return OutputIssues
}

// WriteLintOutput writes the lint result in the given format.
func WriteLintOutput(w io.Writer, result *LintResult, format OutputFormat, opts report.Options) error {
	stats := report.LintStats{
		FilesScanned: result.FilesScanned,
		PropsChecked: result.PropsChecked,
		Errors:       result.ErrorCount(),
		Warnings:     len(result.Issues) - result.ErrorCount(),
		Truncated:    result.TruncatedCount,
	}

	switch format {
	case OutputJSON:
		if err := WriteLintJSON(w, result); err != nil {
			return fmt.Errorf("write json: %w", err)
		}

	case OutputSummary:
		report.NewVerboseReporter(w, report.ShouldUseColors(opts.UseColors)).PrintLintStatistics(stats)

	case OutputFull:
		r := report.NewReporter(w, opts)
		r.PrintIssues(result.Issues)
		r.PrintSummary(result.Issues)
		report.NewVerboseReporter(w, r.UseColors()).PrintLintStatistics(stats)

	default:
		r := report.NewReporter(w, opts)
		r.PrintIssues(result.Issues)
		r.PrintSummary(result.Issues)
	}
	return nil
}

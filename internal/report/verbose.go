package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// File statuses shown in the manifest table.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusStale     = "stale"
	StatusUpToDate  = "up to date"
)

// FileRow is one line of the manifest table.
type FileRow struct {
	Path   string
	Bytes  int
	Status string
}

// Stats summarizes a generation run.
type Stats struct {
	Optimize     bool
	FilesScanned int
	Components   int
	Classes      int
	Rules        int
	MediaBlocks  int
	TypeUnions   int
	Duration     time.Duration
}

// VerboseReporter prints the detailed generation report.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter returns a VerboseReporter writing to w.
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{w: w, useColors: useColors}
}

// PrintStatistics writes the run statistics.
func (r *VerboseReporter) PrintStatistics(s Stats) {
	mode := "full"
	if s.Optimize {
		mode = "optimized"
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Generation Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")
	fmt.Fprintf(r.w, "Mode:           %s\n", mode)
	if s.Optimize {
		fmt.Fprintf(r.w, "Files Scanned:  %d\n", s.FilesScanned)
	}
	fmt.Fprintf(r.w, "Components:     %d\n", s.Components)
	fmt.Fprintf(r.w, "Classes:        %d\n", s.Classes)
	fmt.Fprintf(r.w, "CSS Rules:      %d (%d media blocks)\n", s.Rules, s.MediaBlocks)
	fmt.Fprintf(r.w, "Type Unions:    %d\n", s.TypeUnions)
	if s.Duration > 0 {
		fmt.Fprintf(r.w, "Duration:       %s\n", s.Duration.Round(time.Millisecond))
	}
}

// PrintFiles writes the manifest table with human-readable sizes.
func (r *VerboseReporter) PrintFiles(rows []FileRow) {
	if len(rows) == 0 {
		return
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.AppendHeader(table.Row{"File", "Size", "Status"})

	total := 0
	for _, row := range rows {
		total += row.Bytes
		tbl.AppendRow(table.Row{row.Path, humanize.Bytes(uint64(row.Bytes)), r.status(row.Status)})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d files", len(rows)), humanize.Bytes(uint64(total)), ""})

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Generated Files", r.useColors))
	fmt.Fprintln(r.w, tbl.Render())
}

func (r *VerboseReporter) status(s string) string {
	switch s {
	case StatusWritten:
		return RenderStyle(StyleGreen, s, r.useColors)
	case StatusStale:
		return RenderStyle(StyleRed, s, r.useColors)
	}
	return RenderStyle(StyleGray, s, r.useColors)
}

// PrintWarnings writes the run's warnings.
func (r *VerboseReporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")
	for _, w := range warnings {
		fmt.Fprintf(r.w, "• %s\n", w)
	}
}

// LintStats summarizes a lint run.
type LintStats struct {
	FilesScanned int
	PropsChecked int
	Errors       int
	Warnings     int
	Truncated    int
}

// PrintLintStatistics writes the lint run statistics.
func (r *VerboseReporter) PrintLintStatistics(s LintStats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Lint Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------")
	fmt.Fprintf(r.w, "Files Scanned:  %d\n", s.FilesScanned)
	fmt.Fprintf(r.w, "Props Checked:  %d\n", s.PropsChecked)
	fmt.Fprintf(r.w, "Errors:         %d\n", s.Errors)
	fmt.Fprintf(r.w, "Warnings:       %d\n", s.Warnings)
	if s.Truncated > 0 {
		fmt.Fprintf(r.w, "Not Shown:      %d (max-same-issues)\n", s.Truncated)
	}
}

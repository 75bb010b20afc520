package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Options configures a Reporter.
type Options struct {
	UseColors        bool // force colors; otherwise detected
	PrintIssuedLines bool
	PrintLinterName  bool
}

// Reporter prints lint issues in golangci-lint format.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(opts.UseColors),
		printLines:      opts.PrintIssuedLines,
		printLinterName: opts.PrintLinterName,
	}
}

// ShouldUseColors reports whether output should be colored: forced, asked
// for by the CI environment, or stdout is a terminal.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return true
	}
	return false
}

// SortIssues orders issues by file, line and column.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].Pos, issues[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// PrintIssues writes every issue, sorted.
func (r *Reporter) PrintIssues(issues []Issue) {
	SortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue writes "file:line:col: message (linter)" plus the source line
// and a caret when enabled.
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	suffix := ""
	if r.printLinterName {
		suffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, suffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator aligns "^" under column, keeping the tabs of the
// source line so the caret lines up.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}
	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary writes the issue count with a per-severity breakdown.
func (r *Reporter) PrintSummary(issues []Issue) {
	var errs, warnings int
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
	}

	fmt.Fprintln(r.w, "")
	if errs > 0 && warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s)\n",
			pluralizeCount(len(issues), "issue", "issues"),
			pluralizeCount(errs, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
		return
	}
	fmt.Fprintf(r.w, "%s\n", pluralizeCount(len(issues), "issue", "issues"))
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors reports whether the reporter colors its output.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

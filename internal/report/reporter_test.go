package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  <Box mt={7}>",
			column:     8,
			want:       "       ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t<Box p=\"9\">",
			column:     8,
			want:       "\t\t     ^",
		},
		{
			name:       "start of line",
			sourceLine: "<Box />",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, reporter.buildCaretIndicator(tt.sourceLine, tt.column))
		})
	}
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf, printLines: true, printLinterName: true}

	r.PrintIssues([]Issue{
		{
			FromLinter:  LinterName,
			Text:        `unknown value "7" for mt (scale space)`,
			Severity:    SeverityError,
			SourceLines: []string{`<Box mt={7} />`},
			Pos:         IssuePos{Filename: "src/B.svelte", Line: 3, Column: 6},
		},
		{
			FromLinter: LinterName,
			Text:       `unknown breakpoint "xl" for p`,
			Severity:   SeverityWarning,
			Pos:        IssuePos{Filename: "src/A.svelte", Line: 1, Column: 1},
		},
	})

	want := "src/A.svelte:1:1: unknown breakpoint \"xl\" for p (sysgen)\n" +
		"src/B.svelte:3:6: unknown value \"7\" for mt (scale space) (sysgen)\n" +
		"\t<Box mt={7} />\n" +
		"\t     ^\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   string
	}{
		{name: "none", want: "\n0 issues\n"},
		{name: "one", issues: []Issue{{Severity: SeverityError}}, want: "\n1 issue\n"},
		{
			name:   "mixed",
			issues: []Issue{{Severity: SeverityError}, {Severity: SeverityWarning}, {Severity: SeverityWarning}},
			want:   "\n3 issues (1 error, 2 warnings)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			(&Reporter{w: &buf}).PrintSummary(tt.issues)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderStyleWithoutColors(t *testing.T) {
	assert.Equal(t, "plain", RenderStyle(StyleRed, "plain", false))
}

func TestPrintFiles(t *testing.T) {
	var buf bytes.Buffer
	NewVerboseReporter(&buf, false).PrintFiles([]FileRow{
		{Path: "Box.svelte", Bytes: 2048, Status: StatusWritten},
		{Path: "index.js", Bytes: 100, Status: StatusUnchanged},
	})

	out := buf.String()
	assert.Contains(t, out, "Generated Files")
	assert.Contains(t, out, "Box.svelte")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "unchanged")
	assert.Contains(t, out, "2 FILES")
}

func TestPrintStatistics(t *testing.T) {
	var buf bytes.Buffer
	NewVerboseReporter(&buf, false).PrintStatistics(Stats{
		Optimize:     true,
		FilesScanned: 4,
		Components:   3,
		Classes:      12,
		Rules:        20,
		MediaBlocks:  2,
		Duration:     1500 * time.Microsecond,
	})

	out := buf.String()
	assert.Contains(t, out, "Mode:           optimized\n")
	assert.Contains(t, out, "Files Scanned:  4\n")
	assert.Contains(t, out, "CSS Rules:      20 (2 media blocks)\n")
	assert.Contains(t, out, "Duration:       2ms\n")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := NewVerboseReporter(&buf, false)

	r.PrintWarnings(nil)
	assert.Empty(t, buf.String())

	r.PrintWarnings([]string{"scale columns is not declared"})
	assert.True(t, strings.HasSuffix(buf.String(), "• scale columns is not declared\n"))
}

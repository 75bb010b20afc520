// Package report renders lint issues, generation statistics and the
// generated-file manifest for the terminal.
package report

// Issue is one lint finding in golangci-lint's shape.
type Issue struct {
	FromLinter  string   `json:"FromLinter"`
	Text        string   `json:"Text"`
	Severity    string   `json:"Severity"`
	SourceLines []string `json:"SourceLines"`
	Pos         IssuePos `json:"Pos"`
}

// IssuePos is a 1-based source position.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

// Severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// LinterName is reported as FromLinter on every issue.
const LinterName = "sysgen"

// Issue messages.
const (
	IssueUnknownValue      = "unknown value %q for %s (%s)"
	IssueUnknownBreakpoint = "unknown breakpoint %q for %s"
	IssueUnknownComponent  = "%s extends %s, which is not generated"
)

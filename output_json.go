package sysgen

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/sysgen/internal/emit"
)

// JSONOutput is the export schema of a generation run.
type JSONOutput struct {
	Version    string               `json:"version"`
	Timestamp  string               `json:"timestamp"`
	Components []emit.ManifestEntry `json:"components"`
	Files      []WrittenFile        `json:"files"`
	Stats      JSONStats            `json:"stats"`
	Warnings   []string             `json:"warnings"`
}

// JSONStats contains the generation statistics.
type JSONStats struct {
	FilesScanned int   `json:"files_scanned"`
	Classes      int   `json:"classes"`
	Rules        int   `json:"rules"`
	MediaBlocks  int   `json:"media_blocks"`
	TypeUnions   int   `json:"type_unions"`
	DurationMS   int64 `json:"duration_ms"`
}

// JSONLintOutput is the export schema of a lint run.
type JSONLintOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains the issue counts.
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
	PropsChecked int `json:"props_checked"`
}

// JSONIssue is a single lint issue.
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"`
}

// WriteJSON writes the generation result as JSON.
func WriteJSON(w io.Writer, result *GenerateResult) error {
	out := JSONOutput{
		Version:    "1.0",
		Timestamp:  time.Now().Format(time.RFC3339),
		Components: result.Manifest,
		Files:      result.Files,
		Stats: JSONStats{
			FilesScanned: result.FilesScanned,
			Classes:      result.Classes,
			Rules:        result.Rules,
			MediaBlocks:  result.MediaBlocks,
			TypeUnions:   result.TypeUnions,
			DurationMS:   result.Duration.Milliseconds(),
		},
		Warnings: result.Warnings,
	}
	if out.Components == nil {
		out.Components = []emit.ManifestEntry{}
	}
	if out.Files == nil {
		out.Files = []WrittenFile{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	return encode(w, out)
}

// WriteLintJSON writes the lint result as JSON.
func WriteLintJSON(w io.Writer, result *LintResult) error {
	errs := result.ErrorCount()
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	return encode(w, JSONLintOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errs,
			Warnings:     len(result.Issues) - errs,
			FilesScanned: result.FilesScanned,
			PropsChecked: result.PropsChecked,
		},
		Issues: issues,
	})
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

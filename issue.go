package sysgen

import "github.com/yacobolo/sysgen/internal/report"

// Issue is a lint finding in golangci-lint's shape.
type Issue = report.Issue

// IssuePos is the 1-based position of an Issue.
type IssuePos = report.IssuePos

// Issue severities
const (
	SeverityError   = report.SeverityError
	SeverityWarning = report.SeverityWarning
)

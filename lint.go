package sysgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/sysgen/internal/emit"
	"github.com/yacobolo/sysgen/internal/logging"
	"github.com/yacobolo/sysgen/internal/props"
	"github.com/yacobolo/sysgen/internal/report"
	"github.com/yacobolo/sysgen/internal/theme"
	"github.com/yacobolo/sysgen/internal/usage"
)

// LintConfig holds linting configuration.
type LintConfig struct {
	Theme          *theme.Theme
	ProjectPath    string // root scanned for templates
	ComponentsPath string // generated components, never linted
	MaxSameIssues  int    // 0 = unlimited
	Concurrency    int    // parallel file scans, 0 = GOMAXPROCS
	Logger         *slog.Logger
}

func lintConcurrency(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// LintResult contains the lint findings.
type LintResult struct {
	Issues         []Issue
	FilesScanned   int
	PropsChecked   int
	TruncatedCount int // issues dropped by MaxSameIssues
}

// ErrorCount returns the number of error-severity issues.
func (r *LintResult) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// linter checks prop values against one theme.
type linter struct {
	th          *theme.Theme
	components  map[string]bool
	breakpoints map[string]bool
	allowed     map[string]map[string]bool // prop name -> valid keys
	sources     map[string]string          // prop name -> "scale space" or "values"
}

func newLinter(th *theme.Theme) *linter {
	l := &linter{
		th:          th,
		components:  make(map[string]bool),
		breakpoints: make(map[string]bool),
		allowed:     make(map[string]map[string]bool),
		sources:     make(map[string]string),
	}
	for _, s := range emit.Specs(th) {
		l.components[s.Name] = true
	}
	for _, name := range th.Breakpoints.Names() {
		l.breakpoints[name] = true
	}
	for _, p := range props.All() {
		keys := make(map[string]bool)
		if s, ok := th.Scale(p.Scale); p.Scale != "" && ok {
			for _, k := range theme.LeafKeys(s) {
				keys[k] = true
			}
			l.sources[p.Name] = "scale " + p.Scale
		} else if len(p.Values) > 0 {
			for _, v := range p.Values {
				keys[v] = true
			}
			l.sources[p.Name] = "values"
		} else {
			continue
		}
		l.allowed[p.Name] = keys
	}
	return l
}

// Lint scans the project templates and reports prop values that no class
// exists for, and responsive objects keyed by unknown breakpoints.
func Lint(ctx context.Context, cfg LintConfig) (*LintResult, error) {
	if cfg.ProjectPath == "" {
		return nil, ErrNoProjectPath
	}
	log := logging.OrDiscard(cfg.Logger)

	th, err := prepareTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}
	l := newLinter(th)

	files, _, err := DiscoverTemplates(cfg.ProjectPath, cfg.ComponentsPath)
	if err != nil {
		return nil, fmt.Errorf("discover templates: %w", err)
	}

	perFile := make([][]Issue, len(files))
	checked := make([]int, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(lintConcurrency(cfg.Concurrency))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			issues, n, err := l.lintFile(path)
			if err != nil {
				return err
			}
			perFile[i] = issues
			checked[i] = n
			log.Debug("linted template", "file", path, "issues", len(issues))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LintResult{FilesScanned: len(files)}
	for i := range files {
		result.Issues = append(result.Issues, perFile[i]...)
		result.PropsChecked += checked[i]
	}
	report.SortIssues(result.Issues)
	if cfg.MaxSameIssues > 0 {
		before := len(result.Issues)
		result.Issues = deduplicateSameIssues(result.Issues, cfg.MaxSameIssues)
		result.TruncatedCount = before - len(result.Issues)
	}
	return result, nil
}

func (l *linter) lintFile(path string) ([]Issue, int, error) {
	// #nosec G304 - path comes from project discovery
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	fu, err := usage.AnalyzeSource(path, string(src))
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(src), "\n")
	display := GetRelativePath(path)
	var issues []Issue
	checked := 0

	for _, occ := range fu.Props {
		if !l.components[occ.Component] {
			continue
		}
		p, ok := props.Lookup(occ.Prop)
		if !ok {
			continue
		}
		allowed, ok := l.allowed[p.Name]
		if !ok {
			continue
		}
		checked++

		issue := func(severity, text string) {
			is := Issue{
				FromLinter: report.LinterName,
				Text:       text,
				Severity:   severity,
				Pos:        IssuePos{Filename: display, Line: occ.Line, Column: occ.Column},
			}
			if occ.Line >= 1 && occ.Line <= len(lines) {
				is.SourceLines = []string{strings.TrimRight(lines[occ.Line-1], "\r")}
			}
			issues = append(issues, is)
		}
		value := func(v string) {
			if v != "" && !allowed[v] {
				issue(SeverityError, fmt.Sprintf(report.IssueUnknownValue, v, occ.Prop, l.sources[p.Name]))
			}
		}

		switch occ.Value.Shape {
		case usage.ShapeScalar:
			value(occ.Value.Value)
		case usage.ShapeList:
			for _, item := range occ.Value.Items {
				value(item)
			}
		case usage.ShapeMap:
			for i, k := range occ.Value.Keys {
				if !l.breakpoints[k] {
					issue(SeverityWarning, fmt.Sprintf(report.IssueUnknownBreakpoint, k, occ.Prop))
					continue
				}
				value(occ.Value.Values[i])
			}
		}
	}
	return issues, checked, nil
}

// deduplicateSameIssues keeps at most maxSame issues with the same text.
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	counts := make(map[string]int)
	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		counts[issue.Text]++
		if counts[issue.Text] <= maxSame {
			out = append(out, issue)
		}
	}
	return out
}

// IssueTexts returns the distinct issue messages, sorted.
func (r *LintResult) IssueTexts() []string {
	seen := make(map[string]bool)
	var out []string
	for _, issue := range r.Issues {
		if !seen[issue.Text] {
			seen[issue.Text] = true
			out = append(out, issue.Text)
		}
	}
	sort.Strings(out)
	return out
}

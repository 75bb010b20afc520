package usage

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/sysgen/internal/logging"
	"github.com/yacobolo/sysgen/internal/theme"
)

// ParseError reports a template that could not be scanned. It fails the
// whole detection pass.
type ParseError struct {
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PropOccurrence is one recorded prop value of a component invocation.
type PropOccurrence struct {
	Component string
	Prop      string
	Value     Observation
	Line      int
	Column    int
}

// EventOccurrence is one on:event binding of a component invocation.
type EventOccurrence struct {
	Component string
	Event     string
	Line      int
	Column    int
}

// FileUsage is everything a single template contributes.
type FileUsage struct {
	Props  []PropOccurrence
	Events []EventOccurrence
}

// AnalyzeSource scans a Svelte source and returns its prop and event usage
// in document order. Errors are *ParseError values naming file.
func AnalyzeSource(file, src string) (*FileUsage, error) {
	invocations, err := ScanTemplate(src)
	if err != nil {
		var serr *SyntaxError
		if errors.As(err, &serr) {
			return nil, &ParseError{File: file, Line: serr.Line, Column: serr.Column, Err: errors.New(serr.Msg)}
		}
		return nil, &ParseError{File: file, Err: err}
	}

	out := &FileUsage{}
	for _, inv := range invocations {
		for _, attr := range inv.Attributes {
			switch attr.Kind {
			case AttrEvent:
				out.Events = append(out.Events, EventOccurrence{
					Component: inv.Component, Event: attr.Name, Line: attr.Line, Column: attr.Column,
				})

			case AttrText:
				out.Props = append(out.Props, PropOccurrence{
					Component: inv.Component, Prop: attr.Name, Value: Scalar(attr.Value),
					Line: attr.Line, Column: attr.Column,
				})

			case AttrExpression:
				expr, err := parseExpression(attr.Value)
				if err != nil {
					return nil, &ParseError{
						File: file, Line: attr.Line, Column: attr.Column,
						Err: fmt.Errorf("attribute %s of <%s>: %w", attr.Name, inv.Component, err),
					}
				}
				for _, o := range observe(expr) {
					out.Props = append(out.Props, PropOccurrence{
						Component: inv.Component, Prop: attr.Name, Value: o,
						Line: attr.Line, Column: attr.Column,
					})
				}
			}
		}
	}
	return out, nil
}

// Config configures a Detector.
type Config struct {
	Breakpoints theme.Breakpoints
	Components  []theme.Component // declared defaults seed the cache
	ArrayValues ArrayMode         // how template arrays are recorded
	Concurrency int               // parallel file scans, 0 = GOMAXPROCS
	CacheSize   int               // per-file result cache entries, 0 = 512
	Logger      *slog.Logger
}

type cachedFile struct {
	sum   [sha256.Size]byte
	usage *FileUsage
}

// Detector populates usage caches from theme defaults and template files.
// It keeps the analysis of unchanged files between runs, so a watch loop can
// reuse one Detector with fresh caches each time.
type Detector struct {
	cfg   Config
	log   *slog.Logger
	files *lru.Cache[string, cachedFile]
}

// NewDetector returns a Detector for cfg.
func NewDetector(cfg Config) (*Detector, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 512
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
	if cfg.ArrayValues == "" {
		cfg.ArrayValues = ArrayPositional
	}
	log := logging.OrDiscard(cfg.Logger)
	files, err := lru.New[string, cachedFile](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create file cache: %w", err)
	}
	return &Detector{cfg: cfg, log: log, files: files}, nil
}

// Seed returns the usage implied by declared component defaults. Array and
// object defaults are spread over breakpoints; as and extends are not props.
func (d *Detector) Seed() Catalog {
	cat := make(Catalog)
	bps := d.cfg.Breakpoints.Names()
	for _, c := range d.cfg.Components {
		for _, p := range c.Props {
			o, ok := nodeObservation(p.Value)
			if !ok {
				continue
			}
			cat.Accumulate(c.Name, p.Name, o, bps, ArrayPositional)
		}
	}
	return cat
}

// Detect seeds cache from component defaults and records the usage of every
// file. Files are scanned in parallel; the first read or parse error cancels
// the pass and is returned.
func (d *Detector) Detect(ctx context.Context, files []string, cache *Cache, events *EventCache) error {
	cache.Merge(d.Seed())

	bps := d.cfg.Breakpoints.Names()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Concurrency)

	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fu, err := d.scanFile(path)
			if err != nil {
				return err
			}

			cat := make(Catalog)
			for _, p := range fu.Props {
				cat.Accumulate(p.Component, p.Prop, p.Value, bps, d.cfg.ArrayValues)
			}
			cache.Merge(cat)
			for _, e := range fu.Events {
				events.Add(e.Component, e.Event)
			}

			d.log.Debug("scanned template", "file", path, "props", len(fu.Props), "events", len(fu.Events))
			return nil
		})
	}

	return g.Wait()
}

// ScanFile analyzes one template, reusing the previous result when the file
// content is unchanged. Content is compared by hash: mtime and size can miss
// a same-size edit within one timestamp tick.
func (d *Detector) ScanFile(path string) (*FileUsage, error) {
	return d.scanFile(path)
}

func (d *Detector) scanFile(path string) (*FileUsage, error) {
	// #nosec G304 - path comes from project discovery
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	sum := sha256.Sum256(src)
	if cached, ok := d.files.Get(path); ok && cached.sum == sum {
		d.log.Debug("template unchanged", "file", path)
		return cached.usage, nil
	}

	fu, err := AnalyzeSource(path, string(src))
	if err != nil {
		return nil, err
	}
	d.files.Add(path, cachedFile{sum: sum, usage: fu})
	return fu, nil
}

// Purge forgets every cached file analysis.
func (d *Detector) Purge() {
	d.files.Purge()
}

// nodeObservation converts a theme default into an observation.
func nodeObservation(n *theme.Node) (Observation, bool) {
	if n == nil {
		return Observation{}, false
	}
	switch n.Kind {
	case theme.StringNode, theme.NumberNode:
		return Scalar(n.Value), true
	case theme.ListNode:
		o := Observation{Shape: ShapeList}
		for _, item := range n.Items {
			o.Items = append(o.Items, scalarText(item))
		}
		return o, true
	case theme.MapNode:
		o := Observation{Shape: ShapeMap}
		for i, k := range n.Keys {
			o.Keys = append(o.Keys, k)
			o.Values = append(o.Values, scalarText(n.Values[i]))
		}
		return o, true
	}
	return Observation{}, false
}

func scalarText(n *theme.Node) string {
	if n == nil || (n.Kind != theme.StringNode && n.Kind != theme.NumberNode) {
		return ""
	}
	return strings.TrimSpace(n.Value)
}

// Package watch reruns a function when watched files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yacobolo/sysgen/internal/logging"
)

// DefaultDebounce is the quiet period before a run starts.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Match    func(path string) bool // nil matches every file
	Exclude  []string               // directories whose events are ignored, e.g. generated output
	Logger   *slog.Logger
}

// Watcher collects file system events and turns bursts of them into single
// runs.
type Watcher struct {
	fsw  *fsnotify.Watcher
	opts Options
	log  *slog.Logger
}

// New returns a Watcher. Close releases it.
func New(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	exclude := make([]string, 0, len(opts.Exclude))
	for _, dir := range opts.Exclude {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		exclude = append(exclude, dir)
	}
	opts.Exclude = exclude
	return &Watcher{fsw: fsw, opts: opts, log: logging.OrDiscard(opts.Logger)}, nil
}

// Add watches path. Directories are watched recursively; a file is watched
// through its parent directory.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watchDir(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && w.ignored(p) {
			return filepath.SkipDir
		}
		return w.watchDir(p)
	})
}

func (w *Watcher) watchDir(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.Debug("watching directory", "dir", dir)
	return nil
}

// Run calls fn with the changed paths after every burst of events, until
// ctx is done. Runs never overlap: events arriving during a run are
// coalesced into the next one. An error from fn is logged and watching
// continues.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context, changed []string) error) error {
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.opts.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			w.log.Debug("change detected", "files", len(changed))
			if err := fn(ctx, changed); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				w.log.Error("run failed", "error", err)
			}
		}
	}
}

// handle reports whether event should trigger a run. New directories are
// added to the watch list.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if w.ignored(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				w.log.Warn("watch new directory", "dir", event.Name, "error", err)
			}
			return false
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.opts.Match == nil || w.opts.Match(event.Name)
}

func (w *Watcher) ignored(path string) bool {
	switch filepath.Base(path) {
	case "node_modules", ".git", ".svelte-kit", "dist", "build":
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.opts.Exclude {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}


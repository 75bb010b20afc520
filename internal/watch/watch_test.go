package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	runs [][]string
}

func (r *recorder) run(_ context.Context, changed []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, changed)
	return nil
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.runs...)
}

func start(t *testing.T, w *Watcher, fn func(context.Context, []string) error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, fn) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		require.NoError(t, w.Close())
	})
}

func TestBurstBecomesOneRun(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Options{
		Debounce: 100 * time.Millisecond,
		Match:    func(p string) bool { return strings.HasSuffix(p, ".svelte") },
	})
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))

	rec := &recorder{}
	start(t, w, rec.run)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.svelte"), []byte("<Box />"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.svelte"), []byte("<Box />"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)

	runs := rec.snapshot()
	require.Len(t, runs, 1)
	assert.Equal(t, []string{filepath.Join(dir, "A.svelte"), filepath.Join(dir, "B.svelte")}, runs[0])
}

func TestExcludedDirectoriesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "components")
	require.NoError(t, os.MkdirAll(out, 0o750))

	w, err := New(Options{Debounce: 50 * time.Millisecond, Exclude: []string{out}})
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))

	rec := &recorder{}
	start(t, w, rec.run)

	require.NoError(t, os.WriteFile(filepath.Join(out, "Box.svelte"), []byte("x"), 0o600))
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "App.svelte"), []byte("x"), 0o600))
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestRunErrorsKeepWatching(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Options{Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))

	var mu sync.Mutex
	calls := 0
	start(t, w, func(context.Context, []string) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return assert.AnError
	})
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return calls
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.svelte"), []byte("x"), 0o600))
	require.Eventually(t, func() bool { return count() == 1 }, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.svelte"), []byte("x"), 0o600))
	require.Eventually(t, func() bool { return count() == 2 }, 5*time.Second, 20*time.Millisecond)
}

func TestAddMissingPath(t *testing.T) {
	w, err := New(Options{})
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing")))
}

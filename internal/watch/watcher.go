// SPDX-License-Identifier: MPL-2.0

// Package watch reruns a callback when report files change.
//
// Events are coalesced over a debounce window, so an editor that writes a
// temporary file and renames it over the report triggers a single rebuild.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Editor swap and backup files never trigger a rebuild.
var defaultIgnores = []string{
	"*.swp",
	"*.swo",
	"*~",
	".#*",
	"#*#",
}

// ErrNoPatterns is returned by New when Config.Patterns is empty.
var ErrNoPatterns = errors.New("no watch patterns")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dir is the directory whose entries are watched. Empty means the
		// current working directory. Subdirectories are not watched.
		Dir string

		// Patterns are doublestar globs matched against entry names in Dir.
		Patterns []string

		// Ignore adds patterns to the built-in editor ignores.
		Ignore []string

		// Debounce is the quiet period after the last event. Zero or
		// negative values use the default.
		Debounce time.Duration

		// OnChange receives the sorted names of the entries that changed.
		OnChange func(ctx context.Context, changed []string) error

		// Stderr receives callback and watcher errors. nil means os.Stderr.
		Stderr io.Writer
	}

	// Watcher fires Config.OnChange after matching entries of a directory
	// change. Run may be called only once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		stderr   io.Writer
		debounce time.Duration
		dir      string
		started  atomic.Bool
	}
)

// New validates cfg and starts watching cfg.Dir.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Patterns) == 0 {
		return nil, ErrNoPatterns
	}
	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(absDir); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("watch: add directory %q: %w", absDir, err)
	}

	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		stderr:   stderr,
		debounce: debounce,
		dir:      absDir,
	}, nil
}

// Run processes events until ctx is canceled, which returns nil. A fatal
// watcher error ends Run with that error. Callback errors are reported to
// Stderr and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire runs on the timer goroutine. A rebuild still in progress pushes
	// the pending set to the next window instead of running concurrently.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				fmt.Fprintf(w.stderr, "watch: %v\n", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			name, ok := w.entryName(evt.Name)
			if !ok || !w.Matches(name) {
				continue
			}

			mu.Lock()
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalWatchError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// Matches reports whether an entry name selects a rebuild: it must match a
// watch pattern and no ignore pattern.
func (w *Watcher) Matches(name string) bool {
	for _, pat := range w.ignores {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return false
		}
	}
	for _, pat := range w.cfg.Patterns {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// entryName returns the name of path inside the watched directory. Events
// for the directory itself or for nested paths are rejected.
func (w *Watcher) entryName(path string) (string, bool) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || rel == "." || strings.ContainsRune(filepath.ToSlash(rel), '/') {
		return "", false
	}
	return rel, true
}

// QuoteMeta escapes glob metacharacters so name matches only itself.
func QuoteMeta(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}

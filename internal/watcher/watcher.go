// Package watcher re-runs a callback whenever a single source file changes.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thomasrohde/quill/pkg/logging"
)

// DefaultDebounce is the quiet period used when no WithDebounce option is given.
const DefaultDebounce = 200 * time.Millisecond

// Handler is called with the watched path after the file settles.
type Handler func(path string)

// Watcher watches one file. Editors often replace a file instead of writing
// it in place, so the parent directory is watched and events are filtered
// by name.
type Watcher struct {
	path     string
	onChange Handler
	debounce time.Duration
	logger   *slog.Logger
	ready    chan struct{}
}

// Option is a functional option for configuring a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must stay quiet before onChange runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher for path.
func New(path string, onChange Handler, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logging.Discard(),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the watch is registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. onChange is called on Run's goroutine,
// so calls never overlap. Run returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	close(w.ready)
	w.logger.Info("watching for changes", "path", w.path, "debounce", w.debounce)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watcher (context cancelled)")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("file event", "op", event.Op.String())

			// Restart the quiet period on every event.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			timer = nil
			w.onChange(w.path)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

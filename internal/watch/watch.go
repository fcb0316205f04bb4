// Package watch re-runs a filtering callback whenever a transcript file
// changes on disk.
//
// The game client rewrites the exported transcript in place, so the watcher
// debounces bursts of write events and survives the file being replaced by
// rename (the usual save pattern for editors and the exporter alike).
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures the watcher behavior.
type Options struct {
	// Path is the transcript file to watch.
	Path string

	// Debounce is how long to wait after the last event before firing
	// OnChange. Zero means fire immediately.
	Debounce time.Duration

	// OnChange is called after each settled burst of changes. An error
	// stops the watcher.
	OnChange func() error
}

// Watcher drives OnChange from filesystem events on a single file.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	return &Watcher{opts: opts}
}

// Run starts watching. It blocks until the context is cancelled or an error
// occurs; context cancellation is a clean stop and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	w.watcher = watcher
	defer w.watcher.Close()

	if err := w.watcher.Add(w.opts.Path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.Path, err)
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if err := w.handleEvent(event); err != nil {
				return err
			}
			if w.opts.Debounce == 0 {
				if err := w.opts.OnChange(); err != nil {
					return err
				}
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				fire = timer.C
			} else {
				// Drain a pending tick from an already-expired timer
				// so Reset starts a fresh window instead of letting
				// the stale tick fire immediately.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.opts.Debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			if err := w.opts.OnChange(); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleEvent re-establishes the watch when the file is replaced. A rename or
// remove followed by a fresh file at the same path is treated as a change.
func (w *Watcher) handleEvent(event fsnotify.Event) error {
	if !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return nil
	}

	// Give the writer a moment to drop the new file in place.
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(w.opts.Path); err == nil {
			return w.watcher.Add(w.opts.Path)
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("watched file %s disappeared", w.opts.Path)
}

// Package watch notifies the rest of the app when the ward export changes
// on disk. It is optional; without it the periodic refresh alone keeps the
// view current.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"wardview/internal/eventbus"
)

// Watcher publishes SourceChangedEvent when one of the export files is
// rewritten. Whether that leads to a reload is the UI's call — a hidden
// view drops the notification just like it drops a tick.
type Watcher struct {
	bus      eventbus.EventBus
	targets  map[string]bool // absolute file paths we care about
	dirs     []string
	debounce *Debouncer
}

// NewWatcher creates a watcher for the given export files.
func NewWatcher(bus eventbus.EventBus, paths []string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}

	w := &Watcher{
		bus:      bus,
		targets:  make(map[string]bool, len(paths)),
		debounce: NewDebouncer(0),
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.targets[abs] = true

		// Watch the containing directory: exports are typically replaced
		// by rename, which would silently detach a file-level watch.
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}

	return w, nil
}

// Start runs the watch loop until the context is cancelled. Callers run it
// in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()
	defer w.debounce.Cancel()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	log.Printf("watch: following %d file(s) in %d dir(s)", len(w.targets), len(w.dirs))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.targets[abs] {
				continue
			}

			path := abs
			w.debounce.Trigger(func() {
				log.Printf("watch: %s changed", path)
				w.bus.Publish(eventbus.SourceChangedEvent{Path: path})
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: error: %v", err)
			w.bus.Publish(eventbus.WatchErrorEvent{Err: err})
		}
	}
}

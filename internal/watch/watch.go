// Package watch re-runs a callback when script files change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWindow is how long a file must be quiet before it counts as saved.
const DefaultWindow = 300 * time.Millisecond

// Watcher watches a fixed set of files. Parent directories are watched
// rather than the files themselves so editors that save by renaming a temp
// file over the original are still seen.
type Watcher struct {
	fs      *fsnotify.Watcher
	targets map[string]struct{}
	window  time.Duration
	log     *slog.Logger
}

// New watches paths. window <= 0 means DefaultWindow.
func New(paths []string, window time.Duration, log *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("watch: no files given")
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if log == nil {
		log = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fs:      fw,
		targets: make(map[string]struct{}, len(paths)),
		window:  window,
		log:     log,
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch: resolve %s: %w", p, err)
		}
		w.targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is done, calling onChange with the absolute path of
// each watched file after it is written. Calls are sequential.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.fs.Close()

	batches := make(chan []string, 1)
	deb := newDebouncer(w.window, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer deb.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if _, ok := w.targets[name]; !ok {
				continue
			}
			w.log.Debug("file event", "path", name, "op", ev.Op.String())
			deb.add(name)

		case paths := <-batches:
			for _, p := range paths {
				if _, err := os.Stat(p); err != nil {
					w.log.Warn("changed file is gone", "path", p, "error", err)
					continue
				}
				onChange(p)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

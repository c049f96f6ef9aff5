package denylist

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Reloader watches a deny-list file for changes and hot-reloads it.
type Reloader struct {
	watcher *fsnotify.Watcher
	list    *Denylist
	path    string
}

// NewReloader creates a file watcher for the given deny-list path.
func NewReloader(list *Denylist, path string) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("cannot watch %q: %w", path, err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", path, err)
	}
	return &Reloader{watcher: watcher, list: list, path: path}, nil
}

// Run watches for file changes and reloads the list. Blocks until ctx is
// cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	// Debounce: wait 500ms after last write before reloading
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case ev, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					if err := r.reload(); err != nil {
						fmt.Fprintf(os.Stderr, "denylist hot-reload failed: %v\n", err)
					} else {
						fmt.Fprintf(os.Stderr, "denylist hot-reload: %s reloaded\n", r.path)
					}
				})
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "file watcher error: %v\n", err)
		}
	}
}

func (r *Reloader) reload() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}
	var p Patterns
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}
	r.list.Replace(p)
	return nil
}

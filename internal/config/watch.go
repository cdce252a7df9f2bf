package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the config file and emits re-validated settings whenever
// it changes. The directory is watched rather than the file so editors that
// replace the file (rename-over-write) are still caught. The returned
// channel is closed when ctx is canceled.
func Watch(ctx context.Context, path string) (<-chan Settings, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Settings, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// Drop the stale pending value so the consumer
				// always sees the latest settings.
				select {
				case <-out:
				default:
				}
				out <- Load(path)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

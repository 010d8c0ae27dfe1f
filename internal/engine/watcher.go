package engine

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFile watches the dataset file and calls reload after it changes,
// debounced so editors that write in bursts trigger one reload. It
// returns when the context is cancelled.
func WatchFile(ctx context.Context, path string, logger *slog.Logger, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the parent directory: many tools replace the file on save.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		logger.Error("failed to watch data directory", "dir", dir, "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}
	base := filepath.Base(path)

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(event.Name) != base {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(200*time.Millisecond, func() {
				logger.Info("data file changed, reloading", "file", name)
				reload()
			})

		case err := <-watcher.Errors:
			logger.Error("watch error", "error", err)
		}
	}
}

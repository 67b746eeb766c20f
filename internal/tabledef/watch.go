package tabledef

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// DebounceInterval is how long Watch waits after the last change event.
const DebounceInterval = 100 * time.Millisecond

// Watch reloads path whenever a definition file is written, created or
// removed, and passes the result to onChange. It blocks until ctx is done.
func Watch(ctx context.Context, path, defaultSchema string, logger *slog.Logger, onChange func([]*core.Table, error)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		err = watchDirRecursive(watcher, path)
	} else {
		// editors replace files on save, so watch the parent
		err = watcher.Add(filepath.Dir(path))
	}
	if err != nil {
		return err
	}

	reload := func() {
		tables, err := Load(path, defaultSchema)
		onChange(tables, err)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if info.IsDir() && event.Has(fsnotify.Create) && isDir(event.Name) {
				// files may land in the new directory before it is watched
				if err := watchDirRecursive(watcher, event.Name); err != nil {
					logger.Error("failed to watch directory", "dir", event.Name, "error", err)
					continue
				}
			} else if !isDefinition(event.Name) {
				continue
			}
			if !info.IsDir() && filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(DebounceInterval, func() {
				logger.Debug("table definition changed, reloading", "file", event.Name)
				reload()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

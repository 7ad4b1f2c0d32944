package fixture

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"phonechat/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a fixture file when it changes on disk.
// The parent directory is watched so editors that save by rename are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	onLoad   func(*File)
	onError  func(error)
}

// NewWatcher creates a watcher for path. onLoad receives each successfully
// parsed revision; onError receives read and parse failures. Either may be nil.
func NewWatcher(path string, debounce time.Duration, onLoad func(*File), onError func(error)) *Watcher {
	return &Watcher{path: filepath.Clean(path), debounce: debounce, onLoad: onLoad, onError: onError}
}

// Run watches until ctx is done. It blocks, so callers run it in their own
// goroutine (typically under an errgroup).
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fixture watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("fixture watcher: watch %s: %w", filepath.Dir(w.path), err)
	}
	logging.Fixture("watching %s", w.path)

	// Rapid saves collapse into one reload after the quiet period.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Fixture("watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			logging.Get(logging.CategoryFixture).Debug("%s event for %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.fail(err)

		case <-timer.C:
			f, err := Load(w.path)
			if err != nil {
				w.fail(err)
				continue
			}
			if w.onLoad != nil {
				w.onLoad(f)
			}
		}
	}
}

func (w *Watcher) fail(err error) {
	logging.Get(logging.CategoryFixture).Error("reload: %v", err)
	if w.onError != nil {
		w.onError(err)
	}
}

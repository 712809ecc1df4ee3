// Package watcher re-runs a callback when files beneath a set of directories
// change. fsnotify watches are non-recursive, so every subdirectory is added
// explicitly and newly created directories are picked up from create events.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/agentskills/skillsref/pkg/logger"
)

// DefaultDebounce batches rapid successive events into one callback run
const DefaultDebounce = 250 * time.Millisecond

// Watch blocks watching roots until the context is cancelled, invoking fn
// after changes settle for the debounce interval.
func Watch(ctx context.Context, roots []string, debounce time.Duration, fn func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer w.Close()

	for _, root := range roots {
		if err := addRecursive(w, root); err != nil {
			return err
		}
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(w, event.Name); err != nil {
						logger.G(ctx).WithError(err).WithField("dir", event.Name).Warn("failed to watch new directory")
					}
				}
			}

			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.G(ctx).WithError(err).Warn("file watcher error")

		case <-fire:
			timer = nil
			fn()
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if info.Name() == ".git" || info.Name() == "node_modules" {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}

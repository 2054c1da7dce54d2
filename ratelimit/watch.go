package ratelimit

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchPollInterval is the fallback poll cadence when fsnotify is
// unavailable.
const watchPollInterval = time.Second

// WatchLimits watches a limits file and invokes fn with the freshly
// loaded profile every time the file changes. Load or validation errors
// are passed to fn with zero Limits; watching continues either way.
//
// A Gate's buckets are fixed for its lifetime, so callers react to a new
// profile by constructing a new Gate (or Client) and swapping it in.
//
// Uses fsnotify with a polling fallback. Returns when ctx is cancelled.
func WatchLimits(ctx context.Context, path string, fn func(Limits, error)) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		watchPolling(ctx, path, fn)
		return
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file on save, which
	// a direct file watch misses.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		watchPolling(ctx, path, fn)
		return
	}

	baseName := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fn(LoadLimits(path))

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Usually recoverable; keep watching.
		}
	}
}

// watchPolling reloads on modification-time changes as a fallback.
func watchPolling(ctx context.Context, path string, fn func(Limits, error)) {
	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	var lastMod time.Time
	if info, err := fileInfo(path); err == nil {
		lastMod = info
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			mod, err := fileInfo(path)
			if err != nil {
				continue
			}
			if mod.After(lastMod) {
				lastMod = mod
				fn(LoadLimits(path))
			}
		}
	}
}

func fileInfo(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

package levelmap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/katalvlaran/movegrid/snapshot"
)

// DefaultDebounce is how long Watch waits after the last file event before
// reloading. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Logger receives reload and error records; nil discards them.
	Logger *slog.Logger

	// Debounce is the quiet period before a reload (>0).
	Debounce time.Duration

	// OnReload runs after each reload attempt with the published version,
	// or with the error that kept the previous snapshot in place.
	OnReload func(version uint64, err error)
}

// WatchOption configures Watch via functional arguments.
type WatchOption func(*WatchOptions)

// WithLogger sets the logger used by Watch.
func WithLogger(l *slog.Logger) WatchOption {
	return func(o *WatchOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *WatchOptions) {
		if d > 0 {
			o.Debounce = d
		}
	}
}

// WithOnReload registers a callback run after each reload attempt.
func WithOnReload(fn func(version uint64, err error)) WatchOption {
	return func(o *WatchOptions) {
		if fn != nil {
			o.OnReload = fn
		}
	}
}

// Watch reloads the level at path whenever it changes on disk and publishes
// the new map to store. A level that fails to parse or build is logged and
// the previous snapshot stays current.
//
// The directory of path is watched rather than the file itself, so editors
// that save through a rename keep working. Watch blocks until ctx is done
// and then returns nil; it fails early only if the watcher cannot start.
func Watch(ctx context.Context, path string, store *snapshot.Store, opts ...WatchOption) error {
	cfg := WatchOptions{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Debounce: DefaultDebounce,
		OnReload: func(uint64, error) {},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("levelmap: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("levelmap: watch %s: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("levelmap: watch %s: %w", path, err)
	}

	log := cfg.Logger.With("level", target)
	log.Info("watching level")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped watching level")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(cfg.Debounce)
			} else {
				timer.Reset(cfg.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "err", err)

		case <-fire:
			fire = nil
			version, err := reload(target, store)
			if err != nil {
				log.Error("reload failed, keeping previous map", "err", err)
			} else {
				log.Info("level reloaded", "version", version)
			}
			cfg.OnReload(version, err)
		}
	}
}

// reload parses path and publishes its map. On failure the store is left
// alone and its current version is returned with the error.
func reload(path string, store *snapshot.Store) (uint64, error) {
	lvl, err := Load(path)
	if err == nil {
		m, buildErr := lvl.Map()
		if buildErr == nil {
			return store.Publish(m), nil
		}
		err = fmt.Errorf("%s: %w", path, buildErr)
	}
	_, v := store.Load()
	return v, err
}

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/particle-morph/core"
	"github.com/lixenwraith/particle-morph/logging"
)

// reloadDelay coalesces the burst of events editors emit on save
const reloadDelay = 100 * time.Millisecond

// Watch reloads path on change and calls fn with each valid config until ctx
// is done. The parent directory is watched so atomic-rename saves are seen.
// Invalid files are logged and skipped
func Watch(ctx context.Context, path string, flags Flags, fn func(*Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	core.Go(func() {
		defer watcher.Close()

		timer := time.NewTimer(reloadDelay)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					timer.Reset(reloadDelay)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("config watcher error", "error", err)

			case <-timer.C:
				cfg, err := Load(abs)
				if err != nil {
					logging.Warn("config reload failed", "error", err)
					continue
				}
				cfg.Resolve(flags)
				if err := cfg.Validate(); err != nil {
					logging.Warn("config reload rejected", "error", err)
					continue
				}
				logging.Info("config reloaded", "path", abs)
				fn(cfg)
			}
		}
	})
	return nil
}

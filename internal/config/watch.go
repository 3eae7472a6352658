// pattern: Imperative Shell

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"splitkit/internal/logging"
)

// reloadDelay coalesces the bursts of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *logging.ScopedLogger
	delay   time.Duration
}

// NewWatcher prepares a watcher for configPath. The directory is watched
// rather than the file so the file may be created or replaced later.
func NewWatcher(configPath string, logs logging.LoggerProvider) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	logger := logging.NopLogger()
	if logs != nil {
		logger = logs.For("config")
	}

	return &Watcher{
		path:    filepath.Clean(configPath),
		watcher: watcher,
		logger:  logger,
		delay:   reloadDelay,
	}, nil
}

// Run calls onChange with the freshly loaded and validated config after
// every change until ctx is cancelled. A config that fails to load or
// validate is passed along with its error; the receiver decides whether
// to keep its previous settings. A removed file reloads as the defaults.
func (w *Watcher) Run(ctx context.Context, onChange func(Config, error)) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}
	w.logger.Debug("watching config", "path", w.path)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				timer.Reset(w.delay)
			}

		case <-timer.C:
			cfg, err := LoadFrom(w.path)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				w.logger.Warn("config reload failed", "path", w.path, "error", err)
			} else {
				w.logger.Info("config reloaded", "path", w.path)
			}
			onChange(cfg, err)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Package configwatch reloads the race config file when it changes on disk.
package configwatch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/comalice/racecore"
)

// Watcher delivers a freshly parsed config whenever the watched file is
// written, created or renamed into place. Editors often replace files instead
// of writing them, so the parent directory is watched and events are filtered
// by name.
type Watcher struct {
	path    string
	logger  zerolog.Logger
	watcher *fsnotify.Watcher
	version string
}

// New starts watching path. The current contents, if valid, become the
// baseline: reloads identical to it are not delivered.
func New(path string, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{path: abs, logger: logger, watcher: fw}
	if cfg, err := racecore.LoadConfig(abs); err == nil {
		w.version = cfg.Version()
	}
	return w, nil
}

// Run calls onChange for every valid change until ctx is done. Invalid files
// are logged and skipped. Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func(racecore.Config)) error {
	defer w.watcher.Close()
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
			w.logger.Debug().Str("op", event.Op.String()).Str("file", event.Name).Msg("fs event")
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload(onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn().Err(err).Msg("fsnotify overflow, reloading")
				w.reload(onChange)
				continue
			}
			w.logger.Error().Err(err).Msg("fsnotify error")
		}
	}
}

func (w *Watcher) reload(onChange func(racecore.Config)) {
	cfg, err := racecore.LoadConfig(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Msg("config reload skipped")
		return
	}
	if v := cfg.Version(); v != w.version {
		w.version = v
		w.logger.Info().Str("version", v).Float64("cap_hz", cfg.CapHz).Msg("config reloaded")
		onChange(cfg)
	}
}

// Watch is New followed by Run.
func Watch(ctx context.Context, path string, onChange func(racecore.Config), logger zerolog.Logger) error {
	w, err := New(path, logger)
	if err != nil {
		return err
	}
	return w.Run(ctx, onChange)
}

package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/dshills/glint/internal/config/watcher"
)

// ReloadFunc receives the reloaded settings or the reason they could not
// be loaded. On error the previous settings remain in effect.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads path whenever it changes until ctx is canceled.
func Watch(ctx context.Context, path string, logger *slog.Logger, onReload ReloadFunc) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w, err := watcher.New(path,
		watcher.WithDebounce(100*time.Millisecond),
		watcher.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	w.OnChange(func(ev watcher.Event) {
		cfg, err := LoadFile(ev.Path)
		if err != nil {
			logger.Warn("config reload failed", "path", ev.Path, "op", ev.Op, "err", err)
		} else {
			logger.Info("config reloaded", "path", ev.Path, "op", ev.Op)
		}
		onReload(cfg, err)
	})
	return w.Run(ctx)
}

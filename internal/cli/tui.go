package cli

import (
	"context"
	"path/filepath"
	"time"

	"ticketdesk/internal/backend"
	"ticketdesk/internal/grid"
	"ticketdesk/internal/logging"
	"ticketdesk/internal/model"
	"ticketdesk/internal/store"
	"ticketdesk/internal/tui"

	"github.com/spf13/cobra"
)

const tuiLogFileName = "ticketdesk.log"

// snapshotBackend refreshes the offline cache on every successful list, so
// records browsed in the TUI are also available to `--offline`.
type snapshotBackend struct {
	*backend.Client
	cache store.Cache
}

func (b snapshotBackend) List(ctx context.Context, coll model.Collection) ([]grid.Record, error) {
	recs, err := b.Client.List(ctx, coll)
	if err != nil {
		return nil, err
	}
	if err := b.cache.Save(ctx, string(coll), b.Server(), recs, time.Now().UTC()); err != nil {
		logging.FromContext(ctx).Warn("cache snapshot not saved", "collection", coll, "err", err)
	}
	return recs, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	dir, err := store.ConfigDir()
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := app.config()
	if err != nil {
		return writeErr(cmd, err)
	}

	level, err := logging.ParseLevel(app.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	logger, closeLog, err := logging.OpenFile(filepath.Join(dir, tuiLogFileName), level)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	ctx := logging.WithLogger(cmd.Context(), logger)
	c, err := app.client(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	cache, err := store.OpenCache()
	if err != nil {
		return writeErr(cmd, err)
	}

	opts := tui.Options{
		Backend:   snapshotBackend{Client: c, cache: cache},
		Server:    c.Server(),
		PageSize:  cfg.PageSizeOrDefault(),
		PageSizes: cfg.PageSizesOrDefault(),
		StateDir:  dir,
		Logger:    logger,
	}
	if cfg.TUI != nil {
		opts.Glyphs = cfg.TUI.Glyphs
		opts.Profile = cfg.TUI.Profile
	}

	logger.Info("tui start", "server", opts.Server)
	if err := tui.Run(ctx, opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

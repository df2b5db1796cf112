// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/css2"
	xglog "github.com/ManuGH/fontview/internal/log"
	"github.com/ManuGH/fontview/internal/manifest"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// AppOptions selects the optional background subsystems of an App.
type AppOptions struct {
	// Watch reloads the catalog when its file changes.
	Watch bool

	// ManifestPath is rewritten on startup and after each catalog reload when set.
	ManifestPath string
	Builder      css2.Builder
}

// App owns the long-lived runtime lifecycle (catalog watcher, reload wiring)
// and delegates server management to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	holder       *catalog.Holder
	opts         AppOptions
	reloadSignal os.Signal
	now          func() time.Time
}

// NewApp creates a new App orchestrator.
func NewApp(manager Manager, holder *catalog.Holder, opts AppOptions) *App {
	return &App{
		logger:       xglog.WithComponent("daemon"),
		manager:      manager,
		holder:       holder,
		opts:         opts,
		reloadSignal: syscall.SIGHUP,
		now:          time.Now,
	}
}

// Run starts all owned background subsystems and blocks until ctx is cancelled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}
	if a.holder == nil {
		return ErrMissingCatalog
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if a.opts.ManifestPath != "" {
		a.writeManifest(ctx, a.holder.Get())

		reloaded := make(chan *catalog.Catalog, 1)
		a.holder.RegisterListener(reloaded)
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case c := <-reloaded:
					a.writeManifest(ctx, c)
				}
			}
		})
	}

	// Catalog watcher is best-effort: a failure to watch must not stop serving.
	if a.opts.Watch {
		g.Go(func() error {
			if err := a.holder.Watch(ctx); err != nil {
				a.logger.Warn().
					Err(err).
					Str(xglog.FieldEvent, "catalog.watcher_start_failed").
					Msg("failed to start catalog watcher")
			}
			return nil
		})
	}

	// SIGHUP trigger for manual reload.
	if a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str(xglog.FieldEvent, "catalog.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading catalog")
					// Reload logs its own failure and keeps the previous catalog.
					_ = a.holder.Reload(ctx)
				}
			}
		})
	}

	// Main server lifecycle. Its end stops every other subsystem.
	g.Go(func() error {
		defer cancel()
		return a.manager.Start(ctx)
	})

	return g.Wait()
}

func (a *App) writeManifest(ctx context.Context, c *catalog.Catalog) {
	m := manifest.Build(c, a.opts.Builder, a.now())
	if err := manifest.Write(ctx, a.opts.ManifestPath, m); err != nil {
		a.logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "manifest.write_failed").
			Str(xglog.FieldPath, a.opts.ManifestPath).
			Msg("failed to write manifest")
	}
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ManuGH/fontview/internal/api"
	"github.com/ManuGH/fontview/internal/api/middleware"
	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/config"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/health"
	xglog "github.com/ManuGH/fontview/internal/log"
	"github.com/ManuGH/fontview/internal/session"
	"github.com/ManuGH/fontview/internal/telemetry"
)

// Runtime is the fully wired process.
type Runtime struct {
	App      *App
	Manager  Manager
	Server   *api.Server
	Sessions *session.Service
	Holder   *catalog.Holder
}

// Bootstrap loads the catalog and wires every component described by cfg.
// metricsHandler is mounted at /metrics when non-nil.
func Bootstrap(ctx context.Context, cfg config.AppConfig, metricsHandler http.Handler) (*Runtime, error) {
	logger := xglog.WithComponent("daemon")

	initial, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	holder := catalog.NewHolder(cfg.Catalog.Path, initial)
	logger.Info().
		Str(xglog.FieldEvent, "catalog.loaded").
		Str(xglog.FieldPath, cfg.Catalog.Path).
		Int(xglog.FieldCount, initial.Len()).
		Msg("catalog loaded")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Log.Service,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Telemetry.Environment,
		ExporterType:   cfg.Telemetry.ExporterType,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	builder := css2.NewBuilder(cfg.Fonts.BaseURL)
	sessions := session.NewService(holder, session.Options{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		Builder:         builder,
		Presets:         catalog.Presets(cfg.Presets),
		DemoText:        cfg.Preview.DemoText,
		DemoTexts:       cfg.Preview.DemoTexts,
	})

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewFileChecker("catalog_file", cfg.Catalog.Path))
	hm.RegisterChecker(health.NewCountChecker("catalog_typefaces", func() int { return holder.Get().Len() }))

	stack := middleware.StackConfig{
		AllowedOrigins:        cfg.CORS.AllowedOrigins,
		EnableCORS:            len(cfg.CORS.AllowedOrigins) > 0,
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		EnableLogging:         true,
		EnableRateLimit:       cfg.RateLimit.Enabled,
		RequestsPerMinute:     cfg.RateLimit.RequestsPerMinute,
	}
	if cfg.Telemetry.Enabled {
		stack.TracingService = cfg.Log.Service
	}

	srv := api.New(api.Config{
		ListenAddr:     cfg.ListenAddr,
		Stack:          stack,
		MetricsHandler: metricsHandler,
	}, sessions, hm)

	mgr, err := NewManager(srv, cfg.ShutdownTimeout)
	if err != nil {
		sessions.Close()
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	// LIFO: sessions stop before the tracer flushes.
	mgr.RegisterShutdownHook("telemetry", tp.Shutdown)
	mgr.RegisterShutdownHook("sessions", func(context.Context) error {
		sessions.Close()
		return nil
	})

	app := NewApp(mgr, holder, AppOptions{
		Watch:        cfg.Catalog.Watch,
		ManifestPath: cfg.Catalog.Manifest,
		Builder:      builder,
	})

	return &Runtime{
		App:      app,
		Manager:  mgr,
		Server:   srv,
		Sessions: sessions,
		Holder:   holder,
	}, nil
}

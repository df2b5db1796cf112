// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ManuGH/fontview/internal/validate"
)

var (
	validLogLevels = []string{"trace", "debug", "info", "warn", "error"}
	validExporters = []string{"grpc", "http"}
)

// Validate validates an AppConfig using the centralized validation package
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.ListenAddr("listenAddr", cfg.ListenAddr)
	v.MinDuration("shutdownTimeout", cfg.ShutdownTimeout, time.Second)

	v.OneOf("log.level", cfg.Log.Level, validLogLevels)
	v.NotEmpty("log.service", cfg.Log.Service)

	v.File("catalog.path", cfg.Catalog.Path)
	if cfg.Catalog.Manifest != "" && filepath.Clean(cfg.Catalog.Manifest) == filepath.Clean(cfg.Catalog.Path) {
		v.AddError("catalog.manifest", "must differ from catalog.path", cfg.Catalog.Manifest)
	}
	v.URL("fonts.baseURL", cfg.Fonts.BaseURL, []string{"http", "https"})

	v.MinDuration("session.ttl", cfg.Session.TTL, time.Minute)
	v.MinDuration("session.cleanupInterval", cfg.Session.CleanupInterval, time.Second)

	if cfg.RateLimit.Enabled {
		v.Range("rateLimit.requestsPerMinute", cfg.RateLimit.RequestsPerMinute, 1, 100000)
	}

	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "*" {
			continue
		}
		v.URL("cors.allowedOrigins", origin, []string{"http", "https"})
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.ExporterType, validExporters)
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.Fraction("telemetry.samplingRate", cfg.Telemetry.SamplingRate)
	}

	for name, families := range cfg.Presets {
		if strings.TrimSpace(name) == "" {
			v.AddError("presets", "preset name cannot be empty", name)
			continue
		}
		if strings.EqualFold(name, "all") {
			v.AddError("presets", `"all" is reserved`, name)
		}
		if len(families) == 0 {
			v.AddError(fmt.Sprintf("presets.%s", name), "preset lists no families", name)
		}
	}

	return v.Err()
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for fontview.
package config

import "time"

// AppConfig is the resolved runtime configuration. Field tags name the YAML key and
// the environment variable (prefixed with EnvPrefix) that overrides it.
type AppConfig struct {
	ListenAddr      string        `yaml:"listenAddr" env:"LISTEN_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`

	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Catalog   CatalogConfig   `yaml:"catalog" envPrefix:"CATALOG_"`
	Fonts     FontsConfig     `yaml:"fonts" envPrefix:"FONTS_"`
	Session   SessionConfig   `yaml:"session" envPrefix:"SESSION_"`
	Preview   PreviewConfig   `yaml:"preview" envPrefix:"PREVIEW_"`
	RateLimit RateLimitConfig `yaml:"rateLimit" envPrefix:"RATE_LIMIT_"`
	CORS      CORSConfig      `yaml:"cors" envPrefix:"CORS_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`

	// Presets maps a preset name to its member families. File only.
	Presets map[string][]string `yaml:"presets"`

	// Version is stamped from the binary, never read from file or env.
	Version string `yaml:"-"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level   string `yaml:"level" env:"LEVEL"`
	Service string `yaml:"service" env:"SERVICE"`
}

// CatalogConfig locates the typeface metadata document.
type CatalogConfig struct {
	Path  string `yaml:"path" env:"PATH"`
	Watch bool   `yaml:"watch" env:"WATCH"`

	// Manifest, when set, is rewritten with every typeface's default request on
	// startup and after each successful reload.
	Manifest string `yaml:"manifest" env:"MANIFEST"`
}

// FontsConfig points at the font-delivery endpoint.
type FontsConfig struct {
	BaseURL string `yaml:"baseURL" env:"BASE_URL"`
}

// SessionConfig bounds session lifetime.
type SessionConfig struct {
	TTL             time.Duration `yaml:"ttl" env:"TTL"`
	CleanupInterval time.Duration `yaml:"cleanupInterval" env:"CLEANUP_INTERVAL"`
}

// PreviewConfig holds the sample texts rendered in previews.
type PreviewConfig struct {
	DemoText  string            `yaml:"demoText" env:"DEMO_TEXT"`
	DemoTexts map[string]string `yaml:"demoTexts" env:"DEMO_TEXTS"`
}

// RateLimitConfig throttles API clients per IP.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" env:"ENABLED"`
	RequestsPerMinute int  `yaml:"requestsPerMinute" env:"REQUESTS_PER_MINUTE"`
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	Environment  string  `yaml:"environment" env:"ENVIRONMENT"`
	ExporterType string  `yaml:"exporter" env:"EXPORTER"`
	Endpoint     string  `yaml:"endpoint" env:"ENDPOINT"`
	SamplingRate float64 `yaml:"samplingRate" env:"SAMPLING_RATE"`
}

// Defaults returns the configuration used when neither file nor environment set a key.
func Defaults() AppConfig {
	return AppConfig{
		ListenAddr:      ":8080",
		ShutdownTimeout: 10 * time.Second,
		Log: LogConfig{
			Level:   "info",
			Service: "fontview",
		},
		Catalog: CatalogConfig{
			Path:  "catalog.json",
			Watch: true,
		},
		Fonts: FontsConfig{
			BaseURL: "https://fonts.googleapis.com",
		},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 600,
		},
		Telemetry: TelemetryConfig{
			Environment:  "production",
			ExporterType: "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}

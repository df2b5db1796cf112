// SPDX-License-Identifier: MIT

// Package middleware provides the HTTP middleware stack of the fontview API.
package middleware

import (
	xglog "github.com/ManuGH/fontview/internal/log"
	"github.com/go-chi/chi/v5"
)

// StackConfig selects which middlewares wrap the fontview routes.
type StackConfig struct {
	EnableCORS     bool
	AllowedOrigins []string

	EnableSecurityHeaders bool
	CSP                   string

	EnableMetrics bool
	// TracingService names the otelhttp operation; "" turns tracing off.
	TracingService string
	EnableLogging  bool

	EnableRateLimit bool
	// RequestsPerMinute is the per-IP budget when EnableRateLimit is set.
	RequestsPerMinute int
}

// NewRouter returns a chi router wrapped by the middlewares cfg enables.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack installs the middlewares on r, outermost first. Panic recovery and
// request IDs are always on; rate limiting runs innermost so rejected requests
// are still logged and counted.
func ApplyStack(r chi.Router, cfg StackConfig) {
	r.Use(Recoverer)
	r.Use(RequestID)
	if cfg.EnableCORS {
		r.Use(CORS(cfg.AllowedOrigins))
	}
	if cfg.EnableSecurityHeaders {
		r.Use(SecurityHeaders(cfg.CSP))
	}
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	if cfg.TracingService != "" {
		r.Use(OTelHTTP(cfg.TracingService))
	}
	if cfg.EnableLogging {
		r.Use(xglog.Middleware())
	}
	if cfg.EnableRateLimit {
		r.Use(APIRateLimit(cfg.RequestsPerMinute))
	}
}

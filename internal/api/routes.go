// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"
	"net/url"

	"github.com/ManuGH/fontview/internal/api/middleware"
	"github.com/ManuGH/fontview/internal/log"
	"github.com/ManuGH/fontview/internal/telemetry"
	"github.com/go-chi/chi/v5"
)

func (s *Server) routes() http.Handler {
	r := middleware.NewRouter(s.cfg.Stack)

	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
	if s.cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/typefaces", s.handleListTypefaces)
		r.Get("/typefaces/{family}", s.handleGetTypeface)
		r.Get("/facets", s.handleFacets)
		r.Get("/css2", s.handleCSS2)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(sessionContext)
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Put("/filter", s.handleSetFilter)
			r.Put("/typeface", s.handleSelectTypeface)
			r.Delete("/typeface", s.handleClearTypeface)
			r.Put("/axes/{tag}", s.handleSetAxis)
			r.Get("/preview", s.handleGetPreview)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", RequestID: log.RequestIDFromContext(r.Context())})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method_not_allowed", RequestID: log.RequestIDFromContext(r.Context())})
	})
	return r
}

// sessionContext copies the session id into the log context and the active span.
func sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		middleware.AddSpanAttributes(r, telemetry.SessionAttributes(id)...)
		ctx := log.ContextWithSessionID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// pathParam returns a decoded URL parameter. Family names contain spaces and
// arrive percent-encoded when the client escaped them.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

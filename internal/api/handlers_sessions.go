// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ManuGH/fontview/internal/api/middleware"
	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/font"
	"github.com/ManuGH/fontview/internal/session"
	"github.com/ManuGH/fontview/internal/telemetry"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 64 << 10

type selectRequest struct {
	Family string `json:"family"`
}

type axisRequest struct {
	Value *float64 `json:"value"`
}

type filterResponse struct {
	Typefaces []*font.Descriptor `json:"typefaces"`
	Session   session.View       `json:"session"`
}

// decodeBody strictly decodes a single JSON object into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequest)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON object", errBadRequest)
	}
	return nil
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	v := s.sessions.Create(r.Context())
	w.Header().Set("Location", "/api/v1/sessions/"+v.ID)
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	v, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	var f catalog.Filter
	if err := decodeBody(w, r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	list, v, err := s.sessions.SetFilter(r.Context(), chi.URLParam(r, "id"), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filterResponse{Typefaces: list, Session: v})
}

func (s *Server) handleSelectTypeface(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	family := strings.TrimSpace(req.Family)
	if family == "" {
		writeError(w, r, fmt.Errorf("%w: family is required", errBadRequest))
		return
	}

	v, err := s.sessions.Select(r.Context(), chi.URLParam(r, "id"), family)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.AddSpanAttributes(r, telemetry.TypefaceAttributes(v.Selected, v.Preview.Kind)...)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleClearTypeface(w http.ResponseWriter, r *http.Request) {
	v, err := s.sessions.ClearSelection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSetAxis(w http.ResponseWriter, r *http.Request) {
	var req axisRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Value == nil {
		writeError(w, r, fmt.Errorf("%w: value is required", errBadRequest))
		return
	}

	tag := chi.URLParam(r, "tag")
	middleware.AddSpanAttributes(r, telemetry.AxisAttributes(tag, *req.Value)...)

	v, err := s.sessions.SetAxis(r.Context(), chi.URLParam(r, "id"), tag, *req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	p, err := s.sessions.Preview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

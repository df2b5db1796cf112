// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/ManuGH/fontview/internal/api/middleware"
	"github.com/ManuGH/fontview/internal/axis"
	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/font"
	"github.com/ManuGH/fontview/internal/preview"
	"github.com/ManuGH/fontview/internal/telemetry"
)

type typefaceList struct {
	Count     int                `json:"count"`
	Filter    catalog.Filter     `json:"filter"`
	Typefaces []*font.Descriptor `json:"typefaces"`
}

type typefaceDetail struct {
	Descriptor *font.Descriptor `json:"descriptor"`
	Tags       []string         `json:"tags"`
	Controls   []font.Control   `json:"controls"`
	Preview    preview.Preview  `json:"preview"`
}

func filterFromQuery(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	return catalog.Filter{
		Subset:   q.Get("subset"),
		Category: q.Get("category"),
		Preset:   q.Get("preset"),
		Query:    q.Get("q"),
	}.Normalize()
}

func (s *Server) handleListTypefaces(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)
	list, err := catalog.Apply(s.sessions.Catalog(), f, s.sessions.Presets())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, typefaceList{Count: len(list), Filter: f, Typefaces: list})
}

func (s *Server) handleGetTypeface(w http.ResponseWriter, r *http.Request) {
	family := pathParam(r, "family")
	middleware.AddSpanAttributes(r, telemetry.TypefaceAttributes(family, "")...)

	tf, err := s.sessions.Typeface(family)
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, _ := s.sessions.Catalog().Lookup(family)
	p, err := s.sessions.PreviewAt(family, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tags := css2.Tags(tf)
	writeJSON(w, http.StatusOK, typefaceDetail{
		Descriptor: d,
		Tags:       tags,
		Controls:   tf.Controls(tags),
		Preview:    p,
	})
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.FacetsOf(s.sessions.Catalog(), s.sessions.Presets()))
}

// handleCSS2 serves a stateless preview: family at its defaults with every other
// query parameter read as an axis override, e.g. ?family=Roboto+Flex&wght=700.
func (s *Server) handleCSS2(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	family := strings.TrimSpace(q.Get("family"))
	if family == "" {
		writeError(w, r, fmt.Errorf("%w: family is required", errBadRequest))
		return
	}

	overrides := axis.State{}
	for tag, values := range q {
		if tag == "family" {
			continue
		}
		v, err := strconv.ParseFloat(values[len(values)-1], 64)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: axis %q: %v", errBadRequest, tag, err))
			return
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			writeError(w, r, fmt.Errorf("%w: axis %q: value must be finite", errBadRequest, tag))
			return
		}
		overrides[tag] = v
	}

	p, err := s.sessions.PreviewAt(family, overrides)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.AddSpanAttributes(r, telemetry.TypefaceAttributes(p.Family, p.Kind)...)
	writeJSON(w, http.StatusOK, p)
}

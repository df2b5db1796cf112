// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package session implements browsing sessions: one filter, at most one selected
// typeface and the axis state of that typeface, owned by a single client.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/ManuGH/fontview/internal/axis"
	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/font"
	"github.com/ManuGH/fontview/internal/metrics"
	"github.com/ManuGH/fontview/internal/preview"
	"github.com/ManuGH/fontview/internal/telemetry"
)

// Session is one client's browsing state. All mutations hold mu, so a typeface
// reset and its preview recomputation complete before the next axis update on the
// same session is applied.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	opts    *Options
	filter  catalog.Filter
	manager *axis.Manager
	preview preview.Preview
}

// View is a consistent snapshot of a session.
type View struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Filter    catalog.Filter  `json:"filter"`
	Selected  string          `json:"selected,omitempty"`
	Controls  []font.Control  `json:"controls"`
	Preview   preview.Preview `json:"preview"`
}

func newSession(id string, now time.Time, opts *Options) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: now,
		opts:      opts,
		filter:    catalog.Filter{}.Normalize(),
	}
	s.manager = axis.NewManager(s.recompute)
	s.preview = preview.Compute(opts.Builder, nil, axis.State{}, s.demoText())
	return s
}

// recompute is the axis manager's observer; it runs inside the caller's lock.
func (s *Session) recompute(tf *font.Typeface, st axis.State) {
	s.preview = preview.Compute(s.opts.Builder, tf, st, s.demoText())
	metrics.RecordURLBuild(s.preview.Kind)
	telemetry.RecordURLBuild(context.Background(), s.preview.Kind)
}

func (s *Session) demoText() string {
	return preview.DemoText(s.filter.Subset, s.opts.DemoTexts, s.opts.DemoText)
}

// view must be called with mu held.
func (s *Session) view() View {
	v := View{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Filter:    s.filter,
		Controls:  []font.Control{},
		Preview:   s.preview,
	}
	if tf := s.manager.Typeface(); tf != nil {
		v.Selected = tf.Family
		v.Controls = tf.Controls(css2.Tags(tf))
	}
	return v
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/fontview/internal/axis"
	"github.com/ManuGH/fontview/internal/cache"
	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/font"
	xglog "github.com/ManuGH/fontview/internal/log"
	"github.com/ManuGH/fontview/internal/metrics"
	"github.com/ManuGH/fontview/internal/preview"
	"github.com/ManuGH/fontview/internal/telemetry"
	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound signals an unknown or expired session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTypefaceNotFound signals a family that is not in the active catalog.
	ErrTypefaceNotFound = errors.New("typeface not found")
)

// CatalogSource yields the active catalog. *catalog.Holder implements it.
type CatalogSource interface {
	Get() *catalog.Catalog
}

// Options configures a Service.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	Builder         css2.Builder
	Presets         catalog.Presets
	DemoText        string
	DemoTexts       map[string]string
}

// Service creates, mutates and expires sessions.
type Service struct {
	catalogs CatalogSource
	opts     Options
	store    *cache.Memory[*Session]
	now      func() time.Time
}

// NewService returns a Service. Close must be called to stop the expiry janitor.
func NewService(src CatalogSource, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = time.Minute
	}
	if opts.Builder.Base == "" {
		opts.Builder = css2.NewBuilder("")
	}
	if opts.DemoTexts == nil {
		opts.DemoTexts = preview.DefaultDemoTexts
	}

	s := &Service{catalogs: src, opts: opts, now: time.Now}
	s.store = cache.NewMemory(opts.CleanupInterval, func(id string, _ *Session) {
		logger := xglog.WithComponent("session")
		logger.Debug().
			Str(xglog.FieldEvent, "session.expired").
			Str(xglog.FieldSessionID, id).
			Msg("session expired")
		metrics.SetSessionsActive(s.store.Len())
	})
	return s
}

// Close stops background expiry.
func (s *Service) Close() {
	s.store.Stop()
}

// Catalog returns the active catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalogs.Get()
}

// Presets returns the configured presets.
func (s *Service) Presets() catalog.Presets {
	return s.opts.Presets
}

// Builder returns the URL builder sessions use.
func (s *Service) Builder() css2.Builder {
	return s.opts.Builder
}

// Create starts a new session with no selection and an all-matching filter.
func (s *Service) Create(ctx context.Context) View {
	id := uuid.New().String()
	sess := newSession(id, s.now().UTC(), &s.opts)
	s.store.Set(id, sess, s.opts.TTL)
	metrics.SetSessionsActive(s.store.Len())

	logger := xglog.WithComponentFromContext(ctx, "session")
	logger.Info().
		Str(xglog.FieldEvent, "session.created").
		Str(xglog.FieldSessionID, id).
		Msg("session created")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view()
}

func (s *Service) lookup(id string) (*Session, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Get returns a snapshot of the session.
func (s *Service) Get(_ context.Context, id string) (View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Delete ends the session.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !s.store.Delete(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	metrics.SetSessionsActive(s.store.Len())
	logger := xglog.WithComponentFromContext(ctx, "session")
	logger.Info().
		Str(xglog.FieldEvent, "session.deleted").
		Str(xglog.FieldSessionID, id).
		Msg("session deleted")
	return nil
}

// SetFilter replaces the session filter and returns the matching typefaces. The
// selection is kept even when it no longer matches; the demo text follows the subset.
func (s *Service) SetFilter(_ context.Context, id string, f catalog.Filter) ([]*font.Descriptor, View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, View{}, err
	}
	f = f.Normalize()
	list, err := catalog.Apply(s.catalogs.Get(), f, s.opts.Presets)
	if err != nil {
		return nil, View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.filter = f
	sess.preview.DemoText = sess.demoText()
	return list, sess.view(), nil
}

// Select makes family the session's typeface and resets every axis to its default.
// Unknown families return ErrTypefaceNotFound and malformed axis data returns the
// *font.DataError; in both cases the previous selection stays in place.
func (s *Service) Select(ctx context.Context, id, family string) (View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return View{}, err
	}
	logger := xglog.WithComponentFromContext(ctx, "session")

	d, ok := s.catalogs.Get().Lookup(family)
	if !ok {
		metrics.RecordTypefaceSelection("not_found")
		return View{}, fmt.Errorf("%w: %q", ErrTypefaceNotFound, family)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.manager.Reset(d); err != nil {
		metrics.RecordTypefaceSelection("malformed")
		logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "session.select_failed").
			Str(xglog.FieldSessionID, id).
			Str(xglog.FieldFamily, family).
			Msg("typeface has malformed axis data")
		return View{}, fmt.Errorf("select %q: %w", family, err)
	}
	metrics.RecordTypefaceSelection("success")

	logger.Debug().
		Str(xglog.FieldEvent, "session.typeface_selected").
		Str(xglog.FieldSessionID, id).
		Str(xglog.FieldFamily, family).
		Str(xglog.FieldURL, sess.preview.URL).
		Msg("typeface selected")
	return sess.view(), nil
}

// ClearSelection drops the selected typeface; the preview URL becomes empty.
func (s *Service) ClearSelection(_ context.Context, id string) (View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.manager.Reset(nil); err != nil {
		return View{}, err
	}
	return sess.view(), nil
}

// SetAxis changes one axis value of the selected typeface. Tags the typeface does
// not declare return axis.ErrUnknownAxis.
func (s *Service) SetAxis(ctx context.Context, id, tag string, value float64) (View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.manager.Set(tag, value); err != nil {
		metrics.RecordAxisUpdate("unknown_axis")
		telemetry.RecordAxisUpdate(ctx, tag, "unknown_axis")
		return View{}, err
	}
	metrics.RecordAxisUpdate("success")
	telemetry.RecordAxisUpdate(ctx, tag, "success")

	logger := xglog.WithComponentFromContext(ctx, "session")
	logger.Debug().
		Str(xglog.FieldEvent, "session.axis_set").
		Str(xglog.FieldSessionID, id).
		Str(xglog.FieldAxisTag, tag).
		Float64("value", value).
		Msg("axis value set")
	return sess.view(), nil
}

// Preview returns the session's current preview.
func (s *Service) Preview(_ context.Context, id string) (preview.Preview, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return preview.Preview{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.preview, nil
}

// Typeface parses family from the active catalog without touching any session.
func (s *Service) Typeface(family string) (*font.Typeface, error) {
	d, ok := s.catalogs.Get().Lookup(family)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypefaceNotFound, family)
	}
	return font.Parse(d)
}

// PreviewAt computes a stateless preview of family at its defaults with overrides
// applied. Overrides for undeclared tags return axis.ErrUnknownAxis.
func (s *Service) PreviewAt(family string, overrides axis.State) (preview.Preview, error) {
	d, ok := s.catalogs.Get().Lookup(family)
	if !ok {
		return preview.Preview{}, fmt.Errorf("%w: %q", ErrTypefaceNotFound, family)
	}
	m := axis.NewManager()
	if err := m.Reset(d); err != nil {
		return preview.Preview{}, err
	}
	for _, tag := range overrides.Keys() {
		if err := m.Set(tag, overrides[tag]); err != nil {
			return preview.Preview{}, err
		}
	}
	p := preview.Compute(s.opts.Builder, m.Typeface(), m.State(), preview.DemoText(catalog.All, s.opts.DemoTexts, s.opts.DemoText))
	metrics.RecordURLBuild(p.Kind)
	telemetry.RecordURLBuild(context.Background(), p.Kind)
	return p, nil
}

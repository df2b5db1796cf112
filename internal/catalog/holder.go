// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	xglog "github.com/ManuGH/fontview/internal/log"
	"github.com/ManuGH/fontview/internal/metrics"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Holder holds the active catalog and swaps it atomically on reload.
type Holder struct {
	mu      sync.RWMutex
	current *Catalog
	path    string
	logger  zerolog.Logger

	// Debounce window for file events and an upper bound on reload frequency.
	debounce time.Duration
	limiter  *rate.Limiter

	listenersMu sync.RWMutex
	listeners   []chan<- *Catalog
}

// NewHolder wraps an initial catalog loaded from path. path may be empty when the
// catalog did not come from a file; Reload and Watch are then no-ops.
func NewHolder(path string, initial *Catalog) *Holder {
	metrics.SetCatalogTypefaces(initial.Len())
	return &Holder{
		current:  initial,
		path:     path,
		logger:   xglog.WithComponent("catalog"),
		debounce: 500 * time.Millisecond,
		limiter:  rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Get returns the active catalog.
func (h *Holder) Get() *Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload re-reads the catalog file. On failure the active catalog is kept.
func (h *Holder) Reload(_ context.Context) error {
	if h.path == "" {
		return nil
	}
	next, err := LoadFile(h.path)
	metrics.RecordCatalogReload(err)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "catalog.reload_failed").
			Str(xglog.FieldPath, h.path).
			Msg("catalog reload failed, keeping previous catalog")
		return fmt.Errorf("reload catalog: %w", err)
	}

	h.mu.Lock()
	prev := h.current
	h.current = next
	h.mu.Unlock()

	metrics.SetCatalogTypefaces(next.Len())
	h.notifyListeners(next)

	h.logger.Info().
		Str(xglog.FieldEvent, "catalog.reloaded").
		Int("previous", prev.Len()).
		Int(xglog.FieldCount, next.Len()).
		Msg("catalog reloaded")
	return nil
}

// Watch reloads the catalog whenever its file changes. It blocks until ctx is done.
// The parent directory is watched so that editors replacing the file by rename are seen.
func (h *Holder) Watch(ctx context.Context) error {
	if h.path == "" {
		h.logger.Info().
			Str(xglog.FieldEvent, "catalog.watcher_disabled").
			Msg("catalog watcher disabled (no catalog file)")
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(h.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch catalog dir: %w", err)
	}

	h.logger.Info().
		Str(xglog.FieldEvent, "catalog.watcher_started").
		Str(xglog.FieldPath, target).
		Msg("watching catalog file for changes")

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(xglog.FieldEvent, "catalog.watcher_stopped").Msg("catalog watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			h.logger.Debug().
				Str(xglog.FieldEvent, "catalog.file_changed").
				Str("op", event.Op.String()).
				Msg("catalog file changed")

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(h.debounce, func() {
				if err := h.limiter.Wait(ctx); err != nil {
					return
				}
				_ = h.Reload(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "catalog.watcher_error").
				Msg("catalog watcher error")
		}
	}
}

// RegisterListener registers a channel that receives every successfully reloaded catalog.
func (h *Holder) RegisterListener(ch chan<- *Catalog) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notifyListeners(c *Catalog) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, ch := range h.listeners {
		select {
		case ch <- c:
		default:
			h.logger.Warn().
				Str(xglog.FieldEvent, "catalog.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}

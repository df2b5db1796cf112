// SPDX-License-Identifier: MIT

// Package manifest precomputes the default css2 request of every catalog typeface.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ManuGH/fontview/internal/axis"
	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/font"
	xglog "github.com/ManuGH/fontview/internal/log"
	"github.com/google/renameio/v2"
)

// Entry is one typeface at its default axis state. Entries whose axis data is
// malformed carry Error and no URL.
type Entry struct {
	Family string     `json:"family"`
	Kind   string     `json:"kind"`
	URL    string     `json:"url,omitempty"`
	Tags   []string   `json:"tags,omitempty"`
	State  axis.State `json:"axes,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// Manifest lists entries in family order.
type Manifest struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Base        string    `json:"base"`
	Count       int       `json:"count"`
	Failed      int       `json:"failed"`
	Entries     []Entry   `json:"entries"`
}

// Build parses every descriptor of c and records its default request.
func Build(c *catalog.Catalog, b css2.Builder, now time.Time) Manifest {
	m := Manifest{
		GeneratedAt: now.UTC(),
		Base:        b.Base,
		Entries:     make([]Entry, 0, c.Len()),
	}
	for _, d := range c.All() {
		e := Entry{Family: d.Family}
		tf, err := font.Parse(d)
		if err != nil {
			e.Kind = css2.KindNone
			e.Error = err.Error()
			m.Failed++
		} else {
			st := axis.Defaults(tf)
			e.Kind = css2.Kind(tf)
			e.URL = b.Build(tf, st)
			e.Tags = css2.Tags(tf)
			e.State = st
		}
		m.Entries = append(m.Entries, e)
	}
	m.Count = len(m.Entries)
	return m
}

// Write stores m as indented JSON at path, atomically replacing any previous file.
func Write(ctx context.Context, path string, m Manifest) error {
	logger := xglog.WithComponentFromContext(ctx, "manifest")

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending manifest file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending manifest file")
		}
	}()

	if _, err := pendingFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write manifest data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace manifest file: %w", err)
	}

	logger.Info().
		Str(xglog.FieldEvent, "manifest.written").
		Str(xglog.FieldPath, path).
		Int(xglog.FieldCount, m.Count).
		Int("failed", m.Failed).
		Msg("manifest written")
	return nil
}

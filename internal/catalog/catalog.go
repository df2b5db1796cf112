// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package catalog holds the typeface catalog and the filter/lookup helpers that
// feed typeface selection.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ManuGH/fontview/internal/font"
)

var (
	// ErrDuplicateFamily is returned when two records share a family name.
	ErrDuplicateFamily = errors.New("duplicate family")
	// ErrEmptyFamily is returned for a record without a family name.
	ErrEmptyFamily = errors.New("empty family name")
)

// Catalog is an immutable family-keyed set of descriptors.
type Catalog struct {
	byFamily map[string]*font.Descriptor
	families []string
}

// New builds a catalog. Family names must be non-empty and unique.
func New(descriptors []*font.Descriptor) (*Catalog, error) {
	c := &Catalog{
		byFamily: make(map[string]*font.Descriptor, len(descriptors)),
		families: make([]string, 0, len(descriptors)),
	}
	for _, d := range descriptors {
		if d == nil {
			continue
		}
		if strings.TrimSpace(d.Family) == "" {
			return nil, ErrEmptyFamily
		}
		if _, dup := c.byFamily[d.Family]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFamily, d.Family)
		}
		c.byFamily[d.Family] = d
		c.families = append(c.families, d.Family)
	}
	slices.Sort(c.families)
	return c, nil
}

// Len returns the number of typefaces.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.families)
}

// Lookup returns the descriptor for family.
func (c *Catalog) Lookup(family string) (*font.Descriptor, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.byFamily[family]
	return d, ok
}

// Families returns all family names in ascending order.
func (c *Catalog) Families() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.families)
}

// All returns every descriptor ordered by family.
func (c *Catalog) All() []*font.Descriptor {
	if c == nil {
		return nil
	}
	out := make([]*font.Descriptor, 0, len(c.families))
	for _, f := range c.families {
		out = append(out, c.byFamily[f])
	}
	return out
}

// record is one metadata entry. The source has used both "variable" and
// "isVariable" for the same flag.
type record struct {
	font.Descriptor
	Variable *bool `json:"variable,omitempty"`
}

func (r record) descriptor() *font.Descriptor {
	d := r.Descriptor
	if r.Variable != nil {
		d.IsVariable = d.IsVariable || *r.Variable
	}
	return &d
}

// Load decodes catalog metadata. The document is either an object keyed by font id
// (the metadata package layout) or a plain array of records.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("decode catalog: empty document")
	}

	var records []record
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	case '{':
		keyed := map[string]record{}
		if err := json.Unmarshal(data, &keyed); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		ids := make([]string, 0, len(keyed))
		for id := range keyed {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			records = append(records, keyed[id])
		}
	default:
		return nil, fmt.Errorf("decode catalog: unexpected leading byte %q", data[0])
	}

	ds := make([]*font.Descriptor, 0, len(records))
	for _, rec := range records {
		ds = append(ds, rec.descriptor())
	}
	return New(ds)
}

// LoadFile reads a catalog from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	// #nosec G304 -- catalog path is provided by the operator via config
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

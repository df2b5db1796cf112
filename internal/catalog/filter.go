// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ManuGH/fontview/internal/font"
	"golang.org/x/text/cases"
)

// All is the wildcard value for every filter dimension.
const All = "all"

// ErrUnknownPreset is returned when a filter names a preset that is not configured.
var ErrUnknownPreset = errors.New("unknown preset")

// Presets maps a preset name to its member families.
type Presets map[string][]string

// Names returns the preset names in ascending order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Filter narrows the catalog. Empty fields and "all" match everything.
type Filter struct {
	Subset   string `json:"subset"`
	Category string `json:"category"`
	Preset   string `json:"preset"`
	Query    string `json:"q"`
}

// Normalize replaces empty dimensions with All and trims the query.
func (f Filter) Normalize() Filter {
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return All
		}
		return s
	}
	return Filter{
		Subset:   norm(f.Subset),
		Category: norm(f.Category),
		Preset:   norm(f.Preset),
		Query:    strings.TrimSpace(f.Query),
	}
}

// Apply returns the descriptors matching f, ordered by family.
func Apply(c *Catalog, f Filter, presets Presets) ([]*font.Descriptor, error) {
	f = f.Normalize()

	var members map[string]struct{}
	if f.Preset != All {
		families, ok := presets[f.Preset]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, f.Preset)
		}
		members = make(map[string]struct{}, len(families))
		for _, fam := range families {
			members[fam] = struct{}{}
		}
	}

	// A Caser is stateful; one per call.
	fold := cases.Fold()
	query := fold.String(f.Query)

	out := make([]*font.Descriptor, 0)
	for _, d := range c.All() {
		if f.Subset != All && !d.HasSubset(f.Subset) {
			continue
		}
		if f.Category != All && d.Category != f.Category {
			continue
		}
		if members != nil {
			if _, ok := members[d.Family]; !ok {
				continue
			}
		}
		if query != "" && !strings.Contains(fold.String(d.Family), query) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Facet is one selectable filter value with the number of typefaces it matches.
type Facet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Facets lists the values offered by each filter dimension.
type Facets struct {
	Subsets    []Facet `json:"subsets"`
	Categories []Facet `json:"categories"`
	Presets    []Facet `json:"presets"`
}

// FacetsOf counts subsets, categories and presets over c. Each list starts with
// All carrying the catalog size; the rest is ordered by name.
func FacetsOf(c *Catalog, presets Presets) Facets {
	subsets := map[string]int{}
	categories := map[string]int{}
	for _, d := range c.All() {
		for _, s := range d.Subsets {
			subsets[s]++
		}
		categories[d.Category]++
	}

	presetCounts := make(map[string]int, len(presets))
	for name, families := range presets {
		n := 0
		for _, fam := range families {
			if _, ok := c.Lookup(fam); ok {
				n++
			}
		}
		presetCounts[name] = n
	}

	total := c.Len()
	return Facets{
		Subsets:    facetList(total, subsets),
		Categories: facetList(total, categories),
		Presets:    facetList(total, presetCounts),
	}
}

func facetList(total int, counts map[string]int) []Facet {
	names := make([]string, 0, len(counts))
	for n := range counts {
		if n == All {
			continue
		}
		names = append(names, n)
	}
	slices.Sort(names)

	out := make([]Facet, 0, len(names)+1)
	out = append(out, Facet{Name: All, Count: total})
	for _, n := range names {
		out = append(out, Facet{Name: n, Count: counts[n]})
	}
	return out
}

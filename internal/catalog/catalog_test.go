// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package catalog

import (
	"strings"
	"testing"

	"github.com/ManuGH/fontview/internal/font"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadFile("testdata/catalog.json")
	require.NoError(t, err)
	return c
}

func families(ds []*font.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Family)
	}
	return out
}

func TestLoadFile_KeyedObject(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{"Lora", "Noto Naskh Arabic", "Open Sans", "Roboto Flex"}, c.Families())

	rf, ok := c.Lookup("Roboto Flex")
	require.True(t, ok)
	assert.True(t, rf.IsVariable, `"variable" is accepted as an alias of "isVariable"`)
	assert.Equal(t, font.Decimal("-200"), rf.Axes["GRAD"].Min)
	assert.Equal(t, []float64{0, 1}, rf.Axes["ital"].Values)

	_, ok = c.Lookup("Comic Sans")
	assert.False(t, ok)
}

func TestLoad_Array(t *testing.T) {
	doc := `[{"family":"Inter","category":"sans-serif","subsets":["latin"]},
	         {"family":"Lato","category":"sans-serif","subsets":["latin"]}]`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Inter", "Lato"}, c.Families())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"duplicate family", `[{"family":"Inter"},{"family":"Inter"}]`, ErrDuplicateFamily},
		{"empty family", `[{"family":" "}]`, ErrEmptyFamily},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Load(strings.NewReader(""))
	assert.Error(t, err)
	_, err = Load(strings.NewReader(`"nope"`))
	assert.Error(t, err)
	_, err = LoadFile("testdata/missing.json")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	c := loadTestCatalog(t)
	presets := Presets{"editorial": {"Lora", "Open Sans", "Not In Catalog"}}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter matches all", Filter{}, []string{"Lora", "Noto Naskh Arabic", "Open Sans", "Roboto Flex"}},
		{"explicit all", Filter{Subset: All, Category: All, Preset: All}, []string{"Lora", "Noto Naskh Arabic", "Open Sans", "Roboto Flex"}},
		{"subset", Filter{Subset: "cyrillic"}, []string{"Open Sans", "Roboto Flex"}},
		{"category", Filter{Category: "serif"}, []string{"Lora", "Noto Naskh Arabic"}},
		{"subset and category", Filter{Subset: "arabic", Category: "serif"}, []string{"Noto Naskh Arabic"}},
		{"preset", Filter{Preset: "editorial"}, []string{"Lora", "Open Sans"}},
		{"query folds case", Filter{Query: "ROBOTO"}, []string{"Roboto Flex"}},
		{"query substring", Filter{Query: "o"}, []string{"Lora", "Noto Naskh Arabic", "Open Sans", "Roboto Flex"}},
		{"no match", Filter{Subset: "khmer"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(c, tt.filter, presets)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, families(got)); diff != "" {
				t.Errorf("families mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_UnknownPreset(t *testing.T) {
	c := loadTestCatalog(t)
	_, err := Apply(c, Filter{Preset: "nope"}, nil)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestFacetsOf(t *testing.T) {
	c := loadTestCatalog(t)
	got := FacetsOf(c, Presets{"editorial": {"Lora", "Open Sans", "Not In Catalog"}})

	want := Facets{
		Subsets: []Facet{
			{All, 4}, {"arabic", 1}, {"cyrillic", 2}, {"greek", 1}, {"latin", 4}, {"vietnamese", 1},
		},
		Categories: []Facet{{All, 4}, {"sans-serif", 2}, {"serif", 2}},
		Presets:    []Facet{{All, 4}, {"editorial", 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("facets mismatch (-want +got):\n%s", diff)
	}
}

func TestPresets_Names(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Presets{"b": nil, "a": nil}.Names())
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.Zero(t, c.Len())
	assert.Nil(t, c.Families())
	_, ok := c.Lookup("x")
	assert.False(t, ok)
}

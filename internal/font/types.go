// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package font models catalog typefaces and their variable-axis definitions.
//
// A Descriptor is the record as delivered by the metadata source, with numeric axis
// fields still in their decimal-string form. Parse turns it into a Typeface whose axes
// are one of two variants: Enumerated (a discrete list of allowed values) or
// Continuous (a min/max range with a step).
package font

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decimal is a numeric field kept in its source text form until Parse.
// It decodes from either a JSON string or a JSON number.
type Decimal string

// UnmarshalJSON accepts "400", 400 and 400.5 alike.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decimal: %w", err)
	}
	*d = Decimal(n.String())
	return nil
}

// RawAxis is one axis entry of a Descriptor.
type RawAxis struct {
	Min     Decimal   `json:"min"`
	Max     Decimal   `json:"max"`
	Default Decimal   `json:"default"`
	Step    Decimal   `json:"step,omitempty"`
	Values  []float64 `json:"values,omitempty"`
}

// Descriptor is an immutable catalog record keyed by Family.
type Descriptor struct {
	Family     string             `json:"family"`
	Category   string             `json:"category"`
	Subsets    []string           `json:"subsets"`
	IsVariable bool               `json:"isVariable"`
	Axes       map[string]RawAxis `json:"axes,omitempty"`
	Weights    []int              `json:"weights,omitempty"`
	Styles     []string           `json:"styles,omitempty"`
}

// HasSubset reports whether the descriptor supports the given script subset.
func (d *Descriptor) HasSubset(subset string) bool {
	for _, s := range d.Subsets {
		if s == subset {
			return true
		}
	}
	return false
}

// Axis is a parsed axis definition. The only implementations are Enumerated and
// Continuous; switch on the concrete type to handle both.
type Axis interface {
	AxisTag() string
	Range() (min, max float64)
	DefaultValue() float64
	isAxis()
}

// Enumerated is an axis restricted to a discrete ordered set of values, e.g. an
// italic on/off toggle or the named weights of a static family.
type Enumerated struct {
	Tag     string
	Min     float64
	Max     float64
	Default float64
	Values  []float64
}

func (a Enumerated) AxisTag() string           { return a.Tag }
func (a Enumerated) Range() (min, max float64) { return a.Min, a.Max }
func (a Enumerated) DefaultValue() float64     { return a.Default }
func (Enumerated) isAxis()                     {}

// Continuous is a ranged axis governed by Min, Max and Step.
type Continuous struct {
	Tag     string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

func (a Continuous) AxisTag() string           { return a.Tag }
func (a Continuous) Range() (min, max float64) { return a.Min, a.Max }
func (a Continuous) DefaultValue() float64     { return a.Default }
func (Continuous) isAxis()                     {}

// Typeface is a Descriptor with every axis parsed.
type Typeface struct {
	Family     string
	Category   string
	Subsets    []string
	IsVariable bool
	Axes       map[string]Axis
	Weights    []int
	Styles     []string
}

// HasAxes reports whether the typeface declares any axis.
func (t *Typeface) HasAxes() bool {
	return t != nil && len(t.Axes) > 0
}

// StaticWeight is the weight used when rendering a typeface without axes:
// 400 when the family ships it, otherwise its first weight, otherwise 400.
func (t *Typeface) StaticWeight() int {
	if t == nil || len(t.Weights) == 0 {
		return 400
	}
	for _, w := range t.Weights {
		if w == 400 {
			return 400
		}
	}
	return t.Weights[0]
}

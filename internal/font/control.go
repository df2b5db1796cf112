// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package font

import (
	"fmt"
	"slices"
)

// ControlKind names the UI widget an axis is presented with.
type ControlKind string

const (
	ControlPicker ControlKind = "picker" // discrete choice over Values
	ControlSlider ControlKind = "slider" // bounded range
)

// Control describes how one axis is offered to the user. It affects presentation
// only; the URL builder never looks at it.
type Control struct {
	Tag     string      `json:"tag"`
	Kind    ControlKind `json:"kind"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Step    float64     `json:"step"`
	Initial float64     `json:"initial"`
	Values  []float64   `json:"values,omitempty"`
}

// ControlFor classifies an axis. Enumerated axes start at Values[0], which is
// deliberately not the typeface-level default; continuous axes start at the default.
func ControlFor(a Axis) Control {
	switch ax := a.(type) {
	case Enumerated:
		c := Control{
			Tag:    ax.Tag,
			Kind:   ControlPicker,
			Min:    ax.Min,
			Max:    ax.Max,
			Step:   InferStep(ax.Values, 0),
			Values: slices.Clone(ax.Values),
		}
		if len(ax.Values) > 0 {
			c.Initial = ax.Values[0]
		}
		return c
	case Continuous:
		return Control{
			Tag:     ax.Tag,
			Kind:    ControlSlider,
			Min:     ax.Min,
			Max:     ax.Max,
			Step:    InferStep(nil, ax.Step),
			Initial: ax.Default,
		}
	default:
		panic(fmt.Sprintf("font: unknown axis variant %T", a))
	}
}

// Controls returns one Control per axis in the given tag order.
func (t *Typeface) Controls(tags []string) []Control {
	out := make([]Control, 0, len(tags))
	for _, tag := range tags {
		if a, ok := t.Axes[tag]; ok {
			out = append(out, ControlFor(a))
		}
	}
	return out
}

// InferStep returns the smallest positive gap between consecutive values when at
// least two are given, else declared when positive, else 1.
func InferStep(values []float64, declared float64) float64 {
	if len(values) >= 2 {
		step := 0.0
		for i := 1; i < len(values); i++ {
			gap := values[i] - values[i-1]
			if gap < 0 {
				gap = -gap
			}
			if gap > 0 && (step == 0 || gap < step) {
				step = gap
			}
		}
		if step > 0 {
			return step
		}
	}
	if declared > 0 {
		return declared
	}
	return 1
}

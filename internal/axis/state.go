// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package axis holds the chosen variable-axis values of the selected typeface.
package axis

import (
	"maps"
	"slices"

	"github.com/ManuGH/fontview/internal/font"
)

// State maps an axis tag to the user's current value for that axis.
type State map[string]float64

// Defaults returns {tag: default} for every axis of tf. A nil or axis-less typeface
// yields an empty, non-nil state.
func Defaults(tf *font.Typeface) State {
	if tf == nil {
		return State{}
	}
	st := make(State, len(tf.Axes))
	for tag, a := range tf.Axes {
		st[tag] = a.DefaultValue()
	}
	return st
}

// Clone returns an independent copy.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	return maps.Clone(s)
}

// Keys returns the tags in ascending order.
func (s State) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Equal reports whether both states hold the same tags and values.
func (s State) Equal(o State) bool {
	return maps.Equal(s, o)
}

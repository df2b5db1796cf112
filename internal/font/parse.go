// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package font

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	errEmpty     = errors.New("empty value")
	errNotFinite = errors.New("not a finite number")
)

// Parse converts a descriptor into a Typeface. Axes are visited in sorted tag order so
// the reported error is stable. Malformed numbers are never replaced by a fallback.
func Parse(d *Descriptor) (*Typeface, error) {
	if d == nil {
		return nil, nil
	}
	tf := &Typeface{
		Family:     d.Family,
		Category:   d.Category,
		Subsets:    slices.Clone(d.Subsets),
		IsVariable: d.IsVariable,
		Axes:       make(map[string]Axis, len(d.Axes)),
		Weights:    slices.Clone(d.Weights),
		Styles:     slices.Clone(d.Styles),
	}

	tags := make([]string, 0, len(d.Axes))
	for tag := range d.Axes {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	for _, tag := range tags {
		axis, err := parseAxis(d.Family, tag, d.Axes[tag])
		if err != nil {
			return nil, err
		}
		tf.Axes[tag] = axis
	}
	return tf, nil
}

func parseAxis(family, tag string, raw RawAxis) (Axis, error) {
	num := func(field string, v Decimal) (float64, error) {
		f, err := parseDecimal(v)
		if err != nil {
			return 0, &DataError{Family: family, Tag: tag, Field: field, Value: string(v), Err: err}
		}
		return f, nil
	}

	minV, err := num("min", raw.Min)
	if err != nil {
		return nil, err
	}
	maxV, err := num("max", raw.Max)
	if err != nil {
		return nil, err
	}
	def, err := num("default", raw.Default)
	if err != nil {
		return nil, err
	}

	if len(raw.Values) > 0 {
		return Enumerated{
			Tag:     tag,
			Min:     minV,
			Max:     maxV,
			Default: def,
			Values:  slices.Clone(raw.Values),
		}, nil
	}

	var step float64
	if strings.TrimSpace(string(raw.Step)) != "" {
		if step, err = num("step", raw.Step); err != nil {
			return nil, err
		}
	}
	return Continuous{
		Tag:     tag,
		Min:     minV,
		Max:     maxV,
		Default: def,
		Step:    InferStep(nil, step),
	}, nil
}

func parseDecimal(v Decimal) (float64, error) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return 0, errEmpty
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

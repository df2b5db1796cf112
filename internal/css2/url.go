// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package css2 builds font-delivery "css2" request URLs from a typeface and the
// current axis values.
//
// Wire grammar:
//
//	BASE/css2?family=Open+Sans&display=swap
//	BASE/css2?family=Roboto+Flex:ital,wght,GRAD@0,100..1000,-200..150&display=swap
//
// Axis tags are listed lowercase-initial first and the value list follows the same
// order. Variable typefaces request the full declared range for every axis except
// ital; static instance collections request the chosen values verbatim.
package css2

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ManuGH/fontview/internal/axis"
	"github.com/ManuGH/fontview/internal/font"
)

// DefaultBase is the public font-delivery endpoint.
const DefaultBase = "https://fonts.googleapis.com"

// ItalicTag is the registered italic axis.
const ItalicTag = "ital"

// Request kinds, as reported by Kind.
const (
	KindNone     = "none"
	KindStatic   = "static"
	KindVariable = "variable"
)

// Builder binds BuildURL to one endpoint.
type Builder struct {
	Base string
}

// NewBuilder returns a Builder for base, or for DefaultBase when base is empty.
func NewBuilder(base string) Builder {
	if base == "" {
		base = DefaultBase
	}
	return Builder{Base: strings.TrimRight(base, "/")}
}

// Build is BuildURL against the builder's base.
func (b Builder) Build(tf *font.Typeface, st axis.State) string {
	return BuildURL(b.Base, tf, st)
}

// BuildURL returns the request URL for tf at st, or "" when tf is nil.
// A tag missing from st is encoded with the axis default.
func BuildURL(base string, tf *font.Typeface, st axis.State) string {
	if tf == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("/css2?family=")
	sb.WriteString(EncodeFamily(tf.Family))

	if len(tf.Axes) > 0 {
		tags := SortTags(axisTags(tf))
		values := make([]string, 0, len(tags))
		for _, tag := range tags {
			values = append(values, encodeValue(tf, tag, st))
		}
		sb.WriteByte(':')
		sb.WriteString(strings.Join(tags, ","))
		sb.WriteByte('@')
		sb.WriteString(strings.Join(values, ","))
	}

	sb.WriteString("&display=swap")
	return sb.String()
}

func encodeValue(tf *font.Typeface, tag string, st axis.State) string {
	a := tf.Axes[tag]
	if tf.IsVariable && tag != ItalicTag {
		lo, hi := a.Range()
		return FormatNumber(lo) + ".." + FormatNumber(hi)
	}
	// Only direct BuildURL callers can omit a tag; a Manager state carries every axis.
	v, ok := st[tag]
	if !ok {
		v = a.DefaultValue()
	}
	return FormatNumber(v)
}

// SortTags orders tags lowercase-initial first, then by plain string order within
// each group. The input slice is not modified.
func SortTags(tags []string) []string {
	out := slices.Clone(tags)
	slices.SortFunc(out, func(a, b string) int {
		al, bl := lowerInitial(a), lowerInitial(b)
		switch {
		case al && !bl:
			return -1
		case !al && bl:
			return 1
		}
		return strings.Compare(a, b)
	})
	return out
}

// Tags returns tf's axis tags in wire order.
func Tags(tf *font.Typeface) []string {
	if tf == nil {
		return nil
	}
	return SortTags(axisTags(tf))
}

func axisTags(tf *font.Typeface) []string {
	tags := make([]string, 0, len(tf.Axes))
	for tag := range tf.Axes {
		tags = append(tags, tag)
	}
	return tags
}

func lowerInitial(tag string) bool {
	return tag != "" && tag[0] >= 'a' && tag[0] <= 'z'
}

// EncodeFamily replaces spaces with '+'. Family names are letters, digits and
// spaces only, so nothing else is escaped.
func EncodeFamily(family string) string {
	return strings.ReplaceAll(family, " ", "+")
}

// FormatNumber renders v in its shortest exact decimal form ("400", "0.5", "-200").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Kind classifies the request a typeface produces.
func Kind(tf *font.Typeface) string {
	switch {
	case tf == nil:
		return KindNone
	case tf.IsVariable && len(tf.Axes) > 0:
		return KindVariable
	default:
		return KindStatic
	}
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package preview derives what the rendering side needs for one typeface: the
// stylesheet URL and a style declaration.
package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ManuGH/fontview/internal/axis"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/font"
)

// DefaultDemoText is shown for every subset without a dedicated sample.
const DefaultDemoText = "The quick brown fox jumps over the lazy dog."

// DefaultDemoTexts holds per-subset samples.
var DefaultDemoTexts = map[string]string{
	"arabic": "يقفز الثعلب البني السريع فوق الكلب الكسول.",
}

// Style is a style declaration for the preview text. FontWeight and FontStyle are
// set for typefaces without axes; VariationSettings for typefaces with axes.
type Style struct {
	FontFamily        string             `json:"fontFamily"`
	FontWeight        int                `json:"fontWeight,omitempty"`
	FontStyle         string             `json:"fontStyle,omitempty"`
	VariationSettings map[string]float64 `json:"fontVariationSettings,omitempty"`
}

// VariationCSS renders the variation settings as `"ital" 0, "wght" 400` in wire tag order.
func (s Style) VariationCSS() string {
	if len(s.VariationSettings) == 0 {
		return ""
	}
	tags := make([]string, 0, len(s.VariationSettings))
	for tag := range s.VariationSettings {
		tags = append(tags, tag)
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range css2.SortTags(tags) {
		parts = append(parts, strconv.Quote(tag)+" "+css2.FormatNumber(s.VariationSettings[tag]))
	}
	return strings.Join(parts, ", ")
}

// CSS renders the declaration block body.
func (s Style) CSS() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "font-family: %s;", s.FontFamily)
	if s.FontWeight != 0 {
		fmt.Fprintf(&sb, " font-weight: %d;", s.FontWeight)
	}
	if s.FontStyle != "" {
		fmt.Fprintf(&sb, " font-style: %s;", s.FontStyle)
	}
	if v := s.VariationCSS(); v != "" {
		fmt.Fprintf(&sb, " font-variation-settings: %s;", v)
	}
	return sb.String()
}

// StyleFor derives the style declaration for tf at st. A nil typeface yields the zero Style.
func StyleFor(tf *font.Typeface, st axis.State) Style {
	if tf == nil {
		return Style{}
	}
	s := Style{FontFamily: fmt.Sprintf("'%s', sans-serif", tf.Family)}
	if tf.HasAxes() {
		s.VariationSettings = map[string]float64(st.Clone())
		return s
	}
	s.FontWeight = tf.StaticWeight()
	s.FontStyle = "normal"
	return s
}

// Preview bundles the outputs handed to the renderer.
type Preview struct {
	Family   string     `json:"family,omitempty"`
	URL      string     `json:"url"`
	Kind     string     `json:"kind"`
	Style    Style      `json:"style"`
	CSS      string     `json:"css,omitempty"`
	State    axis.State `json:"axes"`
	DemoText string     `json:"demoText"`
}

// Compute builds the preview for tf at st.
func Compute(b css2.Builder, tf *font.Typeface, st axis.State, demoText string) Preview {
	p := Preview{
		URL:      b.Build(tf, st),
		Kind:     css2.Kind(tf),
		State:    st.Clone(),
		DemoText: demoText,
	}
	if tf != nil {
		p.Family = tf.Family
		p.Style = StyleFor(tf, st)
		p.CSS = p.Style.CSS()
	}
	return p
}

// DemoText picks the sample text for a subset filter.
func DemoText(subset string, texts map[string]string, fallback string) string {
	if t, ok := texts[subset]; ok && t != "" {
		return t
	}
	if fallback == "" {
		return DefaultDemoText
	}
	return fallback
}

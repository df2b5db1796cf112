// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ManuGH/fontview/internal/axis"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/font"
	"github.com/ManuGH/fontview/internal/preview"
)

// axisFlags collects repeated -axis tag=value flags in order.
type axisFlags []axisSetting

type axisSetting struct {
	tag   string
	value float64
}

func (a *axisFlags) String() string {
	parts := make([]string, 0, len(*a))
	for _, s := range *a {
		parts = append(parts, s.tag+"="+css2.FormatNumber(s.value))
	}
	return strings.Join(parts, ",")
}

func (a *axisFlags) Set(raw string) error {
	tag, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(tag) == "" {
		return fmt.Errorf("want tag=value, got %q", raw)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("axis %s: %w", tag, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("axis %s: value must be finite", tag)
	}
	*a = append(*a, axisSetting{tag: strings.TrimSpace(tag), value: v})
	return nil
}

// runURL prints the stylesheet request for one family, optionally after axis changes.
func runURL(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fontview url", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file, family, base string
	var asJSON bool
	var axes axisFlags
	fs.StringVar(&file, "catalog", "", "path to catalog JSON")
	fs.StringVar(&family, "family", "", "typeface family name")
	fs.StringVar(&base, "base", css2.DefaultBase, "font-delivery base URL")
	fs.BoolVar(&asJSON, "json", false, "print the full preview as JSON")
	fs.Var(&axes, "axis", "axis override tag=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(family) == "" {
		fmt.Fprintln(stderr, "Error: --family is required")
		return 2
	}

	c, code := loadCatalogFlag(file, stderr)
	if c == nil {
		return code
	}
	d, ok := c.Lookup(family)
	if !ok {
		fmt.Fprintf(stderr, "Error: typeface %q not found\n", family)
		return 1
	}

	b := css2.NewBuilder(base)
	var last preview.Preview
	m := axis.NewManager(func(tf *font.Typeface, st axis.State) {
		last = preview.Compute(b, tf, st, preview.DefaultDemoText)
	})
	if err := m.Reset(d); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, s := range axes {
		if err := m.Set(s.tag, s.value); err != nil {
			fmt.Fprintf(stderr, "Error: %v (axes: %s)\n", err, strings.Join(css2.Tags(m.Typeface()), ","))
			return 1
		}
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(last); err != nil {
			fmt.Fprintf(stderr, "Error: encode preview: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprintln(stdout, last.URL)
	return 0
}

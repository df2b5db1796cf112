// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ManuGH/fontview/internal/catalog"
	"github.com/ManuGH/fontview/internal/css2"
	"github.com/ManuGH/fontview/internal/font"
	"github.com/ManuGH/fontview/internal/manifest"
)

func runCatalogCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printCatalogUsage(stderr)
		return 0
	}

	switch args[0] {
	case "validate":
		return runCatalogValidate(args[1:], stdout, stderr)
	case "manifest":
		return runCatalogManifest(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printCatalogUsage(stderr)
		return 2
	}
}

func printCatalogUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  fontview catalog validate --file|-f catalog.json")
	fmt.Fprintln(w, "  fontview catalog manifest --file|-f catalog.json [--out|-o manifest.json] [--base URL]")
}

func loadCatalogFlag(file string, stderr io.Writer) (*catalog.Catalog, int) {
	path := strings.TrimSpace(file)
	if path == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		return nil, 2
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Catalog error in %s:\n  %v\n", path, err)
		return nil, 1
	}
	return c, 0
}

// runCatalogValidate parses every descriptor and lists those with malformed axis data.
func runCatalogValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fontview catalog validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	fs.StringVar(&file, "file", "", "path to catalog JSON")
	fs.StringVar(&file, "f", "", "path to catalog JSON (shorthand)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	c, code := loadCatalogFlag(file, stderr)
	if c == nil {
		return code
	}

	var bad int
	for _, d := range c.All() {
		if _, err := font.Parse(d); err != nil {
			var de *font.DataError
			if errors.As(err, &de) {
				fmt.Fprintf(stderr, "  %s: axis %s: invalid %s %q\n", de.Family, de.Tag, de.Field, de.Value)
			} else {
				fmt.Fprintf(stderr, "  %s: %v\n", d.Family, err)
			}
			bad++
		}
	}
	if bad > 0 {
		fmt.Fprintf(stderr, "%d of %d typefaces have malformed axis data\n", bad, c.Len())
		return 1
	}
	fmt.Fprintf(stdout, "%d typefaces, all valid\n", c.Len())
	return 0
}

func runCatalogManifest(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fontview catalog manifest", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file, out, base string
	fs.StringVar(&file, "file", "", "path to catalog JSON")
	fs.StringVar(&file, "f", "", "path to catalog JSON (shorthand)")
	fs.StringVar(&out, "out", "", "write manifest to this path instead of stdout")
	fs.StringVar(&out, "o", "", "output path (shorthand)")
	fs.StringVar(&base, "base", css2.DefaultBase, "font-delivery base URL")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	c, code := loadCatalogFlag(file, stderr)
	if c == nil {
		return code
	}

	m := manifest.Build(c, css2.NewBuilder(base), time.Now())
	if out != "" {
		if err := manifest.Write(context.Background(), out, m); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote %d entries (%d failed) to %s\n", m.Count, m.Failed, out)
		return 0
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		fmt.Fprintf(stderr, "Error: encode manifest: %v\n", err)
		return 1
	}
	return 0
}

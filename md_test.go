// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestParseFiles runs the corpora under testdata. Each txtar archive
// holds input/expectation pairs: a file "name" with one span of inline
// text, followed by "name.want" with the dumped parse tree. An optional
// leading file "defs" is fed through ParseDefinitions to populate the
// reference table for the whole archive.
func TestParseFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no testdata files")
	}
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			refs := make(ReferenceMap)
			p := &Parser{References: refs}
			var name, input string
			for _, f := range a.Files {
				data := strings.TrimSuffix(string(f.Data), "\n")
				switch {
				case f.Name == "defs":
					refs.ParseDefinitions(string(f.Data))
				case strings.HasSuffix(f.Name, ".want"):
					in := input
					want := data
					t.Run(name, func(t *testing.T) {
						got := dump(p.Parse(in))
						if got != want {
							t.Errorf("Parse(%q):\nhave: %s\nwant: %s", in, got, want)
						}
					})
				default:
					name, input = f.Name, data
				}
			}
		})
	}
}

// dump renders a parse tree in a compact functional notation,
// one top-level node per line.
func dump(list Inlines) string {
	var lines []string
	for _, inl := range list {
		lines = append(lines, dumpNode(inl))
	}
	return strings.Join(lines, "\n")
}

func dumpNode(inl Inline) string {
	switch x := inl.(type) {
	case *Escaped:
		return fmt.Sprintf("escaped(%q)", x.Text)
	case *Plain:
		return fmt.Sprintf("text(%q)", x.Text)
	case *Code:
		return fmt.Sprintf("code(%q)", x.Text)
	case *Emph:
		return "emph(" + dumpList(x.Inner) + ")"
	case *Strong:
		return "strong(" + dumpList(x.Inner) + ")"
	case *Link:
		s := fmt.Sprintf("link(%q, %q", x.URL, x.Title)
		if inner := dumpList(x.Inner); inner != "" {
			s += ", " + inner
		}
		return s + ")"
	case *Image:
		return fmt.Sprintf("image(%q, %q, %q)", x.Alt, x.URL, x.Title)
	}
	// Marker nodes must never survive parsing.
	return fmt.Sprintf("BAD(%T)", inl)
}

func dumpList(list Inlines) string {
	var parts []string
	for _, inl := range list {
		parts = append(parts, dumpNode(inl))
	}
	return strings.Join(parts, ", ")
}

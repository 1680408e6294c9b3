// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

// A Target is the destination a reference label resolves to.
type Target struct {
	URL   string
	Title string
}

// A ReferenceResolver looks up reference link definitions by their
// normalized label. The Parser consults it when resolving [text][label]
// and [label] forms.
type ReferenceResolver interface {
	LookupReference(label string) (Target, bool)
}

// A ReferenceMap is a ReferenceResolver backed by a plain map keyed by
// normalized label. The zero value is an empty, usable map once
// initialized with make or via Define on a non-nil map.
type ReferenceMap map[string]Target

func (m ReferenceMap) LookupReference(label string) (Target, bool) {
	t, ok := m[label]
	return t, ok
}

// Define records a reference definition under the normalized form of
// label. Per the usual rule, the first definition for a label wins;
// later ones are ignored. Labels that normalize to the empty string are
// not recorded.
func (m ReferenceMap) Define(label, url, title string) {
	key := normalizeLabel(label)
	if key == "" {
		return
	}
	if _, ok := m[key]; ok {
		trace().Debugf("duplicate reference definition [%s] ignored", key)
		return
	}
	m[key] = Target{URL: url, Title: title}
}

// ParseDefinitions consumes link reference definitions from the start of
// text, recording each in m, and returns the remaining text. Definitions
// are a block-level construct; a paragraph consisting only of
// definitions disappears entirely, which is why the remainder is handed
// back to the caller.
func (m ReferenceMap) ParseDefinitions(text string) string {
	r := NewReader(text)
	for {
		start := r.Pos()
		if !m.parseDefinition(r) {
			r.Seek(start)
			break
		}
		r.SkipSpace()
	}
	return r.Rest()
}

// parseDefinition parses a single link reference definition:
// a link label, a colon, a link destination, and an optional title,
// after which no further character may occur on the line.
func (m ReferenceMap) parseDefinition(r *Reader) bool {
	r.SkipSpace()
	if !r.Consume("[") {
		return false
	}
	label, ok := parseLinkLabel(r)
	if !ok || !r.Consume(":") {
		return false
	}
	r.SkipSpace()
	start := r.Pos()
	dest, absent := parseLinkDest(r)
	if absent {
		return false
	}
	if r.Pos() == start && dest == "" {
		// A bare destination must be at least one character;
		// only the <> form may be empty.
		return false
	}

	moved := false
	for r.Peek(0) == ' ' || r.Peek(0) == '\t' {
		moved = true
		r.Skip(1)
	}
	end := r.Pos()
	if r.Peek(0) == '\n' {
		moved = true
		r.Skip(1)
	}

	// Take the title only if it is separated from the destination by
	// whitespace and does not break the parse; otherwise pretend it
	// was never there.
	var title string
	if moved {
		for r.Peek(0) == ' ' || r.Peek(0) == '\t' {
			r.Skip(1)
		}
		if t, ok := parseLinkTitle(r); ok {
			for r.Peek(0) == ' ' || r.Peek(0) == '\t' {
				r.Skip(1)
			}
			if r.EOF() || r.Peek(0) == '\n' {
				end = r.Pos()
				title = t
			}
		}
	}
	r.Seek(end)

	// Must end the line. Spaces already trimmed.
	if !r.EOF() && r.Peek(0) != '\n' {
		return false
	}
	if !r.EOF() {
		r.Skip(1)
	}

	if normalizeLabel(label) == "" {
		return false
	}
	m.Define(label, dest, title)
	return true
}

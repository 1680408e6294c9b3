// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import "slices"

// Parsing Inlines
//
// The parser walks the span looking for trigger characters such as [ or ]
// and dispatches on them to a fixed set of processors. A processor either
// consumes the construct it recognizes, appending nodes to the output
// stream, or declines and leaves the cursor where it was. Text between
// recognized constructs is emitted as plain text.
//
// The output stream doubles as the bracket stack: a [ or ![ pushes a
// placeholder bracket node, and a later ] closer walks the stream
// backward for the nearest one that can still open. Whatever other
// processors appended in between (code spans, escaped characters,
// already-resolved inner links) becomes the new node's content for
// free when the matched span is spliced out.
//
// Processor order is a correctness property, not an extensibility hook.
// A ] that provably cannot close a link (no opening bracket, or a
// deactivated one) must be dealt with before the backtracking closers
// get a chance to do wasted work, and the inline destination form must
// be tried before the reference forms.

// A processor recognizes one kind of inline construct.
// trigger is a cheap pattern check against the cursor and must not move
// it; parse consumes the construct and appends to the output stream, or
// declines with the cursor and stream restored to their prior state.
type processor interface {
	priority() int
	trigger(r *Reader) bool
	parse(ps *parseState) bool
}

// processors is the dispatch ladder, highest priority first.
var processors = sortProcessors([]processor{
	unmatchedCloser{},
	inlineLinkCloser{},
	refLinkCloser{},
	shortcutLinkCloser{},
	linkOpener{},
	escapeParser{},
	codeSpanParser{},
	entityParser{},
	emphParser{},
})

func sortProcessors(list []processor) []processor {
	slices.SortStableFunc(list, func(a, b processor) int {
		return b.priority() - a.priority()
	})
	return list
}

// A Parser holds the collaborators for inline parsing.
//
// References resolves reference link labels to their targets; it is
// normally populated by the document pipeline's definition pass.
// A nil References resolves nothing, so reference and shortcut links
// degrade to literal text.
type Parser struct {
	References ReferenceResolver
}

// Parse parses one span of inline text into a tree of Inlines.
// Malformed markup never fails; it degrades to literal text.
func (p *Parser) Parse(text string) Inlines {
	ps := &parseState{p: p, r: NewReader(text)}
	for !ps.r.EOF() {
		if !ps.dispatch() {
			// Unspecial character, or every processor declined;
			// it will be emitted as plain text later.
			ps.r.Skip(1)
		}
	}
	ps.emit(len(text))
	return mergePlain(convertEmphasis(nil, ps.list))
}

// lookup normalizes label and queries the reference table.
func (p *Parser) lookup(label string) (Target, bool) {
	if p.References == nil {
		return Target{}, false
	}
	key := normalizeLabel(label)
	if key == "" {
		return Target{}, false
	}
	t, ok := p.References.LookupReference(key)
	if !ok {
		trace().Debugf("no reference target for label %q", key)
	}
	return t, ok
}

// A parseState accumulates the output stream for one span of inline text.
type parseState struct {
	p         *Parser
	r         *Reader
	list      Inlines
	emitted   int // prefix of r.Text() already on the stream in some form
	backticks backtickParser
}

// dispatch tries each processor in priority order at the current cursor
// position. It reports whether one of them consumed input.
func (ps *parseState) dispatch() bool {
	start := ps.r.Pos()
	for _, proc := range processors {
		if !proc.trigger(ps.r) {
			continue
		}
		// Pending plain text must be on the stream before the
		// processor runs: a closer's content span is the stream
		// suffix after its opener.
		ps.emit(start)
		if proc.parse(ps) {
			ps.skip(ps.r.Pos())
			return true
		}
	}
	return false
}

// emit appends text[ps.emitted:i] to the stream as plain text and then
// sets ps.emitted = i.
func (ps *parseState) emit(i int) {
	if ps.emitted < i {
		ps.list = append(ps.list, &Plain{ps.r.Slice(ps.emitted, i)})
		ps.emitted = i
	}
}

// skip sets ps.emitted = i.
func (ps *parseState) skip(i int) {
	ps.emitted = i
}

// push appends a node to the output stream.
func (ps *parseState) push(x Inline) {
	ps.list = append(ps.list, x)
}

// An escapeParser handles backslash-escaped punctuation.
// A backslash before anything else stays literal text.
type escapeParser struct{}

func (escapeParser) priority() int { return 98 }

func (escapeParser) trigger(r *Reader) bool { return r.Peek(0) == '\\' }

func (escapeParser) parse(ps *parseState) bool {
	c := ps.r.Peek(1)
	if !isPunct(c) {
		return false
	}
	ps.r.Skip(2)
	ps.push(&Escaped{Plain{string(c)}})
	return true
}

// An entityParser handles HTML entity and numeric character references:
// &name;, &#digits;, and &#xhex;.
type entityParser struct{}

func (entityParser) priority() int { return 94 }

func (entityParser) trigger(r *Reader) bool { return r.Peek(0) == '&' }

func (entityParser) parse(ps *parseState) bool {
	s, i := ps.r.Text(), ps.r.Pos()
	j := i + 1
	numeric := false
	if j < len(s) && s[j] == '#' {
		numeric = true
		j++
		if j < len(s) && (s[j] == 'x' || s[j] == 'X') {
			j++
			k := j
			for j < len(s) && j-k < 6 && isHexDigit(s[j]) {
				j++
			}
			if j == k {
				return false
			}
		} else {
			k := j
			for j < len(s) && j-k < 7 && isDigit(s[j]) {
				j++
			}
			if j == k {
				return false
			}
		}
	} else {
		k := j
		for j < len(s) && j-k < 48 && isLetterDigit(s[j]) {
			j++
		}
		if j == k {
			return false
		}
	}
	if j >= len(s) || s[j] != ';' {
		return false
	}
	j++
	decoded := decodeEntities(s[i:j])
	if !numeric && decoded == s[i:j] {
		// Unknown named entity: literal text.
		return false
	}
	ps.r.Seek(j)
	ps.push(&Plain{decoded})
	return true
}

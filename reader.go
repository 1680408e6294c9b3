// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import "strings"

// A Reader is a position-tracked cursor over one span of inline text.
// Sub-parsers receive it by exclusive access for the duration of an
// attempt; the position only moves forward, except for an explicit
// rollback through Seek.
type Reader struct {
	s   string
	pos int
}

// NewReader returns a Reader positioned at the start of s.
func NewReader(s string) *Reader {
	return &Reader{s: s}
}

// Text returns the full text the Reader was created with.
func (r *Reader) Text() string { return r.s }

// Pos returns the current position.
func (r *Reader) Pos() int { return r.pos }

// EOF reports whether the span is exhausted.
func (r *Reader) EOF() bool { return r.pos >= len(r.s) }

// Rest returns the unconsumed remainder of the span.
func (r *Reader) Rest() string { return r.s[r.pos:] }

// Peek returns the byte at offset i past the current position,
// or 0 past the end of the span.
func (r *Reader) Peek(i int) byte {
	if r.pos+i >= len(r.s) {
		return 0
	}
	return r.s[r.pos+i]
}

// Skip advances the position by n bytes, clamped to the end of the span.
func (r *Reader) Skip(n int) {
	r.pos = min(r.pos+n, len(r.s))
}

// Seek moves the position to a previously observed offset.
// It is the rollback primitive for failed parse attempts.
func (r *Reader) Seek(pos int) {
	r.pos = pos
}

// Consume advances past prefix and reports whether it was there.
func (r *Reader) Consume(prefix string) bool {
	if strings.HasPrefix(r.s[r.pos:], prefix) {
		r.pos += len(prefix)
		return true
	}
	return false
}

// Slice returns the text between two previously observed offsets.
func (r *Reader) Slice(i, j int) string { return r.s[i:j] }

// SkipSpace advances past spaces, tabs, and newlines.
func (r *Reader) SkipSpace() {
	for r.pos < len(r.s) && isSpaceByte(r.s[r.pos]) {
		r.pos++
	}
}

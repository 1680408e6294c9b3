// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
)

// normalizeLabel returns the normalized form of a link label, for
// uniquely identifying it: case folded, stripped of leading and trailing
// whitespace, with consecutive internal spaces, tabs, and line endings
// collapsed to a single space. Definition and lookup must agree on this
// rule or references silently fail to match.
//
// A label containing [ or ] can never match a definition; it normalizes
// to "", which no valid label produces.
func normalizeLabel(s string) string {
	if strings.ContainsAny(s, "[]") {
		// Avoid the work of translating; this is especially important
		// for pathological inputs like [[[[[[[[a]]]]]]]] which would
		// otherwise generate quadratic amounts of garbage.
		return ""
	}

	var b strings.Builder
	space := false
	hi := false
	started := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			space = true
			continue
		default:
			if space && started {
				b.WriteByte(' ')
			}
			space = false
			started = true
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				hi = true
			}
			b.WriteByte(c)
		}
	}
	s = b.String()
	if hi {
		s = cases.Fold().String(s)
	}
	return s
}

const hexDigits = "0123456789ABCDEF"

// NormalizeURI percent-encodes every byte of a link destination that is
// not an ASCII letter, digit, or punctuation character. Percent escapes
// already present consist of exactly such bytes, so the function is
// idempotent.
func NormalizeURI(s string) string {
	i := 0
	for i < len(s) && (isLetterDigit(s[i]) || isPunct(s[i])) {
		i++
	}
	if i == len(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		if isLetterDigit(c) || isPunct(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xF])
		}
	}
	return b.String()
}

// decodeEntities decodes HTML entity and numeric character references.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// unescapeBackslashes removes the backslash from backslash-escaped ASCII
// punctuation, leaving any other backslash alone.
func unescapeBackslashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

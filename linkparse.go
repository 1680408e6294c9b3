// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

// The three small grammars consumed out of the middle of a link: the
// destination, the optional title, and the label. Each consumes from the
// Reader on success and leaves it untouched (or rewound) otherwise; the
// calling closer owns the surrounding transaction.

// parseLinkDest parses a link destination.
//
// Two forms. The angle form <...> runs to the closing > and may not
// contain an unescaped <, >, newline, or a backslash that starts no
// escape. The bare form runs to the first
// unescaped space, tab, newline, or unbalanced ); balanced parentheses
// are legal inside it.
//
// A bare destination with nothing at all left on the span is absent
// rather than empty: absent reports that case, and dest is "".
// Callers distinguish "no destination" from "empty destination";
// [a]() has an empty one.
func parseLinkDest(r *Reader) (dest string, absent bool) {
	r.SkipSpace()
	s := r.Text()
	if r.Peek(0) == '<' {
		i := r.Pos()
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\n', '<':
				return "", false
			case '>':
				r.Seek(j + 1)
				return normalizeLinkDest(s[i+1 : j]), false
			case '\\':
				// Only escapes are allowed; a bare backslash
				// fails the whole angle form.
				if j+1 >= len(s) || !isPunct(s[j+1]) {
					return "", false
				}
				j++
			}
		}
		return "", false
	}

	if r.EOF() {
		return "", true
	}
	depth := 0
	i := r.Pos()
	j := i
Loop:
	for j < len(s) {
		switch s[j] {
		case ' ', '\t', '\n':
			break Loop
		case '(':
			depth++
		case ')':
			if depth == 0 {
				// This ) closes the whole link; leave it for
				// the caller.
				break Loop
			}
			depth--
		case '\\':
			// An escape hides its second character from the
			// delimiter checks above.
			if j+1 < len(s) && isPunct(s[j+1]) {
				j++
			}
		}
		j++
	}
	r.Seek(j)
	return normalizeLinkDest(s[i:j]), false
}

// normalizeLinkDest decodes a raw destination: entity references first,
// then backslash escapes, then percent-encoding of unsafe bytes.
func normalizeLinkDest(s string) string {
	return NormalizeURI(unescapeBackslashes(decodeEntities(s)))
}

// parseLinkTitle parses an optional link title: one of "...", '...', or
// (...), each allowing escaped delimiters and entities inside.
// Inside a (...) title an unescaped ( is an ordinary byte; only the
// first unescaped ) closes it.
// Absence is not an error; the Reader is left untouched then.
func parseLinkTitle(r *Reader) (title string, ok bool) {
	start := r.Pos()
	r.SkipSpace()
	want := r.Peek(0)
	if want == '(' {
		want = ')'
	} else if want != '"' && want != '\'' {
		r.Seek(start)
		return "", false
	}
	s, open := r.Text(), r.Pos()
	for j := open + 1; j < len(s); j++ {
		switch s[j] {
		case want:
			r.Seek(j + 1)
			return unescapeBackslashes(decodeEntities(s[open+1 : j])), true
		case '\\':
			if j+1 < len(s) && isPunct(s[j+1]) {
				j++
			}
		}
	}
	r.Seek(start)
	return "", false
}

// parseLinkLabel parses the remainder of a link label after its opening
// bracket: at most 1000 characters, anything but an unescaped [ or ],
// terminated by ]. The terminator is consumed and stripped from the
// result. A zero-length label is legal; callers treat it as the
// collapsed-reference signal. No terminator within the bound is a parse
// failure, not an empty label; the Reader is left untouched then.
func parseLinkLabel(r *Reader) (label string, ok bool) {
	s, i := r.Text(), r.Pos()
	j := i
	for n := 0; j < len(s) && n <= 1000; n++ {
		switch s[j] {
		case ']':
			r.Seek(j + 1)
			return s[i:j], true
		case '[':
			return "", false
		case '\\':
			j++
			if j < len(s) && isPunct(s[j]) {
				j++
			}
		default:
			j++
		}
	}
	return "", false
}

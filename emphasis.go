// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import (
	"strings"
	"unicode/utf8"
)

// An emphParser recognizes a run of * or _ and records it as an
// emphPlain for the later emphasis pass, annotated with whether it can
// open or close emphasis at this position.
type emphParser struct{}

func (emphParser) priority() int { return 90 }

func (emphParser) trigger(r *Reader) bool {
	c := r.Peek(0)
	return c == '*' || c == '_'
}

func (emphParser) parse(ps *parseState) bool {
	s := ps.r.Text()
	start := ps.r.Pos()
	c := s[start]
	end := start + 1
	for end < len(s) && s[end] == c {
		end++
	}

	// Pick up the runes before and after the run.
	before, after := ' ', ' '
	if start > 0 {
		before, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if end < len(s) {
		after, _ = utf8.DecodeRuneInString(s[end:])
	}

	// “A left-flanking delimiter run is a delimiter run that is
	// (1) not followed by Unicode whitespace, and either
	// (2a) not followed by a Unicode punctuation character, or
	// (2b) followed by a Unicode punctuation character
	// and preceded by Unicode whitespace or a Unicode punctuation character.
	// For purposes of this definition, the beginning and the end
	// of the line count as Unicode whitespace.”
	leftFlank := !isUnicodeSpace(after) &&
		(!isUnicodePunct(after) || isUnicodeSpace(before) || isUnicodePunct(before))

	// “A right-flanking delimiter run is a delimiter run that is
	// (1) not preceded by Unicode whitespace, and either
	// (2a) not preceded by a Unicode punctuation character, or
	// (2b) preceded by a Unicode punctuation character
	// and followed by Unicode whitespace or a Unicode punctuation character.”
	rightFlank := !isUnicodeSpace(before) &&
		(!isUnicodePunct(before) || isUnicodeSpace(after) || isUnicodePunct(after))

	var canOpen, canClose bool
	if c == '*' {
		// “A single * character can open (close) emphasis iff
		// it is part of a left-flanking (right-flanking) delimiter run.”
		canOpen = leftFlank
		canClose = rightFlank
	} else {
		// “A single _ character can open emphasis iff
		// it is part of a left-flanking delimiter run and either
		// (a) not part of a right-flanking delimiter run or
		// (b) part of a right-flanking delimiter run preceded by
		// a Unicode punctuation character.”
		// Closing is the mirror image.
		canOpen = leftFlank && (!rightFlank || isUnicodePunct(before))
		canClose = rightFlank && (!leftFlank || isUnicodePunct(after))
	}

	ps.push(&emphPlain{
		Plain:    Plain{s[start:end]},
		canOpen:  canOpen,
		canClose: canClose,
		n:        end - start,
	})
	ps.r.Seek(end)
	return true
}

// convertEmphasis applies emphasis in a run of inlines that has already
// had links and images converted. The links and images themselves contain
// inlines that have already been through convertEmphasis; this function
// only has to process the inlines in src itself. It appends the new
// sequence of inlines to dst and returns it.
// convertEmphasis may edit the values in src.
func convertEmphasis(dst, src Inlines) Inlines {
	// For each of * and _ we maintain stacks of the possible openings
	// we have seen, as *emphPlain nodes, for matching against closings
	// using the same character.
	const (
		stackStar  = 0 // also 1..5
		stackUnder = 6 // also 7..11
		stackTotal = 12
	)
	var stack [stackTotal][]*emphPlain

Src:
	for i := 0; i < len(src); i++ {
		// Look for emphPlains; append the rest to dst.
		inl := src[i]
		p, ok := inl.(*emphPlain)
		if !ok {
			if open, ok := inl.(*bracket); ok {
				// Convert unused link/image open marker to plain text.
				inl = &open.Plain
			}
			dst = append(dst, inl)
			continue
		}

		if p.canClose {
			// If this is a potential closing emphasis, try to match it
			// to an earlier opening. A closing ** might match against an
			// earlier ** but also against two separate *, as in
			// "*hello *world**", or against only one *, as in
			// "*hello world**", which ends in a literal *.
			// When a repeated character closes only a single character,
			// we remove one character from p.Text and go to PText to
			// process p.Text again.
		PText:
			// “If one of the delimiters can both open and close emphasis,
			// then the sum of the lengths of the delimiter runs containing
			// the opening and closing delimiters must not be a multiple
			// of 3 unless both lengths are multiples of 3.”
			// (https://spec.commonmark.org/0.30/#emphasis-and-strong-emphasis,
			// rule 9)
			allow := func(p, start *emphPlain) bool {
				return (!p.canOpen && !start.canClose) || // neither can do both
					(p.n+start.n)%3 != 0 || // total not a multiple of 3
					p.n%3 == 0 // both are multiples of 3 (checking one implies the other)
			}

			// Consider the six possible stacks (3 n%3 values × 2 canClose
			// bool values) and take the acceptable one that appears latest
			// in dst. We could have a single stack per character and walk
			// down it to find an acceptable value, but then a malicious
			// input could make us walk arbitrarily far down the stack only
			// to find nothing, again and again, triggering quadratic
			// behavior.
			var start *emphPlain
			si := stackStar
			if p.Text[0] == '_' {
				si = stackUnder
			}
			for i := si; i < si+6; i++ {
				if len(stack[i]) == 0 {
					continue
				}
				maybe := stack[i][len(stack[i])-1]
				if allow(p, maybe) && (start == nil || maybe.i > start.i) {
					start = maybe
				}
			}
			if start == nil {
				goto EmitPlain
			}

			// Match open and close. If both sides have >= 2 delimiters,
			// we chop 2 off each; otherwise we chop 1.
			var d int
			if len(p.Text) >= 2 && len(start.Text) >= 2 {
				// strong
				d = 2
			} else {
				// emph
				d = 1
			}

			// Create emphasis node containing the inlines between open and close.
			x := &Emph{Marker: p.Text[:d], Inner: append(Inlines(nil), mergePlain(dst[start.i+1:])...)}

			// Remove used delimiters from start; if start is empty, remove
			// it from dst. Otherwise leave it at the top of dst (we will
			// push x onto dst below).
			start.Text = start.Text[:len(start.Text)-d]
			if start.Text == "" {
				dst = dst[:start.i]
			} else {
				dst = dst[:start.i+1]
			}

			// Now that we've popped all the inner content from dst (and
			// possibly start as well), pop everything gone from the stacks too.
			for i := range stack {
				if len(stack[i]) > 0 {
					stk := stack[i]
					for len(stk) > 0 && stk[len(stk)-1].i >= len(dst) {
						stk = stk[:len(stk)-1]
					}
					stack[i] = stk
				}
			}

			// Strong and Emph are the same underlying struct, so we create
			// an Emph above and convert it to the right type here.
			if d == 2 {
				dst = append(dst, (*Strong)(x))
			} else {
				dst = append(dst, x)
			}

			// Remove used delimiters from p and go around again.
			p.Text = p.Text[d:]
			if p.Text == "" {
				continue Src
			}
			goto PText
		}

	EmitPlain:
		if p.canOpen {
			p.i = len(dst)
			dst = append(dst, p)
			si := stackStar
			if p.Text[0] == '_' {
				si = stackUnder
			}
			if p.canClose {
				si += 3
			}
			si += p.n % 3
			stack[si] = append(stack[si], p)
		} else {
			dst = append(dst, &p.Plain)
		}
	}

	return mergePlain(dst)
}

// textContent flattens list to its plain text, stripping emphasis and
// link structure. Image descriptions are built this way.
func textContent(list Inlines) string {
	var b strings.Builder
	writeText(&b, list)
	return b.String()
}

func writeText(b *strings.Builder, list Inlines) {
	for _, inl := range list {
		switch x := inl.(type) {
		case *Plain:
			b.WriteString(x.Text)
		case *Escaped:
			b.WriteString(x.Text)
		case *Code:
			b.WriteString(x.Text)
		case *Emph:
			writeText(b, x.Inner)
		case *Strong:
			writeText(b, x.Inner)
		case *Link:
			writeText(b, x.Inner)
		case *Image:
			b.WriteString(x.Alt)
		case *emphPlain:
			b.WriteString(x.Text)
		case *bracket:
			b.WriteString(x.Text)
		}
	}
}

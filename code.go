// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import "strings"

// A codeSpanParser recognizes an n-backtick-delimited code span for some
// n. It always succeeds: backticks that open no span are emitted as
// literal text, so that ``x` is not misread as a single backtick
// followed by a code span.
type codeSpanParser struct{}

func (codeSpanParser) priority() int { return 95 }

func (codeSpanParser) trigger(r *Reader) bool { return r.Peek(0) == '`' }

func (codeSpanParser) parse(ps *parseState) bool {
	return ps.backticks.parse(ps)
}

// maxBackticks is the maximum number of backticks allowed for an inline
// code span. To avoid super-linear (not quite quadratic) behavior, we
// need to track the last position where a run of exactly N backticks was
// seen, for each possible N, rather than scan backward to find them.
// This means we must place some limit on N (or use a map).
// cmark-gfm imposes a limit of 80, which seems good enough.
const maxBackticks = 80

// A backtickParser holds the memo of backtick runs seen while scanning,
// one per Parse call. The naive implementation of backtick scanning
// would take O(n√n) time on an input like
//
//	` `` ``` ```` ````` `````` ``````` ````````
//
// because there are so many more backtick runs toward the start of the
// string than toward the end. Successful scans are always fine: they
// consume all the text they scanned. To avoid the blowup, during an
// unsuccessful scan for any length we record the last location of every
// run of n backticks for all n, in an array indexed by n-1. The next
// time we scan, we can tell in advance whether the scan would succeed
// by checking whether start < last[n-1].
type backtickParser struct {
	last    [maxBackticks]int // last[n] = start offset where final run of n backticks was seen
	scanned bool              // whether we've scanned the string already
}

func (b *backtickParser) parse(ps *parseState) bool {
	s := ps.r.Text()
	start := ps.r.Pos()

	// Count leading backticks. Need to find that many again.
	n := 1
	for start+n < len(s) && s[start+n] == '`' {
		n++
	}

	// If we've already scanned the whole string (for a different count),
	// we can skip a failed scan by checking whether we saw this count.
	if n > len(b.last) || b.scanned && b.last[n-1] < start+n {
		goto NoMatch
	}

	for end := start + n; end < len(s); {
		if s[end] != '`' {
			end++
			continue
		}
		estart := end
		for end < len(s) && s[end] == '`' {
			end++
		}
		m := end - estart
		if !b.scanned && m < len(b.last) {
			b.last[m-1] = estart
		}
		if m == n {
			// Match. Line endings are converted to single spaces.
			text := s[start+n : estart]
			text = strings.ReplaceAll(text, "\n", " ")

			// If the enclosed text starts and ends with a space and is
			// not all spaces, one space is removed from each end, to
			// allow `` ` `` to quote a single backquote.
			if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' && strings.Trim(text, " ") != "" {
				text = text[1 : len(text)-1]
			}

			ps.push(&Code{Text: text})
			ps.r.Seek(end)
			return true
		}
	}
	b.scanned = true

NoMatch:
	// No match, so none of these backticks count: skip them all.
	ps.push(&Plain{Text: s[start : start+n]})
	ps.r.Seek(start + n)
	return true
}

// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

// Links and images resolve lazily. A [ or ![ only records the
// possibility of a link; the decision is made when a ] turns up, by a
// ladder of four closers tried in priority order:
//
//	1. the unmatched fast path (no opener, or a deactivated one)
//	2. the inline destination form, [text](dest "title")
//	3. the full and collapsed reference forms, [text][label] and [text][]
//	4. the shortcut form, [label]
//
// A closer that fails rewinds the cursor so the next one can try. Only
// the documented conversion of a doomed opener to literal text survives
// a failed attempt; everything else is rolled back.

// A linkOpener handles [ and ![. It cannot fail: it appends exactly one
// bracket node recording the marker and the offset just past it.
type linkOpener struct{}

func (linkOpener) priority() int { return 100 }

func (linkOpener) trigger(r *Reader) bool {
	return r.Peek(0) == '[' || r.Peek(0) == '!' && r.Peek(1) == '['
}

func (linkOpener) parse(ps *parseState) bool {
	marker := "["
	if ps.r.Peek(0) == '!' {
		marker = "!["
	}
	ps.r.Skip(len(marker))
	ps.push(&bracket{
		Plain:   Plain{marker},
		image:   marker == "![",
		canOpen: true,
		active:  true,
		pos:     ps.r.Pos(),
	})
	return true
}

// lastOpener returns the most recently opened bracket still able to open
// and its stream index, or nil. Openers nest like parentheses, so a
// closer always targets the innermost one.
func (ps *parseState) lastOpener() (*bracket, int) {
	for i := len(ps.list) - 1; i >= 0; i-- {
		if b, ok := ps.list[i].(*bracket); ok && b.canOpen {
			return b, i
		}
	}
	return nil, -1
}

// An unmatchedCloser handles a ] that provably cannot close a link:
// there is no opening bracket on the stream, or the nearest one has been
// deactivated. It runs before the other closers so that text which can
// never become a link costs no backtracking work.
type unmatchedCloser struct{}

func (unmatchedCloser) priority() int { return 500 }

func (unmatchedCloser) trigger(r *Reader) bool { return r.Peek(0) == ']' }

func (unmatchedCloser) parse(ps *parseState) bool {
	opener, oi := ps.lastOpener()
	switch {
	case opener == nil:
		ps.r.Skip(1)
		ps.push(&Plain{"]"})
		return true
	case !opener.active:
		// The opener can never close either; both become literal.
		ps.list[oi] = &opener.Plain
		ps.r.Skip(1)
		ps.push(&Plain{"]"})
		return true
	}
	return false
}

// An inlineLinkCloser handles ](, the inline destination form
// [text](dest "title"). Structural failure rewinds the cursor and leaves
// the stream untouched so the lower-priority closers can have a try.
type inlineLinkCloser struct{}

func (inlineLinkCloser) priority() int { return 400 }

func (inlineLinkCloser) trigger(r *Reader) bool {
	return r.Peek(0) == ']' && r.Peek(1) == '('
}

func (inlineLinkCloser) parse(ps *parseState) bool {
	opener, oi := ps.lastOpener()
	if opener == nil {
		return false
	}
	start := ps.r.Pos()
	ps.r.Skip(2)
	dest, _ := parseLinkDest(ps.r)
	title, _ := parseLinkTitle(ps.r)
	ps.r.SkipSpace()
	if !ps.r.Consume(")") {
		ps.r.Seek(start)
		return false
	}
	ps.resolve(opener, oi, dest, title)
	return true
}

// A refLinkCloser handles ][, the full reference form [text][label]
// and the collapsed form [text][]. A label that parses but is not
// defined deactivates the opener rather than falling through to the
// shortcut form: [text][nope] never resolves via "text".
type refLinkCloser struct{}

func (refLinkCloser) priority() int { return 300 }

func (refLinkCloser) trigger(r *Reader) bool {
	return r.Peek(0) == ']' && r.Peek(1) == '['
}

func (refLinkCloser) parse(ps *parseState) bool {
	opener, oi := ps.lastOpener()
	if opener == nil {
		return false
	}
	start := ps.r.Pos()
	ps.r.Skip(2)
	label, ok := parseLinkLabel(ps.r)
	if !ok {
		ps.r.Seek(start)
		return false
	}
	if label == "" {
		// Collapsed reference: [text][] takes text as its own label.
		label = ps.r.Slice(opener.pos, start)
	}
	target, ok := ps.p.lookup(label)
	if !ok {
		ps.list[oi] = &opener.Plain
		ps.r.Seek(start)
		return false
	}
	ps.resolve(opener, oi, target.URL, target.Title)
	return true
}

// A shortcutLinkCloser handles a bare ] closing a shortcut reference:
// the raw text back to the nearest opener is the label itself.
// It is the lowest-priority closer; when it fails the ] is literal.
type shortcutLinkCloser struct{}

func (shortcutLinkCloser) priority() int { return 200 }

func (shortcutLinkCloser) trigger(r *Reader) bool { return r.Peek(0) == ']' }

func (shortcutLinkCloser) parse(ps *parseState) bool {
	opener, oi := ps.lastOpener()
	if opener == nil {
		return false
	}
	start := ps.r.Pos()
	ps.r.Skip(1)
	target, ok := ps.p.lookup(ps.r.Slice(opener.pos, start))
	if !ok {
		ps.list[oi] = &opener.Plain
		ps.r.Seek(start)
		return false
	}
	ps.resolve(opener, oi, target.URL, target.Title)
	return true
}

// resolve replaces the opener and every stream node after it with a
// single resolved node. Content moves, it is not copied: whatever other
// processors appended between the opener and the closer becomes the
// link's content, or the image's alt text once flattened.
func (ps *parseState) resolve(opener *bracket, oi int, dest, title string) {
	inner := convertEmphasis(nil, ps.list[oi+1:])
	if opener.image {
		ps.list = append(ps.list[:oi], &Image{Alt: textContent(inner), URL: dest, Title: title})
		trace().Debugf("resolved image to %q", dest)
		return
	}
	// No link inside a link: every [ still open before this one can
	// never itself become a link. Images are exempt.
	for _, x := range ps.list[:oi] {
		if b, ok := x.(*bracket); ok && b.canOpen && !b.image {
			b.active = false
		}
	}
	ps.list = append(ps.list[:oi], &Link{Inner: inner, URL: dest, Title: title})
	trace().Debugf("resolved link to %q", dest)
}

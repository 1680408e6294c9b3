// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import "strings"

// An Inline is an inline element, one of
// [Plain], [Escaped], [Code], [Emph], [Strong], [Link], and [Image].
type Inline interface {
	Inline()
}

// An Inlines is an [Inline] that represents a concatenation of Inlines.
type Inlines []Inline

func (Inlines) Inline() {}

// A Plain is an [Inline] that represents plain textual content.
type Plain struct {
	Text string
}

func (*Plain) Inline() {}

// An Escaped is an [Inline] that represents a backslash escaped symbol
// (omitting the escaping backslash).
type Escaped struct {
	Plain
}

// A Code is an [Inline] that represents a code span.
type Code struct {
	Text string
}

func (*Code) Inline() {}

// An Emph is an [Inline] representing emphasis (italic text).
type Emph struct {
	Marker string
	Inner  Inlines
}

func (*Emph) Inline() {}

// A Strong is an [Inline] that represents strong emphasis (bold text).
//
// Note: Strong and Emph are the same underlying struct by design,
// so that code can safely convert between *Strong and *Emph.
type Strong struct {
	Marker string
	Inner  Inlines
}

func (*Strong) Inline() {}

// A Link is an [Inline] representing a link.
// An empty Title means the link has none.
type Link struct {
	Inner Inlines
	URL   string
	Title string
}

func (*Link) Inline() {}

// An Image is an [Inline] representing an image.
// Alt is the image content flattened to plain text: any markup inside
// ![...] contributes only its text.
type Image struct {
	Alt   string
	URL   string
	Title string
}

func (*Image) Inline() {}

// A bracket is an Inline that represents an opening marker [ or ![
// that has not yet been matched to a closing marker.
// It only exists on the parse stack, not in the final returned Inlines:
// a closer either replaces it with a resolved Link or Image, or rewrites
// it to the literal marker text once it can never close.
type bracket struct {
	Plain        // the marker text, [ or ![
	image   bool // marker is ![
	canOpen bool
	active  bool
	pos     int // input offset immediately after the marker
}

// An emphPlain is an Inline that represents an emphasis delimiter run
// such as * or _ that has not yet been matched to a closing run.
// It only exists on the parse stack, not in the final returned Inlines.
type emphPlain struct {
	Plain
	canOpen  bool // run can open emphasis
	canClose bool // run can close emphasis
	i        int  // position in output where run is
	n        int  // length of original run
}

// mergePlain converts emphPlain nodes to Plain nodes
// (bracket nodes have already been converted)
// and then merges each run of Plain nodes in list to a single Plain node.
func mergePlain(list Inlines) Inlines {
	out := list[:0]
	start := 0
	for i := 0; ; i++ {
		if i < len(list) {
			switch x := list[i].(type) {
			case *Plain:
				continue
			case *emphPlain:
				list[i] = &x.Plain
				continue
			}
		}
		// Non-Plain or end of list.
		if start < i {
			out = append(out, mergePlainRun(list[start:i]))
		}
		if i >= len(list) {
			break
		}
		out = append(out, list[i])
		start = i + 1
	}
	return out
}

// mergePlainRun merges list, which is known to be entirely *Plain nodes,
// down to a single Plain node.
func mergePlainRun(list Inlines) *Plain {
	if len(list) == 1 {
		return list[0].(*Plain)
	}
	var all []string
	for _, pl := range list {
		all = append(all, pl.(*Plain).Text)
	}
	return &Plain{Text: strings.Join(all, "")}
}

// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTrees(t *testing.T) {
	refs := ReferenceMap{
		"foo": {URL: "/url", Title: "title"},
	}
	p := &Parser{References: refs}

	tests := []struct {
		in   string
		want Inlines
	}{
		{
			"plain text",
			Inlines{&Plain{"plain text"}},
		},
		{
			"[foo](/url \"title\")",
			Inlines{&Link{Inner: Inlines{&Plain{"foo"}}, URL: "/url", Title: "title"}},
		},
		{
			"pre [foo] post",
			Inlines{
				&Plain{"pre "},
				&Link{Inner: Inlines{&Plain{"foo"}}, URL: "/url", Title: "title"},
				&Plain{" post"},
			},
		},
		{
			"![foo]",
			Inlines{&Image{Alt: "foo", URL: "/url", Title: "title"}},
		},
		{
			"[a](/1) and [b](/2)",
			Inlines{
				&Link{Inner: Inlines{&Plain{"a"}}, URL: "/1"},
				&Plain{" and "},
				&Link{Inner: Inlines{&Plain{"b"}}, URL: "/2"},
			},
		},
		{
			"*em [foo] tail*",
			Inlines{
				&Emph{Marker: "*", Inner: Inlines{
					&Plain{"em "},
					&Link{Inner: Inlines{&Plain{"foo"}}, URL: "/url", Title: "title"},
					&Plain{" tail"},
				}},
			},
		},
		{
			"[x](/u) [y](/v)",
			Inlines{
				&Link{Inner: Inlines{&Plain{"x"}}, URL: "/u"},
				&Plain{" "},
				&Link{Inner: Inlines{&Plain{"y"}}, URL: "/v"},
			},
		},
	}
	for _, tt := range tests {
		got := p.Parse(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

// A link resolving deactivates every opening bracket before it, so that
// an outer pair can never form a second, enclosing link. Images are
// exempt from the rule in both directions.
func TestLinkDeactivation(t *testing.T) {
	p := &Parser{}

	got := p.Parse("[a[b](/1)c](/2)")
	want := Inlines{
		&Plain{"[a"},
		&Link{Inner: Inlines{&Plain{"b"}}, URL: "/1"},
		&Plain{"c](/2)"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("link in link (-want +got):\n%s", diff)
	}

	got = p.Parse("![a[b](/1)c](/2)")
	want = Inlines{&Image{Alt: "abc", URL: "/2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("link in image (-want +got):\n%s", diff)
	}

	got = p.Parse("[a![b](/1)c](/2)")
	want = Inlines{
		&Link{
			Inner: Inlines{&Plain{"a"}, &Image{Alt: "b", URL: "/1"}, &Plain{"c"}},
			URL:   "/2",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("image in link (-want +got):\n%s", diff)
	}
}

// A failed reference lookup burns the opener: the same text can not
// fall back to a shorter form afterwards.
func TestUndefinedReferenceBurnsOpener(t *testing.T) {
	refs := ReferenceMap{"text": {URL: "/t"}}
	p := &Parser{References: refs}

	got := p.Parse("[text][nope]")
	want := Inlines{&Plain{"[text][nope]"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// A failed closer attempt must leave the cursor and the output stream
// exactly as they were, down to node identity. (The opener rewrite on a
// failed reference lookup is the documented exception; these inputs all
// fail structurally, before any lookup.)
func TestCloserRollback(t *testing.T) {
	inputs := []string{
		"[a](/u",       // no closing paren
		"[a](/u \"t\"", // title but no closing paren
		"[a](<b",       // unclosed angle destination
		"[a][b",        // unclosed label
	}
	for _, in := range inputs {
		ps := &parseState{p: &Parser{}, r: NewReader(in)}
		for !ps.r.EOF() && ps.r.Peek(0) != ']' {
			if !ps.dispatch() {
				ps.r.Skip(1)
			}
		}
		pos := ps.r.Pos()
		saved := append(Inlines(nil), ps.list...)

		var closer processor = inlineLinkCloser{}
		if ps.r.Peek(1) == '[' {
			closer = refLinkCloser{}
		}
		if closer.parse(ps) {
			t.Errorf("%q: closer unexpectedly succeeded", in)
			continue
		}
		if ps.r.Pos() != pos {
			t.Errorf("%q: cursor moved from %d to %d on failure", in, pos, ps.r.Pos())
		}
		if len(ps.list) != len(saved) {
			t.Errorf("%q: stream length changed from %d to %d on failure", in, len(saved), len(ps.list))
			continue
		}
		for i := range saved {
			if ps.list[i] != saved[i] {
				t.Errorf("%q: stream node %d replaced on failure", in, i)
			}
		}
	}
}

func TestNilReferences(t *testing.T) {
	p := &Parser{}
	got := p.Parse("[foo] and [bar][baz]")
	want := Inlines{&Plain{"[foo] and [bar][baz]"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

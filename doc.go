// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pycmark implements the inline-markup resolution stage of a
// CommonMark parser: it turns a flat span of inline text into a tree of
// links, images, code spans, emphasis, and plain text.
//
// The package deliberately covers only inline parsing. Block structure
// (lists, quotes, code fences) and output rendering are the business of
// the surrounding document pipeline, which hands each inline span to
// [Parser.Parse] together with a [ReferenceResolver] holding the link
// reference definitions collected from the document.
//
// The hard part of the job is CommonMark's link grammar. Whether a [ is
// the start of a link is decided lazily, when (and if) a matching ] shows
// up, by walking backward over output that has already been produced.
// The parser resolves this lazily: opening brackets are
// pushed onto the output stream itself as placeholder nodes, and a small
// ladder of closer handlers tries the possible link forms in priority
// order, rolling the cursor back whenever a form does not pan out.
package pycmark

import "github.com/npillmayer/schuko/tracing"

// trace returns the tracer for this package.
func trace() tracing.Trace {
	return tracing.Select("pycmark.inline")
}

// Copyright 2024 The pycmark Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReaderBasics(t *testing.T) {
	r := NewReader("ab cd")
	assert.Equal(t, "ab cd", r.Text())
	assert.Equal(t, 0, r.Pos())
	assert.False(t, r.EOF())
	assert.Equal(t, byte('a'), r.Peek(0))
	assert.Equal(t, byte('b'), r.Peek(1))
	assert.Equal(t, byte(0), r.Peek(99))

	r.Skip(2)
	assert.Equal(t, " cd", r.Rest())
	r.SkipSpace()
	assert.Equal(t, 3, r.Pos())

	assert.False(t, r.Consume("xx"))
	assert.Equal(t, 3, r.Pos())
	assert.True(t, r.Consume("cd"))
	assert.True(t, r.EOF())
	assert.Equal(t, byte(0), r.Peek(0))

	r.Skip(10)
	assert.Equal(t, 5, r.Pos())

	r.Seek(1)
	assert.Equal(t, "b cd", r.Rest())
	assert.Equal(t, "b c", r.Slice(1, 4))
}

func TestReaderSkipSpace(t *testing.T) {
	r := NewReader(" \t\n x")
	r.SkipSpace()
	assert.Equal(t, "x", r.Rest())
	r.Skip(1)
	r.SkipSpace()
	assert.True(t, r.EOF())
}

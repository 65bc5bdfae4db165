// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorConsumesInOrder(t *testing.T) {
	name := uniqueName(t)
	w, err := NewWriter[int](name, 16, true)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		w.Push(i)
	}

	r, err := NewReader[int](name, 0)
	require.NoError(t, err)
	defer r.Close()

	it := r.Iterate()
	for i := 0; i < 5; i++ {
		v, ok := it.Next()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := it.Next()
	assert.False(t, ok, "iterator must report exhaustion once the reader has caught up to the writer")
}

func TestIteratorAdvancesUnderlyingReader(t *testing.T) {
	name := uniqueName(t)
	w, err := NewWriter[int](name, 16, true)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 3; i++ {
		w.Push(i)
	}

	r, err := NewReader[int](name, 0)
	require.NoError(t, err)
	defer r.Close()

	it := r.Iterate()
	_, ok := it.Next()
	require.True(t, ok)

	assert.Equal(t, uint32(2), r.Size(), "consuming through the iterator must advance the reader's own cursor")
}

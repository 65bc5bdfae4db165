// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderRecordSizeMismatch(t *testing.T) {
	type wide struct {
		A int
		B float64
	}
	name := uniqueName(t)
	w, err := NewWriter[wide](name, 4096, true)
	require.NoError(t, err)
	defer w.Close()

	_, err = NewReader[int](name, 0)
	require.Error(t, err)
	assert.True(t, IsKind(err, RecordSizeMismatch))
}

func TestReaderNotFound(t *testing.T) {
	_, err := NewReader[int](uniqueName(t), 0)
	require.Error(t, err)
	assert.True(t, IsKind(err, NotFound))
}

func TestReaderTryGetEmpty(t *testing.T) {
	name := uniqueName(t)
	w, err := NewWriter[int](name, 16, true)
	require.NoError(t, err)
	defer w.Close()

	r, err := NewReader[int](name, 0)
	require.NoError(t, err)
	defer r.Close()

	_, ok := r.TryGet()
	assert.False(t, ok)
}

func TestReaderGetContextCancellation(t *testing.T) {
	name := uniqueName(t)
	w, err := NewWriter[int](name, 16, true)
	require.NoError(t, err)
	defer w.Close()

	r, err := NewReader[int](name, 0)
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = r.Get(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNextZeroIsNoop(t *testing.T) {
	name := uniqueName(t)
	w, err := NewWriter[int](name, 4096, true)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 10; i++ {
		w.Push(i)
	}

	r, err := NewReader[int](name, 0)
	require.NoError(t, err)
	defer r.Close()

	sizeBefore := r.Size()
	r.Next(0)
	assert.Equal(t, sizeBefore, r.Size())

	v, ok := r.TryGet()
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpack(t *testing.T) {
	cases := []struct{ first, last uint32 }{
		{0, 0},
		{0, 1},
		{5, 5},
		{1<<32 - 1, 0},
		{1<<32 - 1, 1<<32 - 1},
	}
	for _, c := range cases {
		w := pack(c.first, c.last)
		assert.Equal(t, c.first, firstOf(w))
		assert.Equal(t, c.last, lastOf(w))
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.False(t, isPowerOfTwo(0))
	assert.True(t, isPowerOfTwo(1))
	assert.True(t, isPowerOfTwo(2))
	assert.False(t, isPowerOfTwo(3))
	assert.True(t, isPowerOfTwo(4096))
	assert.False(t, isPowerOfTwo(4097))
	assert.True(t, isPowerOfTwo(1<<20))
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint64(64), alignUp(1, 64))
	assert.Equal(t, uint64(64), alignUp(64, 64))
	assert.Equal(t, uint64(128), alignUp(65, 64))
	assert.Equal(t, uint64(0), alignUp(0, 64))
}

func TestHeaderCacheLineDiscipline(t *testing.T) {
	// The positions word must land on a cache-line boundary distinct
	// from the rest of the header's metadata.
	var h header
	assert.Equal(t, uintptr(cacheLineSize), unsafe.Offsetof(h.positions))
	assert.True(t, uint64(headerSize)%cacheLineSize == 0)
}

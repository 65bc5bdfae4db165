// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/otterlayer/spmcring/internal/store"
)

// Writer publishes records into a named shared-memory ring buffer.
// There must be exactly one Writer per name; spmcring cannot detect
// or prevent a second concurrent writer opening the same region (that
// would be multi-producer operation, which this package does not
// support).
type Writer[T any] struct {
	handle   store.Handle
	hdr      *header
	data     unsafe.Pointer
	stride   uint64
	capacity uint32
	mask     uint32

	mu     sync.Mutex
	closed bool
}

// NewWriter creates a new named ring buffer with room for capacity
// records of type T. capacity must be a power of two in [1, 2^32).
// If removeOnClose is true, the name is unlinked from the host
// namespace when the Writer is Closed.
func NewWriter[T any](name string, capacity uint32, removeOnClose bool) (*Writer[T], error) {
	if capacity == 0 {
		return nil, newErr(InvalidArgument, "capacity must be at least 1")
	}
	if !isPowerOfTwo(uint64(capacity)) {
		return nil, newErr(InvalidArgument, "capacity must be a power of two")
	}

	var zero T
	recordType := reflect.TypeOf(zero)
	if recordType != nil {
		if err := checkRecordType(recordType); err != nil {
			return nil, err
		}
	}

	recordSize := uint64(unsafe.Sizeof(zero))
	if recordSize > uint64(pageSize()) {
		return nil, newErr(RecordTooLarge, "record size exceeds the system page size")
	}

	if hostLine, ok := hostCacheLineSize(); ok && hostLine > cacheLineSize {
		return nil, newErr(Environment, "host cache line size exceeds the layout's fixed 64 bytes")
	}

	stride := slotStride(recordSize)
	dataOffset := dataOffsetFor(stride)
	regionSize := dataOffset + uint64(capacity)*stride

	h, err := store.Create(name, int64(regionSize), removeOnClose)
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	base := h.Address()
	hdr := headerAt(base)
	*hdr = header{
		version:    layoutVersion,
		recordSize: recordSize,
		dataOffset: dataOffset,
		capacity:   uint64(capacity),
	}
	hdr.storePositions(pack(0, 0))

	return &Writer[T]{
		handle:   h,
		hdr:      hdr,
		data:     unsafe.Add(base, dataOffset),
		stride:   stride,
		capacity: capacity,
		mask:     capacity - 1,
	}, nil
}

// Capacity returns the number of physical slots the ring was created
// with. At most Capacity()-1 records are held in flight at once.
func (w *Writer[T]) Capacity() uint32 { return w.capacity }

// Size returns the number of records presently in the ring, correct
// across position-counter wraparound.
func (w *Writer[T]) Size() uint32 {
	positions := w.hdr.loadPositions()
	return lastOf(positions) - firstOf(positions)
}

// Empty reports whether Size() == 0.
func (w *Writer[T]) Empty() bool { return w.Size() == 0 }

// Push copies val into the next slot and publishes it.
func (w *Writer[T]) Push(val T) {
	w.pushHelper(func(slot *T) { *slot = val })
}

// Emplace constructs a record directly in its shared-memory slot via
// build, then publishes it. build must not retain the pointer it is
// given past its own return; the slot is published for readers
// immediately afterward. This lets a caller build a record in place
// rather than assembling one on the stack and copying it in.
func (w *Writer[T]) Emplace(build func(*T)) {
	w.pushHelper(build)
}

func (w *Writer[T]) pushHelper(init func(*T)) {
	positions := w.hdr.loadPositions()
	first, last := firstOf(positions), lastOf(positions)

	slot := (*T)(slotPointer(w.data, w.stride, last&w.mask))
	init(slot)

	last++
	if last-first > w.capacity-1 {
		first = last - w.capacity + 1
	}
	w.hdr.storePositions(pack(first, last))
}

// Close unmaps the writer's region and, if it was created with
// removeOnClose, unlinks the name from the host namespace.
func (w *Writer[T]) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.handle.Close()
}

func classifyStoreErr(err error) error {
	switch {
	case errIsAlreadyExists(err):
		return wrapErr(AlreadyExists, "shared memory object already exists", err)
	case errIsNotFound(err):
		return wrapErr(NotFound, "shared memory object not found", err)
	default:
		return wrapErr(Resource, "shared memory operation failed", err)
	}
}

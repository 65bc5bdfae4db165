// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/otterlayer/spmcring/internal/store"
)

// defaultUnderflowFixup is the number of items a lapped reader's
// cursor jumps past first when it is snapped forward. It is not
// derived from first principles; larger values reduce thrashing under
// sustained overrun at the cost of skipping more records per lap.
const defaultUnderflowFixup = 128

// Reader observes a named shared-memory ring buffer independently of
// the writer and of every other reader. It keeps no state visible to
// anyone else: two readers on the same name never interact.
type Reader[T any] struct {
	handle         store.Handle
	hdr            *header
	data           unsafe.Pointer
	stride         uint64
	mask           uint32
	underflowFixup uint32

	readPos uint32

	closed atomic.Bool
	mu     sync.Mutex
}

// NewReader opens the named ring buffer read-only and positions the
// reader at the current oldest valid record. underflowFixup of 0
// selects the documented default of 128.
func NewReader[T any](name string, underflowFixup uint32) (*Reader[T], error) {
	if underflowFixup == 0 {
		underflowFixup = defaultUnderflowFixup
	}

	h, err := store.Open(name)
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	base := h.Address()
	hdr := headerAt(base)

	if hdr.version != layoutVersion {
		h.Close()
		return nil, newErr(VersionMismatch, "stored ring buffer version incompatible with this implementation")
	}

	var zero T
	if recordType := reflect.TypeOf(zero); recordType != nil {
		if err := checkRecordType(recordType); err != nil {
			h.Close()
			return nil, err
		}
	}
	if hdr.recordSize != uint64(unsafe.Sizeof(zero)) {
		h.Close()
		return nil, newErr(RecordSizeMismatch, "stored record size incompatible with reader's record type")
	}

	capacity := uint32(hdr.capacity)
	stride := slotStride(hdr.recordSize)

	r := &Reader[T]{
		handle:         h,
		hdr:            hdr,
		data:           unsafe.Add(base, hdr.dataOffset),
		stride:         stride,
		mask:           capacity - 1,
		underflowFixup: underflowFixup,
	}
	r.readPos = firstOf(hdr.loadPositions())
	return r, nil
}

// Size returns the number of records presently available to this
// reader.
func (r *Reader[T]) Size() uint32 {
	positions := r.hdr.loadPositions()
	r.adjustReadPos(positions)
	last := lastOf(positions)
	if last > r.readPos {
		return last - r.readPos
	}
	return 0
}

// Empty reports whether Size() == 0.
func (r *Reader[T]) Empty() bool { return r.Size() == 0 }

// adjustReadPos snaps the cursor forward if the writer has advanced
// first past it, meaning this reader has been lapped and the slot at
// its old read position may have already been overwritten.
func (r *Reader[T]) adjustReadPos(positions uint64) {
	first := firstOf(positions)
	if first > r.readPos {
		r.readPos = first + r.underflowFixup
	}
}

// Get returns the record at the reader's cursor, spinning until one
// is available. The cursor is not advanced; call Next to advance it.
//
// Get accepts a context so a caller can bound how long it is willing
// to spin; ctx.Err() is returned if ctx is done before a record
// becomes available. A context.Background() call spins unconditionally
// until a record arrives.
func (r *Reader[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if r.closed.Load() {
		return zero, ErrClosed
	}

	positions := r.hdr.loadPositions()
	r.adjustReadPos(positions)

	for r.readPos >= lastOf(positions) {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		positions = r.hdr.loadPositions()
		r.adjustReadPos(positions)
	}

	for {
		slot := (*T)(slotPointer(r.data, r.stride, r.readPos&r.mask))
		item := *slot

		lastReadPos := r.readPos
		positions = r.hdr.loadPositions()
		r.adjustReadPos(positions)

		if lastReadPos == r.readPos {
			return item, nil
		}
		// the slot we just read was overwritten mid-copy; retry, first
		// waiting until the snapped-forward cursor has been written.
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		for r.readPos >= lastOf(positions) {
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			positions = r.hdr.loadPositions()
			r.adjustReadPos(positions)
		}
	}
}

// TryGet returns the record at the reader's cursor if one is
// available, without blocking. ok is false if no record is available
// yet.
func (r *Reader[T]) TryGet() (value T, ok bool) {
	var zero T
	if r.closed.Load() {
		return zero, false
	}

	positions := r.hdr.loadPositions()
	r.adjustReadPos(positions)
	if r.readPos >= lastOf(positions) {
		return zero, false
	}

	for {
		slot := (*T)(slotPointer(r.data, r.stride, r.readPos&r.mask))
		item := *slot

		lastReadPos := r.readPos
		positions = r.hdr.loadPositions()
		r.adjustReadPos(positions)

		if lastReadPos == r.readPos {
			return item, true
		}
		if r.readPos >= lastOf(positions) {
			return zero, false
		}
	}
}

// Next advances the cursor by n records; Next(0) is a legal no-op. It
// never blocks, even if fewer than n records are actually available —
// the reader will simply read as empty until the writer catches up.
func (r *Reader[T]) Next(n uint32) {
	r.readPos += n
}

// Iterate returns a single-pass iterator over the remaining records
// visible to this reader.
func (r *Reader[T]) Iterate() *Iterator[T] {
	return &Iterator[T]{reader: r}
}

// Close unmaps the reader's region. It does not affect the writer or
// any other reader of the same name.
func (r *Reader[T]) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed.Load() {
		return nil
	}
	r.closed.Store(true)
	return r.handle.Close()
}

// Copyright 2026 The Spmcring Authors. All rights reserved.

// Package store owns named shared-memory regions: creating and sizing
// them, mapping them into the process' address space, and unlinking
// them from the host namespace on teardown. It is the leaf dependency
// of the ring buffer protocol: it knows nothing about headers, slots,
// or positions, only about bytes.
package store

import (
	"strings"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// Sentinel causes returned by Create/Open, wrapped with additional
// context by the platform-specific implementations. Callers use
// errors.Is against these to classify a failure without depending on
// message text.
var (
	ErrAlreadyExists = errors.New("shared memory object already exists")
	ErrNotFound      = errors.New("shared memory object not found")
)

// Mode is the access mode a Handle was opened with.
type Mode int

const (
	// ReadWrite is used by the single writer that owns a region.
	ReadWrite Mode = iota
	// ReadOnly is used by every reader that opens an existing region.
	ReadOnly
)

// Handle is a uniquely-owned mapping over a named shared-memory region.
// It may be cloned so multiple call sites within one process (a writer
// and an iterator, for instance) can each hold a reference without
// racing to unmap the region out from under one another.
type Handle interface {
	// Bytes returns the mapped region as a byte slice. The slice is
	// valid for the lifetime of the Handle (and any of its clones).
	Bytes() []byte
	// Address returns the base address of the mapped region.
	Address() unsafe.Pointer
	// Size returns the size of the mapped region in bytes.
	Size() int64
	// Mode returns the access mode the region was opened with.
	Mode() Mode
	// Clone returns a new reference to the same underlying mapping.
	// Each clone must be Close()d independently; the mapping is only
	// torn down once every clone (including the original) is closed.
	Clone() Handle
	// Close releases this reference to the mapping. If this was the
	// last reference and the region was created with removeOnClose,
	// the name is also unlinked from the host namespace.
	Close() error
}

// mapping is the shared, refcounted state behind every clone of a Handle.
type mapping struct {
	mu            sync.Mutex
	name          string
	data          []byte
	mode          Mode
	removeOnClose bool
	refs          int
	unmap         func([]byte) error
	remove        func(string) error
}

type handle struct {
	m       *mapping
	closed  bool
	closeMu sync.Mutex
}

func newHandle(m *mapping) Handle {
	m.refs++
	return &handle{m: m}
}

func (h *handle) Bytes() []byte { return h.m.data }

func (h *handle) Address() unsafe.Pointer {
	if len(h.m.data) == 0 {
		return nil
	}
	return unsafe.Pointer(&h.m.data[0])
}

func (h *handle) Size() int64 { return int64(len(h.m.data)) }
func (h *handle) Mode() Mode { return h.m.mode }

func (h *handle) Clone() Handle {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	h.m.refs++
	return &handle{m: h.m}
}

func (h *handle) Close() error {
	h.closeMu.Lock()
	defer h.closeMu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	h.m.mu.Lock()
	h.m.refs--
	last := h.m.refs == 0
	h.m.mu.Unlock()
	if !last {
		return nil
	}

	var err error
	if h.m.unmap != nil {
		err = h.m.unmap(h.m.data)
	}
	if h.m.removeOnClose && h.m.remove != nil {
		if rmErr := h.m.remove(h.m.name); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}

// ValidateName checks that name is acceptable to every backend this
// package supports: non-empty, no path separators, bounded length.
func ValidateName(name string) error {
	const maxNameLen = 255
	if len(name) == 0 {
		return errors.New("shared memory name must not be empty")
	}
	if len(name) > maxNameLen {
		return errors.Errorf("shared memory name exceeds %d characters", maxNameLen)
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, '\\') {
		return errors.New("shared memory name must not contain path separators")
	}
	return nil
}

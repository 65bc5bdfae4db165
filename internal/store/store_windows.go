// Copyright 2026 The Spmcring Authors. All rights reserved.

//go:build windows

package store

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// Windows has no native equivalent of POSIX named shared memory that
// composes with mmap the way /dev/shm does; named regions here are
// backed by the system paging file via
// CreateFileMapping/MapViewOfFile instead.

func Create(name string, size int64, removeOnClose bool) (Handle, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	sizeHigh := uint32(uint64(size) >> 32)
	sizeLow := uint32(uint64(size) & 0xFFFFFFFF)

	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, errors.Wrapf(err, "encode name %q", name)
	}

	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, sizeHigh, sizeLow, namep)
	if err != nil {
		return nil, errors.Wrapf(err, "CreateFileMapping %q", name)
	}
	if err == nil && h != 0 {
		// CreateFileMapping can return a valid handle together with
		// ERROR_ALREADY_EXISTS; treat that as a hard failure since
		// Create must not silently attach to another writer's region.
		if lastErr := windows.GetLastError(); errors.Is(lastErr, windows.ERROR_ALREADY_EXISTS) {
			windows.CloseHandle(h)
			return nil, errors.Wrapf(ErrAlreadyExists, "create %q", name)
		}
	}

	data, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, errors.Wrapf(err, "MapViewOfFile %q", name)
	}

	m := &mapping{
		name:          name,
		data:          unsafeBytes(data, int(size)),
		mode:          ReadWrite,
		removeOnClose: removeOnClose,
		unmap: func([]byte) error {
			if err := windows.UnmapViewOfFile(data); err != nil {
				return err
			}
			return windows.CloseHandle(h)
		},
		// Windows shared memory backed by the paging file is destroyed
		// automatically once every handle referencing it is closed;
		// there is no separate namespace entry to unlink.
		remove: func(string) error { return nil },
	}
	return newHandle(m), nil
}

func Open(name string) (Handle, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, errors.Wrapf(err, "encode name %q", name)
	}

	h, err := windows.OpenFileMapping(windows.FILE_MAP_READ, false, namep)
	if err != nil {
		if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) {
			return nil, errors.Wrapf(ErrNotFound, "open %q", name)
		}
		return nil, errors.Wrapf(err, "OpenFileMapping %q", name)
	}

	data, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, 0)
	if err != nil {
		windows.CloseHandle(h)
		return nil, errors.Wrapf(err, "MapViewOfFile %q", name)
	}

	size, err := regionSize(h)
	if err != nil {
		windows.UnmapViewOfFile(data)
		windows.CloseHandle(h)
		return nil, errors.Wrapf(err, "query mapping size for %q", name)
	}

	m := &mapping{
		name: name,
		data: unsafeBytes(data, size),
		mode: ReadOnly,
		unmap: func([]byte) error {
			if err := windows.UnmapViewOfFile(data); err != nil {
				return err
			}
			return windows.CloseHandle(h)
		},
	}
	return newHandle(m), nil
}

// Destroy is a no-op on Windows: paging-file-backed mappings vanish
// once their last handle is closed, matching Create's removeOnClose
// contract without a namespace entry to unlink.
func Destroy(name string) error {
	return nil
}

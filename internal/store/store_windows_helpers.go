// Copyright 2026 The Spmcring Authors. All rights reserved.

//go:build windows

package store

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func unsafeBytes(base uintptr, size int) []byte {
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(base)), size)
}

// regionSize asks the OS how large the mapping backing h is, for the
// Open path where the reader was not the one who chose the size.
func regionSize(h windows.Handle) (int, error) {
	probe, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, 0)
	if err != nil {
		return 0, err
	}
	defer windows.UnmapViewOfFile(probe)

	var mbi windows.MemoryBasicInformation
	if err := windows.VirtualQuery(probe, &mbi, unsafe.Sizeof(mbi)); err != nil {
		return 0, err
	}
	return int(mbi.RegionSize), nil
}

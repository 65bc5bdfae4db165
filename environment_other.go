// Copyright 2026 The Spmcring Authors. All rights reserved.

//go:build !linux

package spmcring

// hostCacheLineSize has no portable, dependency-free query outside
// Linux's sysfs; other hosts are assumed compatible with the layout's
// 64-byte assumption.
func hostCacheLineSize() (size int, ok bool) {
	return 0, false
}

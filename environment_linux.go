// Copyright 2026 The Spmcring Authors. All rights reserved.

//go:build linux

package spmcring

import (
	"os"
	"strconv"
	"strings"
)

// hostCacheLineSize reports the L1 data cache line size the kernel
// advertises for CPU 0. If the value cannot be determined, ok is
// false and construction proceeds without the check; only hosts that
// demonstrably report a larger cache line than the layout assumes are
// rejected.
func hostCacheLineSize() (size int, ok bool) {
	data, err := os.ReadFile("/sys/devices/system/cpu/cpu0/cache/index0/coherency_line_size")
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

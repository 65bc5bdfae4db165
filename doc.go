// Copyright 2026 The Spmcring Authors. All rights reserved.

// Package spmcring implements a lock-free, single-producer /
// multiple-consumer ring buffer backed by a named shared-memory
// region, for inter-process communication where one process publishes
// a stream of fixed-size records and any number of reader processes
// independently observe that stream without consuming it.
//
// A Writer owns the region and publishes records with Push or
// Emplace. Any number of Readers may open the same name and observe
// the stream at their own pace with Get, TryGet, and Next; a reader
// that falls too far behind the writer is snapped forward and simply
// skips the records it missed rather than blocking the writer or
// reporting an error.
//
// The package is currently alpha: the on-region layout is
// single-host, single-endianness, and there is no support for
// multiple concurrent writers. See cmd/spmcring-writer and
// cmd/spmcring-reader for minimal end-to-end examples.
package spmcring

// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

// Iterator provides a single-pass, streaming view over a Reader,
// exposing an explicit "advance and check" Next method rather than
// requiring the caller to interleave TryGet and Next calls itself.
//
// Emptiness is a snapshot taken at the moment of the Next call, so
// Iterator is suitable for consume-loops that terminate at
// end-of-stream but not for algorithms that require a stable end.
type Iterator[T any] struct {
	reader *Reader[T]
}

// Next returns the current record and advances past it, or reports
// ok == false if the reader is empty right now.
func (it *Iterator[T]) Next() (value T, ok bool) {
	value, ok = it.reader.TryGet()
	if !ok {
		return value, false
	}
	it.reader.Next(1)
	return value, true
}

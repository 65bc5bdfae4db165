// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

import (
	"os"
	"reflect"
	"unsafe"
)

// checkRecordType walks t, rejecting anything that cannot be safely
// projected onto memory shared across process boundaries: maps,
// channels, funcs, interfaces, strings (a string header holds a
// process-local pointer), and any indirection at all (a *T ring
// buffer of records would store pointers meaningless to a different
// process, so a record type must carry no embedded self-pointers or
// external ownership).
func checkRecordType(t reflect.Type) error {
	return checkType(t)
}

func checkType(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Array:
		return checkType(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := checkType(f.Type); err != nil {
				return newErr(InvalidArgument, "field "+f.Name+" of record type: "+err.Error())
			}
		}
		return nil
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	default:
		return newErr(InvalidArgument, "record type must not contain "+t.Kind().String()+" fields (not byte-copyable across processes)")
	}
}

// slotStride returns the cache-line-aligned byte stride of one slot
// holding a value of size recordSize: every slot is cache-line
// aligned and large enough to hold one record.
func slotStride(recordSize uint64) uint64 {
	return alignUp(recordSize, cacheLineSize)
}

// dataOffsetFor returns the byte offset at which the slot array
// begins: a multiple of the slot stride, at or beyond the header's
// end.
func dataOffsetFor(stride uint64) uint64 {
	return alignUp(uint64(headerSize), stride)
}

// pageSize returns the host's page size, used to bound record size:
// a record must never exceed one page.
func pageSize() int {
	return os.Getpagesize()
}

// slotPointer returns a pointer to slot index (p & (capacity-1))
// within data, the base address of the slot array.
func slotPointer(data unsafe.Pointer, stride uint64, index uint32) unsafe.Pointer {
	return unsafe.Add(data, uintptr(stride)*uintptr(index))
}

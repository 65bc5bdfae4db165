// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an operation on a Writer, Reader, or the
// underlying store failed. Callers should switch on Kind rather than
// inspect error text.
type Kind int

const (
	// InvalidArgument covers a zero, non-power-of-two, or out-of-range
	// capacity, or a record type that cannot be safely projected onto
	// shared memory.
	InvalidArgument Kind = iota
	// RecordTooLarge means sizeof(record) exceeds the host page size.
	RecordTooLarge
	// Environment means the host's reported cache-line size exceeds
	// the layout's fixed 64 bytes, or a page-size query failed.
	Environment
	// AlreadyExists means the requested shared-memory name is taken.
	AlreadyExists
	// NotFound means the requested shared-memory name does not exist.
	NotFound
	// VersionMismatch means the stored layout version does not match
	// this implementation's version.
	VersionMismatch
	// RecordSizeMismatch means the stored record size does not match
	// sizeof(the reader's record type).
	RecordSizeMismatch
	// Resource covers any other host IPC error.
	Resource
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case RecordTooLarge:
		return "record too large"
	case Environment:
		return "environment"
	case AlreadyExists:
		return "already exists"
	case NotFound:
		return "not found"
	case VersionMismatch:
		return "version mismatch"
	case RecordSizeMismatch:
		return "record size mismatch"
	case Resource:
		return "resource"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned at every spmcring API boundary.
// It carries a Kind for classification and, where applicable, an
// underlying cause preserved via github.com/pkg/errors so %+v prints
// a full causal chain back to the originating OS error.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("spmcring: %s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("spmcring: %s: %s", e.Kind, e.msg)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Cause exposes the underlying cause for github.com/pkg/errors callers.
func (e *Error) Cause() error { return e.cause }

func newErr(kind Kind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

func wrapErr(kind Kind, msg string, cause error) error {
	if cause == nil {
		return newErr(kind, msg)
	}
	return &Error{Kind: kind, msg: msg, cause: errors.WithStack(cause)}
}

// ErrClosed is returned by Reader.Get after the Reader has been
// closed. Reader.TryGet on a closed Reader reports ok == false; the
// other Reader methods and all Writer methods do not check for a
// closed handle.
var ErrClosed = errors.New("spmcring: use of closed handle")

// IsKind reports whether err (or any error in its chain) is a *Error
// of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if as, ok := err.(*Error); ok {
			e = as
			break
		}
		err = errors.Unwrap(err)
	}
	return e != nil && e.Kind == kind
}

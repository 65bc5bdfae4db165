// Copyright 2026 The Spmcring Authors. All rights reserved.

package spmcring

import (
	stderrors "errors"

	"github.com/otterlayer/spmcring/internal/store"
)

func errIsAlreadyExists(err error) bool {
	return stderrors.Is(err, store.ErrAlreadyExists)
}

func errIsNotFound(err error) bool {
	return stderrors.Is(err, store.ErrNotFound)
}

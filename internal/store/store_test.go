// Copyright 2026 The Spmcring Authors. All rights reserved.

//go:build unix

package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nameCounter int

func uniqueName() string {
	nameCounter++
	return fmt.Sprintf("spmcring-store-test-%d", nameCounter)
}

func TestCreateThenOpenRoundTrip(t *testing.T) {
	name := uniqueName()
	w, err := Create(name, 4096, true)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, ReadWrite, w.Mode())
	assert.EqualValues(t, 4096, w.Size())

	copy(w.Bytes(), []byte("hello, ring"))

	r, err := Open(name)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, ReadOnly, r.Mode())
	assert.Equal(t, []byte("hello, ring"), r.Bytes()[:len("hello, ring")])
}

func TestCreateAlreadyExists(t *testing.T) {
	name := uniqueName()
	w1, err := Create(name, 4096, true)
	require.NoError(t, err)
	defer w1.Close()

	_, err = Create(name, 4096, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestOpenNotFound(t *testing.T) {
	_, err := Open(uniqueName())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveOnCloseUnlinksName(t *testing.T) {
	name := uniqueName()
	w, err := Create(name, 4096, true)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = Open(name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCloneSharesUntilLastClose(t *testing.T) {
	name := uniqueName()
	w, err := Create(name, 4096, true)
	require.NoError(t, err)

	clone := w.Clone()

	require.NoError(t, w.Close())
	// the region is still live: another process (or this one) can still
	// open it because clone hasn't released its reference yet.
	r, err := Open(name)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	require.NoError(t, clone.Close())

	_, err = Open(name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateName(t *testing.T) {
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("has/slash"))
	assert.Error(t, ValidateName(`has\backslash`))
	assert.NoError(t, ValidateName("plain-name"))
}

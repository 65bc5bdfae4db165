// Copyright 2026 The Spmcring Authors. All rights reserved.

//go:build unix

package store

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const defaultShmDir = "/dev/shm/"

var (
	shmDirOnce sync.Once
	shmDir     string
)

// shmPath resolves name to a path under the host's POSIX shared-memory
// filesystem, following the same convention glibc's shm_open uses:
// object names live as flat files under a tmpfs mount, /dev/shm on
// every Linux distribution this module targets. GO_IPC_SHM_DIR
// overrides the location, primarily for tests on hosts without
// /dev/shm mounted.
func shmPath(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	shmDirOnce.Do(func() {
		shmDir = os.Getenv("GO_IPC_SHM_DIR")
		if shmDir == "" {
			shmDir = defaultShmDir
		}
	})
	return shmDir + name, nil
}

// Create creates a new named shared-memory region, sizes it to size
// bytes, and maps it read-write.
func Create(name string, size int64, removeOnClose bool) (Handle, error) {
	path, err := shmPath(name)
	if err != nil {
		return nil, errors.Wrap(err, "resolve shm path")
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, unix.EEXIST) {
			return nil, errors.Wrapf(ErrAlreadyExists, "create %q", name)
		}
		return nil, errors.Wrapf(err, "open %q", path)
	}
	file := os.NewFile(uintptr(fd), path)
	defer file.Close()

	if err := unix.Ftruncate(fd, size); err != nil {
		unix.Unlink(path)
		return nil, errors.Wrapf(err, "truncate %q to %d bytes", path, size)
	}

	data, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Unlink(path)
		return nil, errors.Wrapf(err, "mmap %q", path)
	}

	m := &mapping{
		name:          name,
		data:          data,
		mode:          ReadWrite,
		removeOnClose: removeOnClose,
		unmap:         unix.Munmap,
		remove:        func(n string) error { return destroy(n) },
	}
	return newHandle(m), nil
}

// Open opens an existing named shared-memory region read-only and maps
// the whole of it; the size is whatever the creator truncated it to.
func Open(name string) (Handle, error) {
	path, err := shmPath(name)
	if err != nil {
		return nil, errors.Wrap(err, "resolve shm path")
	}

	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, errors.Wrapf(ErrNotFound, "open %q", name)
		}
		return nil, errors.Wrapf(err, "open %q", path)
	}
	file := os.NewFile(uintptr(fd), path)
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %q", path)
	}

	data, err := unix.Mmap(fd, 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %q", path)
	}

	m := &mapping{
		name:  name,
		data:  data,
		mode:  ReadOnly,
		unmap: unix.Munmap,
	}
	return newHandle(m), nil
}

// Destroy unlinks a named region without requiring an open Handle.
func Destroy(name string) error {
	return destroy(name)
}

func destroy(name string) error {
	path, err := shmPath(name)
	if err != nil {
		return errors.Wrap(err, "resolve shm path")
	}
	if err := unix.Unlink(path); err != nil && !errors.Is(err, unix.ENOENT) {
		return errors.Wrapf(err, "unlink %q", path)
	}
	return nil
}

// Package tmpfile manages scratch files created during litmus-test
// assembly and linking: assembler input, object files, the linked ELF,
// and generated linker scripts. Every file lives under a process-wide
// "isla" subdirectory of os.TempDir and is removed on Close.
package tmpfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Factory allocates uniquely-named temporary files and guarantees their
// removal, the Go idiom for the original's Drop-triggered unlink.
// Grounded on the teacher's pkg/search/worker.go WorkerPool: an
// atomic.Int64 counter shared by every call, no locking needed on the
// hot path, plus a mutex that guards the one-time subdirectory creation.
type Factory struct {
	dir     string
	counter atomic.Int64

	mu      sync.Mutex
	dirMade bool
}

// New creates a Factory rooted at os.TempDir()/isla. The subdirectory is
// created lazily, on the first Create call, not here.
func New() *Factory {
	return &Factory{dir: filepath.Join(os.TempDir(), "isla")}
}

// NewIn creates a Factory rooted at an explicit base directory, used by
// tests to avoid touching the real system temp directory.
func NewIn(base string) *Factory {
	return &Factory{dir: base}
}

func (f *Factory) ensureDir() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dirMade {
		return nil
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("tmpfile: create scratch dir: %w", err)
	}
	f.dirMade = true
	return nil
}

// File is a single scratch file: its path, an open handle, and the
// cleanup that removes it.
type File struct {
	Path string
	*os.File
}

// Close closes the underlying handle and unlinks the file. Safe to call
// more than once; a missing file is not an error.
func (tf *File) Close() error {
	closeErr := tf.File.Close()
	if errors.Is(closeErr, os.ErrClosed) {
		closeErr = nil
	}
	rmErr := os.Remove(tf.Path)
	if rmErr != nil && !os.IsNotExist(rmErr) {
		if closeErr == nil {
			return fmt.Errorf("tmpfile: remove %s: %w", tf.Path, rmErr)
		}
	}
	return closeErr
}

// Create allocates a new scratch file named isla_<pid>_<counter><suffix>
// under the factory's directory (e.g. suffix ".o", ".s", ".ld", "" for
// the final linked binary).
func (f *Factory) Create(suffix string) (*File, error) {
	if err := f.ensureDir(); err != nil {
		return nil, err
	}
	n := f.counter.Add(1)
	name := fmt.Sprintf("isla_%d_%d%s", os.Getpid(), n, suffix)
	path := filepath.Join(f.dir, name)
	fh, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("tmpfile: create %s: %w", path, err)
	}
	return &File{Path: path, File: fh}, nil
}

// Path returns the path a Create call with the given suffix would use,
// without creating the file — useful for naming an output file an
// external process (the assembler/linker) will create itself.
func (f *Factory) Path(suffix string) (string, error) {
	if err := f.ensureDir(); err != nil {
		return "", err
	}
	n := f.counter.Add(1)
	name := fmt.Sprintf("isla_%d_%d%s", os.Getpid(), n, suffix)
	return filepath.Join(f.dir, name), nil
}

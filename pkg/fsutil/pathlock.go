package fsutil

import (
	"path/filepath"
	"sync"
)

// PathLocker serializes work keyed by resolved file path, so concurrent
// builds of the same output never interleave while unrelated outputs
// proceed in parallel.
//
// Lock entries are never removed; the set of output paths in a process
// is small and stable.
type PathLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPathLocker returns an empty locker.
func NewPathLocker() *PathLocker {
	return &PathLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for path and returns its unlock function.
// Paths are resolved to absolute, cleaned form so spellings of the same
// file share one mutex.
func (l *PathLocker) Lock(path string) func() {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

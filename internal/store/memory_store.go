package store

import (
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/metascore-lookup-service/internal/catalog"
)

// MemoryStore holds the current catalog snapshot.
// Readers load the snapshot pointer without locking; writers swap it whole.
type MemoryStore struct {
	current atomic.Pointer[catalog.Snapshot]
	// writeMu serializes Replace so version and pointer move together.
	writeMu sync.Mutex
	version atomic.Uint64
}

// NewMemoryStore constructs a MemoryStore holding an empty snapshot.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.current.Store(catalog.Empty())
	return s
}

// Current returns the active snapshot. It never returns nil and never blocks.
func (s *MemoryStore) Current() *catalog.Snapshot {
	return s.current.Load()
}

// Replace installs snap as the active snapshot and returns the one it replaced.
// Build the snapshot before calling; only the pointer swap happens here.
func (s *MemoryStore) Replace(snap *catalog.Snapshot) *catalog.Snapshot {
	if snap == nil {
		snap = catalog.Empty()
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev := s.current.Swap(snap)
	s.version.Add(1)
	return prev
}

// Version counts completed replacements.
func (s *MemoryStore) Version() uint64 {
	return s.version.Load()
}

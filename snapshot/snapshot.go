// Package snapshot publishes the current gridmap.Map to concurrent readers.
//
// Readers call Load and run their queries against the returned *Map, which
// never changes. Writers never edit a published Map: they build a new one
// (gridmap.Map.With / Without / Builder, or a level reload) and Publish it.
// A query that started before a Publish finishes on the old snapshot.
package snapshot

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/movegrid/gridmap"
)

// ErrEmpty is returned by Update when nothing has been published yet.
var ErrEmpty = errors.New("snapshot: no map published")

// state pairs a map with the version it was published under.
type state struct {
	m       *gridmap.Map
	version uint64
}

// Store holds the current map snapshot. The zero value is an empty store.
// Load is lock-free; Publish and Update serialize among themselves.
type Store struct {
	cur atomic.Pointer[state]
	mu  sync.Mutex
}

// New returns a Store that already holds m (version 1). m may be nil.
func New(m *gridmap.Map) *Store {
	s := &Store{}
	if m != nil {
		s.Publish(m)
	}
	return s
}

// Load returns the current map and its version. The map is nil and the
// version 0 until the first Publish.
func (s *Store) Load() (*gridmap.Map, uint64) {
	st := s.cur.Load()
	if st == nil {
		return nil, 0
	}
	return st.m, st.version
}

// Publish makes m the current snapshot and returns its version.
func (s *Store) Publish(m *gridmap.Map) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishLocked(m)
}

func (s *Store) publishLocked(m *gridmap.Map) uint64 {
	var v uint64 = 1
	if old := s.cur.Load(); old != nil {
		v = old.version + 1
	}
	s.cur.Store(&state{m: m, version: v})
	return v
}

// Update derives a new snapshot from the current one. fn receives the
// current map and returns its replacement; if fn fails, nothing is
// published. Concurrent Updates are applied one after another.
func (s *Store) Update(fn func(cur *gridmap.Map) (*gridmap.Map, error)) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cur.Load()
	if old == nil {
		return 0, ErrEmpty
	}
	next, err := fn(old.m)
	if err != nil {
		return old.version, err
	}
	return s.publishLocked(next), nil
}

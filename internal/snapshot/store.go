package snapshot

import (
	"sync"
	"sync/atomic"

	"github.com/dom/alliance-dashboard/internal/domain"
)

// Store holds the current snapshot. Each refresh takes a generation with
// Begin; only the most recent generation may commit.
type Store struct {
	mu      sync.Mutex
	latest  uint64
	current atomic.Pointer[Snapshot]
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the live snapshot, or nil before the first commit.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Get is Current with domain.ErrNoSnapshot instead of nil.
func (s *Store) Get() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrNoSnapshot
	}
	return snap, nil
}

// Begin starts a refresh and returns its generation.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Latest returns the most recently begun generation.
func (s *Store) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Commit publishes snap as generation gen. A commit from a refresh that has
// since been superseded is dropped with domain.ErrStaleRefresh.
func (s *Store) Commit(gen uint64, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.latest {
		return domain.ErrStaleRefresh
	}
	snap.Generation = gen
	s.current.Store(snap)
	return nil
}

package catalog

import (
	"fmt"
	"sync"

	domainerrors "github.com/marqueeapp/marquee-server/internal/errors"
)

// Store holds the current catalog snapshot. The snapshot swap is the only
// write; every read sees an immutable snapshot value. A failed initial
// load leaves the store empty with the failure recorded; a failed reload
// keeps the previous snapshot.
type Store struct {
	mu       sync.RWMutex
	snap     *Snapshot
	loadErr  error
	revision uint64

	// Single-slot memo for the filtered list, keyed on (revision,
	// criteria). Purely a performance measure: Filter is pure, so a
	// stale miss only costs a recompute.
	memoMu       sync.Mutex
	memoRevision uint64
	memoCriteria Criteria
	memoResult   []Movie
	memoValid    bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Install makes snap the current snapshot, assigns its revision, and
// clears any recorded load failure. Returns the assigned revision.
func (s *Store) Install(snap *Snapshot) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revision++
	snap.Revision = s.revision
	s.snap = snap
	s.loadErr = nil
	return s.revision
}

// SetError records a load failure. The previous snapshot, if any, stays
// available: a broken reload must not take down a working catalog.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Snapshot returns the current snapshot, or an unavailable error when no
// load has succeeded yet.
func (s *Store) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		if s.loadErr != nil {
			return nil, s.loadErr
		}
		return nil, domainerrors.Unavailable("catalog not loaded yet")
	}
	return s.snap, nil
}

// Revision returns the revision of the current snapshot, 0 when empty.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return 0
	}
	return s.snap.Revision
}

// Filtered returns the records matching criteria, in catalog order,
// along with the snapshot they came from. The result is memoized per
// (revision, criteria); callers must not mutate it.
func (s *Store) Filtered(criteria Criteria) ([]Movie, *Snapshot, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, nil, err
	}

	s.memoMu.Lock()
	defer s.memoMu.Unlock()

	if s.memoValid && s.memoRevision == snap.Revision && s.memoCriteria == criteria {
		return s.memoResult, snap, nil
	}

	result := Filter(snap.Movies, criteria)
	s.memoRevision = snap.Revision
	s.memoCriteria = criteria
	s.memoResult = result
	s.memoValid = true

	return result, snap, nil
}

// Lookup finds a movie by title, matched case-insensitively against the
// current snapshot. A miss is a distinct not-found terminal state, never
// an empty record.
func (s *Store) Lookup(title string) (Movie, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return Movie{}, err
	}

	movie, ok := snap.Lookup(title)
	if !ok {
		return Movie{}, domainerrors.NotFoundf("no movie titled %q", title)
	}
	return movie, nil
}

// Health reports whether a catalog is available and a human-readable
// status message.
func (s *Store) Health() (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		if s.loadErr != nil {
			return false, s.loadErr.Error()
		}
		return false, "catalog not loaded yet"
	}
	if s.loadErr != nil {
		return true, "last reload failed, serving previous snapshot"
	}
	return true, fmt.Sprintf("%d movies, revision %d", len(s.snap.Movies), s.revision)
}

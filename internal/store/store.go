package store

import (
	"sync"
	"time"

	"espejo-admin/internal/domain"
)

// FreshnessThreshold is the advisory staleness bound. Views render an
// indicator past it but never stop rendering.
const FreshnessThreshold = 30 * time.Second

// Store holds the single shared mirror snapshot plus transient flags.
// The synchronizer is its only writer and only ever replaces the snapshot
// wholesale; every view reads through it, never from a local copy.
type Store struct {
	mu              sync.RWMutex
	snapshot        *domain.Snapshot
	loading         bool
	err             error
	lastRefreshedAt time.Time

	now func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Snapshot returns a copy of the last known good snapshot, or ok=false when
// nothing has been installed yet.
func (s *Store) Snapshot() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return domain.Snapshot{}, false
	}
	return *s.snapshot, true
}

// SetLoading marks a refresh as in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Install replaces the snapshot wholesale, records the refresh time and
// clears any previous error.
func (s *Store) Install(snapshot domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snapshot
	s.lastRefreshedAt = s.now()
	s.loading = false
	s.err = nil
}

// Fail records a refresh failure. The previous snapshot is retained:
// stale-but-present beats an empty dashboard.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
}

// Err returns the error from the last failed refresh. It is cleared only by
// the next successful Install, never by a timer.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) LastRefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefreshedAt
}

// Age is the effective age of the mirrored data: the age the server reported
// plus the time the snapshot has been sitting here since it was fetched.
// Recomputed on every call.
func (s *Store) Age() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return 0, false
	}
	reported := time.Duration(s.snapshot.AgeSeconds * float64(time.Second))
	return reported + s.now().Sub(s.snapshot.FetchedAt), true
}

// IsFresh reports whether the mirror is within the freshness threshold.
// A store with no snapshot is not fresh.
func (s *Store) IsFresh() bool {
	age, ok := s.Age()
	return ok && age <= FreshnessThreshold
}

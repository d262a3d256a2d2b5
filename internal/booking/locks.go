package booking

import "sync"

// showingLocks hands out one mutex per showing so that the
// occupancy-recompute, validation and persistence steps of concurrent
// booking intents for the same showing are serialized, while intents for
// distinct showings proceed in parallel. Entries are never reclaimed; the
// set of showings is small and long-lived.
type showingLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newShowingLocks() *showingLocks {
	return &showingLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for the given showing and returns its unlock
// function.
func (s *showingLocks) Lock(showingID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[showingID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[showingID] = l
	}
	s.mu.Unlock()

	l.Lock()

	return l.Unlock
}

package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/tailpane/internal/pane"
)

// Snapshot is the latest pane summary available to the status bar and the
// headless reporter.
type Snapshot struct {
	Pane                pane.Stats
	HasStats            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // consecutive follow/read failures
}

// IsStalled returns true when the followed source has failed repeatedly.
func (s Snapshot) IsStalled() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. The loop publishes
// pane stats; sources report their errors from their own goroutines.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the pane stats. It does not touch the error state.
func (s *Store) Update(stats pane.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Pane = stats
	s.snapshot.HasStats = true
	s.snapshot.LastUpdated = time.Now()
}

// ReportSource records the outcome of a source read. A nil err clears the
// failure count; a non-nil err keeps the previous stats.
func (s *Store) ReportSource(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

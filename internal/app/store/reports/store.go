// Package reports holds the per-session, in-memory collection of normalized
// reports backing the dashboards. The report service remains the system of
// record; this store is the session's last-fetched view of it, plus any
// optimistic entries added between fetches.
package reports

import (
	"sync"

	"github.com/projectguardian/rescuehub/internal/domain/models"
)

// Store is an ordered collection of reports for one session. Reads never
// block on the network; fetch and submit orchestration live in the dashboard
// handlers.
type Store struct {
	mu      sync.RWMutex
	reports []models.Report
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps the whole collection for the given set, preserving the
// order supplied by the caller. Used after every successful fetch, which also
// discards any optimistic entries in favor of the authoritative set.
func (s *Store) ReplaceAll(reports []models.Report) {
	cp := make([]models.Report, len(reports))
	copy(cp, reports)

	s.mu.Lock()
	s.reports = cp
	s.mu.Unlock()
}

// Prepend puts a report at the head of the collection. Used to reflect a
// successful submission immediately, before the next authoritative fetch.
func (s *Store) Prepend(report models.Report) {
	s.mu.Lock()
	s.reports = append([]models.Report{report}, s.reports...)
	s.mu.Unlock()
}

// UpdateStatus sets the status of the report with the given ID in place and
// reports whether the ID was found.
func (s *Store) UpdateStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID == id {
			s.reports[i].Status = status
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the collection in its current order.
func (s *Store) Snapshot() []models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]models.Report, len(s.reports))
	copy(cp, s.reports)
	return cp
}

// Get returns the report with the given ID.
func (s *Store) Get(id string) (models.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.ID == id {
			return r, true
		}
	}
	return models.Report{}, false
}

// Len returns the number of reports held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// CountByStatus tallies the unfiltered collection per status. Computed fresh
// on every call so the counters can never drift from the visible set.
func (s *Store) CountByStatus() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int, len(models.Statuses))
	for _, r := range s.reports {
		counts[r.Status]++
	}
	return counts
}

// FilterByStatus returns the reports with exactly the given status, in
// collection order. An empty or "all" status returns everything.
func (s *Store) FilterByStatus(status string) []models.Report {
	if status == "" || status == "all" {
		return s.Snapshot()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Report, 0, len(s.reports))
	for _, r := range s.reports {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

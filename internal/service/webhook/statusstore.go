package webhook

import "sync"

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusUnknown Status = "unknown"
)

type StatusEntry struct {
	Status    Status
	Timestamp string
}

// StatusStore tracks the delivery state of the most recent dispatch per
// ticket. A single mutex guards every access, held only for the map
// operation itself, never across an HTTP call. Entries are kept until an
// admin clears the store.
type StatusStore struct {
	mu      sync.Mutex
	entries map[string]StatusEntry
}

func NewStatusStore() *StatusStore {
	return &StatusStore{
		entries: make(map[string]StatusEntry),
	}
}

func (s *StatusStore) Set(ticketCode string, status Status, timestamp string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[ticketCode] = StatusEntry{
		Status:    status,
		Timestamp: timestamp,
	}
}

func (s *StatusStore) Get(ticketCode string) (StatusEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[ticketCode]
	return entry, ok
}

func (s *StatusStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Clear drops every entry and reports how many were removed.
func (s *StatusStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.entries)
	s.entries = make(map[string]StatusEntry)
	return count
}

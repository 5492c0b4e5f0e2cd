package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
)

// Ensure EntryStore implements the interface.
var _ driven.EntrySource = (*EntryStore)(nil)

// EntryStore is an in-memory implementation of driven.EntrySource.
type EntryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.Entry
}

// NewEntryStore creates a new in-memory entry store holding entries.
func NewEntryStore(entries ...domain.Entry) *EntryStore {
	s := &EntryStore{
		entries: make(map[string]domain.Entry, len(entries)),
	}
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	return s
}

// Save stores or updates an entry.
func (s *EntryStore) Save(_ context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

// Get retrieves an entry by ID.
func (s *EntryStore) Get(_ context.Context, id string) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns all entries ordered by ID.
func (s *EntryStore) List(_ context.Context) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

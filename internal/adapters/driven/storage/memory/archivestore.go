package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/elnmap/internal/adapters/driven/storage"
	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
)

// Ensure ArchiveStore implements the interface.
var _ driven.ArchiveStore = (*ArchiveStore)(nil)

// ArchiveStore is an in-memory implementation of driven.ArchiveStore.
type ArchiveStore struct {
	mu       sync.RWMutex
	archives map[string]domain.Archive
}

// NewArchiveStore creates a new in-memory archive store.
func NewArchiveStore() *ArchiveStore {
	return &ArchiveStore{
		archives: make(map[string]domain.Archive),
	}
}

// Persist stores or replaces the archive of section.
func (s *ArchiveStore) Persist(_ context.Context, section *domain.Section, upload, name string) (domain.Reference, error) {
	archive, ref, err := storage.NewArchive(section, upload, name)
	if err != nil {
		return domain.Reference{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.archives[archive.ID]; ok {
		archive.CreatedAt = existing.CreatedAt
	}
	s.archives[archive.ID] = *archive
	return ref, nil
}

// GetArchive retrieves an archive by ID.
func (s *ArchiveStore) GetArchive(_ context.Context, id string) (*domain.Archive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	archive, ok := s.archives[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &archive, nil
}

// ListArchives returns the archives of an upload ordered by file name.
func (s *ArchiveStore) ListArchives(_ context.Context, upload string) ([]domain.Archive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Archive, 0, len(s.archives))
	for _, a := range s.archives {
		if upload != "" && a.Upload != upload {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Upload != result[j].Upload {
			return result[i].Upload < result[j].Upload
		}
		return result[i].FileName < result[j].FileName
	})
	return result, nil
}

// DeleteArchive removes an archive.
func (s *ArchiveStore) DeleteArchive(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.archives, id)
	return nil
}

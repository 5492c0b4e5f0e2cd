package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// ArchiveService reads persisted archives.
type ArchiveService struct {
	store driven.ArchiveStore
}

// NewArchiveService creates a new archive service.
func NewArchiveService(store driven.ArchiveStore) *ArchiveService {
	return &ArchiveService{store: store}
}

// List returns the archives of an upload.
func (s *ArchiveService) List(ctx context.Context, upload string) ([]domain.Archive, error) {
	archives, err := s.store.ListArchives(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	return archives, nil
}

// Get returns one archive.
func (s *ArchiveService) Get(ctx context.Context, id string) (*domain.Archive, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: archive id is required", domain.ErrInvalidInput)
	}
	return s.store.GetArchive(ctx, id)
}

// Delete removes one archive.
func (s *ArchiveService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: archive id is required", domain.ErrInvalidInput)
	}
	return s.store.DeleteArchive(ctx, id)
}

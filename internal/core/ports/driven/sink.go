package driven

import (
	"context"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// PersistenceSink persists finished sections as independent archives.
type PersistenceSink interface {
	// Persist stores section under name within the containing upload and
	// returns the reference that replaces it in its parent. Persisting the
	// same upload and name again overwrites the archive.
	Persist(ctx context.Context, section *domain.Section, upload, name string) (domain.Reference, error)
}

// ArchiveStore gives read access to persisted archives.
type ArchiveStore interface {
	PersistenceSink

	// GetArchive retrieves an archive by ID.
	GetArchive(ctx context.Context, id string) (*domain.Archive, error)

	// ListArchives returns the archives of an upload ordered by file name.
	// An empty upload lists every archive.
	ListArchives(ctx context.Context, upload string) ([]domain.Archive, error)

	// DeleteArchive removes an archive.
	DeleteArchive(ctx context.Context, id string) error
}

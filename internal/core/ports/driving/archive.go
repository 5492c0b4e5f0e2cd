package driving

import (
	"context"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// ArchiveService reads persisted archives.
type ArchiveService interface {
	// List returns the archives of an upload. An empty upload lists all.
	List(ctx context.Context, upload string) ([]domain.Archive, error)

	// Get returns one archive.
	Get(ctx context.Context, id string) (*domain.Archive, error)

	// Delete removes one archive.
	Delete(ctx context.Context, id string) error
}

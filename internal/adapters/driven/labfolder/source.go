package labfolder

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
)

// Ensure ExportSource implements the interface.
var _ driven.EntrySource = (*ExportSource)(nil)

// ExportSource serves entries from an export file. The file is read on
// every call so edits are picked up.
type ExportSource struct {
	path string
}

// NewExportSource creates an entry source for the export at path.
func NewExportSource(path string) *ExportSource {
	return &ExportSource{path: path}
}

// Path returns the export file path.
func (s *ExportSource) Path() string {
	return s.path
}

// Get returns the entry whose id, compared as a string, equals id.
func (s *ExportSource) Get(ctx context.Context, id string) (*domain.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: entry %s in %s", domain.ErrNotFound, id, s.path)
}

// List returns all entries in export order.
func (s *ExportSource) List(ctx context.Context) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	entries, err := ParseExport(data)
	if err != nil {
		return nil, fmt.Errorf("parse export %s: %w", s.path, err)
	}
	return entries, nil
}

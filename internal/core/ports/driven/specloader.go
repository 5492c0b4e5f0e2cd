package driven

import (
	"context"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// SpecLoader parses mapping specification files.
type SpecLoader interface {
	// Load parses the file at ref. The format is selected by extension:
	// ".json" or ".yaml". Any other extension returns domain.ErrUnsupportedFormat.
	Load(ctx context.Context, ref string) (*domain.MappingSpec, error)
}

package driving

import "github.com/custodia-labs/elnmap/internal/core/domain"

// SchemaService exposes the registered section types.
type SchemaService interface {
	// Types returns all registered types ordered by qualified name.
	Types() []*domain.SectionType

	// Describe returns one type.
	Describe(name string) (*domain.SectionType, error)
}

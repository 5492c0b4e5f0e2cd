package services

import (
	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
)

// Ensure SchemaService implements the interface.
var _ driving.SchemaService = (*SchemaService)(nil)

// SchemaService exposes the section types known to a resolver.
type SchemaService struct {
	resolver driven.TypeResolver
}

// NewSchemaService creates a new schema service.
func NewSchemaService(resolver driven.TypeResolver) *SchemaService {
	return &SchemaService{resolver: resolver}
}

// Types returns all registered types.
func (s *SchemaService) Types() []*domain.SectionType {
	return s.resolver.Types()
}

// Describe resolves one type by qualified name.
func (s *SchemaService) Describe(name string) (*domain.SectionType, error) {
	return s.resolver.Resolve(name)
}

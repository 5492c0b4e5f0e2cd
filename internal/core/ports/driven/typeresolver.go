package driven

import "github.com/custodia-labs/elnmap/internal/core/domain"

// TypeResolver maps fully-qualified type names to section types.
type TypeResolver interface {
	// Resolve returns the section type for name. Failures are returned as
	// *domain.ResolveError wrapping domain.ErrModuleNotFound or
	// domain.ErrMemberNotFound.
	Resolve(name string) (*domain.SectionType, error)

	// Types returns every registered type ordered by qualified name.
	Types() []*domain.SectionType
}

package driving

import (
	"context"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// Importer maps one source entry into persisted sections.
type Importer interface {
	// Import runs the mapping engine for one entry.
	// Configuration, entry lookup and tag selection failures abort the
	// import before anything is persisted.
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)

	// Classes loads a specification and resolves its class entries without
	// importing anything.
	Classes(ctx context.Context, mappingFile string) (*ClassReport, error)

	// Extract returns the content pools of an entry without mapping them.
	Extract(ctx context.Context, entryID string) (*domain.Pools, error)
}

// ImportRequest identifies what to import and how.
type ImportRequest struct {
	// EntryID is the import identifier of the source entry.
	EntryID string

	// MappingFile is the specification file reference.
	MappingFile string

	// Upload names the containing upload for persisted archives.
	Upload string
}

// ImportResult describes a finished import.
type ImportResult struct {
	// ClassKey is the class key selected from the entry tags.
	ClassKey string

	// Root is the root section.
	Root *domain.Section

	// RootRef is the reference of the persisted root.
	RootRef domain.Reference

	// Archives are the references of Archive-typed instances, in persistence order.
	Archives []domain.Reference

	// Diagnostics holds every non-fatal finding of the run.
	Diagnostics domain.Diagnostics
}

// ClassReport is the resolution outcome of every class entry of a specification.
type ClassReport struct {
	Classes     []ClassResolution
	Diagnostics domain.Diagnostics
}

// ClassResolution is the resolution outcome of one class entry.
type ClassResolution struct {
	Spec     domain.ClassSpec
	Resolved bool
	Error    string
}

package driven

import (
	"context"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// EntrySource returns source entries by import identifier.
type EntrySource interface {
	// Get returns the entry whose ID matches id.
	// Returns domain.ErrNotFound when no entry matches.
	Get(ctx context.Context, id string) (*domain.Entry, error)

	// List returns all entries in source order.
	List(ctx context.Context) ([]domain.Entry, error)
}

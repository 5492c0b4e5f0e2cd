package mcp

import (
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Importer runs the mapping engine.
	Importer driving.Importer

	// Archive reads persisted archives. Optional.
	Archive driving.ArchiveService

	// Schema lists section types. Optional.
	Schema driving.SchemaService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Importer == nil {
		return ErrMissingImporter
	}
	return nil
}

// Package mcp provides an MCP (Model Context Protocol) server adapter for elnmap.
// It lets AI assistants run imports and inspect persisted archives.
package mcp

import "errors"

// ErrMissingImporter is returned when the import service is not provided.
var ErrMissingImporter = errors.New("mcp: import service is required")

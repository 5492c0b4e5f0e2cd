// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for an import to run:
//
//   - EntrySource: Fetches the source entry to import
//   - SpecLoader: Parses mapping specification files
//   - TypeResolver: Resolves qualified type names to section types
//   - PersistenceSink: Persists Archive-typed instances and the root
//
// # Optional Interfaces
//
//   - ArchiveStore: Read access to persisted archives (CLI, MCP)
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

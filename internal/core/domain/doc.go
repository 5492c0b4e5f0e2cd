// Package domain defines the core business entities for elnmap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entry, RawElement: one source entry and its DATA/TEXT/TABLE elements
//   - Pools: the data, text and table content extracted from an entry
//   - MappingSpec, ClassSpec: the declarative mapping specification
//   - SectionType, Section: target types and their constructed instances
//   - Quantity, Unit: physical quantities and the unit table used to coerce them
//   - Reference, Archive: persisted units and the references that replace them
//   - Diagnostics: non-fatal findings reported during an import
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

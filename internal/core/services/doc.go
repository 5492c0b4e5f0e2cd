// Package services implements the driving port interfaces.
// Services contain the mapping engine and orchestrate calls to driven
// ports (adapters).
//
// The engine runs in this order for one entry: ExtractRecords builds the
// content pools, the selection mapping resolves every class entry, the
// Walker constructs instances per class entry using the Binder and
// SynthesizeName, and finished instances are attached to the root or
// handed to the persistence sink.
//
// Services are pure Go with no CGO or external dependencies.
package services

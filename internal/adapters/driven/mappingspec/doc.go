// Package mappingspec loads mapping specification files.
//
// A specification has a Classes section and a Mapping section with the
// categories "Data elements", "Text elements" and "Table elements". Both
// JSON and YAML files are decoded into an ordered tree first so the
// declaration order of class entries and bindings is kept.
package mappingspec

// Package schema provides the section type registry that resolves the
// fully-qualified class names used in mapping specifications.
//
// Types are declared in schema packages: YAML documents naming a module
// and its sections. The built-in packages are embedded; further packages
// are loaded from the directories listed in the schema.dirs setting.
package schema

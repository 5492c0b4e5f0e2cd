package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration Errors.

	// ErrUnsupportedFormat indicates a specification file with an extension
	// other than .json or .yaml.
	ErrUnsupportedFormat = errors.New("unsupported specification format")

	// ErrInvalidSpec indicates a specification file that could not be parsed.
	ErrInvalidSpec = errors.New("invalid mapping specification")

	// Resolution Errors.

	// ErrModuleNotFound indicates the module path of a qualified type name is unknown.
	ErrModuleNotFound = errors.New("module not found")

	// ErrMemberNotFound indicates the module exists but has no such type.
	ErrMemberNotFound = errors.New("member not found")

	// Selection Errors.

	// ErrNoMatchingClass indicates none of the entry tags names a class key.
	ErrNoMatchingClass = errors.New("no suitable class found in entry tags")

	// ErrAmbiguousClass indicates more than one entry tag names a class key.
	ErrAmbiguousClass = errors.New("too many suitable classes found in entry tags")

	// Binding Errors.

	// ErrUnknownAttribute indicates the section type has no such attribute.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrTypeMismatch indicates a value that the attribute cannot hold.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownUnit indicates a unit expression that could not be parsed.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrIncompatibleUnit indicates a conversion between different dimensions.
	ErrIncompatibleUnit = errors.New("incompatible unit")

	// Structural Errors.

	// ErrStructuralFault indicates a non-repeating class entry produced no instance.
	ErrStructuralFault = errors.New("structural fault")
)

// ResolveError reports a qualified type name that could not be resolved.
type ResolveError struct {
	// Name is the fully-qualified type name.
	Name string

	// Module is the module path part of Name.
	Module string

	// Member is the final type name part of Name.
	Member string

	// Err is ErrModuleNotFound or ErrMemberNotFound.
	Err error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if errors.Is(e.Err, ErrMemberNotFound) {
		return fmt.Sprintf("the module %s has no class %s", e.Module, e.Member)
	}
	return fmt.Sprintf("the module %s was not found", e.Module)
}

// Unwrap returns the underlying sentinel.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// BindError reports a value that could not be assigned to an attribute.
type BindError struct {
	// Type is the qualified name of the section type.
	Type string

	// Attribute is the attribute name.
	Attribute string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *BindError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Type, e.Attribute, e.Err)
}

// Unwrap returns the underlying cause.
func (e *BindError) Unwrap() error {
	return e.Err
}

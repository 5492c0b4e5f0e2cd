package domain

import (
	"fmt"
	"strings"
)

// Diagnostic codes reported during an import.
const (
	CodeSpec             = "spec"
	CodeUnresolvedType   = "unresolved-type"
	CodeMissingAttribute = "missing-attribute"
	CodeBindFailed       = "bind-failed"
	CodeAttachFailed     = "attach-failed"
	CodeNameReference    = "name-reference"
	CodeSelection        = "selection"
)

// Severity is the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single non-fatal finding.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string

	// Class is the class key the finding relates to, if any.
	Class string

	// KeyPath is the mapping key path the finding relates to, if any.
	KeyPath string
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Class != "" {
		prefix = append(prefix, "["+d.Class+"]")
	}
	if d.KeyPath != "" {
		prefix = append(prefix, d.KeyPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}
	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}
	return msg
}

// Diagnostics collects the findings of one import.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, class, keyPath string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Class:    class,
		KeyPath:  keyPath,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, class, keyPath string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Class:    class,
		KeyPath:  keyPath,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, class, keyPath string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Class:    class,
		KeyPath:  keyPath,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// WarningsWithCode returns the warnings carrying code.
func (d *Diagnostics) WarningsWithCode(code string) []Diagnostic {
	var out []Diagnostic
	for _, w := range d.Warnings {
		if w.Code == code {
			out = append(out, w)
		}
	}
	return out
}

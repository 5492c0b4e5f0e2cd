package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// Binder assigns source values onto section attributes.
// Failures are reported and leave the attribute unset.
type Binder struct {
	report reporter
}

// NewBinder creates a binder that records findings in diags.
func NewBinder(diags *domain.Diagnostics) *Binder {
	return &Binder{report: newReporter(diags)}
}

// BindData binds the leaf at binding.Path. The leaf is first read as a
// value/unit quantity, then as its description. It returns false when
// neither could be assigned.
func (b *Binder) BindData(section *domain.Section, class string, data domain.DataContent, binding domain.DataBinding) bool {
	err := bindLeaf(section, data, binding)
	if err == nil {
		return true
	}
	b.report.warn(domain.CodeBindFailed, class, binding.PathString(),
		"JSON entry with key %s could not be parsed with error: %v", binding.PathString(), err)
	return false
}

func bindLeaf(section *domain.Section, data domain.DataContent, binding domain.DataBinding) error {
	leaf, err := data.Leaf(binding.Path)
	if err != nil {
		return err
	}

	qerr := bindQuantity(section, binding.Key, leaf)
	if qerr == nil {
		return nil
	}

	desc, ok := leaf["description"]
	if !ok {
		return errors.Join(qerr, fmt.Errorf("%w: key description", domain.ErrNotFound))
	}
	return section.Set(binding.Key, desc)
}

// bindQuantity assigns leaf["value"] in leaf["unit"]. Dimensionless
// quantities are assigned as plain numbers to number attributes.
func bindQuantity(section *domain.Section, key string, leaf map[string]any) error {
	raw, ok := leaf["value"]
	if !ok {
		return fmt.Errorf("%w: key value", domain.ErrNotFound)
	}
	unitRaw, ok := leaf["unit"]
	if !ok {
		return fmt.Errorf("%w: key unit", domain.ErrNotFound)
	}
	unit, ok := unitRaw.(string)
	if !ok && unitRaw != nil {
		return fmt.Errorf("%w: unit is %T", domain.ErrTypeMismatch, unitRaw)
	}

	magnitude, err := domain.ParseMagnitude(raw)
	if err != nil {
		return err
	}
	q, err := domain.NewQuantity(magnitude, unit)
	if err != nil {
		return err
	}

	var value any = q
	if def, ok := section.Type.Attribute(key); ok && def.Kind == domain.AttrNumber && strings.TrimSpace(q.Unit) == "" {
		value = q.Magnitude
	}
	return section.Set(key, value)
}

// BindText binds the body stored under binding.Header.
func (b *Binder) BindText(section *domain.Section, class string, text domain.TextContent, binding domain.TextBinding) bool {
	body, ok := text[binding.Header]
	var err error
	if !ok {
		err = fmt.Errorf("%w: header %q", domain.ErrNotFound, binding.Header)
	} else {
		err = section.Set(binding.Key, body)
	}
	if err == nil {
		return true
	}
	b.report.warn(domain.CodeBindFailed, class, binding.Header,
		"Text entry with key %s could not be parsed with error: %v", binding.Header, err)
	return false
}

// BindCell binds the cell of row under binding.Column. Rows come from
// TableRecord.Row; a missing row is handled by the caller.
func (b *Binder) BindCell(section *domain.Section, class string, row map[string]any, binding domain.TableBinding) bool {
	keyPath := binding.Table + "." + binding.Column
	cell, ok := row[binding.Column]
	var err error
	if !ok {
		err = fmt.Errorf("%w: column %q", domain.ErrNotFound, binding.Column)
	} else {
		err = section.Set(binding.Key, cell)
	}
	if err == nil {
		return true
	}
	b.report.warn(domain.CodeBindFailed, class, keyPath,
		"Table entry with key %s could not be parsed with error: %v", keyPath, err)
	return false
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
)

// SelectionMapping maps class keys to their resolved section types.
// Class keys whose type could not be resolved are absent.
type SelectionMapping map[string]*domain.SectionType

// BuildSelection resolves the target type of every class entry.
// Resolution failures are reported and drop the class key.
func BuildSelection(spec *domain.MappingSpec, resolver driven.TypeResolver, diags *domain.Diagnostics) SelectionMapping {
	return buildSelection(spec, resolver, newReporter(diags))
}

func buildSelection(spec *domain.MappingSpec, resolver driven.TypeResolver, report reporter) SelectionMapping {
	selection := make(SelectionMapping, len(spec.Classes))
	for _, cs := range spec.Classes {
		t, err := resolver.Resolve(cs.Class)
		if err != nil {
			report.warn(domain.CodeUnresolvedType, cs.Key, "", "%v", resolveMessage(cs.Class, err))
			continue
		}
		selection[cs.Key] = t
	}
	return selection
}

func resolveMessage(name string, err error) string {
	var re *domain.ResolveError
	if errors.As(err, &re) {
		return re.Error()
	}
	return fmt.Sprintf("could not resolve %s: %v", name, err)
}

// SelectClass picks the single class key present in tags.
// Candidates are the keys of order that are in selection, in that order.
// It fails with domain.ErrNoMatchingClass or domain.ErrAmbiguousClass,
// listing the valid keys.
func SelectClass(selection SelectionMapping, order []string, tags []string) (string, error) {
	tagged := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagged[t] = true
	}

	var valid, matches []string
	for _, key := range order {
		if _, ok := selection[key]; !ok {
			continue
		}
		valid = append(valid, key)
		if tagged[key] {
			matches = append(matches, key)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: use one of the following tags: %s",
			domain.ErrNoMatchingClass, strings.Join(valid, ", "))
	default:
		return "", fmt.Errorf("%w: tags %s all match, use only one of: %s",
			domain.ErrAmbiguousClass, strings.Join(matches, ", "), strings.Join(valid, ", "))
	}
}

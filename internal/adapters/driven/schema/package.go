package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// Package is the on-disk form of a schema package.
type Package struct {
	Module   string          `yaml:"module"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig declares one section type.
type SectionConfig struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Attributes  []AttributeConfig `yaml:"attributes"`
}

// AttributeConfig declares one attribute of a section type.
type AttributeConfig struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Unit        string `yaml:"unit"`
	Section     string `yaml:"section"`
	Repeats     bool   `yaml:"repeats"`
	Description string `yaml:"description"`
}

// ParsePackage decodes and validates a schema package.
func ParsePackage(data []byte) ([]*domain.SectionType, error) {
	var pkg Package
	if err := yaml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if pkg.Module == "" {
		return nil, fmt.Errorf("%w: schema package has no module", domain.ErrInvalidInput)
	}

	types := make([]*domain.SectionType, 0, len(pkg.Sections))
	for _, sc := range pkg.Sections {
		t, err := sc.sectionType(pkg.Module)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (sc SectionConfig) sectionType(module string) (*domain.SectionType, error) {
	if sc.Name == "" {
		return nil, fmt.Errorf("%w: section without name in %s", domain.ErrInvalidInput, module)
	}
	t := &domain.SectionType{Module: module, Name: sc.Name, Description: sc.Description}

	seen := map[string]bool{domain.NameAttribute: true}
	for _, ac := range sc.Attributes {
		if seen[ac.Name] || ac.Name == "" {
			return nil, fmt.Errorf("%w: %s: invalid or duplicate attribute %q",
				domain.ErrInvalidInput, t.QualifiedName(), ac.Name)
		}
		seen[ac.Name] = true

		def, err := ac.attributeDef()
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.QualifiedName(), ac.Name, err)
		}
		t.Attributes = append(t.Attributes, def)
	}
	return t, nil
}

func (ac AttributeConfig) attributeDef() (domain.AttributeDef, error) {
	kind := domain.AttrKind(ac.Kind)
	if ac.Kind == "" {
		kind = domain.AttrString
	}
	if !kind.Valid() {
		return domain.AttributeDef{}, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, ac.Kind)
	}
	if ac.Unit != "" {
		if kind != domain.AttrQuantity {
			return domain.AttributeDef{}, fmt.Errorf("%w: only quantities carry a unit", domain.ErrInvalidInput)
		}
		if _, err := domain.ParseUnit(ac.Unit); err != nil {
			return domain.AttributeDef{}, err
		}
	}
	return domain.AttributeDef{
		Name:        ac.Name,
		Kind:        kind,
		Unit:        ac.Unit,
		Section:     ac.Section,
		Repeats:     ac.Repeats,
		Description: ac.Description,
	}, nil
}

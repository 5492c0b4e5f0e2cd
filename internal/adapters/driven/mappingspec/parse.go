package mappingspec

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// Format is a specification file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Top-level and per-entry keys of the specification format.
const (
	keyClasses   = "Classes"
	keyMapping   = "Mapping"
	keyClass     = "class"
	keyType      = "type"
	keyAttribute = "attribute"
	keyRepeats   = "repeats"
	keyName      = "name"
	keyObject    = "object"
	keyKey       = "key"
)

// Parse decodes a specification document.
// Problems that only affect single entries are collected in the result's
// Warnings; a document without a Classes mapping is domain.ErrInvalidSpec.
func Parse(data []byte, format Format) (*domain.MappingSpec, error) {
	var (
		root *node
		err  error
	)
	switch format {
	case FormatJSON:
		root, err = decodeJSON(data)
	case FormatYAML:
		root, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpec, err)
	}

	classes, ok := root.get(keyClasses)
	if !ok || !classes.isMap {
		return nil, fmt.Errorf("%w: missing %s mapping", domain.ErrInvalidSpec, keyClasses)
	}

	p := &parser{spec: &domain.MappingSpec{}}
	p.classes(classes)

	mapping, ok := root.get(keyMapping)
	if !ok || !mapping.isMap {
		p.warn("missing %s mapping, no values will be bound", keyMapping)
		return p.spec, nil
	}
	for _, category := range mapping.keys {
		section := mapping.fields[category]
		switch category {
		case domain.CategoryData:
			for _, k := range section.keys {
				p.data(section.fields[k], []string{k})
			}
		case domain.CategoryText:
			p.text(section)
		case domain.CategoryTable:
			p.table(section)
		default:
			p.warn("unknown mapping category %q", category)
		}
	}
	return p.spec, nil
}

type parser struct {
	spec *domain.MappingSpec
}

func (p *parser) warn(format string, args ...any) {
	p.spec.Warnings = append(p.spec.Warnings, fmt.Sprintf(format, args...))
}

func (p *parser) classes(classes *node) {
	for _, key := range classes.keys {
		entry := classes.fields[key]
		if !entry.isMap {
			p.warn("class entry %s is not a mapping", key)
			continue
		}
		cs := domain.ClassSpec{Key: key}
		cs.Class, _ = field(entry, keyClass)
		kind, _ := field(entry, keyType)
		cs.Type = domain.SectionKind(kind)
		cs.Attribute, _ = field(entry, keyAttribute)
		cs.Name, _ = field(entry, keyName)

		var raw any
		if r, ok := entry.get(keyRepeats); ok {
			raw = r.value
		}
		repeats, ok := domain.ParseRepeat(raw)
		if !ok {
			p.warn("class entry %s: repeats value %v is not true or false, treated as false", key, raw)
		}
		cs.Repeats = repeats

		if cs.Class == "" {
			p.warn("class entry %s has no class", key)
		}
		if cs.Type != domain.KindMain && cs.Attribute == "" && cs.Type.Valid() {
			p.warn("class entry %s has no attribute", key)
		}
		p.spec.Classes = append(p.spec.Classes, cs)
	}
}

// data walks a Data elements node. A mapping holding an object key is a
// binding; any other mapping nests one level deeper.
func (p *parser) data(n *node, path []string) {
	if !n.isMap {
		p.warn("data mapping %s is not a mapping", strings.Join(path, "."))
		return
	}
	if _, ok := n.get(keyObject); ok {
		object, key, ok := p.target(n, domain.CategoryData, strings.Join(path, "."))
		if ok {
			p.spec.Data = append(p.spec.Data, domain.DataBinding{
				Path:   append([]string(nil), path...),
				Object: object,
				Key:    key,
			})
		}
		return
	}
	if len(path) >= domain.MaxDataDepth {
		p.warn("data mapping %s is nested deeper than %d levels and is ignored",
			strings.Join(path, "."), domain.MaxDataDepth)
		return
	}
	for _, k := range n.keys {
		p.data(n.fields[k], append(path, k))
	}
}

func (p *parser) text(section *node) {
	if !section.isMap {
		p.warn("%s is not a mapping", domain.CategoryText)
		return
	}
	for _, header := range section.keys {
		object, key, ok := p.target(section.fields[header], domain.CategoryText, header)
		if !ok {
			continue
		}
		p.spec.Text = append(p.spec.Text, domain.TextBinding{Header: header, Object: object, Key: key})
	}
}

func (p *parser) table(section *node) {
	if !section.isMap {
		p.warn("%s is not a mapping", domain.CategoryTable)
		return
	}
	for _, table := range section.keys {
		columns := section.fields[table]
		if !columns.isMap {
			p.warn("table mapping %s is not a mapping", table)
			continue
		}
		for _, column := range columns.keys {
			object, key, ok := p.target(columns.fields[column], domain.CategoryTable, table+"."+column)
			if !ok {
				continue
			}
			p.spec.Table = append(p.spec.Table, domain.TableBinding{
				Table:  table,
				Column: column,
				Object: object,
				Key:    key,
			})
		}
	}
}

// target reads the object and key of a binding node.
func (p *parser) target(n *node, category, keyPath string) (object, key string, ok bool) {
	object, okObject := field(n, keyObject)
	key, okKey := field(n, keyKey)
	if !okObject || !okKey || object == "" || key == "" {
		p.warn("%s binding %s needs both %s and %s", category, keyPath, keyObject, keyKey)
		return "", "", false
	}
	return object, key, true
}

func field(n *node, key string) (string, bool) {
	c, ok := n.get(key)
	if !ok {
		return "", false
	}
	return c.str()
}

package domain

import (
	"fmt"
	"strings"
)

// DataContent is the merged payload of all DATA elements.
// Keys nest up to three levels; leaves are maps holding "value" and "unit"
// or "description".
type DataContent map[string]any

// Lookup walks the content along path and returns the node found there.
func (d DataContent) Lookup(path []string) (any, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty key path", ErrInvalidInput)
	}
	var node any = map[string]any(d)
	for i, key := range path {
		m, ok := asMap(node)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a mapping", ErrNotFound, strings.Join(path[:i], "."))
		}
		node, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("%w: key %s", ErrNotFound, strings.Join(path[:i+1], "."))
		}
	}
	return node, nil
}

// Leaf returns the mapping found at path.
func (d DataContent) Leaf(path []string) (map[string]any, error) {
	node, err := d.Lookup(path)
	if err != nil {
		return nil, err
	}
	m, ok := asMap(node)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a mapping", ErrInvalidInput, strings.Join(path, "."))
	}
	return m, nil
}

// Description returns the description field of the leaf at path.
func (d DataContent) Description(path []string) (string, error) {
	leaf, err := d.Leaf(path)
	if err != nil {
		return "", err
	}
	desc, ok := leaf["description"]
	if !ok {
		return "", fmt.Errorf("%w: key %s.description", ErrNotFound, strings.Join(path, "."))
	}
	if s, ok := desc.(string); ok {
		return s, nil
	}
	return fmt.Sprint(desc), nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case DataContent:
		return m, true
	default:
		return nil, false
	}
}

// TextContent maps a markup-free header to its markup-free body.
type TextContent map[string]string

// TableRecord is one sheet of a TABLE element with its header row promoted
// to column names.
type TableRecord struct {
	// Name is the title of the element the sheet came from.
	Name string

	// Columns are the column names in sheet order.
	Columns []string

	// Rows are the data rows, indexed from 0.
	Rows []map[string]any
}

// Row returns the row at index.
func (t TableRecord) Row(index int) (map[string]any, bool) {
	if index < 0 || index >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[index], true
}

// Pools holds the content extracted from one entry.
// Pools are built once and are read-only afterwards.
type Pools struct {
	Data   DataContent
	Text   TextContent
	Tables []TableRecord
}

// TablesNamed returns the records named name, in extraction order.
func (p *Pools) TablesNamed(name string) []TableRecord {
	var out []TableRecord
	for _, t := range p.Tables {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

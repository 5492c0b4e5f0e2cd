package mappingspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// node is a decoded document value that remembers mapping key order.
type node struct {
	keys   []string
	fields map[string]*node
	items  []*node
	value  any
	isMap  bool
}

func (n *node) get(key string) (*node, bool) {
	if n == nil || !n.isMap {
		return nil, false
	}
	c, ok := n.fields[key]
	return c, ok
}

func (n *node) set(key string, child *node) {
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = child
}

// str returns the scalar as a string. Non-string scalars are formatted.
func (n *node) str() (string, bool) {
	if n == nil || n.isMap || n.items != nil {
		return "", false
	}
	switch v := n.value.(type) {
	case string:
		return v, true
	case nil:
		return "", true
	default:
		return fmt.Sprint(v), true
	}
}

func newMap() *node {
	return &node{isMap: true, fields: make(map[string]*node)}
}

// decodeYAML decodes a YAML document into a node tree.
func decodeYAML(data []byte) (*node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return newMap(), nil
	}
	return fromYAML(&doc)
}

func fromYAML(y *yaml.Node) (*node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return newMap(), nil
		}
		return fromYAML(y.Content[0])
	case yaml.AliasNode:
		return fromYAML(y.Alias)
	case yaml.MappingNode:
		n := newMap()
		for i := 0; i+1 < len(y.Content); i += 2 {
			child, err := fromYAML(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			n.set(y.Content[i].Value, child)
		}
		return n, nil
	case yaml.SequenceNode:
		n := &node{items: []*node{}}
		for _, c := range y.Content {
			child, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, child)
		}
		return n, nil
	default:
		var v any
		if err := y.Decode(&v); err != nil {
			return nil, err
		}
		return &node{value: v}, nil
	}
}

// decodeJSON decodes a JSON document into a node tree.
func decodeJSON(data []byte) (*node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := readJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return n, nil
}

func readJSON(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := newMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				child, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				n.set(key, child)
			}
			_, err := dec.Token()
			return n, err
		case '[':
			n := &node{items: []*node{}}
			for dec.More() {
				child, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				n.items = append(n.items, child)
			}
			_, err := dec.Token()
			return n, err
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return &node{value: f}, nil
	default:
		return &node{value: t}, nil
	}
}

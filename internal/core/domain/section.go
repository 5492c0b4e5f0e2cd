package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Section is a constructed instance of a SectionType.
// Attribute values are only set through Set, which enforces the type's
// attribute definitions.
type Section struct {
	// Type is the section type the instance was constructed from.
	Type *SectionType

	// Name is the display name.
	Name string

	values map[string]any
}

// NewSection constructs an empty instance of t.
func NewSection(t *SectionType) *Section {
	return &Section{Type: t, values: make(map[string]any)}
}

// Set assigns value to the named attribute, coercing it to the attribute's kind.
// It returns a *BindError when the attribute does not exist or the value
// cannot be held by it.
func (s *Section) Set(name string, value any) error {
	def, ok := s.Type.Attribute(name)
	if !ok {
		return s.bindError(name, ErrUnknownAttribute)
	}
	coerced, err := coerce(def, value)
	if err != nil {
		return s.bindError(name, err)
	}
	if name == NameAttribute {
		s.Name = coerced.(string)
		return nil
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[name] = coerced
	return nil
}

// Get returns the value of the named attribute.
func (s *Section) Get(name string) (any, bool) {
	if name == NameAttribute {
		return s.Name, s.Name != ""
	}
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of attributes set, excluding the name.
func (s *Section) Len() int {
	return len(s.values)
}

func (s *Section) bindError(name string, err error) error {
	return &BindError{Type: s.Type.QualifiedName(), Attribute: name, Err: err}
}

// MarshalJSON writes the section with "m_def" and "name" first and the
// remaining attributes in declaration order. An untyped section has no "m_def".
func (s *Section) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshalling %s: %w", key, err)
		}
		buf.Write(v)
		return nil
	}

	var attrs []AttributeDef
	if s.Type != nil {
		if err := writeField("m_def", s.Type.QualifiedName()); err != nil {
			return nil, err
		}
		attrs = s.Type.Attributes
	}
	if s.Name != "" {
		if err := writeField(NameAttribute, s.Name); err != nil {
			return nil, err
		}
	}
	for _, def := range attrs {
		v, ok := s.values[def.Name]
		if !ok {
			continue
		}
		if err := writeField(def.Name, v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes the quantity as {"magnitude": m, "unit": u}.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Magnitude float64 `json:"magnitude"`
		Unit      string  `json:"unit"`
	}{q.Magnitude, q.Unit})
}

// ParseMagnitude converts a JSON scalar into a float.
// Strings are trimmed and parsed; booleans and nil are rejected.
func ParseMagnitude(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to float: %q", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %T is not a number", ErrTypeMismatch, v)
	}
}

func coerce(def AttributeDef, value any) (any, error) {
	if !def.Repeats {
		return coerceOne(def, value)
	}
	items, ok := toList(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects a list, got %T", ErrTypeMismatch, def.Name, value)
	}
	out := make([]any, 0, len(items))
	for i, item := range items {
		c, err := coerceOne(def, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func toList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []*Section:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []Reference:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	default:
		return nil, false
	}
}

//nolint:gocyclo // one case per attribute kind
func coerceOne(def AttributeDef, value any) (any, error) {
	mismatch := func() error {
		return fmt.Errorf("%w: %s attribute cannot hold %T", ErrTypeMismatch, def.Kind, value)
	}
	if value == nil {
		return nil, mismatch()
	}

	switch def.Kind {
	case AttrAny:
		return value, nil

	case AttrString:
		switch v := value.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64), nil
		case int, int64, bool, json.Number:
			return fmt.Sprint(v), nil
		}
		return nil, mismatch()

	case AttrNumber:
		if _, ok := value.(Quantity); ok {
			return nil, mismatch()
		}
		return ParseMagnitude(value)

	case AttrQuantity:
		if q, ok := value.(Quantity); ok {
			if def.Unit == "" {
				if _, err := ParseUnit(q.Unit); err != nil {
					return nil, err
				}
				return q, nil
			}
			return q.To(def.Unit)
		}
		if def.Unit == "" {
			return nil, mismatch()
		}
		f, err := ParseMagnitude(value)
		if err != nil {
			return nil, err
		}
		return Quantity{Magnitude: f, Unit: def.Unit}, nil

	case AttrSection:
		sec, ok := value.(*Section)
		if !ok || sec == nil {
			return nil, mismatch()
		}
		if def.Section != "" && sec.Type.QualifiedName() != def.Section {
			return nil, fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, def.Section, sec.Type.QualifiedName())
		}
		return sec, nil

	case AttrReference:
		ref, ok := value.(Reference)
		if !ok {
			return nil, mismatch()
		}
		return ref, nil
	}
	return nil, mismatch()
}

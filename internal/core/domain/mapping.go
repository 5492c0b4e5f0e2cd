package domain

import "strings"

// MaxRepetitions caps the number of instances a repeating class entry produces.
const MaxRepetitions = 10

// MaxDataDepth is the deepest key path supported in the Data elements mapping.
const MaxDataDepth = 3

// Mapping category names as they appear in specification files.
const (
	CategoryData  = "Data elements"
	CategoryText  = "Text elements"
	CategoryTable = "Table elements"
)

// SectionKind is the ClassSpec type: how a constructed instance is attached.
type SectionKind string

const (
	// KindSubSection instances are nested inline in the root.
	KindSubSection SectionKind = "SubSection"

	// KindArchive instances are persisted on their own and referenced from the root.
	KindArchive SectionKind = "Archive"

	// KindMain marks the root class entry.
	KindMain SectionKind = "main"
)

// Valid reports whether the walker handles this kind.
func (k SectionKind) Valid() bool {
	switch k {
	case KindSubSection, KindArchive, KindMain:
		return true
	default:
		return false
	}
}

// Repeat is the repetition policy of a class entry.
type Repeat int

const (
	// RepeatSingle produces one instance, attached as a single value.
	RepeatSingle Repeat = iota

	// RepeatList produces up to MaxRepetitions instances, attached as a list.
	RepeatList

	// RepeatMarked is the quoted "true" marker: one instance, attached as a
	// one-element list.
	RepeatMarked
)

// ParseRepeat interprets the "repeats" field. Boolean true repeats; the
// strings "true" and "false", in any case, both produce a single instance
// and differ only in how it is attached. ok is false for anything else.
func ParseRepeat(v any) (r Repeat, ok bool) {
	switch t := v.(type) {
	case nil:
		return RepeatSingle, true
	case bool:
		if t {
			return RepeatList, true
		}
		return RepeatSingle, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return RepeatMarked, true
		case "false", "":
			return RepeatSingle, true
		}
	}
	return RepeatSingle, false
}

// Limit returns the number of repetition indices the walker visits.
func (r Repeat) Limit() int {
	if r == RepeatList {
		return MaxRepetitions
	}
	return 1
}

// AttachesList reports whether instances are attached as a list.
func (r Repeat) AttachesList() bool {
	return r == RepeatList || r == RepeatMarked
}

// String returns the specification spelling of the policy.
func (r Repeat) String() string {
	switch r {
	case RepeatList:
		return "true"
	case RepeatMarked:
		return `"true"`
	default:
		return "false"
	}
}

// ClassSpec is one entry of the Classes section.
type ClassSpec struct {
	// Key is the class key; it is also the tag that selects a root class.
	Key string

	// Class is the fully-qualified target type name.
	Class string

	// Type selects how instances are attached.
	Type SectionKind

	// Attribute is the root attribute receiving the instances.
	// Required unless Type is KindMain.
	Attribute string

	// Repeats is the repetition policy.
	Repeats Repeat

	// Name is the display name template.
	Name string
}

// DataBinding maps a DataContent key path to an attribute.
type DataBinding struct {
	Path   []string
	Object string
	Key    string
}

// PathString joins the key path for messages.
func (b DataBinding) PathString() string {
	return strings.Join(b.Path, ".")
}

// TextBinding maps a text header to an attribute.
type TextBinding struct {
	Header string
	Object string
	Key    string
}

// TableBinding maps a column of a named table to an attribute.
type TableBinding struct {
	Table  string
	Column string
	Object string
	Key    string
}

// MappingSpec is the parsed mapping specification.
// All slices keep declaration order.
type MappingSpec struct {
	Classes []ClassSpec
	Data    []DataBinding
	Text    []TextBinding
	Table   []TableBinding

	// Warnings collects problems found while parsing that did not stop it.
	Warnings []string
}

// Class returns the class entry with the given key.
func (m *MappingSpec) Class(key string) (ClassSpec, bool) {
	for _, c := range m.Classes {
		if c.Key == key {
			return c, true
		}
	}
	return ClassSpec{}, false
}

// ClassKeys returns the class keys in declaration order.
func (m *MappingSpec) ClassKeys() []string {
	keys := make([]string, 0, len(m.Classes))
	for _, c := range m.Classes {
		keys = append(keys, c.Key)
	}
	return keys
}

// DataFor returns the data bindings targeting the class key.
func (m *MappingSpec) DataFor(object string) []DataBinding {
	var out []DataBinding
	for _, b := range m.Data {
		if b.Object == object {
			out = append(out, b)
		}
	}
	return out
}

// TextFor returns the text bindings targeting the class key.
func (m *MappingSpec) TextFor(object string) []TextBinding {
	var out []TextBinding
	for _, b := range m.Text {
		if b.Object == object {
			out = append(out, b)
		}
	}
	return out
}

// TableFor returns the table bindings targeting the class key.
func (m *MappingSpec) TableFor(object string) []TableBinding {
	var out []TableBinding
	for _, b := range m.Table {
		if b.Object == object {
			out = append(out, b)
		}
	}
	return out
}

// TablesDriving returns the distinct table names bound to the class key,
// in declaration order.
func (m *MappingSpec) TablesDriving(object string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, b := range m.Table {
		if b.Object != object || seen[b.Table] {
			continue
		}
		seen[b.Table] = true
		names = append(names, b.Table)
	}
	return names
}

package domain

import "strings"

// AttrKind is the value kind an attribute holds.
type AttrKind string

const (
	AttrString    AttrKind = "string"
	AttrNumber    AttrKind = "number"
	AttrQuantity  AttrKind = "quantity"
	AttrAny       AttrKind = "any"
	AttrSection   AttrKind = "section"
	AttrReference AttrKind = "reference"
)

// Valid reports whether k is a known kind.
func (k AttrKind) Valid() bool {
	switch k {
	case AttrString, AttrNumber, AttrQuantity, AttrAny, AttrSection, AttrReference:
		return true
	default:
		return false
	}
}

// AttributeDef describes one attribute of a section type.
type AttributeDef struct {
	// Name is the attribute name used in mapping specifications.
	Name string

	// Kind is the value kind.
	Kind AttrKind

	// Unit is the canonical unit of a quantity attribute. Empty accepts any unit.
	Unit string

	// Section restricts section attributes to one qualified type name.
	Section string

	// Repeats marks list-valued attributes.
	Repeats bool

	// Description documents the attribute.
	Description string
}

// NameAttribute is present on every section type.
const NameAttribute = "name"

// SectionType is a constructible target type.
type SectionType struct {
	// Module is the module path, e.g. "nomad.datamodel.metainfo.basesections".
	Module string

	// Name is the member name within the module.
	Name string

	// Description documents the type.
	Description string

	// Attributes in declaration order.
	Attributes []AttributeDef
}

// QualifiedName returns "module.Name". A nil type has no name.
func (t *SectionType) QualifiedName() string {
	if t == nil {
		return ""
	}
	if t.Module == "" {
		return t.Name
	}
	return t.Module + "." + t.Name
}

// Attribute returns the definition of the named attribute.
func (t *SectionType) Attribute(name string) (AttributeDef, bool) {
	if name == NameAttribute {
		return AttributeDef{Name: NameAttribute, Kind: AttrString}, true
	}
	if t == nil {
		return AttributeDef{}, false
	}
	for _, a := range t.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeDef{}, false
}

// HasAttribute reports whether the type declares the attribute.
func (t *SectionType) HasAttribute(name string) bool {
	_, ok := t.Attribute(name)
	return ok
}

// SplitQualifiedName splits "a.b.C" into module "a.b" and member "C".
func SplitQualifiedName(name string) (module, member string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", name
	}
	return name[:i], name[i+1:]
}

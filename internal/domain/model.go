package domain

import "strings"

// TypeKind tags a TypeRef.
type TypeKind string

const (
	// KindVoid is the absence of a value (return types only).
	KindVoid TypeKind = "void"
	// KindNative is a target language type found through the type map.
	KindNative TypeKind = "native"
	// KindGroup is a strong enum type named after an EnumGroup.
	KindGroup TypeKind = "group"
	// KindOpaque is an untyped pointer or a value with no declared type.
	KindOpaque TypeKind = "opaque"
	// KindUnresolved is a type that could not be mapped.
	KindUnresolved TypeKind = "unresolved"
)

// UnresolvedMarker prefixes unresolved type names in emitted text.
const UnresolvedMarker = "UNRESOLVED_"

// TypeRef is a resolved type position (a return type or a parameter type).
type TypeRef struct {
	Kind TypeKind `json:"kind"`

	// Name is the target type for KindNative and the short group name for
	// KindGroup.
	Name string `json:"name,omitempty"`

	// Suffix is the vendor section of a KindGroup type.
	Suffix string `json:"suffix,omitempty"`

	// Original is the native name the type was resolved from.
	Original string `json:"original,omitempty"`

	Pointer int `json:"pointer,omitempty"`
}

// Qualified returns the section-qualified name of the type, e.g.
// "EXT.TextureTarget". Unresolved types render with UnresolvedMarker.
func (t TypeRef) Qualified() string {
	switch t.Kind {
	case KindVoid:
		return ""
	case KindUnresolved:
		return UnresolvedMarker + t.Original
	case KindGroup:
		if t.Suffix != "" {
			return t.Suffix + "." + t.Name
		}
	}
	return t.Name
}

// Model is the fully resolved emission model.
type Model struct {
	API         string       `json:"api"`
	Namespaces  []Namespace  `json:"namespaces"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Namespace groups everything generated for one registry namespace.
type Namespace struct {
	Name      string     `json:"name"`
	Constants []Constant `json:"constants,omitempty"`

	// Sections[0] is always the base section.
	Sections []Section `json:"sections"`
}

// Section returns the section for suffix, or nil.
func (n *Namespace) Section(suffix string) *Section {
	for i := range n.Sections {
		if n.Sections[i].Suffix == suffix {
			return &n.Sections[i]
		}
	}
	return nil
}

// Base returns the un-suffixed section.
func (n *Namespace) Base() *Section {
	return n.Section("")
}

// Enum returns the enum for a raw group name across all sections.
func (n *Namespace) Enum(group string) *Enum {
	for i := range n.Sections {
		for j := range n.Sections[i].Enums {
			if n.Sections[i].Enums[j].Group == group {
				return &n.Sections[i].Enums[j]
			}
		}
	}
	return nil
}

// Function returns the function for a native command name across all sections.
func (n *Namespace) Function(native string) *Function {
	for i := range n.Sections {
		for j := range n.Sections[i].Functions {
			if n.Sections[i].Functions[j].Native == native {
				return &n.Sections[i].Functions[j]
			}
		}
	}
	return nil
}

// Section is the base part of a namespace or one vendor sub-section.
type Section struct {
	Suffix    string     `json:"suffix,omitempty"`
	Enums     []Enum     `json:"enums,omitempty"`
	Functions []Function `json:"functions,omitempty"`
}

// Empty reports whether the section has nothing to emit.
func (s Section) Empty() bool {
	return len(s.Enums) == 0 && len(s.Functions) == 0
}

// Enum is a resolved EnumGroup.
type Enum struct {
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Suffix  string   `json:"suffix,omitempty"`
	Bitmask bool     `json:"bitmask,omitempty"`
	Members []Member `json:"members"`
}

// Member returns the member for a raw constant name, or nil.
func (e *Enum) Member(raw string) *Member {
	for i := range e.Members {
		if e.Members[i].Raw == raw {
			return &e.Members[i]
		}
	}
	return nil
}

// Member is one resolved enum member.
type Member struct {
	Name    string `json:"name"`
	Raw     string `json:"raw"`
	Value   string `json:"value"`
	Bitmask bool   `json:"bitmask,omitempty"`
}

// Constant is a loose numeric constant from a flat enum block.
type Constant struct {
	Name  string `json:"name"`
	Raw   string `json:"raw"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Function is a resolved command.
type Function struct {
	Name   string  `json:"name"`
	Native string  `json:"native"`
	Suffix string  `json:"suffix,omitempty"`
	Return TypeRef `json:"return"`
	Params []Param `json:"params"`
}

// Binding returns the fully qualified binding name, e.g. "GL.EXT.BindTexture".
func (f Function) Binding(namespace string) string {
	parts := []string{namespace}
	if f.Suffix != "" {
		parts = append(parts, f.Suffix)
	}
	return strings.Join(append(parts, f.Name), ".")
}

// Param is a resolved command parameter.
type Param struct {
	Name string  `json:"name"`
	Raw  string  `json:"raw"`
	Type TypeRef `json:"type"`
}

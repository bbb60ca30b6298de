// Package domain contains the core records shared across the generator.
// The loader produces the registry entity records defined here, and the
// orchestrator turns them into the resolved Model consumed by the writers.
package domain

import (
	"fmt"
	"strings"
)

// TypeAlias is one native type definition of the registry, e.g.
// `typedef unsigned int <name>GLuint</name>;`.
type TypeAlias struct {
	Name string `json:"name"`

	// NativeCType is the declaration text with the leading "typedef" removed.
	// It can itself name another alias.
	NativeCType string `json:"nativeCType"`

	Requires string `json:"requires,omitempty"`
	API      string `json:"api,omitempty"`
}

// String returns a short description used in debug output.
func (t TypeAlias) String() string {
	return fmt.Sprintf("%s:%s,%s", t.API, t.NativeCType, t.Name)
}

// EnumGroup is a named, ordered list of constant names that forms a strong
// parameter type.
type EnumGroup struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// EnumDefinition is one raw <enums> block.
type EnumDefinition struct {
	Namespace string      `json:"namespace,omitempty"`
	Group     string      `json:"group,omitempty"`
	Vendor    string      `json:"vendor,omitempty"`
	Bitmask   bool        `json:"bitmask,omitempty"`
	Values    []EnumValue `json:"values"`
}

// IsFlat reports whether the block holds loose constants rather than the
// members of a named group. specialGroup is the reserved group name used
// by registries for supplemental numeric constants.
func (e EnumDefinition) IsFlat(specialGroup string) bool {
	return e.Group == "" || (specialGroup != "" && e.Group == specialGroup)
}

// EnumValue is a single constant.
type EnumValue struct {
	Name  string `json:"name"`
	API   string `json:"api,omitempty"`
	Value string `json:"value"`

	// Type is the registry's literal type hint ("u", "ull").
	Type  string `json:"type,omitempty"`
	Alias string `json:"alias,omitempty"`
}

// ActiveFor reports whether the value belongs to the binding of api.
func (v EnumValue) ActiveFor(api string) bool {
	return v.API == "" || api == "" || v.API == api
}

// Command is one registry function.
type Command struct {
	Namespace     string      `json:"namespace,omitempty"`
	Name          string      `json:"name"`
	ReturnType    string      `json:"returnType,omitempty"`
	ReturnGroup   string      `json:"returnGroup,omitempty"`
	ReturnPointer int         `json:"returnPointer,omitempty"`
	Params        []Parameter `json:"params"`
}

// Parameter is one <param> of a command.
type Parameter struct {
	Type    string `json:"type,omitempty"`
	Group   string `json:"group,omitempty"`
	Name    string `json:"name"`
	Pointer int    `json:"pointer,omitempty"`
	Len     string `json:"len,omitempty"`
}

// String renders the parameter roughly as it was declared.
func (p Parameter) String() string {
	typeName := p.Type
	if typeName == "" {
		typeName = "void"
	}
	return fmt.Sprintf("%s %s%s", typeName, strings.Repeat("*", p.Pointer), p.Name)
}

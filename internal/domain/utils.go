package domain

import (
	"strings"
)

const (
	// UINT32 is the Go type used for the registry's generic enum type.
	UINT32 = "uint32"
	// UINT64 is used for constants typed "ull".
	UINT64 = "uint64"
	// INT32 is used for negative constants.
	INT32 = "int32"
	// OPAQUE is the Go rendering of an opaque pointer.
	OPAQUE = "unsafe.Pointer"
)

// GoKeywords are the reserved words of the Go language. Parameter names
// matching one of them are escaped.
var GoKeywords = []string{
	"break", "case", "chan", "const", "continue",
	"default", "defer", "else", "fallthrough", "for",
	"func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return",
	"select", "struct", "switch", "type", "var",
}

// IsGoKeyword reports whether name is a Go reserved word.
func IsGoKeyword(name string) bool {
	for _, kw := range GoKeywords {
		if kw == name {
			return true
		}
	}
	return false
}

// IsGolangPrimitiveType checks if a type is a Go primitive type.
func IsGolangPrimitiveType(typeName string) bool {
	switch typeName {
	case "uint",
		"int",
		"uint8",
		"int8",
		"uint16",
		"int16",
		"byte",
		"uint32",
		"int32",
		"rune",
		"uint64",
		"int64",
		"float32",
		"float64",
		"bool",
		"string",
		"uintptr",
		OPAQUE:
		return true
	}

	return false
}

// NormalizeLiteral strips C integer suffixes so a registry literal can be
// used as a Go constant. "0xFFFFFFFFu" -> "0xFFFFFFFF", "1ull" -> "1".
func NormalizeLiteral(literal string) string {
	literal = strings.TrimSpace(literal)
	if strings.HasPrefix(literal, "0x") || strings.HasPrefix(literal, "0X") {
		return strings.TrimRight(literal, "uUlL")
	}
	if strings.HasPrefix(literal, "\"") {
		return literal
	}
	return strings.TrimRight(literal, "uUlLfF")
}

// ConstantType returns the Go type of a flat constant from the registry
// type hint and its literal.
func ConstantType(hint, literal string) string {
	switch {
	case strings.EqualFold(hint, "ull"):
		return UINT64
	case strings.HasPrefix(strings.TrimSpace(literal), "-"):
		return INT32
	default:
		return UINT32
	}
}

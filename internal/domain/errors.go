package domain

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// StructuralError reports a required registry node that is missing.
// It aborts the run.
type StructuralError struct {
	Node   string
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("registry structure: <%s>: %s", e.Node, e.Detail)
}

// NewStructuralError returns a StructuralError carrying a stack trace.
func NewStructuralError(node, format string, args ...interface{}) error {
	return errors.WithStack(&StructuralError{Node: node, Detail: fmt.Sprintf(format, args...)})
}

// ConfigFormatError reports a malformed type mapping line.
type ConfigFormatError struct {
	Source string
	Line   int
	Text   string
}

func (e *ConfigFormatError) Error() string {
	source := e.Source
	if source == "" {
		source = "type map"
	}
	return fmt.Sprintf("%s:%d: expected 'native,target', got %q", source, e.Line, e.Text)
}

// NewConfigFormatError returns a ConfigFormatError with a hint on the
// expected line format.
func NewConfigFormatError(source string, line int, text string) error {
	return errors.WithHint(
		errors.WithStack(&ConfigFormatError{Source: source, Line: line, Text: text}),
		"each line must hold exactly two comma separated fields, e.g. 'unsigned int,uint32'",
	)
}

// AliasCycleError reports a type alias chain that revisits a name.
type AliasCycleError struct {
	Chain []string
}

func (e *AliasCycleError) Error() string {
	return "type alias cycle: " + strings.Join(e.Chain, " -> ")
}

// NewAliasCycleError returns an AliasCycleError for chain.
func NewAliasCycleError(chain []string) error {
	return errors.WithStack(&AliasCycleError{Chain: append([]string(nil), chain...)})
}

// DiagnosticKind classifies a recoverable condition.
type DiagnosticKind string

const (
	// UnresolvedType is a native, parameter or return type with no mapping.
	UnresolvedType DiagnosticKind = "unresolved-type"
	// UnresolvedEnumMember is a group member with no matching value.
	UnresolvedEnumMember DiagnosticKind = "unresolved-enum-member"
	// NameCollisionEscape is a parameter renamed because it is a reserved word.
	NameCollisionEscape DiagnosticKind = "name-collision-escape"
	// OpaqueType is a parameter with neither a type nor a known group.
	OpaqueType DiagnosticKind = "opaque-type"
)

// Diagnostic is a recoverable condition found while planning.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Subject string         `json:"subject"`
	Detail  string         `json:"detail"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Subject, d.Detail)
}

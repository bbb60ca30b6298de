// Package registry - native C type to target type mapping table.
package registry

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/griffnb/glbindgen/internal/domain"
)

//go:embed default_typemap.csv
var defaultTypeMap string

// TypeMap maps native C type spellings to target language types.
type TypeMap struct {
	entries map[string]string
	targets map[string]struct{}
}

// NewTypeMap builds a TypeMap from native -> target pairs.
func NewTypeMap(pairs map[string]string) TypeMap {
	m := TypeMap{
		entries: make(map[string]string, len(pairs)),
		targets: make(map[string]struct{}, len(pairs)),
	}
	for native, target := range pairs {
		m.set(native, target)
	}
	return m
}

func (m *TypeMap) set(native, target string) {
	m.entries[normalizeCType(native)] = target
	m.targets[target] = struct{}{}
}

// Lookup returns the target type for a native C type.
func (m TypeMap) Lookup(native string) (string, bool) {
	target, ok := m.entries[normalizeCType(native)]
	return target, ok
}

// IsTarget reports whether name is one of the target types of the map or a
// Go primitive, so resolving a target type is idempotent.
func (m TypeMap) IsTarget(name string) bool {
	_, ok := m.targets[name]
	return ok || domain.IsGolangPrimitiveType(name)
}

// Len returns the number of mappings.
func (m TypeMap) Len() int {
	return len(m.entries)
}

// ParseTypeMap reads one "native,target" mapping per line. Blank lines and
// lines starting with '#' are skipped. Any other line that does not hold
// exactly two non-empty comma separated fields is a ConfigFormatError.
func ParseTypeMap(r io.Reader, source string) (TypeMap, error) {
	m := TypeMap{
		entries: make(map[string]string),
		targets: make(map[string]struct{}),
	}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return TypeMap{}, domain.NewConfigFormatError(source, lineNo, line)
		}

		native, target := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if native == "" || target == "" {
			return TypeMap{}, domain.NewConfigFormatError(source, lineNo, line)
		}

		m.set(native, target)
	}

	if err := scanner.Err(); err != nil {
		return TypeMap{}, errors.Wrapf(err, "error reading type map %s", source)
	}

	return m, nil
}

// LoadTypeMap parses the type map file at path.
func LoadTypeMap(path string) (TypeMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return TypeMap{}, errors.Wrap(err, "could not open type map")
	}
	defer f.Close()

	return ParseTypeMap(f, path)
}

// DefaultTypeMap returns the embedded GL to Go mapping table.
func DefaultTypeMap() TypeMap {
	m, err := ParseTypeMap(strings.NewReader(defaultTypeMap), "default_typemap.csv")
	if err != nil {
		panic(err)
	}
	return m
}

// normalizeCType collapses whitespace and binds '*' to the preceding token,
// so "void*", "void  *" and "void *" share one key.
func normalizeCType(native string) string {
	native = strings.ReplaceAll(native, "*", " *")
	return strings.Join(strings.Fields(native), " ")
}

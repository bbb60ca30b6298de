// Package registry - alias chain resolution.
package registry

import (
	"strings"

	"github.com/griffnb/glbindgen/internal/domain"
)

// Resolve follows the alias chain of name down to a native C type and maps
// that through the type map.
//
// Names carrying the type prefix must be registered aliases; a prefixed name
// with no alias is reported unresolved rather than looked up as-is. Names
// without the prefix go straight to the type map, and a name that already is
// a target type is returned unchanged. The only error is an alias cycle.
func (s *Service) Resolve(name string) (Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Unresolved(name), nil
	}

	current := name
	var chain []string
	seen := make(map[string]struct{})

	for strings.HasPrefix(current, s.typePrefix) {
		alias, ok := s.alias(current)
		if !ok {
			break
		}
		chain = append(chain, current)
		if _, ok := seen[current]; ok {
			return Result{}, domain.NewAliasCycleError(chain)
		}
		seen[current] = struct{}{}
		current = alias.NativeCType
	}

	if len(chain) == 0 && s.typePrefix != "" && strings.HasPrefix(name, s.typePrefix) {
		s.debug.Printf("registry: no alias for %s", name)
		return Unresolved(name), nil
	}

	if target, ok := s.table.Lookup(current); ok {
		return Resolved(target, name), nil
	}
	if s.table.IsTarget(current) {
		return Resolved(current, name), nil
	}

	s.debug.Printf("registry: %s resolves to %q which has no mapping", name, current)
	return Unresolved(name), nil
}

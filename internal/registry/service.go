// Package registry holds the native type alias registry and resolves
// registry type names to target language types.
package registry

import (
	"github.com/griffnb/glbindgen/internal/domain"
)

// Service manages the type alias table and the native to target type map.
type Service struct {
	aliases    map[string]domain.TypeAlias
	table      TypeMap
	typePrefix string
	api        string
	debug      Debugger
}

// NewService creates a registry over aliases and table. Aliases sharing a
// name are reduced to one entry: the one declared for the active API, else
// the one without an API restriction, else the first declared.
func NewService(aliases []domain.TypeAlias, table TypeMap, options ...Option) *Service {
	s := &Service{
		aliases:    make(map[string]domain.TypeAlias, len(aliases)),
		table:      table,
		typePrefix: DefaultTypePrefix,
		api:        DefaultAPI,
		debug:      domain.NoOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	for _, alias := range aliases {
		s.register(alias)
	}

	return s
}

func (s *Service) register(alias domain.TypeAlias) {
	existing, ok := s.aliases[alias.Name]
	if !ok {
		s.aliases[alias.Name] = alias
		return
	}
	if aliasRank(alias, s.api) < aliasRank(existing, s.api) {
		s.debug.Printf("registry: %s for api %q replaces the %q declaration", alias.Name, alias.API, existing.API)
		s.aliases[alias.Name] = alias
	}
}

// aliasRank orders duplicate declarations; lower wins, ties keep the first.
func aliasRank(alias domain.TypeAlias, api string) int {
	switch {
	case alias.API != "" && alias.API == api:
		return 0
	case alias.API == "":
		return 1
	default:
		return 2
	}
}

// alias returns the alias registered under name.
func (s *Service) alias(name string) (domain.TypeAlias, bool) {
	alias, ok := s.aliases[name]
	return alias, ok
}

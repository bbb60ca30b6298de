package loader

import (
	"github.com/griffnb/glbindgen/internal/domain"
)

// Service loads a registry document into entity records.
type Service struct {
	specialGroup string
	debug        Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// LoadResult contains the entity records of one registry document. The
// records are never modified after loading.
type LoadResult struct {
	Aliases []domain.TypeAlias

	// Groups is keyed by group name; GroupOrder keeps declaration order.
	Groups     map[string]domain.EnumGroup
	GroupOrder []string

	Enums    []domain.EnumDefinition
	Commands []domain.Command
}

// OrderedGroups returns the groups in declaration order.
func (r *LoadResult) OrderedGroups() []domain.EnumGroup {
	groups := make([]domain.EnumGroup, 0, len(r.GroupOrder))
	for _, name := range r.GroupOrder {
		groups = append(groups, r.Groups[name])
	}
	return groups
}

// Option is a functional option for configuring Service
type Option func(*Service)

package orchestrator

import (
	"github.com/griffnb/glbindgen/internal/domain"
)

// namespaceBuilder accumulates one namespace before sections are ordered.
type namespaceBuilder struct {
	name      string
	constants []domain.Constant
	declared  map[string]struct{}
	sections  map[string]*domain.Section
}

func (b *namespaceBuilder) section(suffix string) *domain.Section {
	sec, ok := b.sections[suffix]
	if !ok {
		sec = &domain.Section{Suffix: suffix}
		b.sections[suffix] = sec
	}
	return sec
}

// groupRef is the short name and section of a declared group.
type groupRef struct {
	Name   string
	Suffix string
}

// namespace returns the builder for name, creating it on first use. An empty
// name means the default namespace.
func (p *plan) namespace(name string) *namespaceBuilder {
	if name == "" {
		name = p.config.DefaultNamespace
	}
	if b, ok := p.byName[name]; ok {
		return b
	}
	b := &namespaceBuilder{
		name:     name,
		declared: make(map[string]struct{}),
		sections: map[string]*domain.Section{"": {}},
	}
	p.byName[name] = b
	p.namespaces = append(p.namespaces, b)
	return b
}

// collectNamespaces registers namespaces in order of first appearance and
// records the section of every declared group.
func (p *plan) collectNamespaces() {
	p.byName = make(map[string]*namespaceBuilder)
	for _, def := range p.load.Enums {
		if def.Namespace != "" {
			p.namespace(def.Namespace)
		}
	}
	for _, cmd := range p.load.Commands {
		if cmd.Namespace != "" {
			p.namespace(cmd.Namespace)
		}
	}

	p.groupSuffix = make(map[string]groupRef, len(p.load.GroupOrder))
	for _, name := range p.load.GroupOrder {
		base, suffix := p.config.Namer.StripVendorSuffix(name)
		p.groupSuffix[name] = groupRef{Name: base, Suffix: suffix}
	}
}

// firstNamespace is the namespace of last resort.
func (p *plan) firstNamespace() string {
	if len(p.namespaces) > 0 {
		return p.namespaces[0].name
	}
	return p.config.DefaultNamespace
}

// groupNamespace places a group: the namespace of its own blocks, else of
// the first block supplying a member, else the first namespace seen.
func (p *plan) groupNamespace(group domain.EnumGroup) string {
	if b, ok := p.values.Block(group.Name); ok && b.Namespace != "" {
		return b.Namespace
	}
	for _, raw := range group.Members {
		if v, ok := p.values.Lookup(group.Name, raw); ok && v.Namespace != "" {
			return v.Namespace
		}
	}
	return p.firstNamespace()
}

// planConstants turns flat values into namespace constants. The first
// declaration of a canonical name wins.
func (p *plan) planConstants() {
	for _, v := range p.values.Flat() {
		ns := p.namespace(v.Namespace)
		name := p.config.Namer.Canonicalize(v.Name)
		if name == "" {
			continue
		}
		if _, dup := ns.declared[name]; dup {
			p.config.Debug.Printf("Orchestrator: constant %s already declared in %s, skipping %s", name, ns.name, v.Name)
			continue
		}
		ns.declared[name] = struct{}{}
		ns.constants = append(ns.constants, domain.Constant{
			Name:  name,
			Raw:   v.Name,
			Value: v.Value,
			Type:  domain.ConstantType(v.Type, v.Value),
		})
	}
}

// planEnums resolves the members of every declared group and files the enum
// under its namespace and vendor section.
func (p *plan) planEnums() {
	for _, group := range p.load.OrderedGroups() {
		ref := p.groupSuffix[group.Name]
		enum := domain.Enum{
			Name:    ref.Name,
			Group:   group.Name,
			Suffix:  ref.Suffix,
			Members: make([]domain.Member, 0, len(group.Members)),
		}

		seen := make(map[string]struct{}, len(group.Members))
		anyBitmask := false
		for _, raw := range group.Members {
			if _, dup := seen[raw]; dup {
				continue
			}
			seen[raw] = struct{}{}

			v, ok := p.values.Lookup(group.Name, raw)
			if !ok {
				p.diagnose(domain.UnresolvedEnumMember, group.Name+"."+raw, "no value declared for %s", raw)
				continue
			}
			anyBitmask = anyBitmask || v.Bitmask
			enum.Members = append(enum.Members, domain.Member{
				Name:    p.config.Namer.Canonicalize(raw),
				Raw:     raw,
				Value:   v.Value,
				Bitmask: v.Bitmask,
			})
		}

		if b, ok := p.values.Block(group.Name); ok {
			enum.Bitmask = b.Bitmask
		} else {
			enum.Bitmask = anyBitmask
		}

		ns := p.namespace(p.groupNamespace(group))
		sec := ns.section(ref.Suffix)
		sec.Enums = append(sec.Enums, enum)
	}
}

// build orders every namespace's sections: base first, then vendor sections
// in suffix priority order. Empty vendor sections are left out.
func (p *plan) build() *domain.Model {
	model := p.model
	order := p.config.Namer.Suffixes()

	for _, b := range p.namespaces {
		ns := domain.Namespace{
			Name:      b.name,
			Constants: b.constants,
			Sections:  []domain.Section{*b.section("")},
		}
		for _, suffix := range order {
			sec, ok := b.sections[suffix]
			if !ok || sec.Empty() {
				continue
			}
			ns.Sections = append(ns.Sections, *sec)
		}
		model.Namespaces = append(model.Namespaces, ns)
	}

	return model
}

package orchestrator

import (
	"github.com/cockroachdb/errors"

	"github.com/griffnb/glbindgen/internal/domain"
)

// planCommands resolves every command and files it under its namespace and
// the vendor section inferred from its name.
func (p *plan) planCommands() error {
	for _, cmd := range p.load.Commands {
		short, suffix := p.config.Namer.CommandName(cmd.Name)

		ret, err := p.resolveReturn(cmd)
		if err != nil {
			return err
		}

		fn := domain.Function{
			Name:   short,
			Native: cmd.Name,
			Suffix: suffix,
			Return: ret,
			Params: make([]domain.Param, 0, len(cmd.Params)),
		}
		for _, param := range cmd.Params {
			resolved, err := p.resolveParam(cmd, param)
			if err != nil {
				return err
			}
			fn.Params = append(fn.Params, resolved)
		}

		sec := p.namespace(cmd.Namespace).section(suffix)
		sec.Functions = append(sec.Functions, fn)
	}
	return nil
}

func (p *plan) resolveReturn(cmd domain.Command) (domain.TypeRef, error) {
	subject := cmd.Name + " return"

	switch {
	case cmd.ReturnType == "" && cmd.ReturnPointer == 0:
		return domain.TypeRef{Kind: domain.KindVoid}, nil
	case cmd.ReturnType == "":
		return p.resolveNative(subject, "void", cmd.ReturnPointer)
	case cmd.ReturnType == p.config.EnumType && cmd.ReturnPointer == 0:
		if ref, ok := p.groupType(cmd.ReturnGroup, 0); ok {
			return ref, nil
		}
		if cmd.ReturnGroup != "" {
			p.diagnose(domain.UnresolvedType, subject, "unknown group %q, using %s", cmd.ReturnGroup, domain.UINT32)
		}
		return domain.TypeRef{Kind: domain.KindNative, Name: domain.UINT32, Original: cmd.ReturnType}, nil
	}

	return p.resolveNative(subject, cmd.ReturnType, cmd.ReturnPointer)
}

func (p *plan) resolveParam(cmd domain.Command, param domain.Parameter) (domain.Param, error) {
	subject := cmd.Name + "." + param.Name
	out := domain.Param{Name: param.Name, Raw: param.Name}

	if _, reserved := p.reserved[param.Name]; reserved {
		out.Name = param.Name + p.config.EscapeSuffix
		p.diagnose(domain.NameCollisionEscape, subject, "renamed to %s", out.Name)
	}

	if ref, ok := p.groupType(param.Group, param.Pointer); ok {
		out.Type = ref
		return out, nil
	}

	if param.Type != "" {
		ref, err := p.resolveNative(subject, param.Type, param.Pointer)
		if err != nil {
			return out, err
		}
		out.Type = ref
		return out, nil
	}

	p.diagnose(domain.OpaqueType, subject, "no type or known group in %q, using %s", param.String(), domain.OPAQUE)
	out.Type = domain.TypeRef{Kind: domain.KindOpaque, Name: domain.OPAQUE, Original: param.Type, Pointer: param.Pointer}
	return out, nil
}

// groupType returns the strong enum type for a declared group.
func (p *plan) groupType(group string, pointer int) (domain.TypeRef, bool) {
	if group == "" {
		return domain.TypeRef{}, false
	}
	ref, ok := p.groupSuffix[group]
	if !ok {
		return domain.TypeRef{}, false
	}
	return domain.TypeRef{
		Kind:     domain.KindGroup,
		Name:     ref.Name,
		Suffix:   ref.Suffix,
		Original: group,
		Pointer:  pointer,
	}, true
}

func (p *plan) resolveNative(subject, name string, pointer int) (domain.TypeRef, error) {
	result, err := p.resolver.Resolve(name)
	if err != nil {
		return domain.TypeRef{}, errors.Wrapf(err, "failed to resolve %s", subject)
	}
	if !result.OK() {
		p.diagnose(domain.UnresolvedType, subject, "cannot map %s, emitting %s", name, result)
	}
	return result.TypeRef(pointer), nil
}

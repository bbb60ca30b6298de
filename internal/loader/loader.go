package loader

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/griffnb/glbindgen/internal/domain"
)

const (
	typedefPrefix = "typedef "

	// funcPointerCType stands in for any function pointer typedef.
	funcPointerCType = "void (*)"
)

// Load reads and translates the registry document at path.
func (s *Service) Load(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open registry")
	}
	defer f.Close()

	return s.LoadReader(f)
}

// LoadReader reads and translates a registry document.
func (s *Service) LoadReader(r io.Reader) (*LoadResult, error) {
	var doc xmlRegistry
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewStructuralError("registry", "empty document")
		}
		return nil, errors.Wrap(domain.NewStructuralError("registry", "%v", err), "failed to decode registry")
	}

	result := &LoadResult{
		Groups: make(map[string]domain.EnumGroup),
	}

	result.Aliases = s.loadTypes(doc.Types)
	s.loadGroups(doc.Groups, result)
	result.Enums = s.loadEnums(doc.Enums)

	commands, err := s.loadCommands(doc.Commands)
	if err != nil {
		return nil, err
	}
	result.Commands = commands

	s.debug.Printf("loader: %d aliases, %d groups, %d enum blocks, %d commands",
		len(result.Aliases), len(result.GroupOrder), len(result.Enums), len(result.Commands))

	return result, nil
}

// loadTypes keeps only indirection aliases: entries naming themselves through
// a nested <name> element. Entries with a name attribute are base types.
func (s *Service) loadTypes(entries []xmlType) []domain.TypeAlias {
	aliases := make([]domain.TypeAlias, 0, len(entries))
	for _, entry := range entries {
		if entry.NameAttr != "" || !entry.HasNameElem {
			continue
		}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		aliases = append(aliases, domain.TypeAlias{
			Name:        name,
			NativeCType: nativeCType(entry.Declaration),
			Requires:    entry.Requires,
			API:         entry.API,
		})
	}
	return aliases
}

// nativeCType recovers the aliased type from the declaration text preceding
// the alias name, e.g. "typedef unsigned int " -> "unsigned int".
func nativeCType(declaration string) string {
	if idx := strings.LastIndex(declaration, typedefPrefix); idx >= 0 {
		declaration = declaration[idx+len(typedefPrefix):]
	}
	if strings.Contains(declaration, "(") {
		return funcPointerCType
	}
	declaration = strings.ReplaceAll(declaration, "*", " *")
	return strings.Join(strings.Fields(declaration), " ")
}

func (s *Service) loadGroups(entries []xmlGroup, result *LoadResult) {
	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		members := make([]string, 0, len(entry.Enums))
		for _, ref := range entry.Enums {
			if ref.Name == "" {
				continue
			}
			members = append(members, ref.Name)
		}
		if _, exists := result.Groups[entry.Name]; exists {
			s.debug.Printf("loader: group %s declared twice, keeping the last declaration", entry.Name)
		} else {
			result.GroupOrder = append(result.GroupOrder, entry.Name)
		}
		result.Groups[entry.Name] = domain.EnumGroup{Name: entry.Name, Members: members}
	}
}

func (s *Service) loadEnums(blocks []xmlEnums) []domain.EnumDefinition {
	defs := make([]domain.EnumDefinition, 0, len(blocks))
	for _, block := range blocks {
		def := domain.EnumDefinition{
			Namespace: block.Namespace,
			Group:     block.Group,
			Vendor:    block.Vendor,
			Bitmask:   block.Type == "bitmask",
			Values:    make([]domain.EnumValue, 0, len(block.Values)),
		}
		for _, v := range block.Values {
			if v.Name == "" {
				continue
			}
			def.Values = append(def.Values, domain.EnumValue{
				Name:  v.Name,
				API:   v.API,
				Value: v.Value,
				Type:  v.Type,
				Alias: v.Alias,
			})
		}
		if def.IsFlat(s.specialGroup) {
			s.debug.Printf("loader: flat enum block %q with %d values", def.Group, len(def.Values))
		}
		defs = append(defs, def)
	}
	return defs
}

func (s *Service) loadCommands(sets []xmlCommands) ([]domain.Command, error) {
	var commands []domain.Command
	seen := make(map[string]map[string]struct{})

	for _, set := range sets {
		if seen[set.Namespace] == nil {
			seen[set.Namespace] = make(map[string]struct{})
		}
		for i, entry := range set.Commands {
			if entry.Proto == nil {
				return nil, domain.NewStructuralError("command", "command #%d in namespace %q has no <proto>", i, set.Namespace)
			}
			name := strings.TrimSpace(entry.Proto.Name)
			if name == "" {
				return nil, domain.NewStructuralError("proto", "command #%d in namespace %q has no <name>", i, set.Namespace)
			}
			if _, dup := seen[set.Namespace][name]; dup {
				return nil, domain.NewStructuralError("command", "%s declared twice in namespace %q", name, set.Namespace)
			}
			seen[set.Namespace][name] = struct{}{}

			cmd := domain.Command{
				Namespace:     set.Namespace,
				Name:          name,
				ReturnType:    strings.TrimSpace(entry.Proto.PType),
				ReturnGroup:   entry.Proto.Group,
				ReturnPointer: strings.Count(entry.Proto.Text, "*"),
				Params:        make([]domain.Parameter, 0, len(entry.Params)),
			}
			for j, p := range entry.Params {
				paramName := strings.TrimSpace(p.Name)
				if paramName == "" {
					return nil, domain.NewStructuralError("param", "parameter #%d of %s has no <name>", j, name)
				}
				cmd.Params = append(cmd.Params, domain.Parameter{
					Type:    strings.TrimSpace(p.PType),
					Group:   p.Group,
					Name:    paramName,
					Pointer: strings.Count(p.Text, "*"),
					Len:     p.Len,
				})
			}
			commands = append(commands, cmd)
		}
	}

	return commands, nil
}

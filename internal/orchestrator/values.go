package orchestrator

import "github.com/griffnb/glbindgen/internal/domain"

// value is one enum value after the cross-block merge.
type value struct {
	Name      string
	Value     string
	Type      string
	Bitmask   bool
	Group     string
	Namespace string
	Flat      bool
}

// valueTable is the merged view of every enum block. Group-block values carry
// the literals patched in from flat blocks.
type valueTable struct {
	// all holds every active value in declaration order.
	all []value

	// owned indexes all by owning group and raw name (first declaration).
	owned map[string]map[string]int

	// first indexes all by raw name, group-block values before flat ones.
	first map[string]int

	// flat lists the indexes of flat values in declaration order.
	flat []int

	// blocks describes the group blocks by group name.
	blocks map[string]block
}

// block is what the group blocks declare about their group.
type block struct {
	Namespace string
	Bitmask   bool
}

// mergeValues builds the value table. Values restricted to another API are
// left out. For every flat value the first group-block value with the same
// name takes its literal, type and bitmask flag. defs is not modified.
func mergeValues(defs []domain.EnumDefinition, specialGroup, api string) *valueTable {
	t := &valueTable{
		owned:  make(map[string]map[string]int),
		first:  make(map[string]int),
		blocks: make(map[string]block),
	}

	firstGrouped := make(map[string]int)
	firstFlat := make(map[string]int)

	for _, def := range defs {
		flat := def.IsFlat(specialGroup)
		if !flat {
			b, seen := t.blocks[def.Group]
			if !seen {
				b.Namespace = def.Namespace
			}
			b.Bitmask = b.Bitmask || def.Bitmask
			t.blocks[def.Group] = b
		}
		for _, v := range def.Values {
			if !v.ActiveFor(api) {
				continue
			}
			idx := len(t.all)
			t.all = append(t.all, value{
				Name:      v.Name,
				Value:     v.Value,
				Type:      v.Type,
				Bitmask:   def.Bitmask,
				Group:     def.Group,
				Namespace: def.Namespace,
				Flat:      flat,
			})

			if flat {
				t.flat = append(t.flat, idx)
				if _, ok := firstFlat[v.Name]; !ok {
					firstFlat[v.Name] = idx
				}
				continue
			}

			if _, ok := firstGrouped[v.Name]; !ok {
				firstGrouped[v.Name] = idx
			}
			if t.owned[def.Group] == nil {
				t.owned[def.Group] = make(map[string]int)
			}
			if _, ok := t.owned[def.Group][v.Name]; !ok {
				t.owned[def.Group][v.Name] = idx
			}
		}
	}

	for _, idx := range t.flat {
		src := t.all[idx]
		target, ok := firstGrouped[src.Name]
		if !ok {
			continue
		}
		t.all[target].Value = src.Value
		t.all[target].Type = src.Type
		t.all[target].Bitmask = src.Bitmask
	}

	for name, idx := range firstFlat {
		t.first[name] = idx
	}
	for name, idx := range firstGrouped {
		t.first[name] = idx
	}

	return t
}

// Lookup returns the value for raw as a member of group: the value owned by
// a block of that group, else the first value of that name anywhere.
func (t *valueTable) Lookup(group, raw string) (value, bool) {
	if idx, ok := t.owned[group][raw]; ok {
		return t.all[idx], true
	}
	if idx, ok := t.first[raw]; ok {
		return t.all[idx], true
	}
	return value{}, false
}

// Block returns what the blocks owning group declare, if any exist.
func (t *valueTable) Block(group string) (block, bool) {
	b, ok := t.blocks[group]
	return b, ok
}

// Flat returns the flat values in declaration order.
func (t *valueTable) Flat() []value {
	out := make([]value, 0, len(t.flat))
	for _, idx := range t.flat {
		out = append(out, t.all[idx])
	}
	return out
}

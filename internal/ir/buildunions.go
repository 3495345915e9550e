package ir

import "slices"

// populateUnionMembership builds a member -> unions index in one pass over
// every union, then assigns ImplementsUnions on each object type.
func (b *builder) populateUnionMembership() {
	index := make(map[string][]string)
	for _, union := range b.schema.Unions {
		for _, member := range union.Members {
			if slices.Contains(index[member], union.Name) {
				continue
			}
			index[member] = append(index[member], union.Name)
		}
	}

	for _, obj := range b.schema.Types {
		unions, ok := index[obj.Name]
		if !ok {
			obj.ImplementsUnions = []string{}
			continue
		}
		obj.ImplementsUnions = slices.Clone(unions)
	}
}

package emitter

import (
	"slices"

	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/typemap"
)

// View is the part of a schema visible to one target platform. Definitions
// tagged for another platform are dropped, and so is anything whose name
// carries another platform's suffix. Filtered definitions are shallow copies;
// the schema itself is never modified.
type View struct {
	Target ir.Platform
	Enums  []*ir.EnumDef
	Types  []*ir.ObjectTypeDef
	Inputs []*ir.InputTypeDef
	Unions []*ir.UnionDef
	// Groups holds the common operations first, then one group per platform.
	Groups []*OperationGroup

	// hidden names definitions filtered out by platform with no visible
	// definition of the same name.
	hidden map[string]bool
}

// OperationGroup collects the operations sharing one platform tag.
type OperationGroup struct {
	Platform      ir.Platform
	Queries       []*ir.OperationDef
	Mutations     []*ir.OperationDef
	Subscriptions []*ir.OperationDef
}

func (g *OperationGroup) Operations(kind ir.OperationKind) []*ir.OperationDef {
	switch kind {
	case ir.OperationQuery:
		return g.Queries
	case ir.OperationMutation:
		return g.Mutations
	case ir.OperationSubscription:
		return g.Subscriptions
	}
	return nil
}

func (g *OperationGroup) add(kind ir.OperationKind, op *ir.OperationDef) {
	switch kind {
	case ir.OperationQuery:
		g.Queries = append(g.Queries, op)
	case ir.OperationMutation:
		g.Mutations = append(g.Mutations, op)
	case ir.OperationSubscription:
		g.Subscriptions = append(g.Subscriptions, op)
	}
}

func (g *OperationGroup) empty() bool {
	return len(g.Queries)+len(g.Mutations)+len(g.Subscriptions) == 0
}

// ResolverName names the resolver interface of kind for this group, e.g.
// "QueryResolver" or "MutationResolverAndroid".
func (g *OperationGroup) ResolverName(kind ir.OperationKind) string {
	var base string
	switch kind {
	case ir.OperationQuery:
		base = "Query"
	case ir.OperationMutation:
		base = "Mutation"
	case ir.OperationSubscription:
		base = "Subscription"
	}
	return base + "Resolver" + PlatformSuffix(g.Platform)
}

func NewView(schema *ir.Schema, target ir.Platform) *View {
	v := &View{Target: target, hidden: hiddenNames(schema, target)}

	for _, enum := range schema.Enums {
		if v.visible(enum.Name, enum.Platform) {
			v.Enums = append(v.Enums, enum)
		}
	}

	objects := make(map[string]bool)
	for _, obj := range schema.Types {
		if v.visible(obj.Name, obj.Platform) {
			objects[obj.Name] = true
		}
	}
	unions := make(map[string]bool)
	for _, union := range schema.Unions {
		if v.visible(union.Name, union.Platform) {
			unions[union.Name] = true
		}
	}

	for _, obj := range schema.Types {
		if !v.visible(obj.Name, obj.Platform) {
			continue
		}
		clone := *obj
		clone.Fields = v.fields(obj.Fields)
		clone.ImplementsUnions = slices.DeleteFunc(slices.Clone(obj.ImplementsUnions), func(name string) bool {
			return !unions[name]
		})
		v.Types = append(v.Types, &clone)
	}

	for _, input := range schema.Inputs {
		if !v.visible(input.Name, input.Platform) {
			continue
		}
		clone := *input
		clone.Fields = v.fields(input.Fields)
		v.Inputs = append(v.Inputs, &clone)
	}

	for _, union := range schema.Unions {
		if !v.visible(union.Name, union.Platform) {
			continue
		}
		clone := *union
		clone.Members = slices.DeleteFunc(slices.Clone(union.Members), func(member string) bool {
			if schema.Object(member) == nil {
				return v.foreign(member)
			}
			return !objects[member]
		})
		v.Unions = append(v.Unions, &clone)
	}

	v.Groups = v.groupOperations(schema)
	return v
}

// Object returns the last visible object type named name, or nil.
func (v *View) Object(name string) *ir.ObjectTypeDef {
	for i := len(v.Types) - 1; i >= 0; i-- {
		if v.Types[i].Name == name {
			return v.Types[i]
		}
	}
	return nil
}

// HasOperations reports whether any group holds an operation.
func (v *View) HasOperations() bool {
	return len(v.Groups) > 0
}

func (v *View) visible(name string, platform ir.Platform) bool {
	return typemap.ShouldIncludeForPlatform(platform, v.Target) && !typemap.IsForeign(name, v.Target)
}

// foreign reports whether a type reference would dangle in this view: the
// name carries another platform's suffix or only names filtered definitions.
func (v *View) foreign(name string) bool {
	return typemap.IsForeign(name, v.Target) || v.hidden[name]
}

func hiddenNames(schema *ir.Schema, target ir.Platform) map[string]bool {
	hidden := make(map[string]bool)
	shown := make(map[string]bool)
	mark := func(name string, platform ir.Platform) {
		if typemap.ShouldIncludeForPlatform(platform, target) && !typemap.IsForeign(name, target) {
			shown[name] = true
		} else {
			hidden[name] = true
		}
	}
	for _, enum := range schema.Enums {
		mark(enum.Name, enum.Platform)
	}
	for _, obj := range schema.Types {
		mark(obj.Name, obj.Platform)
	}
	for _, input := range schema.Inputs {
		mark(input.Name, input.Platform)
	}
	for _, union := range schema.Unions {
		mark(union.Name, union.Platform)
	}
	for name := range shown {
		delete(hidden, name)
	}
	return hidden
}

func (v *View) fields(fields []*ir.FieldDef) []*ir.FieldDef {
	out := make([]*ir.FieldDef, 0, len(fields))
	for _, field := range fields {
		if v.foreign(field.Type.Name) {
			continue
		}
		out = append(out, field)
	}
	return out
}

// An operation is dropped when it or any type in its signature is foreign,
// since removing a single argument would change the operation's meaning.
func (v *View) operationVisible(op *ir.OperationDef) bool {
	if !typemap.ShouldIncludeForPlatform(op.Platform, v.Target) {
		return false
	}
	if v.foreign(op.ReturnType.Name) {
		return false
	}
	for _, arg := range op.Args {
		if v.foreign(arg.Type.Name) {
			return false
		}
	}
	return true
}

func (v *View) groupOperations(schema *ir.Schema) []*OperationGroup {
	common := &OperationGroup{Platform: ir.PlatformCommon}
	byPlatform := make(map[ir.Platform]*OperationGroup)
	for _, kind := range ir.OperationKinds() {
		for _, op := range schema.Operations(kind) {
			if !v.operationVisible(op) {
				continue
			}
			if op.Platform.IsCommon() {
				common.add(kind, op)
				continue
			}
			g, ok := byPlatform[op.Platform]
			if !ok {
				g = &OperationGroup{Platform: op.Platform}
				byPlatform[op.Platform] = g
			}
			g.add(kind, op)
		}
	}

	var groups []*OperationGroup
	if !common.empty() {
		groups = append(groups, common)
	}
	for _, p := range ir.Platforms() {
		if g, ok := byPlatform[p]; ok {
			groups = append(groups, g)
		}
	}
	return groups
}

// Schema flattens v back into a schema, operations in group order.
func (v *View) Schema() *ir.Schema {
	s := &ir.Schema{
		Enums:         v.Enums,
		Types:         v.Types,
		Inputs:        v.Inputs,
		Unions:        v.Unions,
		Queries:       []*ir.OperationDef{},
		Mutations:     []*ir.OperationDef{},
		Subscriptions: []*ir.OperationDef{},
	}
	for _, g := range v.Groups {
		s.Queries = append(s.Queries, g.Queries...)
		s.Mutations = append(s.Mutations, g.Mutations...)
		s.Subscriptions = append(s.Subscriptions, g.Subscriptions...)
	}
	return s
}

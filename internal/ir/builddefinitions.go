package ir

import (
	"cmp"
	"slices"

	language "github.com/hanpama/sdlgen/internal/language"
)

// collectDocument visits definitions and extensions in source order, so root
// operations keep the order they are written in.
func (b *builder) collectDocument(doc *Document) {
	for _, entry := range sourceOrder(doc.AST) {
		node := entry.node
		if kind, ok := b.roots[node.Name]; ok && node.Kind == language.Object {
			b.collectOperations(kind, node, doc.Platform)
			continue
		}
		if entry.extension {
			b.extensions = append(b.extensions, &pendingExtension{node: node})
			continue
		}
		switch node.Kind {
		case language.Enum:
			b.schema.Enums = append(b.schema.Enums, newEnumDef(node, doc.Platform))
		case language.Object:
			b.schema.Types = append(b.schema.Types, newObjectTypeDef(node, doc.Platform))
		case language.InputObject:
			b.schema.Inputs = append(b.schema.Inputs, newInputTypeDef(node, doc.Platform))
		case language.Union:
			b.schema.Unions = append(b.schema.Unions, newUnionDef(node, doc.Platform))
		default:
			// interfaces and scalars are referenced by name only
		}
	}
}

type sourceEntry struct {
	node      *language.Definition
	extension bool
}

func sourceOrder(doc *language.SchemaDocument) []sourceEntry {
	entries := make([]sourceEntry, 0, len(doc.Definitions)+len(doc.Extensions))
	for _, node := range doc.Definitions {
		entries = append(entries, sourceEntry{node: node})
	}
	for _, node := range doc.Extensions {
		entries = append(entries, sourceEntry{node: node, extension: true})
	}
	slices.SortStableFunc(entries, func(a, b sourceEntry) int {
		return cmp.Compare(offset(a.node), offset(b.node))
	})
	return entries
}

func offset(node *language.Definition) int {
	if node.Position == nil {
		return 0
	}
	return node.Position.Start
}

func (b *builder) collectOperations(kind OperationKind, node *language.Definition, platform Platform) {
	for _, fieldNode := range node.Fields {
		op := &OperationDef{
			Name:        fieldNode.Name,
			Description: fieldNode.Description,
			Args:        make([]*ArgumentDef, 0, len(fieldNode.Arguments)),
			ReturnType:  typeInfoOf(fieldNode.Type),
			Platform:    platform,
		}
		for _, argNode := range fieldNode.Arguments {
			op.Args = append(op.Args, newArgumentDef(argNode))
		}
		b.appendOperation(kind, op)
	}
}

func newEnumDef(node *language.Definition, platform Platform) *EnumDef {
	def := &EnumDef{
		Name:        node.Name,
		Description: node.Description,
		Values:      make([]string, 0, len(node.EnumValues)),
		Platform:    platform,
	}
	for _, value := range node.EnumValues {
		def.Values = append(def.Values, value.Name)
	}
	return def
}

func newObjectTypeDef(node *language.Definition, platform Platform) *ObjectTypeDef {
	return &ObjectTypeDef{
		Name:             node.Name,
		Description:      node.Description,
		Fields:           newFieldDefs(node.Fields),
		ImplementsUnions: []string{},
		Platform:         platform,
	}
}

func newInputTypeDef(node *language.Definition, platform Platform) *InputTypeDef {
	return &InputTypeDef{
		Name:        node.Name,
		Description: node.Description,
		Fields:      newFieldDefs(node.Fields),
		Platform:    platform,
	}
}

func newUnionDef(node *language.Definition, platform Platform) *UnionDef {
	return &UnionDef{
		Name:        node.Name,
		Description: node.Description,
		Members:     append([]string{}, node.Types...),
		Platform:    platform,
	}
}

func newFieldDefs(nodes language.FieldList) []*FieldDef {
	fields := make([]*FieldDef, 0, len(nodes))
	for _, fieldNode := range nodes {
		fields = append(fields, newFieldDef(fieldNode))
	}
	return fields
}

func newFieldDef(node *language.FieldDefinition) *FieldDef {
	return &FieldDef{
		Name:         node.Name,
		Type:         typeInfoOf(node.Type),
		Description:  node.Description,
		DefaultValue: rawValue(node.DefaultValue),
	}
}

func newArgumentDef(node *language.ArgumentDefinition) *ArgumentDef {
	return &ArgumentDef{
		Name:         node.Name,
		Type:         typeInfoOf(node.Type),
		Description:  node.Description,
		DefaultValue: rawValue(node.DefaultValue),
	}
}

func rawValue(v *language.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

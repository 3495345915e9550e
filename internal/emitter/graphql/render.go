// Package graphql renders the merged, platform-filtered schema back to SDL.
package graphql

import (
	"strings"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
)

type Emitter struct{}

func New() *Emitter { return &Emitter{} }

func (*Emitter) Name() string                 { return "graphql" }
func (*Emitter) DefaultOutput() string        { return "graphql/schema.graphql" }
func (*Emitter) DefaultPlatform() ir.Platform { return ir.PlatformCommon }

// Generate produces SDL in declaration order: enums, object types, inputs,
// unions, then one root block per operation group. The first group declaring
// a root type opens it with "type", later groups use "extend type".
func (*Emitter) Generate(schema *ir.Schema, cfg emitter.Config) (string, error) {
	view := emitter.NewView(schema, cfg.Platform)
	var b strings.Builder
	b.WriteString("# " + emitter.GeneratedNotice + "\n\n")

	for _, enum := range view.Enums {
		renderEnum(&b, enum)
	}
	for _, obj := range view.Types {
		renderFields(&b, "type", obj.Name, obj.Description, obj.Fields)
	}
	for _, input := range view.Inputs {
		renderFields(&b, "input", input.Name, input.Description, input.Fields)
	}
	for _, union := range view.Unions {
		renderUnion(&b, union)
	}

	declared := make(map[ir.OperationKind]bool)
	for _, group := range view.Groups {
		for _, kind := range ir.OperationKinds() {
			ops := group.Operations(kind)
			if len(ops) == 0 {
				continue
			}
			if !group.Platform.IsCommon() {
				b.WriteString("# platform: " + group.Platform.String() + "\n")
			}
			if declared[kind] {
				b.WriteString("extend ")
			}
			declared[kind] = true
			renderOperations(&b, rootTypeName(kind), ops)
		}
	}

	out := strings.TrimRight(b.String(), "\n") + "\n"
	return out, nil
}

// ----- render helpers -----

func rootTypeName(kind ir.OperationKind) string {
	switch kind {
	case ir.OperationMutation:
		return "Mutation"
	case ir.OperationSubscription:
		return "Subscription"
	}
	return "Query"
}

func renderDescription(b *strings.Builder, indent, desc string) {
	if desc == "" {
		return
	}
	b.WriteString(indent + "\"\"\"\n")
	// Escape block-string terminators in description
	escaped := strings.ReplaceAll(desc, `"""`, `\"""`)
	for _, line := range strings.Split(escaped, "\n") {
		b.WriteString(strings.TrimRight(indent+line, " "))
		b.WriteString("\n")
	}
	b.WriteString(indent + "\"\"\"\n")
}

func renderEnum(b *strings.Builder, enum *ir.EnumDef) {
	renderDescription(b, "", enum.Description)
	b.WriteString("enum ")
	b.WriteString(enum.Name)
	b.WriteString(" {\n")
	for _, value := range enum.Values {
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderFields(b *strings.Builder, keyword, name, desc string, fields []*ir.FieldDef) {
	renderDescription(b, "", desc)
	b.WriteString(keyword)
	b.WriteString(" ")
	b.WriteString(name)
	if len(fields) == 0 {
		b.WriteString("\n\n")
		return
	}
	b.WriteString(" {\n")
	for _, field := range fields {
		renderDescription(b, "  ", field.Description)
		b.WriteString("  ")
		b.WriteString(field.Name)
		b.WriteString(": ")
		b.WriteString(field.Type.String())
		if field.DefaultValue != "" {
			b.WriteString(" = ")
			b.WriteString(field.DefaultValue)
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderUnion(b *strings.Builder, union *ir.UnionDef) {
	renderDescription(b, "", union.Description)
	b.WriteString("union ")
	b.WriteString(union.Name)
	if len(union.Members) > 0 {
		b.WriteString(" = ")
		b.WriteString(strings.Join(union.Members, " | "))
	}
	b.WriteString("\n\n")
}

func renderOperations(b *strings.Builder, root string, ops []*ir.OperationDef) {
	b.WriteString("type ")
	b.WriteString(root)
	b.WriteString(" {\n")
	for _, op := range ops {
		renderDescription(b, "  ", op.Description)
		b.WriteString("  ")
		b.WriteString(op.Name)
		if len(op.Args) > 0 {
			b.WriteString("(")
			for i, arg := range op.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(arg.Name)
				b.WriteString(": ")
				b.WriteString(arg.Type.String())
				if arg.DefaultValue != "" {
					b.WriteString(" = ")
					b.WriteString(arg.DefaultValue)
				}
			}
			b.WriteString(")")
		}
		b.WriteString(": ")
		b.WriteString(op.ReturnType.String())
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

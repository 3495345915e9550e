// Package typescript renders a schema as TypeScript declarations for the web.
package typescript

import (
	"fmt"
	"strings"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/naming"
)

var scalars = map[string]string{
	"String":  "string",
	"Int":     "number",
	"Float":   "number",
	"Boolean": "boolean",
	"ID":      "string",
}

const indent = "  "

type Emitter struct{}

func New() *Emitter { return &Emitter{} }

func (*Emitter) Name() string                 { return "typescript" }
func (*Emitter) DefaultOutput() string        { return "typescript/types.ts" }
func (*Emitter) DefaultPlatform() ir.Platform { return ir.PlatformWeb }

func (*Emitter) Generate(schema *ir.Schema, cfg emitter.Config) (string, error) {
	g := &generator{
		view:    emitter.NewView(schema, cfg.Platform),
		cfg:     cfg,
		mapType: cfg.Mapper(scalars),
	}
	return g.render(), nil
}

type generator struct {
	view    *emitter.View
	cfg     emitter.Config
	mapType func(string) string
	b       strings.Builder
}

func (g *generator) render() string {
	g.b.WriteString("// " + emitter.GeneratedNotice + "\n\n")

	for _, enum := range g.view.Enums {
		g.renderEnum(enum)
	}
	for _, obj := range g.view.Types {
		g.renderInterface(obj.Name, obj.Description, obj.Fields)
	}
	for _, input := range g.view.Inputs {
		g.renderInterface(input.Name, input.Description, input.Fields)
	}
	for _, union := range g.view.Unions {
		g.renderUnion(union)
	}
	if g.cfg.GenerateResolvers {
		for _, group := range g.view.Groups {
			for _, kind := range ir.OperationKinds() {
				if ops := group.Operations(kind); len(ops) > 0 {
					g.renderResolver(group.ResolverName(kind), kind, ops)
				}
			}
		}
	}
	return strings.TrimRight(g.b.String(), "\n") + "\n"
}

func (g *generator) renderEnum(enum *ir.EnumDef) {
	emitter.WriteBlockComment(&g.b, "", enum.Description)
	fmt.Fprintf(&g.b, "export enum %s {\n", enum.Name)
	for _, value := range enum.Values {
		fmt.Fprintf(&g.b, "%s%s = '%s',\n", indent, naming.PascalCase(value), value)
	}
	g.b.WriteString("}\n\n")
}

func (g *generator) renderInterface(name, desc string, fields []*ir.FieldDef) {
	emitter.WriteBlockComment(&g.b, "", desc)
	fmt.Fprintf(&g.b, "export interface %s {\n", name)
	for _, field := range fields {
		emitter.WriteBlockComment(&g.b, indent, field.Description)
		fmt.Fprintf(&g.b, "%s%s;\n", indent, g.member(field.Name, field.Type))
	}
	g.b.WriteString("}\n\n")

	if !g.cfg.GenerateConstructors {
		return
	}
	if len(fields) == 0 {
		fmt.Fprintf(&g.b, "export function create%s(): %s {\n%sreturn {};\n}\n\n", name, name, indent)
		return
	}
	fmt.Fprintf(&g.b, "export function create%s(args: %s): %s {\n", name, name, name)
	g.b.WriteString(indent + "return {\n")
	for _, field := range fields {
		if field.Type.Nullable {
			fmt.Fprintf(&g.b, "%s%s%s: args.%s ?? null,\n", indent, indent, field.Name, field.Name)
			continue
		}
		fmt.Fprintf(&g.b, "%s%s%s: args.%s,\n", indent, indent, field.Name, field.Name)
	}
	g.b.WriteString(indent + "};\n}\n\n")
}

func (g *generator) renderUnion(union *ir.UnionDef) {
	emitter.WriteBlockComment(&g.b, "", union.Description)
	if len(union.Members) == 0 {
		fmt.Fprintf(&g.b, "export type %s = never;\n\n", union.Name)
		return
	}
	members := make([]string, 0, len(union.Members))
	for _, member := range union.Members {
		members = append(members, g.mapType(member))
	}
	fmt.Fprintf(&g.b, "export type %s = %s;\n\n", union.Name, strings.Join(members, " | "))
}

func (g *generator) renderResolver(name string, kind ir.OperationKind, ops []*ir.OperationDef) {
	fmt.Fprintf(&g.b, "export interface %s {\n", name)
	for _, op := range ops {
		emitter.WriteBlockComment(&g.b, indent, op.Description)
		result := "Promise<" + g.typeRef(op.ReturnType) + ">"
		if kind == ir.OperationSubscription {
			result = "AsyncIterable<" + g.typeRef(op.ReturnType) + ">"
		}
		fmt.Fprintf(&g.b, "%s%s(%s): %s;\n", indent, op.Name, g.params(op.Args), result)
	}
	g.b.WriteString("}\n\n")
}

// params renders an argument list. Trailing nullable arguments are optional;
// an earlier nullable argument must still be passed, possibly as null.
func (g *generator) params(args []*ir.ArgumentDef) string {
	optionalFrom := len(args)
	for i := len(args) - 1; i >= 0 && args[i].Type.Nullable; i-- {
		optionalFrom = i
	}
	params := make([]string, 0, len(args))
	for i, arg := range args {
		name := parameterName(arg.Name)
		if i >= optionalFrom {
			name += "?"
		}
		params = append(params, name+": "+g.typeRef(arg.Type))
	}
	return strings.Join(params, ", ")
}

// member renders an interface member; nullable fields are optional.
// Reserved words are valid property names.
func (g *generator) member(name string, t ir.TypeInfo) string {
	if t.Nullable {
		return name + "?: " + g.typeRef(t)
	}
	return name + ": " + g.typeRef(t)
}

// typeRef spells t as a TypeScript type, e.g. "(string | null)[] | null".
func (g *generator) typeRef(t ir.TypeInfo) string {
	s := g.mapType(t.Name)
	if t.IsList {
		if t.ItemNullable {
			s = "(" + s + " | null)"
		}
		s += "[]"
	}
	if t.Nullable {
		s += " | null"
	}
	return s
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "let": true, "static": true, "yield": true, "await": true,
}

func parameterName(name string) string {
	if reserved[name] {
		return name + "_"
	}
	return name
}

// Package swift renders a schema as Swift value types for Apple platforms.
package swift

import (
	"fmt"
	"strings"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/naming"
	"github.com/hanpama/sdlgen/internal/typemap"
)

var scalars = map[string]string{
	"String":  "String",
	"Int":     "Int",
	"Float":   "Double",
	"Boolean": "Bool",
	"ID":      "String",
}

const indent = "    "

type Emitter struct{}

func New() *Emitter { return &Emitter{} }

func (*Emitter) Name() string                 { return "swift" }
func (*Emitter) DefaultOutput() string        { return "swift/Types.swift" }
func (*Emitter) DefaultPlatform() ir.Platform { return ir.PlatformIOS }

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
	g.b.WriteString("import Foundation\n\n")

	for _, enum := range g.view.Enums {
		g.renderEnum(enum)
	}
	for _, obj := range g.view.Types {
		g.renderStruct(obj.Name, obj.Description, obj.Fields)
	}
	for _, input := range g.view.Inputs {
		g.renderStruct(input.Name, input.Description, input.Fields)
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
	emitter.WriteLineComment(&g.b, "", "/// ", enum.Description)
	fmt.Fprintf(&g.b, "public enum %s: String, Codable, CaseIterable {\n", enum.Name)
	for _, value := range enum.Values {
		fmt.Fprintf(&g.b, "%scase %s = \"%s\"\n", indent, identifier(naming.CamelCase(value)), value)
	}
	g.b.WriteString("}\n\n")
}

func (g *generator) renderStruct(name, desc string, fields []*ir.FieldDef) {
	emitter.WriteLineComment(&g.b, "", "/// ", desc)
	fmt.Fprintf(&g.b, "public struct %s: Codable {\n", name)
	for _, field := range fields {
		emitter.WriteLineComment(&g.b, indent, "/// ", field.Description)
		fmt.Fprintf(&g.b, "%spublic var %s: %s\n", indent, identifier(field.Name), g.typeRef(field.Type))
	}

	if g.cfg.GenerateConstructors {
		if len(fields) > 0 {
			g.b.WriteString("\n")
		}
		params := make([]string, 0, len(fields))
		for _, field := range fields {
			param := identifier(field.Name) + ": " + g.typeRef(field.Type)
			if field.Type.Nullable {
				param += " = nil"
			}
			params = append(params, param)
		}
		fmt.Fprintf(&g.b, "%spublic init(%s) {\n", indent, strings.Join(params, ", "))
		for _, field := range fields {
			fmt.Fprintf(&g.b, "%s%sself.%s = %s\n", indent, indent, identifier(field.Name), identifier(field.Name))
		}
		g.b.WriteString(indent + "}\n")
	}
	g.b.WriteString("}\n\n")
}

func (g *generator) renderUnion(union *ir.UnionDef) {
	emitter.WriteLineComment(&g.b, "", "/// ", union.Description)
	if len(union.Members) == 0 {
		fmt.Fprintf(&g.b, "public enum %s: Codable {}\n\n", union.Name)
		return
	}
	fmt.Fprintf(&g.b, "public indirect enum %s: Codable {\n", union.Name)
	cases := typemap.SimplifyMemberNames(union.Members)
	for i, member := range union.Members {
		fmt.Fprintf(&g.b, "%scase %s(%s)\n", indent, identifier(naming.LowerFirst(cases[i])), g.mapType(member))
	}
	g.b.WriteString("}\n\n")
}

func (g *generator) renderResolver(name string, kind ir.OperationKind, ops []*ir.OperationDef) {
	fmt.Fprintf(&g.b, "public protocol %s {\n", name)
	for _, op := range ops {
		emitter.WriteLineComment(&g.b, indent, "/// ", op.Description)
		params := make([]string, 0, len(op.Args))
		for _, arg := range op.Args {
			params = append(params, identifier(arg.Name)+": "+g.typeRef(arg.Type))
		}
		signature := fmt.Sprintf("func %s(%s)", identifier(op.Name), strings.Join(params, ", "))
		if kind == ir.OperationSubscription {
			fmt.Fprintf(&g.b, "%s%s -> AsyncThrowingStream<%s, Error>\n", indent, signature, g.typeRef(op.ReturnType))
			continue
		}
		fmt.Fprintf(&g.b, "%s%s async throws -> %s\n", indent, signature, g.typeRef(op.ReturnType))
	}
	g.b.WriteString("}\n\n")
}

// typeRef spells t as a Swift type: optionals for nullable positions and
// arrays for lists, e.g. "[String?]?".
func (g *generator) typeRef(t ir.TypeInfo) string {
	s := g.mapType(t.Name)
	if t.IsList {
		if t.ItemNullable {
			s += "?"
		}
		s = "[" + s + "]"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

var keywords = map[string]bool{
	"associatedtype": true, "class": true, "deinit": true, "enum": true, "extension": true,
	"fileprivate": true, "func": true, "import": true, "init": true, "inout": true,
	"internal": true, "let": true, "open": true, "operator": true, "private": true,
	"protocol": true, "public": true, "rethrows": true, "static": true, "struct": true,
	"subscript": true, "typealias": true, "var": true, "break": true, "case": true,
	"continue": true, "default": true, "defer": true, "do": true, "else": true,
	"fallthrough": true, "for": true, "guard": true, "if": true, "in": true,
	"repeat": true, "return": true, "switch": true, "where": true, "while": true,
	"as": true, "Any": true, "catch": true, "false": true, "is": true, "nil": true,
	"super": true, "self": true, "Self": true, "throw": true, "throws": true,
	"true": true, "try": true,
}

func identifier(name string) string {
	if keywords[name] {
		return "`" + name + "`"
	}
	return name
}

// Package kotlin renders a schema as Kotlin data classes for Android.
package kotlin

import (
	"fmt"
	"strings"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/naming"
)

var scalars = map[string]string{
	"String":  "String",
	"Int":     "Int",
	"Float":   "Double",
	"Boolean": "Boolean",
	"ID":      "String",
}

const indent = "    "

type Emitter struct{}

func New() *Emitter { return &Emitter{} }

func (*Emitter) Name() string                 { return "kotlin" }
func (*Emitter) DefaultOutput() string        { return "kotlin/Types.kt" }
func (*Emitter) DefaultPlatform() ir.Platform { return ir.PlatformAndroid }

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
	if g.cfg.PackageName != "" {
		fmt.Fprintf(&g.b, "package %s\n\n", g.cfg.PackageName)
	}
	if g.cfg.GenerateResolvers && g.hasSubscriptions() {
		g.b.WriteString("import kotlinx.coroutines.flow.Flow\n\n")
	}

	for _, enum := range g.view.Enums {
		g.renderEnum(enum)
	}
	for _, obj := range g.view.Types {
		g.renderClass(obj.Name, obj.Description, obj.Fields, obj.ImplementsUnions)
	}
	for _, input := range g.view.Inputs {
		g.renderClass(input.Name, input.Description, input.Fields, nil)
	}
	for _, union := range g.view.Unions {
		emitter.WriteBlockComment(&g.b, "", union.Description)
		fmt.Fprintf(&g.b, "sealed interface %s\n\n", union.Name)
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

func (g *generator) hasSubscriptions() bool {
	for _, group := range g.view.Groups {
		if len(group.Subscriptions) > 0 {
			return true
		}
	}
	return false
}

func (g *generator) renderEnum(enum *ir.EnumDef) {
	emitter.WriteBlockComment(&g.b, "", enum.Description)
	fmt.Fprintf(&g.b, "enum class %s(val rawValue: String) {\n", enum.Name)
	for i, value := range enum.Values {
		sep := ","
		if i == len(enum.Values)-1 {
			sep = ";"
		}
		fmt.Fprintf(&g.b, "%s%s(\"%s\")%s\n", indent, identifier(naming.PascalCase(value)), value, sep)
	}
	g.b.WriteString("}\n\n")
}

func (g *generator) renderClass(name, desc string, fields []*ir.FieldDef, unions []string) {
	emitter.WriteBlockComment(&g.b, "", desc)
	supertypes := ""
	if len(unions) > 0 {
		supertypes = " : " + strings.Join(unions, ", ")
	}
	if len(fields) == 0 {
		fmt.Fprintf(&g.b, "class %s%s\n\n", name, supertypes)
		return
	}

	fmt.Fprintf(&g.b, "data class %s(\n", name)
	for _, field := range fields {
		emitter.WriteBlockComment(&g.b, indent, field.Description)
		param := fmt.Sprintf("%sval %s: %s", indent, identifier(field.Name), g.typeRef(field.Type))
		if g.cfg.GenerateConstructors && field.Type.Nullable {
			param += " = null"
		}
		g.b.WriteString(param + ",\n")
	}
	fmt.Fprintf(&g.b, ")%s\n\n", supertypes)
}

func (g *generator) renderResolver(name string, kind ir.OperationKind, ops []*ir.OperationDef) {
	fmt.Fprintf(&g.b, "interface %s {\n", name)
	for _, op := range ops {
		emitter.WriteBlockComment(&g.b, indent, op.Description)
		params := make([]string, 0, len(op.Args))
		for _, arg := range op.Args {
			params = append(params, identifier(arg.Name)+": "+g.typeRef(arg.Type))
		}
		if kind == ir.OperationSubscription {
			fmt.Fprintf(&g.b, "%sfun %s(%s): Flow<%s>\n", indent, identifier(op.Name), strings.Join(params, ", "), g.typeRef(op.ReturnType))
			continue
		}
		fmt.Fprintf(&g.b, "%ssuspend fun %s(%s): %s\n", indent, identifier(op.Name), strings.Join(params, ", "), g.typeRef(op.ReturnType))
	}
	g.b.WriteString("}\n\n")
}

// typeRef spells t as a Kotlin type, e.g. "List<String?>?".
func (g *generator) typeRef(t ir.TypeInfo) string {
	s := g.mapType(t.Name)
	if t.IsList {
		if t.ItemNullable {
			s += "?"
		}
		s = "List<" + s + ">"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

var keywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true,
	"in": true, "interface": true, "is": true, "null": true, "object": true,
	"package": true, "return": true, "super": true, "this": true, "throw": true,
	"true": true, "try": true, "typealias": true, "typeof": true, "val": true,
	"var": true, "when": true, "while": true,
}

func identifier(name string) string {
	if keywords[name] {
		return "`" + name + "`"
	}
	return name
}

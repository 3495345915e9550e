package ir

import (
	language "github.com/hanpama/sdlgen/internal/language"
)

type pendingExtension struct {
	node *language.Definition
}

// applyExtensions merges "extend" blocks of non-root definitions into the last
// definition of the same name. Extensions without a base are dropped.
func (b *builder) applyExtensions() {
	for _, ext := range b.extensions {
		node := ext.node
		switch node.Kind {
		case language.Enum:
			if def := b.schema.Enum(node.Name); def != nil {
				for _, value := range node.EnumValues {
					def.Values = append(def.Values, value.Name)
				}
			}
		case language.Object:
			if def := b.schema.Object(node.Name); def != nil {
				def.Fields = append(def.Fields, newFieldDefs(node.Fields)...)
			}
		case language.InputObject:
			if def := b.schema.Input(node.Name); def != nil {
				def.Fields = append(def.Fields, newFieldDefs(node.Fields)...)
			}
		case language.Union:
			if def := b.schema.Union(node.Name); def != nil {
				def.Members = append(def.Members, node.Types...)
			}
		}
	}
	b.extensions = nil
}

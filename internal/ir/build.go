package ir

import (
	"context"

	language "github.com/hanpama/sdlgen/internal/language"
)

type builder struct {
	schema *Schema
	docs   []*Document

	// root container names, resolved from schema definitions before pass 1
	roots map[string]OperationKind
	// non-root extensions, applied once every base definition is known
	extensions []*pendingExtension
}

// Build parses every document of disc and transforms them into a Schema.
func Build(ctx context.Context, disc Discovery) (*Schema, error) {
	docs, err := Parse(ctx, disc)
	if err != nil {
		return nil, err
	}
	return Transform(docs), nil
}

// Transform builds a fresh Schema from parsed documents. Definitions are
// appended in document order; duplicate names across documents are kept.
func Transform(docs []*Document) *Schema {
	b := &builder{
		schema: &Schema{
			Enums:         []*EnumDef{},
			Types:         []*ObjectTypeDef{},
			Inputs:        []*InputTypeDef{},
			Unions:        []*UnionDef{},
			Queries:       []*OperationDef{},
			Mutations:     []*OperationDef{},
			Subscriptions: []*OperationDef{},
		},
		docs: docs,
	}
	b.build()
	return b.schema
}

func (b *builder) build() {
	b.resolveRoots()

	// Pass 1: collect definitions and operations file by file
	for _, doc := range b.docs {
		b.collectDocument(doc)
	}
	b.applyExtensions()

	// Pass 2: union membership needs every file merged
	b.populateUnionMembership()
}

func (b *builder) resolveRoots() {
	b.roots = map[string]OperationKind{
		"Query":        OperationQuery,
		"Mutation":     OperationMutation,
		"Subscription": OperationSubscription,
	}
	renamed := map[OperationKind]string{}
	for _, doc := range b.docs {
		defs := append(append([]*language.SchemaDefinition{}, doc.AST.Schema...), doc.AST.SchemaExtension...)
		for _, schemaDef := range defs {
			for _, opType := range schemaDef.OperationTypes {
				switch opType.Operation {
				case language.Query:
					renamed[OperationQuery] = opType.Type
				case language.Mutation:
					renamed[OperationMutation] = opType.Type
				case language.Subscription:
					renamed[OperationSubscription] = opType.Type
				}
			}
		}
	}
	if len(renamed) == 0 {
		return
	}
	for name, kind := range b.roots {
		if to, ok := renamed[kind]; ok && to != name {
			delete(b.roots, name)
		}
	}
	for kind, name := range renamed {
		b.roots[name] = kind
	}
}

func (b *builder) appendOperation(kind OperationKind, op *OperationDef) {
	switch kind {
	case OperationQuery:
		b.schema.Queries = append(b.schema.Queries, op)
	case OperationMutation:
		b.schema.Mutations = append(b.schema.Mutations, op)
	case OperationSubscription:
		b.schema.Subscriptions = append(b.schema.Subscriptions, op)
	}
}

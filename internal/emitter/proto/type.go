package proto

import (
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/typemap"
	"github.com/jhump/protoreflect/v2/protobuilder"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// defaultScalars maps built-in schema scalars to proto kind names.
var defaultScalars = map[string]string{
	"String":  "string",
	"Int":     "int32",
	"Float":   "double",
	"Boolean": "bool",
	"ID":      "string",
}

func mergeScalars(overrides map[string]string) map[string]string {
	return typemap.Merge(defaultScalars, overrides)
}

type resolvedType struct {
	isRepeated bool
	isOptional bool
	fieldType  *protobuilder.FieldType
}

// resolveType maps nullability onto proto3 presence: lists become repeated
// fields, nullable singular fields become optional. Item nullability has no
// proto equivalent.
func (b *builder) resolveType(t ir.TypeInfo) resolvedType {
	return resolvedType{
		isRepeated: t.IsList,
		isOptional: !t.IsList && t.Nullable,
		fieldType:  b.mapNamedType(t.Name),
	}
}

// mapNamedType resolves aliases and the scalar table first, then messages and
// enums of the file. Anything else, such as a custom scalar with no mapping,
// is carried as a string.
func (b *builder) mapNamedType(typeName string) *protobuilder.FieldType {
	mapped := typemap.MapType(typeName, b.scalarMapping, b.aliases)
	if kind, ok := scalars[mapped]; ok {
		return protobuilder.FieldTypeScalar(kind)
	}
	if mb, ok := b.messageBuilders[mapped]; ok {
		return protobuilder.FieldTypeMessage(mb)
	}
	if eb, ok := b.enumBuilders[mapped]; ok {
		return protobuilder.FieldTypeEnum(eb)
	}
	return protobuilder.FieldTypeScalar(protoreflect.StringKind)
}

var scalars = map[string]protoreflect.Kind{
	protoreflect.BoolKind.String():     protoreflect.BoolKind,
	protoreflect.Int32Kind.String():    protoreflect.Int32Kind,
	protoreflect.Sint32Kind.String():   protoreflect.Sint32Kind,
	protoreflect.Uint32Kind.String():   protoreflect.Uint32Kind,
	protoreflect.Int64Kind.String():    protoreflect.Int64Kind,
	protoreflect.Sint64Kind.String():   protoreflect.Sint64Kind,
	protoreflect.Uint64Kind.String():   protoreflect.Uint64Kind,
	protoreflect.Sfixed32Kind.String(): protoreflect.Sfixed32Kind,
	protoreflect.Fixed32Kind.String():  protoreflect.Fixed32Kind,
	protoreflect.FloatKind.String():    protoreflect.FloatKind,
	protoreflect.Sfixed64Kind.String(): protoreflect.Sfixed64Kind,
	protoreflect.Fixed64Kind.String():  protoreflect.Fixed64Kind,
	protoreflect.DoubleKind.String():   protoreflect.DoubleKind,
	protoreflect.StringKind.String():   protoreflect.StringKind,
	protoreflect.BytesKind.String():    protoreflect.BytesKind,
}

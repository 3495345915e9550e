package proto

import (
	"fmt"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/jhump/protoreflect/v2/protobuilder"
	"google.golang.org/protobuf/reflect/protoreflect"
)

type builder struct {
	view *emitter.View
	file *protobuilder.FileBuilder

	scalarMapping   map[string]string
	aliases         map[string]string
	messageBuilders map[string]*protobuilder.MessageBuilder
	enumBuilders    map[string]*protobuilder.EnumBuilder

	// top-level proto names -> what claimed them
	names map[protoreflect.Name]string
}

func (b *builder) build() error {
	// Pass 1: declare enums and messages so that fields can refer to any of them
	for _, enum := range b.view.Enums {
		if err := b.addEnum(enum); err != nil {
			return err
		}
	}
	for _, obj := range b.view.Types {
		if err := b.addMessage(obj.Name, obj.Description, "type"); err != nil {
			return err
		}
	}
	for _, input := range b.view.Inputs {
		if err := b.addMessage(input.Name, input.Description, "input"); err != nil {
			return err
		}
	}
	for _, union := range b.view.Unions {
		if err := b.addMessage(union.Name, union.Description, "union"); err != nil {
			return err
		}
	}

	// Pass 2: add fields
	for _, obj := range b.view.Types {
		if err := b.addMessageFields(obj.Name, obj.Fields); err != nil {
			return err
		}
	}
	for _, input := range b.view.Inputs {
		if err := b.addMessageFields(input.Name, input.Fields); err != nil {
			return err
		}
	}
	for _, union := range b.view.Unions {
		if err := b.addUnionFields(union); err != nil {
			return err
		}
	}

	// Pass 3: one service per operation group and kind
	for _, group := range b.view.Groups {
		for _, kind := range ir.OperationKinds() {
			if ops := group.Operations(kind); len(ops) > 0 {
				if err := b.addService(group.Platform, kind, ops); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (b *builder) claim(name protoreflect.Name, what string) error {
	if prev, ok := b.names[name]; ok {
		return fmt.Errorf("duplicate proto name %q: %s conflicts with %s", name, what, prev)
	}
	b.names[name] = what
	return nil
}

func (b *builder) addEnum(enum *ir.EnumDef) error {
	enumName := protoreflect.Name(enum.Name)
	if err := b.claim(enumName, "enum "+enum.Name); err != nil {
		return err
	}
	eb := protobuilder.NewEnum(enumName)
	eb.SetComments(comment(enum.Description))
	b.enumBuilders[enum.Name] = eb

	// Add default ZERO value: <ENUM>_UNSPECIFIED = 0
	zero := protobuilder.NewEnumValue(nameEnumValue(enum.Name, "UNSPECIFIED"))
	zero.SetNumber(0)
	eb.AddValue(zero)

	evbs := make([]*protobuilder.EnumValueBuilder, 0, len(enum.Values))
	for _, value := range enum.Values {
		valueName := nameEnumValue(enum.Name, value)
		if valueName == zero.Name() {
			continue
		}
		evb := protobuilder.NewEnumValue(valueName)
		eb.AddValue(evb)
		evbs = append(evbs, evb)
	}
	if err := allocateEnumValueNumbers(evbs); err != nil {
		return fmt.Errorf("enum %s: %w", enum.Name, err)
	}

	b.file.AddEnum(eb)
	return nil
}

func (b *builder) addMessage(name, desc, kind string) error {
	messageName := protoreflect.Name(name)
	if err := b.claim(messageName, kind+" "+name); err != nil {
		return err
	}
	mb := protobuilder.NewMessage(messageName)
	mb.SetComments(comment(desc))
	b.messageBuilders[name] = mb
	b.file.AddMessage(mb)
	return nil
}

func (b *builder) addMessageFields(name string, fields []*ir.FieldDef) error {
	mb := b.messageBuilders[name]

	fieldBuilders := make([]*protobuilder.FieldBuilder, 0, len(fields))
	seen := make(map[protoreflect.Name]string, len(fields))
	for _, field := range fields {
		fieldName := nameField(field.Name)
		if prev, ok := seen[fieldName]; ok {
			return fmt.Errorf("message %s: fields %q and %q both map to %q", name, prev, field.Name, fieldName)
		}
		seen[fieldName] = field.Name

		fb := b.newField(fieldName, field.Type)
		fb.SetComments(comment(field.Description))
		mb.AddField(fb)
		fieldBuilders = append(fieldBuilders, fb)
	}
	if err := allocateFieldNumbers(fieldBuilders); err != nil {
		return fmt.Errorf("message %s: %w", name, err)
	}
	return nil
}

func (b *builder) addUnionFields(union *ir.UnionDef) error {
	mb := b.messageBuilders[union.Name]

	fieldBuilders := make([]*protobuilder.FieldBuilder, 0, len(union.Members))
	oneOfBuilder := protobuilder.NewOneof(protoreflect.Name("value"))
	for _, member := range union.Members {
		memberMB, ok := b.messageBuilders[member]
		if !ok {
			continue
		}
		fb := protobuilder.NewField(nameField(member), protobuilder.FieldTypeMessage(memberMB))
		fieldBuilders = append(fieldBuilders, fb)
		oneOfBuilder.AddChoice(fb)
	}
	if len(fieldBuilders) == 0 {
		return nil
	}
	mb.AddOneOf(oneOfBuilder)
	if err := allocateFieldNumbers(fieldBuilders); err != nil {
		return fmt.Errorf("union %s: %w", union.Name, err)
	}
	return nil
}

func (b *builder) addService(platform ir.Platform, kind ir.OperationKind, ops []*ir.OperationDef) error {
	prefix := nameServicePrefix(platform, kind)
	serviceName := nameService(prefix)
	if err := b.claim(serviceName, "service "+string(serviceName)); err != nil {
		return err
	}
	sb := protobuilder.NewService(serviceName)

	for _, op := range ops {
		requestMB, err := b.createRequest(nameRequest(prefix, op.Name), op.Args)
		if err != nil {
			return err
		}
		responseMB, err := b.createResponse(nameResponse(prefix, op.Name), op.ReturnType)
		if err != nil {
			return err
		}

		methodBuilder := protobuilder.NewMethod(
			nameMethod(op.Name),
			protobuilder.RpcTypeMessage(requestMB, false),
			protobuilder.RpcTypeMessage(responseMB, kind == ir.OperationSubscription),
		)
		methodBuilder.SetComments(comment(op.Description))
		b.file.AddMessage(requestMB)
		b.file.AddMessage(responseMB)
		sb.AddMethod(methodBuilder)
	}

	b.file.AddService(sb)
	return nil
}

func (b *builder) createRequest(requestName protoreflect.Name, args []*ir.ArgumentDef) (*protobuilder.MessageBuilder, error) {
	if err := b.claim(requestName, "request "+string(requestName)); err != nil {
		return nil, err
	}
	requestMB := protobuilder.NewMessage(requestName)
	requestFields := make([]*protobuilder.FieldBuilder, 0, len(args))
	for _, arg := range args {
		fb := b.newField(nameField(arg.Name), arg.Type)
		fb.SetComments(comment(arg.Description))
		requestMB.AddField(fb)
		requestFields = append(requestFields, fb)
	}
	if err := allocateFieldNumbers(requestFields); err != nil {
		return nil, fmt.Errorf("message %s: %w", requestName, err)
	}
	return requestMB, nil
}

func (b *builder) createResponse(responseName protoreflect.Name, returnType ir.TypeInfo) (*protobuilder.MessageBuilder, error) {
	if err := b.claim(responseName, "response "+string(responseName)); err != nil {
		return nil, err
	}
	responseMB := protobuilder.NewMessage(responseName)
	fb := b.newField(nameField("data"), returnType)
	fb.SetNumber(protoreflect.FieldNumber(1))
	responseMB.AddField(fb)
	return responseMB, nil
}

func (b *builder) newField(name protoreflect.Name, t ir.TypeInfo) *protobuilder.FieldBuilder {
	rt := b.resolveType(t)
	fb := protobuilder.NewField(name, rt.fieldType)
	if rt.isOptional {
		fb.SetOptional()
	}
	if rt.isRepeated {
		fb.SetRepeated()
	}
	return fb
}

// Package proto renders a schema as a proto3 file: messages for object and
// input types, oneof messages for unions and one service per operation group.
package proto

import (
	"fmt"
	"path"
	"strings"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/jhump/protoreflect/v2/protobuilder"
	"github.com/jhump/protoreflect/v2/protoprint"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// DefaultPackage is used when no package name is configured.
const DefaultPackage = "generated"

type Emitter struct{}

func New() *Emitter { return &Emitter{} }

func (*Emitter) Name() string                 { return "proto" }
func (*Emitter) DefaultOutput() string        { return "proto/schema.proto" }
func (*Emitter) DefaultPlatform() ir.Platform { return ir.PlatformCommon }

func (e *Emitter) Generate(schema *ir.Schema, cfg emitter.Config) (string, error) {
	fd, err := Build(schema, cfg)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	out.WriteString("// " + emitter.GeneratedNotice + "\n\n")
	pp := protoprint.Printer{}
	if err := pp.PrintProtoFile(fd, &out); err != nil {
		return "", fmt.Errorf("print %s: %w", fd.Path(), err)
	}
	return out.String(), nil
}

// Build converts the platform view of schema into a file descriptor.
func Build(schema *ir.Schema, cfg emitter.Config) (protoreflect.FileDescriptor, error) {
	filename := path.Base(cfg.OutputPath)
	if cfg.OutputPath == "" {
		filename = path.Base(New().DefaultOutput())
	}
	pkg := cfg.PackageName
	if pkg == "" {
		pkg = DefaultPackage
	}

	fb := protobuilder.NewFile(filename)
	fb.SetPackageName(protoreflect.FullName(pkg))
	fb.SetSyntax(protoreflect.Proto3)

	b := &builder{
		view:            emitter.NewView(schema, cfg.Platform),
		file:            fb,
		scalarMapping:   mergeScalars(cfg.TypeMapping),
		aliases:         cfg.TypeAliases,
		messageBuilders: make(map[string]*protobuilder.MessageBuilder),
		enumBuilders:    make(map[string]*protobuilder.EnumBuilder),
		names:           make(map[protoreflect.Name]string),
	}
	if err := b.build(); err != nil {
		return nil, err
	}

	fd, err := fb.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", filename, err)
	}
	return fd, nil
}

package proto_test

import (
	"testing"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/emitter/emittertest"
	"github.com/hanpama/sdlgen/internal/emitter/proto"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func build(t *testing.T, schema *ir.Schema, edit func(*emitter.Config)) protoreflect.FileDescriptor {
	t.Helper()
	cfg := emitter.DefaultConfig()
	if edit != nil {
		edit(&cfg)
	}
	fd, err := proto.Build(schema, cfg)
	require.NoError(t, err)
	return fd
}

func TestBuildMessages(t *testing.T) {
	fd := build(t, emittertest.Load(t), nil)
	assert.Equal(t, protoreflect.FullName("generated"), fd.Package())
	assert.Equal(t, "schema.proto", fd.Path())

	profile := fd.Messages().ByName("Profile")
	require.NotNil(t, profile)

	name := profile.Fields().ByName("name")
	require.NotNil(t, name)
	assert.Equal(t, protoreflect.StringKind, name.Kind())
	assert.False(t, name.HasOptionalKeyword())
	assert.False(t, name.IsList())

	tags := profile.Fields().ByName("tags")
	require.NotNil(t, tags)
	assert.True(t, tags.IsList())

	status := profile.Fields().ByName("status")
	require.NotNil(t, status)
	assert.Equal(t, protoreflect.EnumKind, status.Kind())
	assert.True(t, status.HasOptionalKeyword())

	device := profile.Fields().ByName("device")
	require.NotNil(t, device)
	assert.Equal(t, protoreflect.MessageKind, device.Kind())
	assert.Equal(t, protoreflect.FullName("generated.DeviceInfoIOS"), device.Message().FullName())

	apiLevel := fd.Messages().ByName("DeviceInfoAndroid").Fields().ByName("api_level")
	require.NotNil(t, apiLevel)
	assert.Equal(t, protoreflect.Int32Kind, apiLevel.Kind())
}

func TestBuildEnum(t *testing.T) {
	fd := build(t, emittertest.Load(t), nil)
	status := fd.Enums().ByName("Status")
	require.NotNil(t, status)

	values := status.Values()
	require.Equal(t, 3, values.Len())
	assert.Equal(t, protoreflect.Name("STATUS_UNSPECIFIED"), values.Get(0).Name())
	assert.Equal(t, protoreflect.EnumNumber(0), values.Get(0).Number())
	assert.Equal(t, protoreflect.Name("STATUS_ACTIVE"), values.Get(1).Name())
	assert.Equal(t, protoreflect.Name("STATUS_DISABLED"), values.Get(2).Name())
	assert.NotEqual(t, values.Get(1).Number(), values.Get(2).Number())
}

func TestBuildUnion(t *testing.T) {
	fd := build(t, emittertest.Load(t), nil)
	union := fd.Messages().ByName("SearchResult")
	require.NotNil(t, union)

	oneof := union.Oneofs().ByName("value")
	require.NotNil(t, oneof)
	require.Equal(t, 2, oneof.Fields().Len())
	assert.Equal(t, protoreflect.Name("post"), oneof.Fields().Get(0).Name())
	assert.Equal(t, protoreflect.Name("comment"), oneof.Fields().Get(1).Name())
}

func TestBuildServices(t *testing.T) {
	fd := build(t, emittertest.Load(t), nil)

	query := fd.Services().ByName("QueryService")
	require.NotNil(t, query)
	search := query.Methods().ByName("Search")
	require.NotNil(t, search)
	assert.Equal(t, protoreflect.Name("QuerySearchRequest"), search.Input().Name())
	assert.Equal(t, protoreflect.Name("QuerySearchResponse"), search.Output().Name())
	assert.NotNil(t, search.Input().Fields().ByName("limit"))
	assert.True(t, search.Output().Fields().ByName("data").IsList())

	android := fd.Services().ByName("MutationAndroidService")
	require.NotNil(t, android)
	assert.NotNil(t, android.Methods().ByName("SyncDevice"))
	assert.NotNil(t, fd.Services().ByName("QueryIOSService"))

	subscription := fd.Services().ByName("SubscriptionService").Methods().ByName("StatusChanged")
	require.NotNil(t, subscription)
	assert.True(t, subscription.IsStreamingServer())
	assert.False(t, search.IsStreamingServer())
}

func TestBuildForPlatform(t *testing.T) {
	fd := build(t, emittertest.Load(t), func(cfg *emitter.Config) {
		cfg.Platform = ir.PlatformAndroid
		cfg.PackageName = "acme.mobile.v1"
		cfg.OutputPath = "proto/acme.proto"
	})
	assert.Equal(t, protoreflect.FullName("acme.mobile.v1"), fd.Package())
	assert.Equal(t, "acme.proto", fd.Path())
	assert.Nil(t, fd.Messages().ByName("DeviceInfoIOS"))
	assert.Nil(t, fd.Services().ByName("QueryIOSService"))
	assert.NotNil(t, fd.Services().ByName("MutationAndroidService"))
}

func TestFieldNumbersAreStable(t *testing.T) {
	numbers := func(schema *ir.Schema) map[protoreflect.Name]protoreflect.FieldNumber {
		fields := build(t, schema, nil).Messages().ByName("Profile").Fields()
		out := make(map[protoreflect.Name]protoreflect.FieldNumber, fields.Len())
		for i := 0; i < fields.Len(); i++ {
			out[fields.Get(i).Name()] = fields.Get(i).Number()
		}
		return out
	}

	before := numbers(emittertest.Build(t, ir.InMemorySource{Filename: "a.graphql", Content: "type Profile { name: String bio: String }"}))
	after := numbers(emittertest.Build(t, ir.InMemorySource{Filename: "a.graphql", Content: "type Profile { avatar: String bio: String name: String }"}))

	assert.Equal(t, before["name"], after["name"])
	assert.Equal(t, before["bio"], after["bio"])
	for _, n := range after {
		assert.True(t, n >= 1 && n <= 31767 && (n < 19000 || n > 19999), "tag %d out of range", n)
	}
}

func TestUnmappedScalarIsString(t *testing.T) {
	schema := emittertest.Build(t, ir.InMemorySource{Filename: "a.graphql", Content: `
scalar DateTime
scalar Long
type Event { at: DateTime! count: Long }
`})
	fd := build(t, schema, func(cfg *emitter.Config) {
		cfg.TypeMapping["Long"] = "int64"
	})
	fields := fd.Messages().ByName("Event").Fields()
	assert.Equal(t, protoreflect.StringKind, fields.ByName("at").Kind())
	assert.Equal(t, protoreflect.Int64Kind, fields.ByName("count").Kind())
}

func TestDuplicateNamesFail(t *testing.T) {
	schema := emittertest.Build(t,
		ir.InMemorySource{Filename: "a.graphql", Content: "type User { id: ID! }"},
		ir.InMemorySource{Filename: "b.graphql", Content: "type User { name: String }"},
	)
	_, err := proto.New().Generate(schema, emitter.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate proto name "User"`)
}

func TestGenerate(t *testing.T) {
	out, err := proto.New().Generate(emittertest.Load(t), emitter.DefaultConfig())
	require.NoError(t, err)

	assert.Contains(t, out, "// Code generated by sdlgen. DO NOT EDIT.\n")
	assert.Contains(t, out, `syntax = "proto3";`)
	assert.Contains(t, out, "package generated;")
	assert.Contains(t, out, "STATUS_UNSPECIFIED = 0;")
	assert.Contains(t, out, "service QueryService {")

	again, err := proto.New().Generate(emittertest.Load(t), emitter.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, out, again)

	emittertest.Golden(t, "schema.proto.golden", out)
}

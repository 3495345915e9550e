package emitter_test

import (
	"context"
	"testing"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmitter struct{ name string }

func (f fakeEmitter) Name() string                 { return f.name }
func (f fakeEmitter) DefaultOutput() string        { return f.name + "/out.txt" }
func (f fakeEmitter) DefaultPlatform() ir.Platform { return ir.PlatformCommon }
func (f fakeEmitter) Generate(*ir.Schema, emitter.Config) (string, error) {
	return f.name, nil
}

func TestRegistry(t *testing.T) {
	reg := emitter.NewRegistry(fakeEmitter{"swift"}, fakeEmitter{"kotlin"}, fakeEmitter{"typescript"})
	assert.Equal(t, []string{"kotlin", "swift", "typescript"}, reg.Names())

	e, err := reg.Lookup("swift")
	require.NoError(t, err)
	assert.Equal(t, "swift", e.Name())

	_, err = reg.Lookup("dart")
	require.ErrorIs(t, err, emitter.ErrUnknownBackend)
	assert.Contains(t, err.Error(), `"dart"`)
}

func TestRegistrySelect(t *testing.T) {
	reg := emitter.NewRegistry(fakeEmitter{"swift"}, fakeEmitter{"kotlin"}, fakeEmitter{"typescript"})

	all, err := reg.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"kotlin", "swift", "typescript"}, names(all))

	some, err := reg.Select([]string{"typescript", "swift", "typescript"})
	require.NoError(t, err)
	assert.Equal(t, []string{"typescript", "swift"}, names(some))

	_, err = reg.Select([]string{"swift", "dart"})
	assert.ErrorIs(t, err, emitter.ErrUnknownBackend)
}

func TestConfigMapper(t *testing.T) {
	cfg := emitter.DefaultConfig()
	assert.True(t, cfg.GenerateConstructors)
	assert.True(t, cfg.GenerateResolvers)

	cfg.TypeMapping["Int"] = "Int64"
	cfg.TypeAliases["Timestamp"] = "Float"
	mapType := cfg.Mapper(map[string]string{"Int": "Int", "Float": "Double"})

	assert.Equal(t, "Int64", mapType("Int"))
	assert.Equal(t, "Double", mapType("Timestamp"))
	assert.Equal(t, "Profile", mapType("Profile"))
}

const viewSchema = `
type Profile { name: String! device: DeviceInfoIOS token: PushTokenAndroid }
type DeviceInfoIOS { systemVersion: String! }
type PushTokenAndroid { token: String! }
type Post { id: ID! }
union Feed = Post | DeviceInfoIOS
type Query { profile: Profile }
`

func TestView(t *testing.T) {
	schema := loadSchema(t,
		ir.InMemorySource{Filename: "schema.graphql", Content: viewSchema},
		ir.InMemorySource{Filename: "device.android.graphql", Content: "enum Abi { ARM64 X86 }\nextend type Mutation { syncDevice(id: ID!): Boolean! }\n"},
		ir.InMemorySource{Filename: "device-ios.graphql", Content: "extend type Query { battery: Float\n deviceInfo: DeviceInfoIOS }\n"},
	)

	t.Run("android", func(t *testing.T) {
		v := emitter.NewView(schema, ir.PlatformAndroid)
		assert.Equal(t, []string{"Profile", "PushTokenAndroid", "Post"}, typeNames(v))
		assert.Equal(t, []string{"name", "token"}, fieldNames(v.Object("Profile").Fields))
		require.Len(t, v.Enums, 1)
		assert.Equal(t, []string{"Post"}, v.Unions[0].Members)

		require.Len(t, v.Groups, 2)
		assert.Equal(t, ir.PlatformCommon, v.Groups[0].Platform)
		assert.Equal(t, "QueryResolver", v.Groups[0].ResolverName(ir.OperationQuery))
		assert.Equal(t, ir.PlatformAndroid, v.Groups[1].Platform)
		assert.Equal(t, "MutationResolverAndroid", v.Groups[1].ResolverName(ir.OperationMutation))
		assert.Equal(t, "syncDevice", v.Groups[1].Mutations[0].Name)
	})

	t.Run("ios", func(t *testing.T) {
		v := emitter.NewView(schema, ir.PlatformIOS)
		assert.Equal(t, []string{"Profile", "DeviceInfoIOS", "Post"}, typeNames(v))
		assert.Equal(t, []string{"name", "device"}, fieldNames(v.Object("Profile").Fields))
		assert.Empty(t, v.Enums)
		assert.Equal(t, []string{"Post", "DeviceInfoIOS"}, v.Unions[0].Members)

		require.Len(t, v.Groups, 2)
		assert.Equal(t, ir.PlatformIOS, v.Groups[1].Platform)
		assert.Len(t, v.Groups[1].Queries, 2)
		assert.Empty(t, v.Groups[1].Mutations)

		flat := v.Schema()
		assert.Len(t, flat.Types, 3)
		assert.Len(t, flat.Queries, len(v.Groups[0].Queries)+2)
		assert.NotNil(t, flat.Subscriptions)
	})

	t.Run("web", func(t *testing.T) {
		v := emitter.NewView(schema, ir.PlatformWeb)
		assert.Equal(t, []string{"Profile", "Post"}, typeNames(v))
		assert.Equal(t, []string{"name"}, fieldNames(v.Object("Profile").Fields))
		require.Len(t, v.Groups, 1)
		assert.Equal(t, ir.PlatformCommon, v.Groups[0].Platform)
	})

	t.Run("common", func(t *testing.T) {
		v := emitter.NewView(schema, ir.PlatformCommon)
		assert.Len(t, v.Types, 4)
		assert.Len(t, v.Groups, 3)
		assert.Equal(t, []ir.Platform{ir.PlatformCommon, ir.PlatformAndroid, ir.PlatformIOS},
			[]ir.Platform{v.Groups[0].Platform, v.Groups[1].Platform, v.Groups[2].Platform})
	})

	// the view never modifies the schema
	assert.Len(t, schema.Object("Profile").Fields, 3)
	assert.Equal(t, []string{"Post", "DeviceInfoIOS"}, schema.Union("Feed").Members)
	assert.Equal(t, []string{"Feed"}, schema.Object("DeviceInfoIOS").ImplementsUnions)
}

func TestViewDropsReferencesToPlatformTypes(t *testing.T) {
	schema := loadSchema(t,
		ir.InMemorySource{Filename: "schema.graphql", Content: "type Profile { name: String! battery: Battery }\ntype Query { battery: Battery profile: Profile }\n"},
		ir.InMemorySource{Filename: "device.android.graphql", Content: "type Battery { level: Float }\nunion Power = Battery\n"},
	)

	ios := emitter.NewView(schema, ir.PlatformIOS)
	assert.Nil(t, ios.Object("Battery"))
	assert.Empty(t, ios.Unions)
	assert.Equal(t, []string{"name"}, fieldNames(ios.Object("Profile").Fields))
	require.Len(t, ios.Groups, 1)
	require.Len(t, ios.Groups[0].Queries, 1)
	assert.Equal(t, "profile", ios.Groups[0].Queries[0].Name)

	android := emitter.NewView(schema, ir.PlatformAndroid)
	assert.NotNil(t, android.Object("Battery"))
	assert.Equal(t, []string{"name", "battery"}, fieldNames(android.Object("Profile").Fields))
	require.Len(t, android.Groups, 1)
	assert.Len(t, android.Groups[0].Queries, 2)
}

func loadSchema(t *testing.T, srcs ...ir.InMemorySource) *ir.Schema {
	t.Helper()
	schema, err := ir.Build(context.Background(), ir.NewInMemoryDiscovery(srcs))
	require.NoError(t, err)
	return schema
}

func names(emitters []emitter.Emitter) []string {
	out := make([]string, 0, len(emitters))
	for _, e := range emitters {
		out = append(out, e.Name())
	}
	return out
}

func typeNames(v *emitter.View) []string {
	out := make([]string, 0, len(v.Types))
	for _, typ := range v.Types {
		out = append(out, typ.Name)
	}
	return out
}

func fieldNames(fields []*ir.FieldDef) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.Name)
	}
	return out
}

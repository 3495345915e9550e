package swift_test

import (
	"testing"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/emitter/emittertest"
	"github.com/hanpama/sdlgen/internal/emitter/swift"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, schema *ir.Schema, edit func(*emitter.Config)) string {
	t.Helper()
	e := swift.New()
	cfg := emitter.DefaultConfig()
	cfg.Platform = e.DefaultPlatform()
	if edit != nil {
		edit(&cfg)
	}
	out, err := e.Generate(schema, cfg)
	require.NoError(t, err)
	return out
}

func TestGenerate(t *testing.T) {
	out := generate(t, emittertest.Load(t), nil)

	assert.Contains(t, out, "// Code generated by sdlgen. DO NOT EDIT.\n")
	assert.Contains(t, out, "/// Account status\npublic enum Status: String, Codable, CaseIterable {\n    case active = \"ACTIVE\"\n    case disabled = \"DISABLED\"\n}\n")
	assert.Contains(t, out, "    /// Display name\n    public var name: String\n")
	assert.Contains(t, out, "    public var tags: [String]?\n")
	assert.Contains(t, out, "    public var device: DeviceInfoIOS?\n")
	assert.Contains(t, out, "    public init(name: String, tags: [String]? = nil, status: Status? = nil, device: DeviceInfoIOS? = nil) {\n        self.name = name\n")
	assert.Contains(t, out, "public indirect enum SearchResult: Codable {\n    case post(Post)\n    case comment(Comment)\n}\n")
	assert.Contains(t, out, "public protocol QueryResolver {\n    /// Looks up a profile by name\n    func profile(name: String) async throws -> Profile?\n    func search(term: String, limit: Int?) async throws -> [SearchResult]\n}\n")
	assert.Contains(t, out, "public protocol SubscriptionResolver {\n    func statusChanged(id: String) -> AsyncThrowingStream<Status, Error>\n}\n")
	assert.Contains(t, out, "public protocol QueryResolverIOS {\n    func deviceInfo() async throws -> DeviceInfoIOS?\n}\n")

	assert.NotContains(t, out, "DeviceInfoAndroid")
	assert.NotContains(t, out, "syncDevice")

	emittertest.Golden(t, "types.swift.golden", out)
}

func TestListNullability(t *testing.T) {
	schema := emittertest.Build(t, ir.InMemorySource{Filename: "lists.graphql", Content: `
type Lists {
  a: [String]
  b: [String!]
  c: [String]!
  d: [String!]!
}
`})
	out := generate(t, schema, nil)
	assert.Contains(t, out, "    public var a: [String?]?\n")
	assert.Contains(t, out, "    public var b: [String]?\n")
	assert.Contains(t, out, "    public var c: [String?]\n")
	assert.Contains(t, out, "    public var d: [String]\n")
}

func TestToggles(t *testing.T) {
	out := generate(t, emittertest.Load(t), func(cfg *emitter.Config) {
		cfg.GenerateConstructors = false
		cfg.GenerateResolvers = false
	})
	assert.NotContains(t, out, "public init(")
	assert.NotContains(t, out, "protocol")
}

func TestMappingAndKeywords(t *testing.T) {
	schema := emittertest.Build(t, ir.InMemorySource{Filename: "misc.graphql", Content: `
scalar DateTime
enum Visibility { DEFAULT PRIVATE }
type Event { default: Boolean when: DateTime count: Int! }
union Hit = TextSearchHit | ImageSearchHit
type TextSearchHit { text: String }
type ImageSearchHit { url: String }
`})
	out := generate(t, schema, func(cfg *emitter.Config) {
		cfg.TypeMapping["Int"] = "Int64"
		cfg.TypeAliases["DateTime"] = "Date"
	})
	assert.Contains(t, out, "    case `default` = \"DEFAULT\"\n")
	assert.Contains(t, out, "    public var `default`: Bool?\n")
	assert.Contains(t, out, "    public var when: Date?\n")
	assert.Contains(t, out, "    public var count: Int64\n")
	assert.Contains(t, out, "    case text(TextSearchHit)\n    case image(ImageSearchHit)\n")
}

func TestIdempotent(t *testing.T) {
	first := generate(t, emittertest.Load(t), nil)
	second := generate(t, emittertest.Load(t), nil)
	assert.Equal(t, first, second)
}

func TestSkipsAndroidOnlyReferences(t *testing.T) {
	schema := emittertest.Build(t,
		ir.InMemorySource{Filename: "schema.graphql", Content: "type Profile { name: String! battery: Battery }\ntype Query { battery: Battery profile: Profile }\n"},
		ir.InMemorySource{Filename: "device.android.graphql", Content: "type Battery { level: Float }\n"},
	)
	out := generate(t, schema, nil)
	assert.NotContains(t, out, "Battery")
	assert.NotContains(t, out, "battery")
	assert.Contains(t, out, "    func profile() async throws -> Profile?\n")
}

package typescript_test

import (
	"testing"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/emitter/emittertest"
	"github.com/hanpama/sdlgen/internal/emitter/typescript"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, schema *ir.Schema, edit func(*emitter.Config)) string {
	t.Helper()
	e := typescript.New()
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

	assert.Contains(t, out, "/** Account status */\nexport enum Status {\n  Active = 'ACTIVE',\n  Disabled = 'DISABLED',\n}\n")
	assert.Contains(t, out, "export interface Profile {\n  /** Display name */\n  name: string;\n  tags?: string[] | null;\n  status?: Status | null;\n}\n")
	assert.Contains(t, out, "export function createProfile(args: Profile): Profile {\n  return {\n    name: args.name,\n    tags: args.tags ?? null,\n    status: args.status ?? null,\n  };\n}\n")
	assert.Contains(t, out, "export type SearchResult = Post | Comment;\n")
	assert.Contains(t, out, "export interface QueryResolver {\n  /** Looks up a profile by name */\n  profile(name: string): Promise<Profile | null>;\n  search(term: string, limit?: number | null): Promise<SearchResult[]>;\n}\n")
	assert.Contains(t, out, "export interface MutationResolver {\n  updateProfile(input: ProfileInput): Promise<Profile>;\n}\n")
	assert.Contains(t, out, "export interface SubscriptionResolver {\n  statusChanged(id: string): AsyncIterable<Status>;\n}\n")

	// platform-specific operations and types stay out of the web output
	assert.NotContains(t, out, "syncDevice")
	assert.NotContains(t, out, "deviceInfo")
	assert.NotContains(t, out, "DeviceInfo")
	assert.NotContains(t, out, "ResolverAndroid")
	assert.NotContains(t, out, "ResolverIOS")

	emittertest.Golden(t, "types.ts.golden", out)
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
	assert.Contains(t, out, "  a?: (string | null)[] | null;\n")
	assert.Contains(t, out, "  b?: string[] | null;\n")
	assert.Contains(t, out, "  c: (string | null)[];\n")
	assert.Contains(t, out, "  d: string[];\n")
}

func TestOptionalParameters(t *testing.T) {
	schema := emittertest.Build(t, ir.InMemorySource{Filename: "q.graphql", Content: `
type Query {
  list(after: String, first: Int!, filter: String, delete: Boolean): [ID!]
}
`})
	out := generate(t, schema, nil)
	assert.Contains(t, out, "  list(after: string | null, first: number, filter?: string | null, delete_?: boolean | null): Promise<string[] | null>;\n")
}

func TestCommonTargetKeepsEverything(t *testing.T) {
	out := generate(t, emittertest.Load(t), func(cfg *emitter.Config) { cfg.Platform = ir.PlatformCommon })
	assert.Contains(t, out, "export interface DeviceInfoIOS {\n")
	assert.Contains(t, out, "export interface MutationResolverAndroid {\n  syncDevice(id: string): Promise<boolean>;\n}\n")
	assert.Contains(t, out, "export interface QueryResolverIOS {\n")
}

func TestToggles(t *testing.T) {
	out := generate(t, emittertest.Load(t), func(cfg *emitter.Config) {
		cfg.GenerateConstructors = false
		cfg.GenerateResolvers = false
	})
	assert.NotContains(t, out, "export function")
	assert.NotContains(t, out, "Resolver")
}

package ir_test

import (
	"testing"

	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformFromFilename(t *testing.T) {
	for filename, want := range map[string]ir.Platform{
		"schema.graphql":                   ir.PlatformCommon,
		"device.android.graphql":           ir.PlatformAndroid,
		"devices/device-ios.graphql":       ir.PlatformIOS,
		"wallet_apple.gql":                 ir.PlatformIOS,
		"web.graphql":                      ir.PlatformWeb,
		"shared.common.graphql":            ir.PlatformCommon,
		"Checkout.Web.graphqls":            ir.PlatformWeb,
		"android/helpers.graphql":          ir.PlatformCommon,
		"scenarios.graphql":                ir.PlatformCommon,
		`windows\path\profile-ios.graphql`: ir.PlatformIOS,
	} {
		assert.Equal(t, want, ir.PlatformFromFilename(filename), filename)
	}
}

func TestParsePlatform(t *testing.T) {
	for input, want := range map[string]ir.Platform{
		"":        ir.PlatformCommon,
		"all":     ir.PlatformCommon,
		"common":  ir.PlatformCommon,
		"iOS":     ir.PlatformIOS,
		"apple":   ir.PlatformIOS,
		"android": ir.PlatformAndroid,
		" web ":   ir.PlatformWeb,
	} {
		got, err := ir.ParsePlatform(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ir.ParsePlatform("windows")
	assert.EqualError(t, err, `unknown platform "windows"`)
}

func TestPlatformString(t *testing.T) {
	assert.Equal(t, "common", ir.PlatformCommon.String())
	assert.Equal(t, "ios", ir.PlatformIOS.String())
	assert.True(t, ir.PlatformCommon.IsCommon())
	assert.False(t, ir.PlatformWeb.IsCommon())
}

func TestIsExcluded(t *testing.T) {
	patterns := []string{"_draft", ".test"}
	assert.True(t, ir.IsExcluded("user_draft.graphql", patterns))
	assert.True(t, ir.IsExcluded("nested/user.test.graphql", patterns))
	assert.False(t, ir.IsExcluded("drafts_user.graphql", patterns))
	assert.False(t, ir.IsExcluded("user_draft_v2.graphql", patterns))
	assert.False(t, ir.IsExcluded("user.graphql", nil))
}

func TestIsSchemaFile(t *testing.T) {
	assert.True(t, ir.IsSchemaFile("/tmp/schema/User.GraphQL"))
	assert.True(t, ir.IsSchemaFile("user.gql"))
	assert.False(t, ir.IsSchemaFile("user.graphql~"))
	assert.False(t, ir.IsSchemaFile("user_draft.graphql", ir.WithExclude("_draft")))
	assert.True(t, ir.IsSchemaFile("notes.txt", ir.WithExtensions("txt")))
	assert.False(t, ir.IsSchemaFile("user.graphql", ir.WithExtensions("txt")))
}

func TestFileSystemDiscovery(t *testing.T) {
	discovery, err := ir.NewFileSystemDiscovery(t.Context(), "testdata/schema", ir.WithExclude("_draft"))
	require.NoError(t, err)

	srcs, err := discovery.ListSources(t.Context())
	require.NoError(t, err)

	var got []ir.SourceMetadata
	for _, src := range srcs {
		got = append(got, *src)
	}
	assert.Equal(t, []ir.SourceMetadata{
		{Filename: "common.graphql", Platform: ir.PlatformCommon},
		{Filename: "devices/device-ios.graphql", Platform: ir.PlatformIOS},
		{Filename: "devices/device.android.graphql", Platform: ir.PlatformAndroid},
	}, got)

	sdl, err := discovery.ReadSource(t.Context(), "devices/device-ios.graphql")
	require.NoError(t, err)
	assert.Contains(t, sdl, "DeviceInfoIOS")

	_, err = discovery.ReadSource(t.Context(), "notes.txt")
	assert.Error(t, err)
}

func TestFileSystemDiscoveryExtensions(t *testing.T) {
	discovery, err := ir.NewFileSystemDiscovery(t.Context(), "testdata/schema", ir.WithExtensions("txt"))
	require.NoError(t, err)

	srcs, err := discovery.ListSources(t.Context())
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	assert.Equal(t, "notes.txt", srcs[0].Filename)
}

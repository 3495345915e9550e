package typemap_test

import (
	"testing"

	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/typemap"
	"github.com/stretchr/testify/assert"
)

func TestMapType(t *testing.T) {
	mapping := map[string]string{"String": "string", "Int": "number", "Date": "Date"}
	aliases := map[string]string{"DateTime": "Date", "Cursor": "String"}

	assert.Equal(t, "string", typemap.MapType("String", mapping, aliases))
	assert.Equal(t, "Date", typemap.MapType("DateTime", mapping, aliases))
	assert.Equal(t, "string", typemap.MapType("Cursor", mapping, aliases))
	assert.Equal(t, "Profile", typemap.MapType("Profile", mapping, aliases))
	assert.Equal(t, "JSON", typemap.MapType("JSON", nil, nil))
}

func TestMerge(t *testing.T) {
	base := map[string]string{"String": "String", "Int": "Int"}
	merged := typemap.Merge(base, map[string]string{"Int": "Long", "UUID": "java.util.UUID"})

	assert.Equal(t, map[string]string{"String": "String", "Int": "Long", "UUID": "java.util.UUID"}, merged)
	assert.Equal(t, "Int", base["Int"], "base is not modified")
}

func TestShouldIncludeForPlatform(t *testing.T) {
	all := append([]ir.Platform{ir.PlatformCommon}, ir.Platforms()...)
	for _, target := range all {
		assert.True(t, typemap.ShouldIncludeForPlatform(ir.PlatformCommon, target), target.String())
	}
	for _, item := range ir.Platforms() {
		assert.True(t, typemap.ShouldIncludeForPlatform(item, ir.PlatformCommon), item.String())
		for _, target := range ir.Platforms() {
			assert.Equal(t, item == target, typemap.ShouldIncludeForPlatform(item, target), "%s on %s", item, target)
		}
	}
}

func TestPlatformFromTypeName(t *testing.T) {
	for name, want := range map[string]ir.Platform{
		"DeviceInfoIOS":    ir.PlatformIOS,
		"KeychainIos":      ir.PlatformIOS,
		"WalletApple":      ir.PlatformIOS,
		"PushTokenAndroid": ir.PlatformAndroid,
		"StorageWeb":       ir.PlatformWeb,
		"Html5Web":         ir.PlatformWeb,
	} {
		got, ok := typemap.PlatformFromTypeName(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	for _, name := range []string{"Profile", "Web", "IOS", "RATIOS", "Cobweb", "Radios"} {
		_, ok := typemap.PlatformFromTypeName(name)
		assert.False(t, ok, name)
	}
}

func TestIsForeign(t *testing.T) {
	assert.True(t, typemap.IsForeign("DeviceInfoIOS", ir.PlatformAndroid))
	assert.True(t, typemap.IsForeign("DeviceInfoAndroid", ir.PlatformWeb))
	assert.False(t, typemap.IsForeign("DeviceInfoIOS", ir.PlatformIOS))
	assert.False(t, typemap.IsForeign("DeviceInfoIOS", ir.PlatformCommon))
	assert.False(t, typemap.IsForeign("Profile", ir.PlatformIOS))
}

func TestSimplifyMemberNames(t *testing.T) {
	assert.Equal(t, []string{"Post", "Comment"}, typemap.SimplifyMemberNames([]string{"PostResult", "CommentResult"}))
	assert.Equal(t, []string{"Text", "Image"}, typemap.SimplifyMemberNames([]string{"TextSearchHit", "ImageSearchHit"}))
	assert.Equal(t, []string{"Post", "Comment"}, typemap.SimplifyMemberNames([]string{"Post", "Comment"}))
	// stripping would empty "Result"
	assert.Equal(t, []string{"Result", "PostResult"}, typemap.SimplifyMemberNames([]string{"Result", "PostResult"}))
	// stripping would collide on "Post"
	assert.Equal(t, []string{"PostResult", "Post_Result"}, typemap.SimplifyMemberNames([]string{"PostResult", "Post_Result"}))
	assert.Equal(t, []string{"PostResult"}, typemap.SimplifyMemberNames([]string{"PostResult"}))
	assert.Empty(t, typemap.SimplifyMemberNames(nil))
}

// Package typemap resolves schema type names to target spellings and decides
// which platform-scoped definitions a target may see.
package typemap

import (
	"maps"
	"strings"
	"unicode"

	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/naming"
)

// MapType substitutes an alias for name first, then looks the result up in
// mapping. Names with no mapping pass through unchanged.
func MapType(name string, mapping, aliases map[string]string) string {
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if mapped, ok := mapping[name]; ok {
		return mapped
	}
	return name
}

// Merge returns a copy of base with overrides applied on top.
func Merge(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	maps.Copy(merged, base)
	maps.Copy(merged, overrides)
	return merged
}

// ShouldIncludeForPlatform reports whether a definition tagged item is part of
// the output for target. A common target includes everything and a common
// item is included everywhere; otherwise the tags must match.
func ShouldIncludeForPlatform(item, target ir.Platform) bool {
	if target.IsCommon() {
		return true
	}
	if item.IsCommon() {
		return true
	}
	return item == target
}

var nameSuffixes = []struct {
	suffix   string
	platform ir.Platform
}{
	{"Android", ir.PlatformAndroid},
	{"Apple", ir.PlatformIOS},
	{"IOS", ir.PlatformIOS},
	{"Ios", ir.PlatformIOS},
	{"Web", ir.PlatformWeb},
}

// PlatformFromTypeName recognises type names that carry a platform suffix,
// such as "DeviceInfoIOS" or "PushTokenAndroid".
func PlatformFromTypeName(name string) (ir.Platform, bool) {
	for _, s := range nameSuffixes {
		if len(name) <= len(s.suffix) || !strings.HasSuffix(name, s.suffix) {
			continue
		}
		prev := rune(name[len(name)-len(s.suffix)-1])
		if unicode.IsLower(prev) || unicode.IsDigit(prev) {
			return s.platform, true
		}
	}
	return ir.PlatformCommon, false
}

// IsForeign reports whether name is flagged by its suffix for a platform other
// than target. Nothing is foreign to a common target.
func IsForeign(name string, target ir.Platform) bool {
	if target.IsCommon() {
		return false
	}
	p, ok := PlatformFromTypeName(name)
	return ok && p != target
}

// SimplifyMemberNames strips the longest run of trailing words shared by all
// members, e.g. [PostResult CommentResult] becomes [Post Comment]. Members
// are returned unchanged when fewer than two are given or when stripping
// would leave an empty or duplicated name.
func SimplifyMemberNames(members []string) []string {
	out := append([]string{}, members...)
	if len(members) < 2 {
		return out
	}

	split := make([][]string, len(members))
	shortest := -1
	for i, member := range members {
		split[i] = naming.Words(member)
		if shortest < 0 || len(split[i]) < shortest {
			shortest = len(split[i])
		}
	}

	common := 0
	for common < shortest-1 {
		word := split[0][len(split[0])-1-common]
		same := true
		for _, words := range split[1:] {
			if words[len(words)-1-common] != word {
				same = false
				break
			}
		}
		if !same {
			break
		}
		common++
	}
	if common == 0 {
		return out
	}

	seen := make(map[string]bool, len(members))
	for i, words := range split {
		name := strings.Join(words[:len(words)-common], "")
		if name == "" || seen[name] {
			return append([]string{}, members...)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

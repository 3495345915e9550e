package ir

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Platform scopes a definition to one target ecosystem. The zero value is
// PlatformCommon, shared by every target.
type Platform string

const (
	PlatformCommon  Platform = ""
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

// IsCommon reports whether p is shared by all targets.
func (p Platform) IsCommon() bool { return p == PlatformCommon }

func (p Platform) String() string {
	if p == PlatformCommon {
		return "common"
	}
	return string(p)
}

// Platforms returns the concrete platforms in a stable order.
func Platforms() []Platform {
	return []Platform{PlatformAndroid, PlatformIOS, PlatformWeb}
}

var platformTokens = map[string]Platform{
	"common":  PlatformCommon,
	"ios":     PlatformIOS,
	"apple":   PlatformIOS,
	"android": PlatformAndroid,
	"web":     PlatformWeb,
}

// ParsePlatform converts a user supplied platform name. The empty string,
// "common" and "all" all mean PlatformCommon.
func ParsePlatform(s string) (Platform, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "all" {
		return PlatformCommon, nil
	}
	if p, ok := platformTokens[name]; ok {
		return p, nil
	}
	return PlatformCommon, fmt.Errorf("unknown platform %q", s)
}

// PlatformFromFilename infers the platform of a schema document from its
// filename stem: "device.android.graphql", "device-ios.graphql" and
// "web.graphql" are tagged, everything else is common.
func PlatformFromFilename(filename string) Platform {
	stem := strings.ToLower(fileStem(filename))
	tokens := make([]string, 0, len(platformTokens))
	for token := range platformTokens {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		if stem == token {
			return platformTokens[token]
		}
		for _, sep := range []string{".", "-", "_"} {
			if strings.HasSuffix(stem, sep+token) {
				return platformTokens[token]
			}
		}
	}
	return PlatformCommon
}

func fileStem(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

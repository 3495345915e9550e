// Package emitter defines the backend contract shared by every code generator
// and the platform-filtered view of a schema that backends render from.
package emitter

import (
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/typemap"
)

// GeneratedNotice heads every generated file, prefixed by the target's line comment.
const GeneratedNotice = "Code generated by sdlgen. DO NOT EDIT."

// Config is the per-backend emission configuration.
type Config struct {
	// OutputPath is relative to the output directory.
	OutputPath  string
	PackageName string
	// TypeMapping overrides the backend's scalar table.
	TypeMapping map[string]string
	// TypeAliases substitute names before mapping.
	TypeAliases          map[string]string
	GenerateConstructors bool
	GenerateResolvers    bool
	// Platform restricts output to one platform; PlatformCommon keeps everything.
	Platform ir.Platform
}

// DefaultConfig returns a Config with constructors and resolvers enabled.
func DefaultConfig() Config {
	return Config{
		TypeMapping:          map[string]string{},
		TypeAliases:          map[string]string{},
		GenerateConstructors: true,
		GenerateResolvers:    true,
	}
}

// Emitter renders a schema into source text for one target ecosystem.
// Generate must not write files or mutate schema.
type Emitter interface {
	Name() string
	DefaultOutput() string
	DefaultPlatform() ir.Platform
	Generate(schema *ir.Schema, cfg Config) (string, error)
}

// Mapper returns a function resolving schema type names to target spellings:
// cfg.TypeAliases first, then scalars overridden by cfg.TypeMapping.
func (cfg Config) Mapper(scalars map[string]string) func(name string) string {
	mapping := typemap.Merge(scalars, cfg.TypeMapping)
	return func(name string) string {
		return typemap.MapType(name, mapping, cfg.TypeAliases)
	}
}

// PlatformSuffix is appended to resolver names of platform-specific operation groups.
func PlatformSuffix(p ir.Platform) string {
	switch p {
	case ir.PlatformIOS:
		return "IOS"
	case ir.PlatformAndroid:
		return "Android"
	case ir.PlatformWeb:
		return "Web"
	}
	return ""
}

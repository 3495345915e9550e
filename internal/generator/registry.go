package generator

import (
	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/emitter/graphql"
	"github.com/hanpama/sdlgen/internal/emitter/kotlin"
	"github.com/hanpama/sdlgen/internal/emitter/proto"
	"github.com/hanpama/sdlgen/internal/emitter/swift"
	"github.com/hanpama/sdlgen/internal/emitter/typescript"
)

// DefaultRegistry returns a registry holding every built-in backend.
func DefaultRegistry() *emitter.Registry {
	return emitter.NewRegistry(
		swift.New(),
		kotlin.New(),
		typescript.New(),
		graphql.New(),
		proto.New(),
	)
}

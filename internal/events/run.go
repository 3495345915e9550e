// Package events declares the pipeline events published on the eventbus.
// Context values carry the run identifier (see runid).
package events

import (
	"time"

	"github.com/hanpama/sdlgen/internal/ir"
)

// RunStart is emitted once backends are selected, before the schema is loaded.
type RunStart struct {
	SchemaDir string
	OutputDir string
	Backends  []string
	DryRun    bool
}

// SchemaLoaded is emitted after the IR is built. Err is set when loading
// failed, in which case Schema is nil and no backend runs.
type SchemaLoaded struct {
	SchemaDir string
	Schema    *ir.Schema
	Err       error
	Duration  time.Duration
}

// EmitStart is emitted before a backend renders.
type EmitStart struct {
	Backend  string
	Path     string
	Platform ir.Platform
}

// EmitFinish is emitted after a backend rendered and its output was handled.
type EmitFinish struct {
	Backend   string
	Path      string
	Platform  ir.Platform
	Bytes     int
	Written   bool
	Unchanged bool
	Err       error
	Duration  time.Duration
}

// RunFinish closes a run.
type RunFinish struct {
	Succeeded int
	Failed    int
	Err       error
	Duration  time.Duration
}

// WatchTriggered is emitted when a schema change starts a new run in watch mode.
type WatchTriggered struct {
	Files []string
}

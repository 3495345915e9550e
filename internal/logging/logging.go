// Package logging builds zerolog loggers and logs pipeline events.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hanpama/sdlgen/internal/eventbus"
	"github.com/hanpama/sdlgen/internal/events"
	"github.com/hanpama/sdlgen/internal/runid"
)

// New returns a logger writing to w. format is "console" (the default) or
// "json"; level is a zerolog level name, "info" when empty.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	switch format {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Subscribe logs run events published on the global bus until the returned
// function is called.
func Subscribe(logger zerolog.Logger) (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.RunStart) {
			event(ctx, logger.Debug()).
				Str("schema", e.SchemaDir).
				Str("output", e.OutputDir).
				Strs("backends", e.Backends).
				Bool("dry_run", e.DryRun).
				Msg("run started")
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.SchemaLoaded) {
			if e.Err != nil {
				event(ctx, logger.Error()).Err(e.Err).Str("schema", e.SchemaDir).Msg("schema load failed")
				return
			}
			event(ctx, logger.Info()).
				Str("schema", e.SchemaDir).
				Int("enums", len(e.Schema.Enums)).
				Int("types", len(e.Schema.Types)).
				Int("inputs", len(e.Schema.Inputs)).
				Int("unions", len(e.Schema.Unions)).
				Int("queries", len(e.Schema.Queries)).
				Int("mutations", len(e.Schema.Mutations)).
				Int("subscriptions", len(e.Schema.Subscriptions)).
				Dur("took", e.Duration).
				Msg("schema loaded")
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.EmitFinish) {
			if e.Err != nil {
				event(ctx, logger.Error()).Err(e.Err).Str("backend", e.Backend).Msg("backend failed")
				return
			}
			var msg string
			switch {
			case e.Written:
				msg = "wrote output"
			case e.Unchanged:
				msg = "output unchanged"
			default:
				msg = "rendered output"
			}
			event(ctx, logger.Info()).
				Str("backend", e.Backend).
				Str("path", e.Path).
				Str("platform", e.Platform.String()).
				Int("bytes", e.Bytes).
				Dur("took", e.Duration).
				Msg(msg)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.RunFinish) {
			ev := logger.Info()
			if e.Err != nil {
				ev = logger.Warn()
			}
			event(ctx, ev).Int("succeeded", e.Succeeded).
				Int("failed", e.Failed).
				Dur("took", e.Duration).
				Msg("run finished")
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.WatchTriggered) {
			logger.Info().Strs("files", e.Files).Msg("schema changed, regenerating")
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func event(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if id, ok := runid.FromContext(ctx); ok {
		return e.Str("run_id", id)
	}
	return e
}

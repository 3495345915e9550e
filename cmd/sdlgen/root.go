package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hanpama/sdlgen/internal/config"
	"github.com/hanpama/sdlgen/internal/eventbus"
	"github.com/hanpama/sdlgen/internal/logging"
	"github.com/hanpama/sdlgen/internal/metrics"
	"github.com/hanpama/sdlgen/internal/otel"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configFile  string
	logLevel    string
	logFormat   string
	metricsFile string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "sdlgen",
		Short: "Generate platform code from GraphQL SDL",
		Long: `sdlgen reads a directory of GraphQL SDL documents and generates typed
models, constructors and resolver interfaces for several targets.

Files named like "device.android.graphql" or "device-ios.graphql" are scoped
to one platform; everything else is shared.

Examples:
  sdlgen generate                          # every backend, settings from sdlgen.yml
  sdlgen generate -t swift -t kotlin       # selected backends
  sdlgen ir --platform ios                 # inspect the intermediate representation
  sdlgen watch                             # regenerate on change`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configFile, "config", "c", "", "config file path (default: sdlgen.yml, .sdlgen.yml, sdlgen.yaml or sdlgen.toml in the working directory)")
	flags.StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&g.logFormat, "log-format", "", "log format (console, json)")
	flags.StringVar(&g.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after each run")

	root.AddCommand(
		newGenerateCmd(g),
		newIRCmd(g),
		newWatchCmd(g),
		newBackendsCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the configuration and applies the persistent flags.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if g.configFile != "" {
		loaded, err := config.Load(g.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		loaded, _, err := config.LoadOrDefault(".")
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.Logging.Level = g.logLevel
	}
	if f.Changed("log-format") {
		cfg.Logging.Format = g.logFormat
	}
	if f.Changed("metrics-file") {
		cfg.Metrics.File = g.metricsFile
	}
	return cfg, nil
}

// session wires logging, metrics and tracing to a fresh event bus for the
// lifetime of one command.
type session struct {
	logger  zerolog.Logger
	metrics *metrics.Collector
	file    string
	close   []func(context.Context) error
}

func startSession(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*session, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	eventbus.Use(eventbus.New())
	s := &session{logger: logger, file: cfg.Metrics.File}
	s.onClose(logging.Subscribe(logger))
	s.onClose(func() { eventbus.Use(nil) })

	if s.file != "" {
		s.metrics = metrics.New()
		s.onClose(s.metrics.Subscribe())
	}

	shutdown, err := otel.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.Service)
	if err != nil {
		s.Close(ctx)
		return nil, fmt.Errorf("otel setup: %w", err)
	}
	s.close = append(s.close, shutdown)
	return s, nil
}

func (s *session) onClose(fn func()) {
	s.close = append(s.close, func(context.Context) error {
		fn()
		return nil
	})
}

// flush writes metrics collected so far.
func (s *session) flush() error {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.WriteFile(s.file)
}

// Close releases resources in reverse order of acquisition.
func (s *session) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.close) - 1; i >= 0; i-- {
		errs = append(errs, s.close[i](ctx))
	}
	s.close = nil
	return errors.Join(errs...)
}

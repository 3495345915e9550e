package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hanpama/sdlgen/internal/config"
	"github.com/hanpama/sdlgen/internal/generator"
	"github.com/hanpama/sdlgen/internal/watch"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	r := &runFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever schema files change",
		Long: `Generate once, then regenerate whenever a schema document in the schema
directory is created, changed or removed. Errors are logged and watching
continues. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			r.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, cfg)
		},
	}
	r.register(cmd)
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	s, err := startSession(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close(context.Background())

	reg := generator.DefaultRegistry()
	if _, err := generator.Jobs(cfg, reg); err != nil {
		return err
	}
	regenerate := func(ctx context.Context) {
		// failures are logged through the event bus
		_, _ = generator.Run(ctx, cfg, reg)
		if err := s.flush(); err != nil {
			s.logger.Error().Err(err).Msg("metrics write failed")
		}
	}

	w, err := watch.New(cfg.Schema.Dir, func(ctx context.Context, _ []string) { regenerate(ctx) },
		watch.WithDiscoveryOptions(cfg.DiscoveryOptions()...),
		watch.WithLogger(s.logger))
	if err != nil {
		return err
	}
	regenerate(ctx)
	s.logger.Info().Str("schema", cfg.Schema.Dir).Msg("watching for changes")
	return w.Run(ctx)
}

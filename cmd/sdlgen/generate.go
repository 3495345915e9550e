package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hanpama/sdlgen/internal/config"
	"github.com/hanpama/sdlgen/internal/generator"
)

// runFlags override the config for commands that run the generator.
type runFlags struct {
	schemaDir string
	outDir    string
	targets   []string
	pkg       string
	exclude   []string
	dryRun    bool
}

func (r *runFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&r.schemaDir, "schema", "s", "", "schema directory (default: schema)")
	f.StringVarP(&r.outDir, "out", "o", "", "output directory (default: generated)")
	f.StringSliceVarP(&r.targets, "target", "t", nil, "backend to run; repeatable (default: all)")
	f.StringVarP(&r.pkg, "package", "p", "", "package or namespace for generated code")
	f.StringSliceVar(&r.exclude, "exclude", nil, "skip schema files whose name ends with this suffix; repeatable")
	f.BoolVar(&r.dryRun, "dry-run", false, "print generated code instead of writing files")
}

func (r *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("schema") {
		cfg.Schema.Dir = r.schemaDir
	}
	if f.Changed("out") {
		cfg.Output.Dir = r.outDir
	}
	if f.Changed("target") {
		cfg.Targets = r.targets
	}
	if f.Changed("package") {
		cfg.Package = r.pkg
	}
	if f.Changed("exclude") {
		cfg.Schema.Exclude = r.exclude
	}
	if f.Changed("dry-run") {
		cfg.DryRun = r.dryRun
	}
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	r := &runFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code for the selected backends",
		Long: `Generate code for the selected backends.

Every backend runs even when another one fails; failures are reported
together and the command exits non-zero. Unknown backend names and schema
parse errors abort before anything is written.

Examples:
  sdlgen generate
  sdlgen generate --schema api/graphql --out build/gen -t typescript
  sdlgen generate --dry-run -t graphql`,
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
			return runGenerate(cmd.Context(), cmd, cfg)
		},
	}
	r.register(cmd)
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (err error) {
	s, err := startSession(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.flush(), s.Close(context.Background()))
	}()

	results, err := generator.Run(ctx, cfg, generator.DefaultRegistry())
	printResults(cmd.OutOrStdout(), results, cfg.DryRun)
	return err
}

func printResults(w io.Writer, results []generator.Result, dryRun bool) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "FAIL  %-10s %v\n", r.Backend, r.Err)
		case dryRun:
			fmt.Fprintf(w, "==> %s (%s) <==\n%s\n", r.Path, r.Backend, r.Output)
		case r.Unchanged:
			fmt.Fprintf(w, "same  %-10s %s\n", r.Backend, r.Path)
		default:
			fmt.Fprintf(w, "wrote %-10s %s\n", r.Backend, r.Path)
		}
	}
}

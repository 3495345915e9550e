package main

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
)

func newIRCmd(g *globalFlags) *cobra.Command {
	var (
		schemaDir string
		platform  string
		outFile   string
		compact   bool
	)
	cmd := &cobra.Command{
		Use:   "ir",
		Short: "Print the intermediate representation as JSON",
		Long: `Print the intermediate representation built from the schema directory.

With --platform the output is restricted to what a backend targeting that
platform would see.

Examples:
  sdlgen ir
  sdlgen ir --platform android --out ir.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("schema") {
				cfg.Schema.Dir = schemaDir
			}
			target, err := ir.ParsePlatform(platform)
			if err != nil {
				return err
			}

			schema, err := ir.Load(cmd.Context(), cfg.Schema.Dir, cfg.DiscoveryOptions()...)
			if err != nil {
				return err
			}
			if !target.IsCommon() {
				schema = emitter.NewView(schema, target).Schema()
			}

			var data []byte
			if compact {
				data, err = json.Marshal(schema)
			} else {
				data, err = json.MarshalIndent(schema, "", "  ")
			}
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(outFile, data, 0o644)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&schemaDir, "schema", "s", "", "schema directory (default: schema)")
	f.StringVar(&platform, "platform", "", "restrict to one platform (ios, android, web)")
	f.StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")
	f.BoolVar(&compact, "compact", false, "print without indentation")
	return cmd
}

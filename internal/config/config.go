// Package config loads sdlgen configuration files.
//
// YAML files may reference environment variables ($VAR or ${VAR}); they are
// expanded before decoding. Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
)

// FileNames are the configuration files looked up by FindConfigFile, in order.
var FileNames = []string{"sdlgen.yml", ".sdlgen.yml", "sdlgen.yaml", "sdlgen.toml"}

type Config struct {
	Schema    SchemaConfig             `yaml:"schema" toml:"schema"`
	Output    OutputConfig             `yaml:"output" toml:"output"`
	Package   string                   `yaml:"package,omitempty" toml:"package,omitempty"`
	Targets   []string                 `yaml:"targets,omitempty" toml:"targets,omitempty"`
	Backends  map[string]BackendConfig `yaml:"backends,omitempty" toml:"backends,omitempty"`
	Logging   LoggingConfig            `yaml:"logging" toml:"logging"`
	Telemetry TelemetryConfig          `yaml:"telemetry" toml:"telemetry"`
	Metrics   MetricsConfig            `yaml:"metrics" toml:"metrics"`
	DryRun    bool                     `yaml:"dry_run,omitempty" toml:"dry_run,omitempty"`
}

type SchemaConfig struct {
	Dir        string   `yaml:"dir" toml:"dir"`
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`
	Exclude    []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
}

type OutputConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// BackendConfig overrides emission settings for a single backend. Unset
// toggles keep their default (enabled).
type BackendConfig struct {
	Output               string            `yaml:"output,omitempty" toml:"output,omitempty"`
	Package              string            `yaml:"package,omitempty" toml:"package,omitempty"`
	TypeMapping          map[string]string `yaml:"type_mapping,omitempty" toml:"type_mapping,omitempty"`
	TypeAliases          map[string]string `yaml:"type_aliases,omitempty" toml:"type_aliases,omitempty"`
	GenerateConstructors *bool             `yaml:"generate_constructors,omitempty" toml:"generate_constructors,omitempty"`
	GenerateResolvers    *bool             `yaml:"generate_resolvers,omitempty" toml:"generate_resolvers,omitempty"`
	// Platform is a platform name; empty selects the backend's default.
	Platform string `yaml:"platform,omitempty" toml:"platform,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type TelemetryConfig struct {
	Endpoint string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
	Service  string `yaml:"service,omitempty" toml:"service,omitempty"`
}

type MetricsConfig struct {
	// File receives metrics in the Prometheus text format after each run.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Schema:    SchemaConfig{Dir: "schema"},
		Output:    OutputConfig{Dir: "generated"},
		Backends:  map[string]BackendConfig{},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
		Telemetry: TelemetryConfig{Service: "sdlgen"},
	}
}

// FindConfigFile returns the first of FileNames present in dir, or "" when
// none exists.
func FindConfigFile(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("unable to stat %s: %w", path, err)
		}
	}
	return "", nil
}

// Load reads path over the defaults. The format follows the file extension.
// Relative directories in the file are resolved against the file's directory.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse config: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(content)))), yaml.DisallowUnknownField())
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("unable to parse config: %w", err)
		}
	}
	if cfg.Backends == nil {
		cfg.Backends = map[string]BackendConfig{}
	}

	base := filepath.Dir(path)
	cfg.Schema.Dir = resolve(base, cfg.Schema.Dir)
	cfg.Output.Dir = resolve(base, cfg.Output.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the first config file found in dir, falling back to
// Default when there is none. The returned path is "" in that case.
func LoadOrDefault(dir string) (*Config, string, error) {
	path, err := FindConfigFile(dir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func resolve(base, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// Validate checks values that cannot be verified by decoding alone.
func (c *Config) Validate() error {
	if c.Schema.Dir == "" {
		return errors.New("'schema.dir' must not be empty")
	}
	if c.Output.Dir == "" {
		return errors.New("'output.dir' must not be empty")
	}
	for name, b := range c.Backends {
		if _, err := ir.ParsePlatform(b.Platform); err != nil {
			return fmt.Errorf("backends.%s.platform: %w", name, err)
		}
		if filepath.IsAbs(b.Output) {
			return fmt.Errorf("backends.%s.output: %q must be relative to output.dir", name, b.Output)
		}
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported format %q", c.Logging.Format)
	}
	return nil
}

// DiscoveryOptions translates the schema section into discovery options.
func (c *Config) DiscoveryOptions() []ir.DiscoveryOption {
	var opts []ir.DiscoveryOption
	if len(c.Schema.Extensions) > 0 {
		opts = append(opts, ir.WithExtensions(c.Schema.Extensions...))
	}
	if len(c.Schema.Exclude) > 0 {
		opts = append(opts, ir.WithExclude(c.Schema.Exclude...))
	}
	return opts
}

// EmitterConfig builds the emission config for e from the global settings,
// the e-specific backend section and e's defaults.
func (c *Config) EmitterConfig(e emitter.Emitter) (emitter.Config, error) {
	out := emitter.DefaultConfig()
	out.OutputPath = e.DefaultOutput()
	out.PackageName = c.Package
	out.Platform = e.DefaultPlatform()

	b, ok := c.Backends[e.Name()]
	if !ok {
		return out, nil
	}
	if b.Output != "" {
		out.OutputPath = b.Output
	}
	if b.Package != "" {
		out.PackageName = b.Package
	}
	for k, v := range b.TypeMapping {
		out.TypeMapping[k] = v
	}
	for k, v := range b.TypeAliases {
		out.TypeAliases[k] = v
	}
	if b.GenerateConstructors != nil {
		out.GenerateConstructors = *b.GenerateConstructors
	}
	if b.GenerateResolvers != nil {
		out.GenerateResolvers = *b.GenerateResolvers
	}
	if b.Platform != "" {
		p, err := ir.ParsePlatform(b.Platform)
		if err != nil {
			return emitter.Config{}, fmt.Errorf("backends.%s.platform: %w", e.Name(), err)
		}
		out.Platform = p
	}
	return out, nil
}

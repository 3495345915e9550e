// Package generator runs the selected backends over one schema and writes
// their output.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hanpama/sdlgen/internal/config"
	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/eventbus"
	"github.com/hanpama/sdlgen/internal/events"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/runid"
)

// Job pairs a backend with its emission config.
type Job struct {
	Emitter emitter.Emitter
	Config  emitter.Config
}

// Result is the outcome of one backend.
type Result struct {
	Backend  string
	Path     string
	Platform ir.Platform
	Output   string
	Err      error
	Duration time.Duration
	// Written is set when Path was created or replaced.
	Written bool
	// Unchanged is set when Path already held Output.
	Unchanged bool
}

// Generator renders jobs and writes each output below OutputDir.
type Generator struct {
	OutputDir string
	// DryRun renders without touching the filesystem.
	DryRun bool
}

// Generate runs jobs concurrently over the read-only schema. Results are in
// job order. A failing or panicking backend only fails its own result.
func (g *Generator) Generate(ctx context.Context, schema *ir.Schema, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = g.run(ctx, schema, job)
		}()
	}
	wg.Wait()
	return results
}

func (g *Generator) run(ctx context.Context, schema *ir.Schema, job Job) (res Result) {
	name := job.Emitter.Name()
	res = Result{Backend: name, Path: job.Config.OutputPath, Platform: job.Config.Platform}

	eventbus.Publish(ctx, events.EmitStart{Backend: name, Path: res.Path, Platform: res.Platform})
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		eventbus.Publish(ctx, events.EmitFinish{
			Backend:   name,
			Path:      res.Path,
			Platform:  res.Platform,
			Bytes:     len(res.Output),
			Written:   res.Written,
			Unchanged: res.Unchanged,
			Err:       res.Err,
			Duration:  res.Duration,
		})
	}()

	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("%s failed: %w", name, err)
		return res
	}
	out, err := render(job, schema)
	if err != nil {
		res.Err = fmt.Errorf("%s failed: %w", name, err)
		return res
	}
	res.Output = out
	if g.DryRun {
		return res
	}
	written, err := g.write(res.Path, out)
	if err != nil {
		res.Err = fmt.Errorf("%s failed: %w", name, err)
		return res
	}
	res.Written = written
	res.Unchanged = !written
	return res
}

func render(job Job, schema *ir.Schema) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return job.Emitter.Generate(schema, job.Config)
}

// write stores content at rel below the output directory, leaving an
// identical existing file untouched.
func (g *Generator) write(rel, content string) (bool, error) {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return false, fmt.Errorf("output path %q escapes the output directory", rel)
	}
	path := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, []byte(content)) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("unable to write %s: %w", path, err)
	}
	return true, nil
}

// Jobs selects the configured targets from reg and resolves their emission
// configs. Unknown targets fail here, before any I/O.
func Jobs(cfg *config.Config, reg *emitter.Registry) ([]Job, error) {
	selected, err := reg.Select(cfg.Targets)
	if err != nil {
		return nil, err
	}
	jobs := make([]Job, 0, len(selected))
	for _, e := range selected {
		ec, err := cfg.EmitterConfig(e)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job{Emitter: e, Config: ec})
	}
	return jobs, nil
}

// Run performs one generation: select backends, load the schema, render and
// write. The returned error joins every backend failure; results are returned
// alongside it so callers can report successes too.
func Run(ctx context.Context, cfg *config.Config, reg *emitter.Registry) ([]Result, error) {
	ctx, _ = runid.NewContext(ctx)
	start := time.Now()

	jobs, err := Jobs(cfg, reg)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(jobs))
	for i, job := range jobs {
		names[i] = job.Emitter.Name()
	}
	eventbus.Publish(ctx, events.RunStart{
		SchemaDir: cfg.Schema.Dir,
		OutputDir: cfg.Output.Dir,
		Backends:  names,
		DryRun:    cfg.DryRun,
	})

	loadStart := time.Now()
	schema, err := ir.Load(ctx, cfg.Schema.Dir, cfg.DiscoveryOptions()...)
	eventbus.Publish(ctx, events.SchemaLoaded{
		SchemaDir: cfg.Schema.Dir,
		Schema:    schema,
		Err:       err,
		Duration:  time.Since(loadStart),
	})
	if err != nil {
		err = fmt.Errorf("load schema failed: %w", err)
		eventbus.Publish(ctx, events.RunFinish{Err: err, Duration: time.Since(start)})
		return nil, err
	}

	g := &Generator{OutputDir: cfg.Output.Dir, DryRun: cfg.DryRun}
	results := g.Generate(ctx, schema, jobs)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	err = errors.Join(errs...)
	eventbus.Publish(ctx, events.RunFinish{
		Succeeded: len(results) - len(errs),
		Failed:    len(errs),
		Err:       err,
		Duration:  time.Since(start),
	})
	return results, err
}

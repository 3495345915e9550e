// Package metrics provides Prometheus metrics collection for generation runs.
// Metrics live on a private registry and are exported as a textfile for the
// node exporter's textfile collector.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hanpama/sdlgen/internal/eventbus"
	"github.com/hanpama/sdlgen/internal/events"
)

const namespace = "sdlgen"

// Collector holds all Prometheus metrics for sdlgen.
type Collector struct {
	registry *prometheus.Registry

	// Run metrics
	RunsTotal    *prometheus.CounterVec
	RunDuration  prometheus.Histogram
	LastRunTime  prometheus.Gauge
	LoadDuration prometheus.Histogram

	// Backend metrics
	EmitsTotal   *prometheus.CounterVec
	EmitDuration *prometheus.HistogramVec
	OutputBytes  *prometheus.GaugeVec

	// Schema metrics
	Definitions *prometheus.GaugeVec
}

// New creates a new metrics collector with all metrics registered on a
// fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,

		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of generation runs by result",
			},
			[]string{"result"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Generation run duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		LastRunTime: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the last finished run",
			},
		),
		LoadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "schema_load_duration_seconds",
				Help:      "Schema discovery, parse and transform duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		EmitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emits_total",
				Help:      "Total number of backend emissions by result",
			},
			[]string{"backend", "result"},
		),
		EmitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "emit_duration_seconds",
				Help:      "Backend emission duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5},
			},
			[]string{"backend"},
		),
		OutputBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "output_bytes",
				Help:      "Size of the last output of each backend",
			},
			[]string{"backend"},
		),
		Definitions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "schema_definitions",
				Help:      "Definitions in the last loaded schema by kind",
			},
			[]string{"kind"},
		),
	}
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Subscribe records run events published on the global bus.
func (c *Collector) Subscribe() (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(_ context.Context, e events.SchemaLoaded) {
			c.LoadDuration.Observe(e.Duration.Seconds())
			if e.Schema == nil {
				return
			}
			s := e.Schema
			c.Definitions.WithLabelValues("enum").Set(float64(len(s.Enums)))
			c.Definitions.WithLabelValues("type").Set(float64(len(s.Types)))
			c.Definitions.WithLabelValues("input").Set(float64(len(s.Inputs)))
			c.Definitions.WithLabelValues("union").Set(float64(len(s.Unions)))
			c.Definitions.WithLabelValues("query").Set(float64(len(s.Queries)))
			c.Definitions.WithLabelValues("mutation").Set(float64(len(s.Mutations)))
			c.Definitions.WithLabelValues("subscription").Set(float64(len(s.Subscriptions)))
		}),
		eventbus.Subscribe(func(_ context.Context, e events.EmitFinish) {
			c.EmitsTotal.WithLabelValues(e.Backend, emitResult(e)).Inc()
			c.EmitDuration.WithLabelValues(e.Backend).Observe(e.Duration.Seconds())
			if e.Err == nil {
				c.OutputBytes.WithLabelValues(e.Backend).Set(float64(e.Bytes))
			}
		}),
		eventbus.Subscribe(func(_ context.Context, e events.RunFinish) {
			result := "success"
			if e.Err != nil {
				result = "failure"
			}
			c.RunsTotal.WithLabelValues(result).Inc()
			c.RunDuration.Observe(e.Duration.Seconds())
			c.LastRunTime.SetToCurrentTime()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func emitResult(e events.EmitFinish) string {
	switch {
	case e.Err != nil:
		return "error"
	case e.Written:
		return "written"
	case e.Unchanged:
		return "unchanged"
	}
	return "rendered"
}

// WriteFile writes the current metrics to path in the Prometheus text format.
func (c *Collector) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// Package otel provides OpenTelemetry integration for arena metrics.
//
// # Overview
//
// This package implements the arena.MetricsCollector interface using
// OpenTelemetry, enabling automatic percentile calculation and
// multi-backend support (Prometheus, Jaeger, DataDog, Grafana).
//
// It is a separate module to keep the arena core lightweight:
// applications that don't need metrics collection don't pay for the OTEL
// dependencies.
//
// # Quick Start
//
//	import (
//	    "github.com/agilira/arena"
//	    arenaotel "github.com/agilira/arena/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, err := prometheus.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	metricsCollector, err := arenaotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	a, err := arena.New[User](arena.Config{
//	    MetricsCollector: metricsCollector,
//	})
//
//	h, _ := a.Insert(user)
//	a.Get(h.Key())
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":2112", nil))
//
// # Metrics Exposed
//
// Histograms (with automatic percentiles):
//   - arena_insert_latency_ns
//   - arena_get_latency_ns
//   - arena_remove_latency_ns
//
// Counters:
//   - arena_get_hits_total
//   - arena_get_misses_total
//   - arena_growth_total
//   - arena_refcount_overflow_total
//
// # Configuration
//
// Custom meter name (useful for distinguishing multiple arena instances):
//
//	collector, err := arenaotel.NewOTelMetricsCollector(
//	    provider,
//	    arenaotel.WithMeterName("myapp_session_arena"),
//	)
//
// # Prometheus Queries
//
//	histogram_quantile(0.95, rate(arena_get_latency_ns_bucket[5m]))
//	rate(arena_get_hits_total[5m]) /
//	  (rate(arena_get_hits_total[5m]) + rate(arena_get_misses_total[5m]))
//	rate(arena_growth_total[1m])
//
// # Thread Safety
//
// All methods are safe for concurrent use; the underlying OTEL
// instruments are themselves lock-free.
package otel

// Package otel provides OpenTelemetry integration for arena metrics.
//
// This package implements the arena.MetricsCollector interface using
// OpenTelemetry, enabling automatic percentile calculation (p50, p95, p99)
// and multi-backend support (Prometheus, Jaeger, DataDog, Grafana).
//
// # Usage
//
//	import (
//	    "github.com/agilira/arena"
//	    arenaotel "github.com/agilira/arena/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//
//	metricsCollector, _ := arenaotel.NewOTelMetricsCollector(provider)
//
//	a, _ := arena.New[string](arena.Config{
//	    MetricsCollector: metricsCollector,
//	})
//
// # Metrics Exposed
//
//   - arena_insert_latency_ns: Histogram of Insert() latencies
//   - arena_get_latency_ns: Histogram of Get() latencies
//   - arena_remove_latency_ns: Histogram of Remove() latencies
//   - arena_get_hits_total: Counter of Get() hits
//   - arena_get_misses_total: Counter of Get() misses
//   - arena_growth_total: Counter of bucket-vector growth events
//   - arena_refcount_overflow_total: Counter of refcount saturation aborts
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/arena"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements arena.MetricsCollector using
// OpenTelemetry.
//
// Thread-safety: safe for concurrent use; the underlying OTEL instruments
// are themselves thread-safe.
type OTelMetricsCollector struct {
	insertLatency    metric.Int64Histogram
	getLatency       metric.Int64Histogram
	removeLatency    metric.Int64Histogram
	hits             metric.Int64Counter
	misses           metric.Int64Counter
	growthEvents     metric.Int64Counter
	refcountOverflow metric.Int64Counter
}

// Options configures OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/arena"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful for distinguishing
// metrics from multiple arena instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a collector backed by the given
// MeterProvider, which must not be nil.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/arena"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	collector := &OTelMetricsCollector{}

	var err error
	collector.insertLatency, err = meter.Int64Histogram(
		"arena_insert_latency_ns",
		metric.WithDescription("Latency of Insert operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.getLatency, err = meter.Int64Histogram(
		"arena_get_latency_ns",
		metric.WithDescription("Latency of Get operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.removeLatency, err = meter.Int64Histogram(
		"arena_remove_latency_ns",
		metric.WithDescription("Latency of Remove operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.hits, err = meter.Int64Counter(
		"arena_get_hits_total",
		metric.WithDescription("Total number of Get hits"),
	)
	if err != nil {
		return nil, err
	}

	collector.misses, err = meter.Int64Counter(
		"arena_get_misses_total",
		metric.WithDescription("Total number of Get misses"),
	)
	if err != nil {
		return nil, err
	}

	collector.growthEvents, err = meter.Int64Counter(
		"arena_growth_total",
		metric.WithDescription("Total number of bucket-vector growth events"),
	)
	if err != nil {
		return nil, err
	}

	collector.refcountOverflow, err = meter.Int64Counter(
		"arena_refcount_overflow_total",
		metric.WithDescription("Total number of refcount-saturation aborts"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RecordInsert records the latency of an Insert call.
func (c *OTelMetricsCollector) RecordInsert(latencyNs int64) {
	c.insertLatency.Record(context.Background(), latencyNs)
}

// RecordGet records the latency of a Get call and whether it hit.
func (c *OTelMetricsCollector) RecordGet(latencyNs int64, hit bool) {
	ctx := context.Background()
	c.getLatency.Record(ctx, latencyNs)
	if hit {
		c.hits.Add(ctx, 1)
	} else {
		c.misses.Add(ctx, 1)
	}
}

// RecordRemove records the latency of a Remove call.
func (c *OTelMetricsCollector) RecordRemove(latencyNs int64, _ bool) {
	c.removeLatency.Record(context.Background(), latencyNs)
}

// RecordGrowth records a bucket-vector growth event.
func (c *OTelMetricsCollector) RecordGrowth(_ int) {
	c.growthEvents.Add(context.Background(), 1)
}

// RecordRefcountOverflow records a refcount-saturation abort.
func (c *OTelMetricsCollector) RecordRefcountOverflow() {
	c.refcountOverflow.Add(context.Background(), 1)
}

// Compile-time interface check.
var _ arena.MetricsCollector = (*OTelMetricsCollector)(nil)

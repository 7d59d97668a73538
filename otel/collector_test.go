// collector_test.go: tests for the OpenTelemetry-backed MetricsCollector
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"testing"

	"github.com/agilira/arena"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestOTelMetricsCollector_Interface(t *testing.T) {
	var _ arena.MetricsCollector = (*OTelMetricsCollector)(nil)
}

func TestNewOTelMetricsCollector(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	if collector == nil {
		t.Fatal("NewOTelMetricsCollector() returned nil")
	}
}

func TestNewOTelMetricsCollector_NilProvider(t *testing.T) {
	collector, err := NewOTelMetricsCollector(nil)
	if err == nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return error")
	}
	if collector != nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return nil collector")
	}
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestOTelMetricsCollector_RecordGet(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordGet(1000, true)
	collector.RecordGet(2000, false)
	collector.RecordGet(1500, true)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	latency, ok := findMetric(rm, "arena_get_latency_ns")
	if !ok {
		t.Fatal("arena_get_latency_ns metric not found")
	}
	hist, ok := latency.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("expected Histogram[int64], got %T", latency.Data)
	}
	var totalCount uint64
	for _, dp := range hist.DataPoints {
		totalCount += dp.Count
	}
	if totalCount != 3 {
		t.Errorf("expected 3 operations, got %d", totalCount)
	}

	hits, ok := findMetric(rm, "arena_get_hits_total")
	if !ok {
		t.Fatal("arena_get_hits_total metric not found")
	}
	hitsSum, ok := hits.Data.(metricdata.Sum[int64])
	if !ok || len(hitsSum.DataPoints) == 0 || hitsSum.DataPoints[0].Value != 2 {
		t.Errorf("expected 2 hits, got %v", hits.Data)
	}

	misses, ok := findMetric(rm, "arena_get_misses_total")
	if !ok {
		t.Fatal("arena_get_misses_total metric not found")
	}
	missesSum, ok := misses.Data.(metricdata.Sum[int64])
	if !ok || len(missesSum.DataPoints) == 0 || missesSum.DataPoints[0].Value != 1 {
		t.Errorf("expected 1 miss, got %v", misses.Data)
	}
}

func TestOTelMetricsCollector_RecordInsert(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordInsert(500)
	collector.RecordInsert(1000)
	collector.RecordInsert(750)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	m, ok := findMetric(rm, "arena_insert_latency_ns")
	if !ok {
		t.Fatal("arena_insert_latency_ns metric not found")
	}
	hist, ok := m.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("expected Histogram[int64], got %T", m.Data)
	}
	var totalCount uint64
	for _, dp := range hist.DataPoints {
		totalCount += dp.Count
	}
	if totalCount != 3 {
		t.Errorf("expected 3 operations, got %d", totalCount)
	}
}

func TestOTelMetricsCollector_RecordRemove(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordRemove(300, true)
	collector.RecordRemove(600, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	m, ok := findMetric(rm, "arena_remove_latency_ns")
	if !ok {
		t.Fatal("arena_remove_latency_ns metric not found")
	}
	hist, ok := m.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("expected Histogram[int64], got %T", m.Data)
	}
	var totalCount uint64
	for _, dp := range hist.DataPoints {
		totalCount += dp.Count
	}
	if totalCount != 2 {
		t.Errorf("expected 2 operations, got %d", totalCount)
	}
}

func TestOTelMetricsCollector_RecordGrowthAndOverflow(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordGrowth(4)
	collector.RecordGrowth(8)
	collector.RecordRefcountOverflow()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	growth, ok := findMetric(rm, "arena_growth_total")
	if !ok {
		t.Fatal("arena_growth_total metric not found")
	}
	growthSum, ok := growth.Data.(metricdata.Sum[int64])
	if !ok || len(growthSum.DataPoints) == 0 || growthSum.DataPoints[0].Value != 2 {
		t.Errorf("expected 2 growth events, got %v", growth.Data)
	}

	overflow, ok := findMetric(rm, "arena_refcount_overflow_total")
	if !ok {
		t.Fatal("arena_refcount_overflow_total metric not found")
	}
	overflowSum, ok := overflow.Data.(metricdata.Sum[int64])
	if !ok || len(overflowSum.DataPoints) == 0 || overflowSum.DataPoints[0].Value != 1 {
		t.Errorf("expected 1 overflow event, got %v", overflow.Data)
	}
}

func TestWithMeterName(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	collector, err := NewOTelMetricsCollector(provider, WithMeterName("custom-meter"))
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	if collector == nil {
		t.Fatal("expected non-nil collector")
	}
}

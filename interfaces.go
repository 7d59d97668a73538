// interfaces.go: public interfaces for Arena
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package arena

// Logger defines a minimal logging interface with zero overhead.
// Implementations should use structured logging and be allocation-free.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keyvals ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoOpLogger) Info(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time with caching for performance.
// This interface allows injecting optimized time implementations.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	// This method must be very fast and allocation-free.
	Now() int64
}

// MetricsCollector receives observability events for an Arena's
// operations. Implementations must be safe for concurrent use.
// NoOpMetricsCollector is the zero-overhead default; arena/otel provides
// an OpenTelemetry-backed implementation.
type MetricsCollector interface {
	// RecordInsert records the latency of an Insert call.
	RecordInsert(latencyNs int64)

	// RecordGet records the latency of a Get call and whether it hit.
	RecordGet(latencyNs int64, hit bool)

	// RecordRemove records the latency of a Remove call and whether it
	// actually took a value (as opposed to finding the slot absent or
	// held by another handle).
	RecordRemove(latencyNs int64, ok bool)

	// RecordGrowth is called each time the bucket vector grows, with the
	// new total number of buckets.
	RecordGrowth(newBucketCount int)

	// RecordRefcountOverflow records a slot's refcount saturating (see
	// NewErrRefcountOverflow). The arena itself never calls it: the
	// refcount-overflow panic raised by Get or Handle.Clone is not reported
	// to the collector.
	RecordRefcountOverflow()
}

// NoOpMetricsCollector is a MetricsCollector that does nothing. Used as
// the default so callers never need a nil check on the hot path.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordInsert(latencyNs int64)          {}
func (NoOpMetricsCollector) RecordGet(latencyNs int64, hit bool)   {}
func (NoOpMetricsCollector) RecordRemove(latencyNs int64, ok bool) {}
func (NoOpMetricsCollector) RecordGrowth(newBucketCount int)       {}
func (NoOpMetricsCollector) RecordRefcountOverflow()               {}

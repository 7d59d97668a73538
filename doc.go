// Package arena provides a concurrent, growable object arena with
// reference-counted handles and compact 32-bit keys.
//
// # Overview
//
// An Arena is a fixed-identity container that many goroutines may insert
// into, look up from, and remove from at the same time, without a global
// write lock. Every live entry is reached through an opaque Key (a
// 32-bit integer) or through a Handle that pins the entry alive for as
// long as the handle is held.
//
// # Features
//
//   - Lock-free fast paths: Insert, Get, and the common case of Remove use
//     only atomic operations, no mutexes.
//   - Reference-counted handles: a Handle keeps its slot's value alive and
//     addressable even while the arena grows concurrently.
//   - Amortized O(1) growth: buckets are appended in exponentially larger
//     rounds under sustained insert pressure.
//   - Structured errors: rich error context via go-errors.
//   - Observability: pluggable MetricsCollector, OpenTelemetry backend in
//     the arena/otel subpackage.
//   - Hot-reloadable operational tuning via Argus, for the parameters that
//     can safely change without reconstructing the arena.
//
// # Quick Start
//
//	a, err := arena.New[string](arena.Config{BitArrayLen: 10})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	h, err := a.Insert("hello")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Release()
//
//	key := h.Key()
//	if h2, ok := a.Get(key); ok {
//	    defer h2.Release()
//	    fmt.Println(h2.Value())
//	}
//
// # Non-goals
//
// The arena does not provide ordered iteration, range queries, deletion by
// value, persistence, or a generational ABA counter beyond single-word
// atomic reuse. Handle.Release is lock-free but may retry its CAS under
// contention, so it is not guaranteed strictly wait-free; Remove makes a
// single CAS attempt and reports failure instead of retrying.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package arena

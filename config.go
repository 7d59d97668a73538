// config.go: configuration for Arena
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package arena

import (
	"github.com/agilira/go-timecache"
)

// Config holds configuration parameters for an Arena.
type Config struct {
	// BitArrayLen is log2(LEN), the number of slots per bucket expressed
	// as a power-of-two exponent, and the bit-width of the slot index
	// half of every Key this arena issues. Must be between 1 and 31.
	// Default: DefaultBitArrayLen if left at zero. BitArrayLen cannot be
	// changed after New returns: it is baked into the meaning of every key
	// already handed out.
	BitArrayLen int

	// MaxGrowthStep caps how many buckets may be appended in a single
	// failed-scan round, the exponential-growth performance knob that
	// bounds amortized insert cost under sustained growth. Must be >= 1.
	// Default: DefaultMaxGrowthStep. Unlike BitArrayLen, this field can be
	// changed live after construction via HotConfig / Arena.SetMaxGrowthStep.
	MaxGrowthStep int

	// Logger is used for debugging and monitoring growth events.
	// If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// TimeProvider provides current time for metrics latency sampling
	// only (the arena itself has no TTL concept). If nil, a default
	// implementation is used. Default: system time.
	TimeProvider TimeProvider

	// MetricsCollector is used for collecting operation metrics
	// (latencies and growth events). If nil,
	// NoOpMetricsCollector is used (zero overhead). Default:
	// NoOpMetricsCollector.
	MetricsCollector MetricsCollector
}

// Validate checks configuration parameters, applies sensible defaults for
// unset fields, and returns a structured error for values that are set
// but out of range. Unlike the other fields, BitArrayLen cannot simply be
// normalized to a default when it is out of range: an explicit,
// out-of-range BitArrayLen is a caller programming error, not a
// preference, so it is reported rather than silently corrected — the one
// divergence from the all-defaults-no-errors Validate pattern this
// method is otherwise grounded on.
//
// Default values applied:
//   - BitArrayLen: DefaultBitArrayLen if == 0
//   - MaxGrowthStep: DefaultMaxGrowthStep if <= 0
//   - Logger: NoOpLogger{} if nil
//   - TimeProvider: systemTimeProvider{} if nil
//   - MetricsCollector: NoOpMetricsCollector{} if nil
func (c *Config) Validate() error {
	if c.BitArrayLen == 0 {
		c.BitArrayLen = DefaultBitArrayLen
	}
	if c.BitArrayLen < minBitArrayLen || c.BitArrayLen > maxBitArrayLen {
		return NewErrInvalidBitArrayLen(c.BitArrayLen)
	}

	if c.MaxGrowthStep <= 0 {
		c.MaxGrowthStep = DefaultMaxGrowthStep
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BitArrayLen:      DefaultBitArrayLen,
		MaxGrowthStep:    DefaultMaxGrowthStep,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default time provider using go-timecache.
// This provides much faster time access compared to time.Now() with
// zero allocations, which matters here only for metrics sampling.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}

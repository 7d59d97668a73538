// arena.go: core arena routing — insert/get/remove across growable buckets
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package arena

import (
	"sync"
	"sync/atomic"
)

const (
	// Version of the arena library.
	Version = "v0.1.0-dev"

	// DefaultBitArrayLen is used when Config.BitArrayLen is left at zero.
	DefaultBitArrayLen = 10 // LEN = 1024 slots per bucket

	// DefaultMaxGrowthStep caps how many buckets may be appended in a
	// single failed-scan round.
	DefaultMaxGrowthStep = 16

	// minBitArrayLen and maxBitArrayLen bound Config.BitArrayLen: at least
	// one slot index bit, and at most 31 so 1<<BitArrayLen always fits a
	// uint32 bucket length and at least one bucket-index bit remains.
	minBitArrayLen = 1
	maxBitArrayLen = 31
)

// Key is an opaque 32-bit identifier for an arena entry. It decomposes
// internally into (bucketIndex, slotIndex) but clients should treat it as
// an opaque, copyable, comparable value.
type Key uint32

// Uint32 returns the raw 32-bit representation of the key.
func (k Key) Uint32() uint32 { return uint32(k) }

// KeyFromUint32 reconstructs a Key from its raw 32-bit representation.
func KeyFromUint32(v uint32) Key { return Key(v) }

func makeKey(bucketIndex uint32, slotIndex uint32, slotBits uint32) Key {
	return Key(bucketIndex<<slotBits | slotIndex)
}

func (k Key) decompose(slotBits uint32) (bucketIndex, slotIndex uint32) {
	mask := uint32(1)<<slotBits - 1
	return uint32(k) >> slotBits, uint32(k) & mask
}

// Arena is a fixed-identity, growable container of values of type T. All
// methods are safe for concurrent use by any number of goroutines.
type Arena[T any] struct {
	len         uint32 // LEN: slots per bucket, power of two
	bitArrayLen uint32 // log2(len)

	// maxGrowthStep is the only Config field an Arena may change after
	// construction (via HotConfig), so it is the only one stored atomically.
	maxGrowthStep atomic.Int64

	logger           Logger
	timeProvider     TimeProvider
	metricsCollector MetricsCollector

	// buckets is an append-only snapshot of bucket pointers, published
	// through an atomic pointer so readers never see a torn slice.
	buckets atomic.Pointer[[]*bucket[T]]

	// growMu serializes bucket-vector growth; readers never take it.
	growMu sync.Mutex

	// nextInsertBucket hints where the next Insert should start probing.
	nextInsertBucket atomic.Uint32
}

// New creates an empty Arena parameterized by element type T and the
// supplied Config. Buckets are allocated lazily on first insert.
func New[T any](cfg Config) (*Arena[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Arena[T]{
		len:              1 << uint32(cfg.BitArrayLen), // #nosec G115 - validated range 1..31
		bitArrayLen:      uint32(cfg.BitArrayLen),       // #nosec G115 - validated range 1..31
		logger:           cfg.Logger,
		timeProvider:     cfg.TimeProvider,
		metricsCollector: cfg.MetricsCollector,
	}
	a.maxGrowthStep.Store(int64(cfg.MaxGrowthStep))
	empty := make([]*bucket[T], 0)
	a.buckets.Store(&empty)
	return a, nil
}

// SetMaxGrowthStep changes the growth-step cap live, without requiring
// arena reconstruction. Safe for concurrent use; see HotConfig.
func (a *Arena[T]) SetMaxGrowthStep(step int) {
	if step < 1 {
		step = 1
	}
	a.maxGrowthStep.Store(int64(step))
}

// bucketBits returns how many bits of the 32-bit key space remain for the
// bucket index once slotBits are reserved for the slot index.
func (a *Arena[T]) bucketBits() uint32 {
	return 32 - a.bitArrayLen
}

// Insert stores value in the arena and returns a handle to it. Returns
// ErrCodeOutOfCapacity if the 32-bit key space is exhausted.
func (a *Arena[T]) Insert(value T) (Handle[T], error) {
	var start int64
	if a.timeProvider != nil {
		start = a.timeProvider.Now()
	}

	for {
		snapshot := *a.buckets.Load()
		cursor := a.nextInsertBucket.Load()

		for i := 0; i < len(snapshot); i++ {
			idx := (cursor + uint32(i)) % uint32(len(snapshot)) // #nosec G115 - len(snapshot) fits uint32 for any realistic arena
			b := snapshot[idx]
			if slotIdx, ok := b.tryInsert(value); ok {
				a.nextInsertBucket.Store(idx)
				h := Handle[T]{bucket: b, key: makeKey(idx, slotIdx, a.bitArrayLen)}
				a.recordInsert(start)
				return h, nil
			}
		}

		if err := a.grow(snapshot); err != nil {
			return Handle[T]{}, err
		}
	}
}

// grow appends one or more new buckets to the bucket vector. Only one
// goroutine extends the vector per failed round; the rest re-observe the
// published vector and retry their scan.
func (a *Arena[T]) grow(observed []*bucket[T]) error {
	a.growMu.Lock()
	defer a.growMu.Unlock()

	current := *a.buckets.Load()
	if len(current) != len(observed) {
		// Someone else already grew the vector; caller will retry the scan.
		return nil
	}

	if uint64(len(current)) >= uint64(1)<<a.bucketBits() {
		return NewErrOutOfCapacity(len(current), a.len)
	}

	step := growthStep(len(current), int(a.maxGrowthStep.Load()))
	maxBuckets := uint64(1) << a.bucketBits()
	if uint64(len(current))+uint64(step) > maxBuckets {
		step = int(maxBuckets - uint64(len(current)))
	}
	if step < 1 {
		step = 1
	}

	grown := make([]*bucket[T], len(current), len(current)+step)
	copy(grown, current)
	for i := 0; i < step; i++ {
		grown = append(grown, newBucket[T](a.len))
	}
	a.buckets.Store(&grown)

	if a.metricsCollector != nil {
		a.metricsCollector.RecordGrowth(len(grown))
	}
	if a.logger != nil {
		a.logger.Debug("arena: grew bucket vector", "buckets", len(grown), "step", step)
	}
	return nil
}

// growthStep doubles the number of buckets appended per failed round, up
// to maxStep, giving amortized O(1) inserts under sustained growth. A
// step of 1 is always correct; larger steps are a performance tuning, not
// a correctness requirement.
func growthStep(currentBuckets int, maxStep int) int {
	if maxStep < 1 {
		maxStep = 1
	}
	step := 1
	for s := currentBuckets; s > 0 && step < maxStep; s >>= 1 {
		step <<= 1
	}
	if step > maxStep {
		step = maxStep
	}
	return step
}

// Get returns a new handle to the entry identified by key, bumping its
// refcount, iff the slot is currently live. Returns (Handle{}, false) if
// the key is out of range, stale, or the slot is not live.
func (a *Arena[T]) Get(key Key) (Handle[T], bool) {
	var start int64
	if a.timeProvider != nil {
		start = a.timeProvider.Now()
	}

	bucketIdx, slotIdx := key.decompose(a.bitArrayLen)
	snapshot := *a.buckets.Load()
	if bucketIdx >= uint32(len(snapshot)) { // #nosec G115 - len(snapshot) fits uint32 for any realistic arena
		a.recordGet(start, false)
		return Handle[T]{}, false
	}

	b := snapshot[bucketIdx]
	if !b.tryCloneHandle(slotIdx) {
		a.recordGet(start, false)
		return Handle[T]{}, false
	}

	a.recordGet(start, true)
	return Handle[T]{bucket: b, key: key}, true
}

// Remove takes ownership of the value stored at key and returns it,
// provided the caller is the sole holder of the slot at that moment.
// Returns (zero, false) if the key is absent, stale, or other handles to
// the slot still exist.
func (a *Arena[T]) Remove(key Key) (T, bool) {
	var start int64
	if a.timeProvider != nil {
		start = a.timeProvider.Now()
	}

	var zero T
	bucketIdx, slotIdx := key.decompose(a.bitArrayLen)
	snapshot := *a.buckets.Load()
	if bucketIdx >= uint32(len(snapshot)) { // #nosec G115 - len(snapshot) fits uint32 for any realistic arena
		a.recordRemove(start, false)
		return zero, false
	}

	b := snapshot[bucketIdx]
	value, ok := b.remove(slotIdx)
	a.recordRemove(start, ok)
	if !ok {
		return zero, false
	}
	return value, true
}

// Len returns an approximate count of live entries: a snapshot lower
// bound, not linearizable across the whole arena under concurrent
// mutation (no tearing occurs within a single bitmap word).
func (a *Arena[T]) Len() int {
	snapshot := *a.buckets.Load()
	total := 0
	for _, b := range snapshot {
		total += b.bits.count()
	}
	return total
}

func (a *Arena[T]) recordInsert(startNanos int64) {
	if a.metricsCollector == nil || a.timeProvider == nil {
		return
	}
	a.metricsCollector.RecordInsert(a.timeProvider.Now() - startNanos)
}

func (a *Arena[T]) recordGet(startNanos int64, hit bool) {
	if a.metricsCollector == nil || a.timeProvider == nil {
		return
	}
	a.metricsCollector.RecordGet(a.timeProvider.Now()-startNanos, hit)
}

func (a *Arena[T]) recordRemove(startNanos int64, ok bool) {
	if a.metricsCollector == nil || a.timeProvider == nil {
		return
	}
	a.metricsCollector.RecordRemove(a.timeProvider.Now()-startNanos, ok)
}

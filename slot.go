// slot.go: per-slot lifecycle state machine
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package arena

import (
	"math"
	"sync/atomic"
)

// Slot states share one atomic word with the refcount: stateEmpty and
// stateReserved are sentinels, every other value is a live refcount.
const (
	stateEmpty    uint32 = 0
	stateReserved uint32 = math.MaxUint32

	// minRefcount is the refcount a freshly inserted slot carries.
	minRefcount uint32 = 1

	// maxRefcount reserves the two sentinel values (stateEmpty and
	// stateReserved), leaving 2^32-3 representable live refcounts.
	maxRefcount uint32 = math.MaxUint32 - 2
)

// slot holds one value of type T, guarded by an atomic state word that
// doubles as the live refcount.
type slot[T any] struct {
	// state is EMPTY, RESERVED, or a LIVE(n) refcount. All transitions go
	// through CAS; no plain store ever races with a concurrent claim.
	state atomic.Uint32

	// value is populated only while state is LIVE. The RESERVED state is
	// unused by this implementation: Insert transitions EMPTY directly to
	// LIVE(1), since atomic.Value.Store already gives a complete,
	// race-free publish.
	value atomic.Value
}

// tryPublish transitions an EMPTY slot claimed via the bucket's bitmap
// into LIVE(1), writing value first. Returns false only if the slot was
// not EMPTY, which would indicate a bitmap/state inconsistency.
func (s *slot[T]) tryPublish(value T) bool {
	s.value.Store(boxedValue[T]{v: value})
	return s.state.CompareAndSwap(stateEmpty, minRefcount)
}

// tryAcquire increments the refcount if the slot is currently LIVE.
// Returns false if the slot is EMPTY or RESERVED. Aborts the process on
// refcount overflow: see NewErrRefcountOverflow.
func (s *slot[T]) tryAcquire() bool {
	for {
		old := s.state.Load()
		if old == stateEmpty || old == stateReserved {
			return false
		}
		if old >= maxRefcount {
			panic(NewErrRefcountOverflow())
		}
		if s.state.CompareAndSwap(old, old+1) {
			return true
		}
	}
}

// dropOutcome describes what the caller of release() must still do after
// the slot's refcount is decremented.
type dropOutcome int

const (
	dropStillLive dropOutcome = iota
	dropBecameEmpty
)

// release decrements the slot's refcount. If it reaches zero, the slot is
// transitioned to EMPTY and its stored value dropped before this returns
// dropBecameEmpty; the caller must then return the slot's bitmap bit.
// Otherwise it returns dropStillLive.
func (s *slot[T]) release() dropOutcome {
	for {
		old := s.state.Load()
		if old == minRefcount {
			if s.state.CompareAndSwap(old, stateEmpty) {
				// The bitmap bit is still set, so no Insert can claim the
				// slot yet; dropping the value here releases it before the
				// slot is handed out again.
				s.value.Store(boxedValue[T]{})
				return dropBecameEmpty
			}
			continue
		}
		if s.state.CompareAndSwap(old, old-1) {
			return dropStillLive
		}
	}
}

// tryTake succeeds only when the caller is the slot's sole holder: CAS
// from LIVE(1) directly to EMPTY. Returns the stored value and true on
// success, or the zero value and false if the refcount was not exactly 1
// (or the slot was already EMPTY).
func (s *slot[T]) tryTake() (T, bool) {
	var zero T
	if !s.state.CompareAndSwap(minRefcount, stateEmpty) {
		return zero, false
	}
	boxed, _ := s.value.Load().(boxedValue[T])
	s.value.Store(boxedValue[T]{})
	return boxed.v, true
}

// load reads the slot's current value. Callers must have already
// established the slot is LIVE (via tryAcquire or tryPublish) so the read
// happens-after the publishing store.
func (s *slot[T]) load() T {
	boxed, _ := s.value.Load().(boxedValue[T])
	return boxed.v
}

// refcount returns the current state word, interpreted as a refcount.
// Only meaningful when the slot is LIVE; callers check that separately.
func (s *slot[T]) refcount() uint32 {
	return s.state.Load()
}

// boxedValue wraps T so atomic.Value always stores the same concrete
// type, even across EMPTY -> LIVE reuse cycles with different payloads.
type boxedValue[T any] struct {
	v T
}
